package models

import (
	"time"
)

type HungerSpotStatus string

const (
	HungerSpotStatusPending  HungerSpotStatus = "pending"
	HungerSpotStatusApproved HungerSpotStatus = "approved"
	HungerSpotStatusRejected HungerSpotStatus = "rejected"
	HungerSpotStatusResolved HungerSpotStatus = "resolved"
)

// Valid reports whether s is one of the known hunger spot statuses.
func (s HungerSpotStatus) Valid() bool {
	switch s {
	case HungerSpotStatusPending, HungerSpotStatusApproved, HungerSpotStatusRejected, HungerSpotStatusResolved:
		return true
	}
	return false
}

type HungerSpot struct {
	ID                  uint64           `gorm:"primarykey" json:"id"`
	Description         string           `gorm:"type:text;not null" json:"description"`
	LocationText        string           `gorm:"type:varchar(500);not null" json:"location_text"`
	Latitude            *float64         `json:"latitude"`
	Longitude           *float64         `json:"longitude"`
	Status              HungerSpotStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReportedByID        *uint64          `gorm:"index" json:"reported_by_id"`
	AssignedVolunteerID *uint64          `json:"assigned_volunteer_id"`
	CreatedAt           time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	// Relations
	ReportedBy *User `gorm:"foreignKey:ReportedByID" json:"reported_by,omitempty"`
}
