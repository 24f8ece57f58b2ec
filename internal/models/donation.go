package models

import (
	"time"
)

type DonationStatus string

const (
	DonationStatusPending  DonationStatus = "pending"
	DonationStatusAccepted DonationStatus = "accepted"
	DonationStatusResolved DonationStatus = "resolved"
)

type DeliveryOption string

const (
	DeliverySelf      DeliveryOption = "self"
	DeliveryVolunteer DeliveryOption = "volunteer"
)

type Donation struct {
	ID                  uint64         `gorm:"primarykey" json:"id"`
	ProductName         string         `gorm:"type:varchar(255);not null" json:"product_name"`
	Servings            int            `gorm:"not null;default:0" json:"servings"`
	Location            string         `gorm:"type:text" json:"location"`
	DeliveryOption      DeliveryOption `gorm:"type:varchar(20);not null" json:"delivery_option"`
	Status              DonationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DonorID             uint64         `gorm:"not null;index" json:"donor_id"`
	AssignedVolunteerID *uint64        `gorm:"index" json:"assigned_volunteer_id"`
	AcceptedAt          *time.Time     `json:"accepted_at"`
	ResolvedAt          *time.Time     `json:"resolved_at"`
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	// Relations
	Donor             User  `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	AssignedVolunteer *User `gorm:"foreignKey:AssignedVolunteerID" json:"assigned_volunteer,omitempty"`
}
