package dto

import (
	"time"

	"github.com/foodbridge/donation-api/internal/models"
)

// HungerSpotDTO represents a hunger spot in API responses
type HungerSpotDTO struct {
	ID                  uint64                  `json:"id"`
	Description         string                  `json:"description"`
	LocationText        string                  `json:"locationText"`
	Lat                 *float64                `json:"lat"`
	Lng                 *float64                `json:"lng"`
	Status              models.HungerSpotStatus `json:"status"`
	ReportedBy          *ReporterDTO            `json:"reportedBy"`
	AssignedVolunteerID *uint64                 `json:"assignedVolunteerId"`
	CreatedAt           time.Time               `json:"createdAt"`
}

// ReporterDTO is the public view of whoever reported a spot
type ReporterDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToHungerSpotDTO converts a HungerSpot model to HungerSpotDTO
func ToHungerSpotDTO(spot models.HungerSpot) HungerSpotDTO {
	dto := HungerSpotDTO{
		ID:                  spot.ID,
		Description:         spot.Description,
		LocationText:        spot.LocationText,
		Lat:                 spot.Latitude,
		Lng:                 spot.Longitude,
		Status:              spot.Status,
		AssignedVolunteerID: spot.AssignedVolunteerID,
		CreatedAt:           spot.CreatedAt,
	}

	// Include reporter if preloaded
	if spot.ReportedBy != nil && spot.ReportedBy.ID != 0 {
		dto.ReportedBy = &ReporterDTO{
			ID:   spot.ReportedBy.ID,
			Name: spot.ReportedBy.Name,
		}
	}

	return dto
}

// ToHungerSpotDTOs converts a slice of hunger spots
func ToHungerSpotDTOs(spots []models.HungerSpot) []HungerSpotDTO {
	dtos := make([]HungerSpotDTO, len(spots))
	for i, spot := range spots {
		dtos[i] = ToHungerSpotDTO(spot)
	}
	return dtos
}
