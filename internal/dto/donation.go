package dto

import (
	"time"

	"github.com/foodbridge/donation-api/internal/models"
)

// DonationDTO represents a donation in API responses
type DonationDTO struct {
	ID                  uint64                `json:"id"`
	ProductName         string                `json:"productName"`
	Servings            int                   `json:"servings"`
	Location            string                `json:"location"`
	DeliveryOption      models.DeliveryOption `json:"deliveryOption"`
	Status              models.DonationStatus `json:"status"`
	DonorID             uint64                `json:"donorId"`
	AssignedVolunteerID *uint64               `json:"assignedVolunteerId"`
	AcceptedAt          *time.Time            `json:"acceptedAt,omitempty"`
	ResolvedAt          *time.Time            `json:"resolvedAt,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// ToDonationDTO converts a Donation model to DonationDTO
func ToDonationDTO(donation models.Donation) DonationDTO {
	return DonationDTO{
		ID:                  donation.ID,
		ProductName:         donation.ProductName,
		Servings:            donation.Servings,
		Location:            donation.Location,
		DeliveryOption:      donation.DeliveryOption,
		Status:              donation.Status,
		DonorID:             donation.DonorID,
		AssignedVolunteerID: donation.AssignedVolunteerID,
		AcceptedAt:          donation.AcceptedAt,
		ResolvedAt:          donation.ResolvedAt,
		CreatedAt:           donation.CreatedAt,
	}
}

// ToDonationDTOs converts a slice of donations
func ToDonationDTOs(donations []models.Donation) []DonationDTO {
	dtos := make([]DonationDTO, len(donations))
	for i, donation := range donations {
		dtos[i] = ToDonationDTO(donation)
	}
	return dtos
}
