package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/foodbridge/donation-api/internal/constants"
	"github.com/foodbridge/donation-api/internal/events"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/repository"
	"gorm.io/gorm"
)

// DonationService handles the donation lifecycle: pending, accepted, resolved.
type DonationService struct {
	donationRepo repository.DonationRepository
	publisher    events.Publisher
	now          func() time.Time
}

// NewDonationService creates a new DonationService
func NewDonationService(donationRepo repository.DonationRepository, publisher events.Publisher) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// SubmitDonationInput represents input for submitting a donation
type SubmitDonationInput struct {
	DonorID        uint64
	ProductName    string
	Servings       int
	Location       string
	DeliveryOption models.DeliveryOption
}

// ResolveDeliveryOption returns the delivery option a donation is stored with.
// Large donations always go through a volunteer; below the threshold the
// donor's choice wins and an empty choice means volunteer.
func ResolveDeliveryOption(servings int, requested models.DeliveryOption) models.DeliveryOption {
	if servings >= constants.VolunteerPickupThreshold {
		return models.DeliveryVolunteer
	}
	if requested == models.DeliverySelf {
		return models.DeliverySelf
	}
	return models.DeliveryVolunteer
}

// Submit records a new pending donation
func (s *DonationService) Submit(ctx context.Context, input SubmitDonationInput) (*models.Donation, error) {
	productName := strings.TrimSpace(input.ProductName)
	if productName == "" {
		return nil, validationError("product name is required")
	}
	if input.Servings < 0 {
		return nil, validationError("servings must be a non-negative integer")
	}
	switch input.DeliveryOption {
	case "", models.DeliverySelf, models.DeliveryVolunteer:
	default:
		return nil, validationError("delivery option must be self or volunteer")
	}

	donation := &models.Donation{
		ProductName:    productName,
		Servings:       input.Servings,
		Location:       strings.TrimSpace(input.Location),
		DeliveryOption: ResolveDeliveryOption(input.Servings, input.DeliveryOption),
		Status:         models.DonationStatusPending,
		DonorID:        input.DonorID,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, upstreamError("create donation", err)
	}

	s.publish(ctx, events.TopicDonationSubmitted, donation)
	return donation, nil
}

// ListPending returns every pending donation, newest first
func (s *DonationService) ListPending(ctx context.Context) ([]models.Donation, error) {
	status := models.DonationStatusPending
	return s.list(ctx, repository.DonationFilter{Status: &status})
}

// ListAccepted returns the donations a volunteer accepted and has not resolved
func (s *DonationService) ListAccepted(ctx context.Context, volunteerID uint64) ([]models.Donation, error) {
	status := models.DonationStatusAccepted
	return s.list(ctx, repository.DonationFilter{Status: &status, VolunteerID: &volunteerID})
}

// ListByDonor returns all donations submitted by a donor
func (s *DonationService) ListByDonor(ctx context.Context, donorID uint64) ([]models.Donation, error) {
	return s.list(ctx, repository.DonationFilter{DonorID: &donorID})
}

func (s *DonationService) list(ctx context.Context, filter repository.DonationFilter) ([]models.Donation, error) {
	donations, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, upstreamError("list donations", err)
	}
	return donations, nil
}

// Accept assigns a pending donation to a volunteer. Of any number of
// concurrent calls for the same donation exactly one succeeds; the rest get
// ErrDonationNotPending.
func (s *DonationService) Accept(ctx context.Context, donationID, volunteerID uint64) (*models.Donation, error) {
	ok, err := s.donationRepo.Accept(ctx, donationID, volunteerID, s.now())
	if err != nil {
		return nil, upstreamError("accept donation", err)
	}
	if !ok {
		if _, err := s.find(ctx, donationID); err != nil {
			return nil, err
		}
		return nil, ErrDonationNotPending
	}

	donation, err := s.find(ctx, donationID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicDonationAccepted, donation)
	return donation, nil
}

// Resolve marks an accepted donation as delivered. Only the assigned
// volunteer can resolve it.
func (s *DonationService) Resolve(ctx context.Context, donationID, volunteerID uint64) (*models.Donation, error) {
	ok, err := s.donationRepo.Resolve(ctx, donationID, volunteerID, s.now())
	if err != nil {
		return nil, upstreamError("resolve donation", err)
	}
	if !ok {
		if _, err := s.find(ctx, donationID); err != nil {
			return nil, err
		}
		return nil, ErrDonationNotAccepted
	}

	donation, err := s.find(ctx, donationID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicDonationResolved, donation)
	return donation, nil
}

func (s *DonationService) find(ctx context.Context, id uint64) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, upstreamError("find donation", err)
	}
	return donation, nil
}

// publish is fire-and-forget: the donation is already committed.
func (s *DonationService) publish(ctx context.Context, topic string, donation *models.Donation) {
	if err := s.publisher.Publish(ctx, topic, strconv.FormatUint(donation.ID, 10), donation); err != nil {
		log.Printf("Failed to publish %s for donation %d: %v", topic, donation.ID, err)
	}
}
