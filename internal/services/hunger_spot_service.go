package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/repository"
	"gorm.io/gorm"
)

// hungerSpotTransitions maps each target status to the only status it can be
// reached from.
var hungerSpotTransitions = map[models.HungerSpotStatus]models.HungerSpotStatus{
	models.HungerSpotStatusApproved: models.HungerSpotStatusPending,
	models.HungerSpotStatusRejected: models.HungerSpotStatusPending,
	models.HungerSpotStatusResolved: models.HungerSpotStatusApproved,
}

// CanTransition reports whether a hunger spot may move from one status to another.
func CanTransition(from, to models.HungerSpotStatus) bool {
	source, ok := hungerSpotTransitions[to]
	return ok && source == from
}

// HungerSpotService handles hunger spot reports and their moderation.
type HungerSpotService struct {
	spotRepo repository.HungerSpotRepository
	userRepo repository.UserRepository
}

// NewHungerSpotService creates a new HungerSpotService
func NewHungerSpotService(spotRepo repository.HungerSpotRepository, userRepo repository.UserRepository) *HungerSpotService {
	return &HungerSpotService{
		spotRepo: spotRepo,
		userRepo: userRepo,
	}
}

// ReportHungerSpotInput represents input for reporting a hunger spot.
// ReporterID is nil for spots created by an admin.
type ReportHungerSpotInput struct {
	ReporterID   *uint64
	Description  string
	LocationText string
	Latitude     *float64
	Longitude    *float64
}

// Report records a new pending hunger spot
func (s *HungerSpotService) Report(ctx context.Context, input ReportHungerSpotInput) (*models.HungerSpot, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, validationError("description is required")
	}
	locationText := strings.TrimSpace(input.LocationText)
	if locationText == "" {
		return nil, validationError("location is required")
	}

	latitude, longitude, err := normalizeCoordinates(input.Latitude, input.Longitude)
	if err != nil {
		return nil, err
	}

	spot := &models.HungerSpot{
		Description:  description,
		LocationText: locationText,
		Latitude:     latitude,
		Longitude:    longitude,
		Status:       models.HungerSpotStatusPending,
		ReportedByID: input.ReporterID,
	}

	if err := s.spotRepo.Create(ctx, spot); err != nil {
		return nil, upstreamError("create hunger spot", err)
	}

	return s.find(ctx, spot.ID)
}

// normalizeCoordinates keeps a coordinate pair only when both halves are
// present. (0, 0) is treated as no coordinates.
func normalizeCoordinates(latitude, longitude *float64) (*float64, *float64, error) {
	if latitude == nil || longitude == nil {
		return nil, nil, nil
	}
	lat, lng := *latitude, *longitude
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return nil, nil, validationError("coordinates must be numbers")
	}
	if lat == 0 && lng == 0 {
		return nil, nil, nil
	}
	if lat < -90 || lat > 90 {
		return nil, nil, validationError("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, nil, validationError("longitude must be between -180 and 180")
	}
	return &lat, &lng, nil
}

// List returns hunger spots with their reporter, optionally filtered by status
func (s *HungerSpotService) List(ctx context.Context, status *models.HungerSpotStatus) ([]models.HungerSpot, error) {
	if status != nil && !status.Valid() {
		return nil, validationError("unknown hunger spot status %q", *status)
	}
	spots, err := s.spotRepo.List(ctx, status)
	if err != nil {
		return nil, upstreamError("list hunger spots", err)
	}
	return spots, nil
}

// Approve publishes a pending spot, optionally assigning a volunteer to it
func (s *HungerSpotService) Approve(ctx context.Context, id uint64, volunteerID *uint64) (*models.HungerSpot, error) {
	var updates map[string]interface{}
	if volunteerID != nil {
		volunteer, err := s.userRepo.FindByID(ctx, *volunteerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVolunteerNotFound
			}
			return nil, upstreamError("find volunteer", err)
		}
		if volunteer.Role != models.RoleVolunteer {
			return nil, ErrVolunteerNotFound
		}
		updates = map[string]interface{}{"assigned_volunteer_id": volunteer.ID}
	}
	return s.transition(ctx, id, models.HungerSpotStatusApproved, updates)
}

// Reject discards a pending spot
func (s *HungerSpotService) Reject(ctx context.Context, id uint64) (*models.HungerSpot, error) {
	return s.transition(ctx, id, models.HungerSpotStatusRejected, nil)
}

// Resolve closes an approved spot
func (s *HungerSpotService) Resolve(ctx context.Context, id uint64) (*models.HungerSpot, error) {
	return s.transition(ctx, id, models.HungerSpotStatusResolved, nil)
}

func (s *HungerSpotService) transition(ctx context.Context, id uint64, to models.HungerSpotStatus, updates map[string]interface{}) (*models.HungerSpot, error) {
	from := hungerSpotTransitions[to]

	ok, err := s.spotRepo.Transition(ctx, id, from, to, updates)
	if err != nil {
		return nil, upstreamError("update hunger spot", err)
	}

	spot, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidStateError("cannot move hunger spot from %s to %s", spot.Status, to)
	}
	return spot, nil
}

func (s *HungerSpotService) find(ctx context.Context, id uint64) (*models.HungerSpot, error) {
	spot, err := s.spotRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHungerSpotNotFound
		}
		return nil, upstreamError("find hunger spot", err)
	}
	return spot, nil
}
