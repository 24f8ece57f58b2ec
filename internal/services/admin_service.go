package services

import (
	"context"

	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/repository"
	"github.com/foodbridge/donation-api/internal/utils"
	"golang.org/x/sync/errgroup"
)

// Metrics is the admin dashboard summary.
type Metrics struct {
	TotalUsers        int64 `json:"totalUsers"`
	Donors            int64 `json:"donors"`
	Volunteers        int64 `json:"volunteers"`
	Admins            int64 `json:"admins"`
	TotalHungerSpots  int64 `json:"totalHungerSpots"`
	PendingSpots      int64 `json:"pendingSpots"`
	ApprovedSpots     int64 `json:"approvedSpots"`
	RejectedSpots     int64 `json:"rejectedSpots"`
	ResolvedSpots     int64 `json:"resolvedSpots"`
	TotalDonations    int64 `json:"totalDonations"`
	PendingDonations  int64 `json:"pendingDonations"`
	AcceptedDonations int64 `json:"acceptedDonations"`
	ResolvedDonations int64 `json:"resolvedDonations"`
}

// AdminService serves the admin dashboard.
type AdminService struct {
	userRepo     repository.UserRepository
	spotRepo     repository.HungerSpotRepository
	donationRepo repository.DonationRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository, spotRepo repository.HungerSpotRepository, donationRepo repository.DonationRepository) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		spotRepo:     spotRepo,
		donationRepo: donationRepo,
	}
}

// Metrics runs every count concurrently. If any count fails the whole call
// fails and no partial metrics are returned.
func (s *AdminService) Metrics(ctx context.Context) (*Metrics, error) {
	var m Metrics
	g, ctx := errgroup.WithContext(ctx)

	countUsers := func(dst *int64, role *models.Role) {
		g.Go(func() error {
			n, err := s.userRepo.Count(ctx, role)
			if err != nil {
				return upstreamError("count users", err)
			}
			*dst = n
			return nil
		})
	}
	countSpots := func(dst *int64, status *models.HungerSpotStatus) {
		g.Go(func() error {
			n, err := s.spotRepo.Count(ctx, status)
			if err != nil {
				return upstreamError("count hunger spots", err)
			}
			*dst = n
			return nil
		})
	}
	countDonations := func(dst *int64, status *models.DonationStatus) {
		g.Go(func() error {
			n, err := s.donationRepo.Count(ctx, status)
			if err != nil {
				return upstreamError("count donations", err)
			}
			*dst = n
			return nil
		})
	}

	countUsers(&m.TotalUsers, nil)
	countUsers(&m.Donors, rolePtr(models.RoleDonor))
	countUsers(&m.Volunteers, rolePtr(models.RoleVolunteer))
	countUsers(&m.Admins, rolePtr(models.RoleAdmin))

	countSpots(&m.TotalHungerSpots, nil)
	countSpots(&m.PendingSpots, spotStatusPtr(models.HungerSpotStatusPending))
	countSpots(&m.ApprovedSpots, spotStatusPtr(models.HungerSpotStatusApproved))
	countSpots(&m.RejectedSpots, spotStatusPtr(models.HungerSpotStatusRejected))
	countSpots(&m.ResolvedSpots, spotStatusPtr(models.HungerSpotStatusResolved))

	countDonations(&m.TotalDonations, nil)
	countDonations(&m.PendingDonations, donationStatusPtr(models.DonationStatusPending))
	countDonations(&m.AcceptedDonations, donationStatusPtr(models.DonationStatusAccepted))
	countDonations(&m.ResolvedDonations, donationStatusPtr(models.DonationStatusResolved))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListUsers returns one page of users, newest first
func (s *AdminService) ListUsers(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, 0, upstreamError("list users", err)
	}
	return users, total, nil
}

func rolePtr(r models.Role) *models.Role { return &r }

func spotStatusPtr(s models.HungerSpotStatus) *models.HungerSpotStatus { return &s }

func donationStatusPtr(s models.DonationStatus) *models.DonationStatus { return &s }
