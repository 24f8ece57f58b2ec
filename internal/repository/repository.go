package repository

import (
	"context"
	"time"

	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns one page of users, newest first, plus the total count
	List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error)

	// Count counts users, optionally restricted to a role
	Count(ctx context.Context, role *models.Role) (int64, error)
}

// DonationFilter holds filtering options for listing donations
type DonationFilter struct {
	Status      *models.DonationStatus
	DonorID     *uint64
	VolunteerID *uint64
}

// DonationRepository defines the interface for donation data access
type DonationRepository interface {
	// Create creates a new donation
	Create(ctx context.Context, donation *models.Donation) error

	// FindByID finds a donation by ID
	FindByID(ctx context.Context, id uint64) (*models.Donation, error)

	// List returns donations matching the filter, newest first
	List(ctx context.Context, filter DonationFilter) ([]models.Donation, error)

	// Accept moves a pending donation to accepted and assigns the volunteer in a
	// single conditional update. It reports whether a row changed.
	Accept(ctx context.Context, id, volunteerID uint64, at time.Time) (bool, error)

	// Resolve moves an accepted donation to resolved, only for its assigned
	// volunteer. It reports whether a row changed.
	Resolve(ctx context.Context, id, volunteerID uint64, at time.Time) (bool, error)

	// Count counts donations, optionally restricted to a status
	Count(ctx context.Context, status *models.DonationStatus) (int64, error)
}

// HungerSpotRepository defines the interface for hunger spot data access
type HungerSpotRepository interface {
	// Create creates a new hunger spot
	Create(ctx context.Context, spot *models.HungerSpot) error

	// FindByID finds a hunger spot by ID with its reporter
	FindByID(ctx context.Context, id uint64) (*models.HungerSpot, error)

	// List returns hunger spots with their reporter, newest first
	List(ctx context.Context, status *models.HungerSpotStatus) ([]models.HungerSpot, error)

	// Transition applies updates only when the spot is still in status from.
	// It reports whether a row changed.
	Transition(ctx context.Context, id uint64, from, to models.HungerSpotStatus, updates map[string]interface{}) (bool, error)

	// Count counts hunger spots, optionally restricted to a status
	Count(ctx context.Context, status *models.HungerSpotStatus) (int64, error)
}

// FundRepository defines the interface for the fund ledger. There is no update
// or delete: funds are append-only.
type FundRepository interface {
	// RecordOnce inserts the fund unless one with the same payment ID exists.
	// On a duplicate, fund is overwritten with the stored row and created is false.
	RecordOnce(ctx context.Context, fund *models.Fund) (created bool, err error)

	// FindByPaymentID finds the fund recorded for a gateway payment
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Fund, error)

	// ListRecent returns the newest funds
	ListRecent(ctx context.Context, limit int) ([]models.Fund, error)

	// SumAmount returns the sum of all fund amounts in minor units
	SumAmount(ctx context.Context) (int64, error)
}
