package repository

import (
	"context"
	"time"

	"github.com/foodbridge/donation-api/internal/database"
	"github.com/foodbridge/donation-api/internal/models"
	"gorm.io/gorm"
)

// GormDonationRepository is a GORM implementation of DonationRepository
type GormDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &GormDonationRepository{db: db}
}

// Create creates a new donation
func (r *GormDonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// FindByID finds a donation by ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uint64) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.WithContext(ctx).First(&donation, id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// List returns donations matching the filter, newest first
func (r *GormDonationRepository) List(ctx context.Context, filter DonationFilter) ([]models.Donation, error) {
	query := r.db.WithContext(ctx).Model(&models.Donation{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", *filter.DonorID)
	}
	if filter.VolunteerID != nil {
		query = query.Where("assigned_volunteer_id = ?", *filter.VolunteerID)
	}

	donations := []models.Donation{}
	if err := query.Scopes(database.NewestFirst).Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// Accept claims a pending donation for a volunteer
func (r *GormDonationRepository) Accept(ctx context.Context, id, volunteerID uint64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ? AND status = ?", id, models.DonationStatusPending).
		Updates(map[string]interface{}{
			"status":                models.DonationStatusAccepted,
			"assigned_volunteer_id": volunteerID,
			"accepted_at":           at,
			"updated_at":            at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Resolve marks an accepted donation as delivered by its volunteer
func (r *GormDonationRepository) Resolve(ctx context.Context, id, volunteerID uint64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ? AND status = ? AND assigned_volunteer_id = ?", id, models.DonationStatusAccepted, volunteerID).
		Updates(map[string]interface{}{
			"status":      models.DonationStatusResolved,
			"resolved_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Count counts donations, optionally by status
func (r *GormDonationRepository) Count(ctx context.Context, status *models.DonationStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Donation{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
