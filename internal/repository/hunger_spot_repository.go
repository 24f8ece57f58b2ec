package repository

import (
	"context"

	"github.com/foodbridge/donation-api/internal/database"
	"github.com/foodbridge/donation-api/internal/models"
	"gorm.io/gorm"
)

// GormHungerSpotRepository is a GORM implementation of HungerSpotRepository
type GormHungerSpotRepository struct {
	db *gorm.DB
}

// NewHungerSpotRepository creates a new HungerSpotRepository
func NewHungerSpotRepository(db *gorm.DB) HungerSpotRepository {
	return &GormHungerSpotRepository{db: db}
}

// Create creates a new hunger spot
func (r *GormHungerSpotRepository) Create(ctx context.Context, spot *models.HungerSpot) error {
	return r.db.WithContext(ctx).Create(spot).Error
}

// FindByID finds a hunger spot by ID
func (r *GormHungerSpotRepository) FindByID(ctx context.Context, id uint64) (*models.HungerSpot, error) {
	var spot models.HungerSpot
	if err := r.db.WithContext(ctx).Preload("ReportedBy").First(&spot, id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// List returns hunger spots, newest first
func (r *GormHungerSpotRepository) List(ctx context.Context, status *models.HungerSpotStatus) ([]models.HungerSpot, error) {
	query := r.db.WithContext(ctx).Model(&models.HungerSpot{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	spots := []models.HungerSpot{}
	if err := query.Preload("ReportedBy").Scopes(database.NewestFirst).Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

// Transition applies a guarded status change
func (r *GormHungerSpotRepository) Transition(ctx context.Context, id uint64, from, to models.HungerSpotStatus, updates map[string]interface{}) (bool, error) {
	values := map[string]interface{}{"status": to}
	for k, v := range updates {
		values[k] = v
	}

	result := r.db.WithContext(ctx).
		Model(&models.HungerSpot{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Count counts hunger spots, optionally by status
func (r *GormHungerSpotRepository) Count(ctx context.Context, status *models.HungerSpotStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.HungerSpot{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
