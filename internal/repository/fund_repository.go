package repository

import (
	"context"

	"github.com/foodbridge/donation-api/internal/database"
	"github.com/foodbridge/donation-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFundRepository is a GORM implementation of FundRepository
type GormFundRepository struct {
	db *gorm.DB
}

// NewFundRepository creates a new FundRepository
func NewFundRepository(db *gorm.DB) FundRepository {
	return &GormFundRepository{db: db}
}

// RecordOnce inserts the fund, ignoring a second insert for the same payment ID
func (r *GormFundRepository) RecordOnce(ctx context.Context, fund *models.Fund) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payment_id"}},
			DoNothing: true,
		}).
		Create(fund)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	existing, err := r.FindByPaymentID(ctx, fund.PaymentID)
	if err != nil {
		return false, err
	}
	*fund = *existing
	return false, nil
}

// FindByPaymentID finds the fund recorded for a gateway payment
func (r *GormFundRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Fund, error) {
	var fund models.Fund
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&fund).Error; err != nil {
		return nil, err
	}
	return &fund, nil
}

// ListRecent returns the newest funds
func (r *GormFundRepository) ListRecent(ctx context.Context, limit int) ([]models.Fund, error) {
	funds := []models.Fund{}
	if err := r.db.WithContext(ctx).Scopes(database.NewestFirst).Limit(limit).Find(&funds).Error; err != nil {
		return nil, err
	}
	return funds, nil
}

// SumAmount returns the ledger total in minor units
func (r *GormFundRepository) SumAmount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Fund{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
