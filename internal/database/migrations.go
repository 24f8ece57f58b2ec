package database

import (
	"fmt"
	"log"

	"github.com/foodbridge/donation-api/internal/models"
	"gorm.io/gorm"
)

// compositeIndex is an index that the struct tags cannot express.
type compositeIndex struct {
	model   interface{}
	name    string
	columns string
}

// AddIndexes creates the composite indexes used by the volunteer and admin
// queues. Existing indexes are skipped, so this is safe to run on every boot.
func AddIndexes(db *gorm.DB) error {
	indexes := []compositeIndex{
		// Pending queue and "my accepted" queue
		{&models.Donation{}, "idx_donations_status_created_at", "status, created_at"},
		{&models.Donation{}, "idx_donations_volunteer_status", "assigned_volunteer_id, status"},
		// Admin hunger spot listing
		{&models.HungerSpot{}, "idx_hunger_spots_status_created_at", "status, created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, stmt.Schema.Table, idx.columns)
	}

	return nil
}
