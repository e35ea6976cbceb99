package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productcatalog/internal/logger"
	"productcatalog/internal/models"
)

// Seed inserts the fixed category list. Rows that already exist are left
// untouched, so it is safe to call on every start.
func Seed(ctx context.Context, db *gorm.DB) error {
	categories := make([]models.Category, len(models.SeedCategories))
	copy(categories, models.SeedCategories)

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&categories)
	if result.Error != nil {
		return fmt.Errorf("seed categories: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		logger.Get().Infow("seeded categories", "count", result.RowsAffected)
	}
	return nil
}
