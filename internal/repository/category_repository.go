package repository

import (
	"context"

	"gorm.io/gorm"

	"productcatalog/internal/database"
	"productcatalog/internal/models"
)

// CategoryRepository reads the seeded categories.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a CategoryRepository over db.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// IsCategoryFound reports whether a category with the given id exists.
func (r *CategoryRepository) IsCategoryFound(ctx context.Context, categoryID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("category_id = ?", categoryID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, database.Classify("category.exists", err)
	}
	return count > 0, nil
}

// GetAll returns every category (id and name only) ordered by id.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Select("category_id", "category_name").
		Order("category_id").
		Find(&categories).Error; err != nil {
		return nil, database.Classify("category.list", err)
	}
	return categories, nil
}
