package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"productcatalog/internal/database"
	"productcatalog/internal/models"
	"productcatalog/internal/repository"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db       *gorm.DB
	strategy *database.ExecutionStrategy
	timeout  time.Duration
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, strategy *database.ExecutionStrategy, timeout time.Duration) CategoryServicer {
	return &categoryService{db: db, strategy: strategy, timeout: timeout}
}

// GetCategories returns all categories.
func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	uow := repository.NewUnitOfWork(s.db, s.strategy)
	categories, err := uow.Categories().GetAll(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

// withTimeout bounds a request's database work by the configured command timeout.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
