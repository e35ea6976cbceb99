package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"productcatalog/internal/database"
	apperrors "productcatalog/internal/errors"
	"productcatalog/internal/models"
	"productcatalog/internal/repository"
)

// productService handles product-related business logic. Every call builds
// its own unit of work.
type productService struct {
	db       *gorm.DB
	strategy *database.ExecutionStrategy
	timeout  time.Duration
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB, strategy *database.ExecutionStrategy, timeout time.Duration) ProductServicer {
	return &productService{db: db, strategy: strategy, timeout: timeout}
}

func (s *productService) unitOfWork() *repository.UnitOfWork {
	return repository.NewUnitOfWork(s.db, s.strategy)
}

// GetProducts returns all products.
func (s *productService) GetProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	products, err := s.unitOfWork().Products().GetProducts(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return products, nil
}

// GetProductByID returns a single product
func (s *productService) GetProductByID(ctx context.Context, productID uint) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	product, err := s.unitOfWork().Products().FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ProductNotFound(productID)
		}
		return nil, translate(err)
	}
	return product, nil
}

// CreateProduct checks that the category exists and the name is unused, then
// inserts the product. All three steps share one transaction.
func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	product := &models.Product{
		ProductName:  input.ProductName,
		CategoryID:   input.CategoryID,
		UnitsInStock: input.UnitsInStock,
		UnitPrice:    input.UnitPrice,
	}

	err := s.unitOfWork().InTransaction(ctx, func(ctx context.Context, tx *repository.UnitOfWork) error {
		found, err := tx.Categories().IsCategoryFound(ctx, input.CategoryID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.CategoryNotFound(input.CategoryID)
		}

		taken, err := tx.Products().IsFoundByName(ctx, input.ProductName)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.DuplicateProductName(input.ProductName)
		}

		return tx.Products().Create(ctx, product)
	})
	if err != nil {
		return nil, translateWrite(err, input)
	}
	return product, nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *productService) UpdateProduct(ctx context.Context, productID uint, input ProductInput) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	uow := s.unitOfWork()

	found, err := uow.Products().IsFoundByID(ctx, productID)
	if err != nil {
		return nil, translate(err)
	}
	if !found {
		return nil, apperrors.ProductNotFound(productID)
	}

	categoryFound, err := uow.Categories().IsCategoryFound(ctx, input.CategoryID)
	if err != nil {
		return nil, translate(err)
	}
	if !categoryFound {
		return nil, apperrors.CategoryNotFound(input.CategoryID)
	}

	product := &models.Product{
		ProductID:    productID,
		ProductName:  input.ProductName,
		CategoryID:   input.CategoryID,
		UnitsInStock: input.UnitsInStock,
		UnitPrice:    input.UnitPrice,
	}
	if err := uow.Products().Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ProductNotFound(productID)
		}
		return nil, translateWrite(err, input)
	}
	return product, nil
}

// DeleteProduct removes an existing product.
func (s *productService) DeleteProduct(ctx context.Context, productID uint) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	uow := s.unitOfWork()

	found, err := uow.Products().IsFoundByID(ctx, productID)
	if err != nil {
		return translate(err)
	}
	if !found {
		return apperrors.ProductNotFound(productID)
	}

	if err := uow.Products().Remove(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ProductNotFound(productID)
		}
		return translate(err)
	}
	return nil
}
