package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"productcatalog/internal/database"
	"productcatalog/internal/models"
)

// ProductRepository provides query and mutation operations for products.
type ProductRepository struct {
	db       *gorm.DB
	strategy *database.ExecutionStrategy
}

// NewProductRepository creates a ProductRepository. Update and Remove run
// through strategy so transient faults replay the whole transaction.
func NewProductRepository(db *gorm.DB, strategy *database.ExecutionStrategy) *ProductRepository {
	return &ProductRepository{db: db, strategy: strategy}
}

// GetProducts returns all products ordered by id.
func (r *ProductRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Select("product_id", "product_name", "category_id", "units_in_stock", "unit_price").
		Order("product_id").
		Find(&products).Error; err != nil {
		return nil, database.Classify("product.list", err)
	}
	return products, nil
}

// FindByID returns the product with the given id, or ErrNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, database.Classify("product.find", err)
	}
	return &product, nil
}

// IsFoundByName reports whether a product already uses name.
func (r *ProductRepository) IsFoundByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "product.exists_by_name", "product_name = ?", name)
}

// IsFoundByID reports whether a product with the given id exists.
func (r *ProductRepository) IsFoundByID(ctx context.Context, productID uint) (bool, error) {
	return r.exists(ctx, "product.exists_by_id", "product_id = ?", productID)
}

func (r *ProductRepository) exists(ctx context.Context, op, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where(query, arg).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, database.Classify(op, err)
	}
	return count > 0, nil
}

// Create inserts product and writes the generated id back into it. The
// caller is expected to have checked category existence and name uniqueness.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ProductID = 0
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return database.Classify("product.create", err)
	}
	return nil
}

// Update replaces the mutable fields of the product matching
// product.ProductID inside a transaction.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	var affected int64
	err := r.strategy.Execute(ctx, "product.update", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.Product{}).
				Where("product_id = ?", product.ProductID).
				Updates(map[string]any{
					"product_name":   product.ProductName,
					"unit_price":     product.UnitPrice,
					"units_in_stock": product.UnitsInStock,
					"category_id":    product.CategoryID,
				})
			affected = result.RowsAffected
			return result.Error
		})
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes the product with the given id inside a transaction.
func (r *ProductRepository) Remove(ctx context.Context, productID uint) error {
	var affected int64
	err := r.strategy.Execute(ctx, "product.remove", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Where("product_id = ?", productID).Delete(&models.Product{})
			affected = result.RowsAffected
			return result.Error
		})
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
