package services

import (
	"context"

	"github.com/shopspring/decimal"

	"productcatalog/internal/models"
)

// ProductInput carries the mutable fields of a product.
type ProductInput struct {
	ProductName  string
	CategoryID   uint
	UnitsInStock int
	UnitPrice    decimal.Decimal
}

// ProductServicer defines the contract for product-related business logic.
type ProductServicer interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, productID uint) (*models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uint, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
}
