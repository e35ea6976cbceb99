package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"productcatalog/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// BeveragesID is the id of the first seeded category.
const BeveragesID uint = 1

// CreateTestProduct creates a product with a unique name in the given category.
func CreateTestProduct(t *testing.T, db *gorm.DB, categoryID uint) *models.Product {
	t.Helper()
	return CreateTestProductWithName(t, db, categoryID, fmt.Sprintf("Product %d", nextID()))
}

// CreateTestProductWithName creates a product with the given name.
func CreateTestProductWithName(t *testing.T, db *gorm.DB, categoryID uint, name string) *models.Product {
	t.Helper()

	product := &models.Product{
		ProductName:  name,
		CategoryID:   categoryID,
		UnitsInStock: 10,
		UnitPrice:    decimal.RequireFromString("9.99"),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestCategory creates a category beyond the seeded ones.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{CategoryName: fmt.Sprintf("Category %d", nextID())}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}
