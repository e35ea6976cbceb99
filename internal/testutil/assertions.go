package testutil

import (
	"errors"
	"testing"

	apperrors "productcatalog/internal/errors"
	"productcatalog/internal/models"

	"gorm.io/gorm"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// CountProducts returns the number of rows in the products table.
func CountProducts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	return n
}

// LoadProduct reads a product straight from the table, bypassing the
// repositories. It returns nil when the row does not exist.
func LoadProduct(t *testing.T, db *gorm.DB, productID uint) *models.Product {
	t.Helper()

	var p models.Product
	err := db.First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to load product %d: %v", productID, err)
	}
	return &p
}
