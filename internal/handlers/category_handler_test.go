package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"productcatalog/internal/models"
	"productcatalog/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	getCategoriesFn func(ctx context.Context) ([]models.Category, error)
}

func (m *mockCategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn(ctx)
	}
	return []models.Category{}, nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/category", handler.GetCategories)
	return r
}

func TestCategoryHandler_GetCategories(t *testing.T) {
	t.Run("returns a bare array", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoriesFn: func(context.Context) ([]models.Category, error) {
				return []models.Category{
					{CategoryID: 1, CategoryName: "Beverages"},
					{CategoryID: 2, CategoryName: "Condiments"},
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, http.MethodGet, "/api/category", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSONArray(t, rec)
		if len(result) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(result))
		}
		if result[0]["categoryName"] != "Beverages" {
			t.Errorf("expected Beverages, got %v", result[0]["categoryName"])
		}
		if result[1]["categoryId"] != float64(2) {
			t.Errorf("expected categoryId 2, got %v", result[1]["categoryId"])
		}
	})

	t.Run("returns empty array when there are none", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{
			getCategoriesFn: func(context.Context) ([]models.Category, error) { return nil, nil },
		}))

		rec := doRequest(r, http.MethodGet, "/api/category", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("returns 500 on service error", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{
			getCategoriesFn: func(context.Context) ([]models.Category, error) {
				return nil, errors.New("db down")
			},
		}))

		rec := doRequest(r, http.MethodGet, "/api/category", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
