package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"productcatalog/internal/database"
	"productcatalog/internal/logger"
	"productcatalog/internal/models"
	"productcatalog/internal/server"
	"productcatalog/internal/services"
	"productcatalog/internal/testutil"
	"productcatalog/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

type product struct {
	ProductID    uint    `json:"productId"`
	ProductName  string  `json:"productName"`
	CategoryID   uint    `json:"categoryId"`
	UnitsInStock int     `json:"unitsInStock"`
	UnitPrice    float64 `json:"unitPrice"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	strategy := database.NewExecutionStrategy(2, time.Millisecond)
	r := server.NewRouter(
		services.NewProductService(db, strategy, 5*time.Second),
		services.NewCategoryService(db, strategy, 5*time.Second),
	)
	return r, db
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealthAndCategories(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/api/category", "")
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]map[string]any](t, rec)
	require.Len(t, categories, 8)
	assert.Equal(t, "Beverages", categories[0]["categoryName"])
	assert.Equal(t, float64(8), categories[7]["categoryId"])
}

func TestProductLifecycle(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, http.MethodGet, "/api/product", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = do(r, http.MethodPost, "/api/product",
		`{"productName":"Chai","categoryId":1,"unitsInStock":39,"unitPrice":18.00}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[product](t, rec)
	require.NotZero(t, created.ProductID)
	assert.Equal(t, 18.0, created.UnitPrice)

	rec = do(r, http.MethodGet, fmt.Sprintf("/api/product/%d", created.ProductID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[product](t, rec))

	rec = do(r, http.MethodPut, fmt.Sprintf("/api/product/%d", created.ProductID),
		`{"productName":"Chai Tea","categoryId":2,"unitsInStock":5,"unitPrice":19.25}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[product](t, rec)
	assert.Equal(t, product{ProductID: created.ProductID, ProductName: "Chai Tea", CategoryID: 2, UnitsInStock: 5, UnitPrice: 19.25}, updated)

	rec = do(r, http.MethodGet, "/api/product", "")
	list := decode[[]product](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, updated, list[0])

	rec = do(r, http.MethodDelete, fmt.Sprintf("/api/product/%d", created.ProductID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, fmt.Sprintf("/api/product/%d", created.ProductID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode[apiError](t, rec).Error.Code)
}

func TestCreateProduct_Failures(t *testing.T) {
	r, db := setup(t)

	rec := do(r, http.MethodPost, "/api/product",
		`{"productName":"Chai","categoryId":999,"unitsInStock":39,"unitPrice":18}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[apiError](t, rec)
	assert.Equal(t, "CATEGORY_NOT_FOUND", body.Error.Code)
	assert.Contains(t, body.Error.Message, "999")

	rec = do(r, http.MethodPost, "/api/product",
		`{"productName":"Chai","categoryId":1,"unitsInStock":39,"unitPrice":18}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPost, "/api/product",
		`{"productName":"Chai","categoryId":2,"unitsInStock":1,"unitPrice":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_PRODUCT_NAME", decode[apiError](t, rec).Error.Code)

	rec = do(r, http.MethodPost, "/api/product",
		`{"productName":"C","categoryId":1,"unitsInStock":1,"unitPrice":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/product",
		`{"productName":"Chang","categoryId":1,"unitsInStock":-5,"unitPrice":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, int64(1), testutil.CountProducts(t, db))
}

func TestUpdateProduct_Failures(t *testing.T) {
	r, db := setup(t)
	chai := testutil.CreateTestProductWithName(t, db, 1, "Chai")
	testutil.CreateTestProductWithName(t, db, 1, "Chang")

	rec := do(r, http.MethodPut, fmt.Sprintf("/api/product/%d", chai.ProductID),
		`{"productName":"Chai","categoryId":999,"unitsInStock":1,"unitPrice":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CATEGORY_NOT_FOUND", decode[apiError](t, rec).Error.Code)

	rec = do(r, http.MethodPut, "/api/product/999",
		`{"productName":"Ghost","categoryId":1,"unitsInStock":1,"unitPrice":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode[apiError](t, rec).Error.Code)

	rec = do(r, http.MethodPut, fmt.Sprintf("/api/product/%d", chai.ProductID),
		`{"productName":"Chang","categoryId":1,"unitsInStock":1,"unitPrice":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	stored := testutil.LoadProduct(t, db, chai.ProductID)
	assert.Equal(t, "Chai", stored.ProductName)
	assert.Equal(t, uint(1), stored.CategoryID)
}

func TestDeleteProduct_Missing(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, http.MethodDelete, "/api/product/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode[apiError](t, rec).Error.Code)
}

func TestCategoryCascade(t *testing.T) {
	r, db := setup(t)
	category := testutil.CreateTestCategory(t, db)
	doomed := testutil.CreateTestProduct(t, db, category.CategoryID)

	require.NoError(t, db.Delete(&models.Category{}, category.CategoryID).Error)

	rec := do(r, http.MethodGet, fmt.Sprintf("/api/product/%d", doomed.ProductID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[apiError](t, rec).Error.Code)
}

func TestProductPriceRoundTrip(t *testing.T) {
	r, db := setup(t)

	for _, price := range []string{"1.0000000000000001", "1999999.999999999999", "0.001"} {
		rec := do(r, http.MethodPost, "/api/product",
			`{"productName":"Chai","categoryId":1,"unitsInStock":1,"unitPrice":`+price+`}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "price %s: %s", price, rec.Body.String())
		assert.Equal(t, "INVALID_INPUT", decode[apiError](t, rec).Error.Code)
	}
	assert.Equal(t, int64(0), testutil.CountProducts(t, db))

	rec := do(r, http.MethodPost, "/api/product",
		`{"productName":"Chai","categoryId":1,"unitsInStock":1,"unitPrice":1999999.99}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)

	rec = do(r, http.MethodGet, fmt.Sprintf("/api/product/%v", created["productId"]), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[map[string]any](t, rec))
}

func TestCancelledRequest(t *testing.T) {
	r, db := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/product",
		strings.NewReader(`{"productName":"Chai","categoryId":1,"unitsInStock":39,"unitPrice":18}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, 499, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, int64(0), testutil.CountProducts(t, db))
}
