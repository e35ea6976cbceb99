package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productcatalog/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// GetCategories handles the retrieval of all categories
// @Summary     List categories
// @Description Get every category ordered by id
// @Tags        categories
// @Produce     json
// @Success     200 {array}  CategoryResponse "List of categories"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /category [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, CategoryResponse{CategoryID: cat.CategoryID, CategoryName: cat.CategoryName})
	}
	c.JSON(http.StatusOK, resp)
}
