package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"productcatalog/internal/models"
	"productcatalog/internal/services"
)

// ProductHandler handles product-related requests.
type ProductHandler struct {
	productService services.ProductServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest represents the request payload for creating or updating a product.
// Any productId in the body is ignored.
type ProductRequest struct {
	ProductName  string           `json:"productName" binding:"required,min=2,max=40"`
	CategoryID   *uint            `json:"categoryId" binding:"required,min=1"`
	UnitsInStock *int             `json:"unitsInStock" binding:"required,min=0,max=2000000"`
	UnitPrice    *decimal.Decimal `json:"unitPrice" binding:"required,decimal_min=0,decimal_max=2000000,price_scale" swaggertype:"number"`
}

func (r ProductRequest) toInput() services.ProductInput {
	return services.ProductInput{
		ProductName:  r.ProductName,
		CategoryID:   *r.CategoryID,
		UnitsInStock: *r.UnitsInStock,
		UnitPrice:    *r.UnitPrice,
	}
}

// ProductResponse represents a product in the response.
type ProductResponse struct {
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	CategoryID   uint            `json:"categoryId"`
	UnitsInStock int             `json:"unitsInStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice" swaggertype:"number"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		CategoryID:   p.CategoryID,
		UnitsInStock: p.UnitsInStock,
		UnitPrice:    p.UnitPrice,
	}
}

// GetProducts handles the retrieval of all products
// @Summary     List products
// @Description Get every product in the catalog ordered by id
// @Tags        products
// @Produce     json
// @Success     200 {array}  ProductResponse "List of products"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /product [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetProductByID handles the retrieval of a specific product
// @Summary     Get product by ID
// @Description Get a single product by its id
// @Tags        products
// @Produce     json
// @Param       id path int true "Product ID"
// @Success     200 {object} ProductResponse "Product details"
// @Failure     400 {object} ErrorResponse "Invalid product ID"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /product/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// CreateProduct handles the creation of a new product
// @Summary     Create a product
// @Description Create a product in an existing category. Names are unique.
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body ProductRequest true "Product details"
// @Success     200 {object} ProductResponse "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate product name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /product [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// UpdateProduct handles updating an existing product
// @Summary     Update a product
// @Description Overwrite the name, price, stock and category of a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path int            true "Product ID"
// @Param       request body ProductRequest true "Product details"
// @Success     200 {object} ProductResponse "Product updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product or category not found"
// @Failure     409 {object} ErrorResponse "Duplicate product name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /product/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// DeleteProduct handles deleting a product
// @Summary     Delete a product
// @Description Delete a product by id
// @Tags        products
// @Produce     json
// @Param       id path int true "Product ID"
// @Success     200 {object} MessageResponse "Product deleted"
// @Failure     400 {object} ErrorResponse "Invalid product ID"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /product/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}
