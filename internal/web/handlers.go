// Package web implements the server-rendered front-end of the catalog. It
// holds no state of its own and talks to the catalog API over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"productcatalog/internal/client"
	"productcatalog/internal/logger"
	"productcatalog/internal/render"
)

// CatalogAPI is the subset of the catalog client the pages use.
type CatalogAPI interface {
	GetProducts(ctx context.Context) ([]client.Product, error)
	GetProduct(ctx context.Context, productID uint) (*client.Product, error)
	GetCategories(ctx context.Context) ([]client.Category, error)
	CreateProduct(ctx context.Context, req client.ProductRequest) (*client.Product, error)
	UpdateProduct(ctx context.Context, productID uint, req client.ProductRequest) (*client.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error
}

var _ CatalogAPI = (*client.CatalogClient)(nil)

// Handlers serves the product pages.
type Handlers struct {
	api      CatalogAPI
	renderer *render.Renderer
	timeout  time.Duration
}

// NewHandlers creates the page handlers. Each API call made while serving a
// page is bounded by timeout.
func NewHandlers(api CatalogAPI, renderer *render.Renderer, timeout time.Duration) *Handlers {
	return &Handlers{api: api, renderer: renderer, timeout: timeout}
}

func (h *Handlers) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// Index lists every product.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	products, err := h.api.GetProducts(ctx)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	categories, err := h.api.GetCategories(ctx)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}

	h.renderer.Page(w, http.StatusOK, "index", h.page(r, "Products", map[string]any{
		"Products":      products,
		"CategoryNames": categoryNames(categories),
	}))
}

// Details shows a single product.
func (h *Handlers) Details(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	product, err := h.api.GetProduct(ctx, productID)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	categories, err := h.api.GetCategories(ctx)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}

	h.renderer.Page(w, http.StatusOK, "details", h.page(r, product.ProductName, map[string]any{
		"Product":       product,
		"CategoryNames": categoryNames(categories),
	}))
}

// New shows an empty create form.
func (h *Handlers) New(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, http.StatusOK, formView{
		title:  "Create product",
		action: "/products",
		form:   ProductForm{UnitsInStock: "0", UnitPrice: "0.00"},
	})
}

// Create submits the create form to the API.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	form := parseProductForm(r)
	view := formView{title: "Create product", action: "/products", form: form}

	req, fieldErrors := form.Validate()
	if len(fieldErrors) > 0 {
		view.fieldErrors = fieldErrors
		h.showForm(w, r, http.StatusBadRequest, view)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if _, err := h.api.CreateProduct(ctx, req); err != nil {
		h.formFailure(w, r, view, err)
		return
	}

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Edit shows the edit form filled with the current product.
func (h *Handlers) Edit(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	product, err := h.api.GetProduct(ctx, productID)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}

	h.showForm(w, r, http.StatusOK, formView{
		title:  "Edit product",
		action: fmt.Sprintf("/products/%d", productID),
		form:   formFromProduct(product),
	})
}

// Update submits the edit form to the API.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	form := parseProductForm(r)
	view := formView{title: "Edit product", action: fmt.Sprintf("/products/%d", productID), form: form}

	req, fieldErrors := form.Validate()
	if len(fieldErrors) > 0 {
		view.fieldErrors = fieldErrors
		h.showForm(w, r, http.StatusBadRequest, view)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if _, err := h.api.UpdateProduct(ctx, productID, req); err != nil {
		h.formFailure(w, r, view, err)
		return
	}

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Delete removes a product and returns to the list.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.api.DeleteProduct(ctx, productID); err != nil {
		h.apiFailure(w, r, err)
		return
	}

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Health reports that the front-end is up. It does not call the API.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type formView struct {
	title       string
	action      string
	form        ProductForm
	fieldErrors map[string]string
	message     string
}

func (h *Handlers) showForm(w http.ResponseWriter, r *http.Request, status int, view formView) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	categories, err := h.api.GetCategories(ctx)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}

	if view.fieldErrors == nil {
		view.fieldErrors = map[string]string{}
	}
	data := h.page(r, view.title, map[string]any{
		"Action":      view.action,
		"Form":        view.form,
		"FieldErrors": view.fieldErrors,
		"Categories":  categories,
	})
	data.Error = view.message
	h.renderer.Page(w, status, "form", data)
}

// formFailure redisplays the form for errors the user can fix and falls back
// to apiFailure for everything else.
func (h *Handlers) formFailure(w http.ResponseWriter, r *http.Request, view formView, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == "PRODUCT_NOT_FOUND":
		case apiErr.StatusCode == http.StatusBadRequest,
			apiErr.StatusCode == http.StatusNotFound,
			apiErr.StatusCode == http.StatusConflict:
			view.message = apiErr.Message
			h.showForm(w, r, apiErr.StatusCode, view)
			return
		}
	}
	h.apiFailure(w, r, err)
}

func (h *Handlers) apiFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		logger.Get().Infow("request cancelled", "path", r.URL.Path)
		return
	case client.IsStatus(err, http.StatusNotFound):
		h.errorPage(w, r, http.StatusNotFound, "Not found", apiMessage(err, "The product does not exist."))
		return
	}

	logger.Get().Errorw("catalog api call failed", "path", r.URL.Path, "error", err)
	h.errorPage(w, r, http.StatusBadGateway, "Catalog unavailable", "The catalog service could not complete the request. Please try again.")
}

func (h *Handlers) errorPage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	h.renderer.Page(w, status, "error", h.page(r, title, map[string]any{"Message": message}))
}

func (h *Handlers) page(r *http.Request, title string, data map[string]any) *render.PageData {
	return &render.PageData{
		Title:     title,
		CSRFToken: CSRFToken(r.Context()),
		Data:      data,
	}
}

func (h *Handlers) productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		h.errorPage(w, r, http.StatusNotFound, "Not found", "The product does not exist.")
		return 0, false
	}
	return uint(id), true
}

func apiMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func categoryNames(categories []client.Category) map[uint]string {
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.CategoryName
	}
	return names
}
