package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the product pages. secure marks the CSRF cookie Secure.
func NewRouter(h *Handlers, secure bool) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(RequestLogger)
	r.Use(Recoverer)

	// Health check, outside CSRF.
	r.Get("/health", Health)

	r.Group(func(r chi.Router) {
		r.Use(NewCSRF(secure))

		r.Get("/", h.Index)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Index)
			r.Get("/new", h.New)
			r.Post("/", h.Create)
			r.Get("/{id}", h.Details)
			r.Get("/{id}/edit", h.Edit)
			r.Post("/{id}", h.Update)
			r.Post("/{id}/delete", h.Delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.errorPage(w, r, http.StatusNotFound, "Not found", "The page does not exist.")
	})

	return r
}
