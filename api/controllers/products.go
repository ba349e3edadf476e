package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shoppix/shoppix-backend/api/responses"
	"github.com/shoppix/shoppix-backend/internal/catalog"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shoppix/shoppix-backend/pkg/logger"
)

// ProductList returns the catalog listing; ?featured=true narrows it.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		featuredOnly := r.URL.Query().Get("featured") == "true"
		products, err := svc.ListProducts(r.Context(), featuredOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductDetail returns one product by slug with rating and similar products.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := chi.URLParam(r, "slug")
		detail, err := svc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
