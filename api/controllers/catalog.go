package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/packlane/storefront/api/responses"
	"github.com/packlane/storefront/api/validators"
	"github.com/packlane/storefront/internal/catalog"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/logger"
)

const maxProductID = 1 << 30

type listingResponse struct {
	Products   []catalog.Product `json:"products"`
	Categories []string          `json:"categories"`
}

// CatalogProducts serves the listing: products and categories fetched in
// parallel, then the search/category/sort pipeline applied server-side.
func CatalogProducts(src catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		sortKey, err := validators.ParseQuerySortKey(r, "sort")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := catalog.LoadListing(r.Context(), src)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := catalog.Query{
			Search:   strings.TrimSpace(r.URL.Query().Get("q")),
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Sort:     sortKey,
		}

		responses.WriteSuccess(w, listingResponse{
			Products:   catalog.Apply(listing.Products, query),
			Categories: withAllSentinel(listing.Categories),
		})
	}
}

// CatalogProduct serves a single product by id.
func CatalogProduct(src catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := src.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogCategories serves the category filter values, "all" first.
func CatalogCategories(src catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		categories, err := src.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]string{"categories": withAllSentinel(categories)})
	}
}

func withAllSentinel(categories []string) []string {
	out := make([]string, 0, len(categories)+1)
	out = append(out, catalog.CategoryAll)
	return append(out, categories...)
}

func productIDFromRequest(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "productId")
	return validators.ParsePathInt(raw, "productId", 1, maxProductID)
}
