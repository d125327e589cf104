package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
)

func TestCatalogProducts(t *testing.T) {
	src := &stubCatalog{products: fixtureProducts()}
	logg := testLogger()

	t.Run("default sort is by name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
		rec := httptest.NewRecorder()
		CatalogProducts(src, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
		}
		var listing listingResponse
		decodeData(t, rec, &listing)
		if len(listing.Products) != 3 {
			t.Fatalf("expected 3 products got %d", len(listing.Products))
		}
		if listing.Products[0].Title != "Backpack" || listing.Products[2].Title != "Mug" {
			t.Fatalf("unexpected name order: %q..%q", listing.Products[0].Title, listing.Products[2].Title)
		}
		if len(listing.Categories) == 0 || listing.Categories[0] != "all" {
			t.Fatalf("categories must lead with the all sentinel: %v", listing.Categories)
		}
	})

	t.Run("category and search filters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?category=gear&q=mug", nil)
		rec := httptest.NewRecorder()
		CatalogProducts(src, logg).ServeHTTP(rec, req)

		var listing listingResponse
		decodeData(t, rec, &listing)
		if len(listing.Products) != 1 || listing.Products[0].ID != 3 {
			t.Fatalf("unexpected filtered products: %+v", listing.Products)
		}
	})

	t.Run("price sort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?sort=price-asc", nil)
		rec := httptest.NewRecorder()
		CatalogProducts(src, logg).ServeHTTP(rec, req)

		var listing listingResponse
		decodeData(t, rec, &listing)
		if listing.Products[0].ID != 3 || listing.Products[2].ID != 2 {
			t.Fatalf("unexpected price order: %+v", listing.Products)
		}
	})

	t.Run("unknown sort key is a validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?sort=bogus", nil)
		rec := httptest.NewRecorder()
		CatalogProducts(src, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})

	t.Run("catalog outage surfaces as dependency error", func(t *testing.T) {
		down := &stubCatalog{listErr: pkgerrors.New(pkgerrors.CodeDependency, "catalog unreachable")}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
		rec := httptest.NewRecorder()
		CatalogProducts(down, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 got %d", rec.Code)
		}
		if apiErr := decodeError(t, rec); apiErr.Code != "DEPENDENCY_ERROR" {
			t.Fatalf("unexpected error code %q", apiErr.Code)
		}
	})
}

func TestCatalogProduct(t *testing.T) {
	src := &stubCatalog{products: fixtureProducts()}
	logg := testLogger()

	makeRequest := func(raw string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/"+raw, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", raw)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		CatalogProduct(src, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		rec := makeRequest("2")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if rec := makeRequest("99"); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", rec.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		if rec := makeRequest("abc"); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})
}

func TestCatalogCategories(t *testing.T) {
	src := &stubCatalog{products: fixtureProducts()}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/categories", nil)
	rec := httptest.NewRecorder()
	CatalogCategories(src, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var payload map[string][]string
	decodeData(t, rec, &payload)
	got := payload["categories"]
	if len(got) != 3 || got[0] != "all" {
		t.Fatalf("unexpected categories: %v", got)
	}
}
