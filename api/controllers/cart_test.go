package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCartAddItem(t *testing.T) {
	src := &stubCatalog{products: fixtureProducts()}
	logg := testLogger()

	t.Run("adds one by default", func(t *testing.T) {
		mgr := newTestSessions(t, src)
		sess := mgr.Create()

		req := sessionRequest(http.MethodPost, "/cart/items", sess.ID.String(), `{"product_id":1}`)
		rec := httptest.NewRecorder()
		CartAddItem(mgr, src, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
		}
		var state cartState
		decodeData(t, rec, &state)
		if state.Summary.TotalItems != 1 {
			t.Fatalf("expected 1 item got %d", state.Summary.TotalItems)
		}
		if state.Summary.TotalPrice.String() != "19.99" {
			t.Fatalf("expected total 19.99 got %s", state.Summary.TotalPrice)
		}
	})

	t.Run("quantity repeats the add", func(t *testing.T) {
		mgr := newTestSessions(t, src)
		sess := mgr.Create()

		req := sessionRequest(http.MethodPost, "/cart/items", sess.ID.String(), `{"product_id":3,"quantity":4}`)
		rec := httptest.NewRecorder()
		CartAddItem(mgr, src, logg).ServeHTTP(rec, req)

		var state cartState
		decodeData(t, rec, &state)
		if state.Summary.TotalItems != 4 {
			t.Fatalf("expected 4 items got %d", state.Summary.TotalItems)
		}
		if len(state.Lines) != 1 || state.Lines[0].Quantity != 4 {
			t.Fatalf("expected a single line of quantity 4: %+v", state.Lines)
		}
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		mgr := newTestSessions(t, src)
		sess := mgr.Create()

		req := sessionRequest(http.MethodPost, "/cart/items", sess.ID.String(), `{"product_id":42}`)
		rec := httptest.NewRecorder()
		CartAddItem(mgr, src, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", rec.Code)
		}
	})

	t.Run("malformed body is a validation error", func(t *testing.T) {
		mgr := newTestSessions(t, src)
		sess := mgr.Create()

		req := sessionRequest(http.MethodPost, "/cart/items", sess.ID.String(), `{"product_id":"one"}`)
		rec := httptest.NewRecorder()
		CartAddItem(mgr, src, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})
}

func TestCartUpdateItem(t *testing.T) {
	src := &stubCatalog{products: fixtureProducts()}
	logg := testLogger()
	mgr := newTestSessions(t, src)
	sess := mgr.Create()
	product, _ := src.GetProduct(context.Background(), 1)
	sess.Cart.Add(product)
	sess.Cart.Add(product)

	t.Run("sets quantity", func(t *testing.T) {
		req := sessionRequest(http.MethodPatch, "/cart/items/1", sess.ID.String(), `{"quantity":5}`)
		req = withURLParam(req, "productId", "1")
		rec := httptest.NewRecorder()
		CartUpdateItem(mgr, logg).ServeHTTP(rec, req)

		var state cartState
		decodeData(t, rec, &state)
		if state.Summary.TotalItems != 5 {
			t.Fatalf("expected 5 items got %d", state.Summary.TotalItems)
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		req := sessionRequest(http.MethodPatch, "/cart/items/1", sess.ID.String(), `{"quantity":0}`)
		req = withURLParam(req, "productId", "1")
		rec := httptest.NewRecorder()
		CartUpdateItem(mgr, logg).ServeHTTP(rec, req)

		var state cartState
		decodeData(t, rec, &state)
		if len(state.Lines) != 0 {
			t.Fatalf("expected empty cart got %+v", state.Lines)
		}
	})
}

func TestCartRemoveItemIsIdempotent(t *testing.T) {
	src := &stubCatalog{products: fixtureProducts()}
	mgr := newTestSessions(t, src)
	sess := mgr.Create()

	for i := 0; i < 2; i++ {
		req := sessionRequest(http.MethodDelete, "/cart/items/9", sess.ID.String(), "")
		req = withURLParam(req, "productId", "9")
		rec := httptest.NewRecorder()
		CartRemoveItem(mgr, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("removal attempt %d: expected 200 got %d", i+1, rec.Code)
		}
	}
}

func TestCartClear(t *testing.T) {
	src := &stubCatalog{products: fixtureProducts()}
	mgr := newTestSessions(t, src)
	sess := mgr.Create()
	product, _ := src.GetProduct(context.Background(), 2)
	sess.Cart.Add(product)

	req := sessionRequest(http.MethodDelete, "/cart", sess.ID.String(), "")
	rec := httptest.NewRecorder()
	CartClear(mgr, testLogger()).ServeHTTP(rec, req)

	var state cartState
	decodeData(t, rec, &state)
	if state.Summary.TotalItems != 0 || state.Summary.TotalPrice.String() != "0" {
		t.Fatalf("expected empty cart got %+v", state.Summary)
	}
}
