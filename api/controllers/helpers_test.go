package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/session"
	"github.com/packlane/storefront/pkg/config"
	"github.com/packlane/storefront/pkg/enums"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/logger"
	"github.com/packlane/storefront/pkg/types"
)

func notFoundErr(msg string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, msg)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubCatalog struct {
	products  []catalog.Product
	listErr   error
	getErr    error
	getCalled int
}

func (s *stubCatalog) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func (s *stubCatalog) ListCategories(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	seen := map[string]bool{}
	var categories []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

func (s *stubCatalog) GetProduct(ctx context.Context, id int) (catalog.Product, error) {
	s.getCalled++
	if s.getErr != nil {
		return catalog.Product{}, s.getErr
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, notFoundErr("product not found")
}

func fixtureProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Title: "Backpack", Price: decimal.RequireFromString("19.99"), Category: "gear", Rating: catalog.Rating{Rate: decimal.RequireFromString("4.5"), Count: 12}},
		{ID: 2, Title: "Jacket", Price: decimal.RequireFromString("49.50"), Category: "clothing", Rating: catalog.Rating{Rate: decimal.RequireFromString("3.9"), Count: 40}},
		{ID: 3, Title: "Mug", Price: decimal.RequireFromString("7.25"), Category: "gear", Rating: catalog.Rating{Rate: decimal.RequireFromString("4.9"), Count: 3}},
	}
}

func newTestSessions(t *testing.T, src catalog.Source) *session.Manager {
	t.Helper()
	cfg := config.SessionConfig{TTL: 30 * time.Minute, SweepInterval: time.Minute}
	mgr, err := session.NewManager(cfg, enums.CheckoutBackReopenCart, src, nil, nil)
	if err != nil {
		t.Fatalf("new session manager: %v", err)
	}
	return mgr
}

func sessionRequest(method, target, sessionID, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("sessionId", sessionID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx, _ := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if routeCtx == nil {
		routeCtx = chi.NewRouteContext()
	}
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decoding data: %v (body %s)", err, rec.Body.String())
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error envelope: %v (body %s)", err, rec.Body.String())
	}
	return envelope.Error
}
