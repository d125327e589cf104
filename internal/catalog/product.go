package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Rating carries the aggregate review score shipped with each product.
type Rating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int             `json:"count"`
}

// Product is the immutable catalog record served by the catalog service.
// The core never mutates it after decode.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Source is the catalog surface the storefront consumes. Implemented by the
// HTTP client and by its cached decorator.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id int) (Product, error)
}
