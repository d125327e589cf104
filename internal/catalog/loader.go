package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Listing bundles the two fetches the listing screen needs before it can
// render real data.
type Listing struct {
	Products   []Product
	Categories []string
}

// LoadListing fetches products and categories in parallel. Both must succeed.
func LoadListing(ctx context.Context, src Source) (Listing, error) {
	var listing Listing
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := src.ListProducts(ctx)
		if err != nil {
			return err
		}
		listing.Products = products
		return nil
	})
	g.Go(func() error {
		categories, err := src.ListCategories(ctx)
		if err != nil {
			return err
		}
		listing.Categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return Listing{}, err
	}
	return listing, nil
}

// DetailLoader serializes product-detail fetches under last-request-wins
// semantics: when navigation outruns the network, a superseded fetch discards
// its result instead of applying it out of order.
type DetailLoader struct {
	src Source

	mu     sync.Mutex
	latest uint64
}

// NewDetailLoader builds a loader over the given catalog source.
func NewDetailLoader(src Source) *DetailLoader {
	return &DetailLoader{src: src}
}

// Fetch retrieves the product and hands it to apply, unless a newer Fetch was
// issued meanwhile. The returned bool reports whether apply ran; a stale
// fetch reports false with a nil error regardless of its own outcome. apply
// runs under the loader's lock and must not call back into the loader.
func (l *DetailLoader) Fetch(ctx context.Context, id int, apply func(Product)) (bool, error) {
	l.mu.Lock()
	l.latest++
	generation := l.latest
	l.mu.Unlock()

	product, err := l.src.GetProduct(ctx, id)

	// The recheck and the apply form one critical section: once a fetch
	// commits, every older generation observes itself stale before it can
	// touch state.
	l.mu.Lock()
	defer l.mu.Unlock()
	if generation != l.latest {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if apply != nil {
		apply(product)
	}
	return true, nil
}
