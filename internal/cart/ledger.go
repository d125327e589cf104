package cart

import (
	"sync"

	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Line is one (product, quantity) pairing. Quantity is always >= 1 while the
// line is stored; a line driven to zero is removed, never kept.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price times quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Summary carries the derived aggregates delivered to observers.
type Summary struct {
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Observer receives the post-mutation summary after every ledger change.
type Observer func(Summary)

// Ledger is the authoritative in-memory cart for one session. Mutations are
// total: the ledger normalizes rather than rejects, so no operation fails.
// All methods are safe for concurrent use.
type Ledger struct {
	mu        sync.Mutex
	lines     map[int]Line
	order     []int
	observers []Observer
	metrics   *metrics.StorefrontMetrics
}

// NewLedger builds an empty ledger. Metrics may be nil.
func NewLedger(m *metrics.StorefrontMetrics) *Ledger {
	return &Ledger{
		lines:   make(map[int]Line),
		metrics: m,
	}
}

// Subscribe registers an observer notified synchronously after each mutation.
func (l *Ledger) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	l.mu.Lock()
	l.observers = append(l.observers, observer)
	l.mu.Unlock()
}

// Add puts one unit of the product in the cart, creating the line on first
// add and incrementing it on repeats. It always succeeds.
func (l *Ledger) Add(product catalog.Product) {
	l.mu.Lock()
	line, ok := l.lines[product.ID]
	if ok {
		line.Quantity++
		l.lines[product.ID] = line
	} else {
		l.lines[product.ID] = Line{Product: product, Quantity: 1}
		l.order = append(l.order, product.ID)
	}
	summary := l.summaryLocked()
	observers := l.observers
	l.mu.Unlock()

	l.metrics.IncCartMutation("add")
	notify(observers, summary)
}

// UpdateQuantity sets the line's quantity, removing the line when the new
// quantity drops below 1. Unknown product ids are a no-op, which keeps stale
// UI callbacks harmless.
func (l *Ledger) UpdateQuantity(productID, quantity int) {
	l.mu.Lock()
	line, ok := l.lines[productID]
	if !ok {
		l.mu.Unlock()
		return
	}
	if quantity < 1 {
		delete(l.lines, productID)
		l.dropFromOrderLocked(productID)
	} else {
		line.Quantity = quantity
		l.lines[productID] = line
	}
	summary := l.summaryLocked()
	observers := l.observers
	l.mu.Unlock()

	l.metrics.IncCartMutation("update_quantity")
	notify(observers, summary)
}

// Remove deletes the line if present; removing an absent id is a no-op.
func (l *Ledger) Remove(productID int) {
	l.mu.Lock()
	if _, ok := l.lines[productID]; !ok {
		l.mu.Unlock()
		return
	}
	delete(l.lines, productID)
	l.dropFromOrderLocked(productID)
	summary := l.summaryLocked()
	observers := l.observers
	l.mu.Unlock()

	l.metrics.IncCartMutation("remove")
	notify(observers, summary)
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.lines = make(map[int]Line)
	l.order = nil
	summary := l.summaryLocked()
	observers := l.observers
	l.mu.Unlock()

	l.metrics.IncCartMutation("clear")
	notify(observers, summary)
}

// TotalItems is the sum of quantities across all lines; 0 for an empty cart.
func (l *Ledger) TotalItems() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summaryLocked().TotalItems
}

// TotalPrice is the sum of price times quantity; 0 for an empty cart.
func (l *Ledger) TotalPrice() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summaryLocked().TotalPrice
}

// Summary returns both aggregates at once.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summaryLocked()
}

// Lines returns the cart lines in insertion order. The slice and its entries
// are copies; callers cannot reach the ledger's state through them.
func (l *Ledger) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Line, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.lines[id])
	}
	return out
}

// Snapshot is an independent copy of the cart taken at one instant, for order
// assembly. Later ledger mutations never reach a snapshot.
func (l *Ledger) Snapshot() []Line {
	return l.Lines()
}

func (l *Ledger) summaryLocked() Summary {
	summary := Summary{TotalPrice: decimal.Zero}
	for _, line := range l.lines {
		summary.TotalItems += line.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(line.Subtotal())
	}
	return summary
}

func (l *Ledger) dropFromOrderLocked(productID int) {
	for i, id := range l.order {
		if id == productID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

// Observers run outside the ledger lock so a callback may query the ledger.
func notify(observers []Observer, summary Summary) {
	for _, observer := range observers {
		observer(summary)
	}
}
