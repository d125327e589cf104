package orders

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/packlane/storefront/internal/cart"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Customer is the buyer contact block captured by the checkout form.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// ShippingAddress is the delivery block captured by the checkout form.
type ShippingAddress struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

// Order is the immutable record produced at checkout completion. Items and
// Total are frozen from the cart snapshot; later cart mutations never reach
// an assembled order.
type Order struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Customer Customer        `json:"customer"`
	Shipping ShippingAddress `json:"shipping"`
	Items    []cart.Line     `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

// Assembler turns cart snapshots plus checkout forms into orders.
type Assembler struct {
	now      func() time.Time
	newID    func() string
	validate *validator.Validate
	metrics  *metrics.StorefrontMetrics
}

// AssemblerOption configures optional assembler behavior.
type AssemblerOption func(*Assembler)

// WithClock overrides the order timestamp source.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIDGenerator overrides the order id source.
func WithIDGenerator(newID func() string) AssemblerOption {
	return func(a *Assembler) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// WithMetrics wires order completion counting.
func WithMetrics(m *metrics.StorefrontMetrics) AssemblerOption {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// NewAssembler builds an assembler with wall-clock time and uuid ids.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	assembler := &Assembler{
		now:      time.Now,
		newID:    uuid.NewString,
		validate: validator.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(assembler)
		}
	}
	return assembler
}

// Complete assembles an immutable order from the snapshot and forms. The
// snapshot is copied and the total computed from the copy, so the order is
// unaffected by whatever happens to the live cart afterwards.
func (a *Assembler) Complete(snapshot []cart.Line, customer Customer, shipping ShippingAddress) (Order, error) {
	if len(snapshot) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot complete an order from an empty cart")
	}
	if err := a.validate.Struct(customer); err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "customer information incomplete")
	}
	if err := a.validate.Struct(shipping); err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "shipping address incomplete")
	}

	items := make([]cart.Line, len(snapshot))
	copy(items, snapshot)

	total := decimal.Zero
	for _, line := range items {
		total = total.Add(line.Subtotal())
	}

	order := Order{
		ID:       a.newID(),
		Date:     a.now().UTC(),
		Customer: customer,
		Shipping: shipping,
		Items:    items,
		Total:    total,
	}
	a.metrics.IncOrderCompleted()
	return order, nil
}
