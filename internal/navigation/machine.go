package navigation

import (
	"sync"

	"github.com/packlane/storefront/internal/orders"
	"github.com/packlane/storefront/pkg/enums"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
)

// State is the rendered navigation snapshot: the current view plus the cart
// overlay flag, which is orthogonal to the view.
type State struct {
	View     View
	CartOpen bool
}

// Observer receives the post-transition state after every change.
type Observer func(State)

// Machine owns which screen is showing for one session. It starts on the
// listing, never terminates (confirmation loops back to the listing), and
// answers invalid triggers with a STATE_CONFLICT error instead of moving.
// All methods are safe for concurrent use.
type Machine struct {
	mu        sync.Mutex
	view      View
	cartOpen  bool
	prior     View
	policy    enums.CheckoutBackPolicy
	observers []Observer
}

// NewMachine builds a machine on the listing view with the given
// checkout-back policy.
func NewMachine(policy enums.CheckoutBackPolicy) *Machine {
	if !policy.IsValid() {
		policy = enums.CheckoutBackReopenCart
	}
	return &Machine{
		view:   Listing{},
		policy: policy,
	}
}

// Subscribe registers an observer notified synchronously after each transition.
func (m *Machine) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	m.mu.Lock()
	m.observers = append(m.observers, observer)
	m.mu.Unlock()
}

// State returns the current view and overlay flag.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{View: m.view, CartOpen: m.cartOpen}
}

// SelectProduct moves to the product detail view. Valid from the listing and
// from the detail view itself, which is how rapid product-to-product
// navigation happens.
func (m *Machine) SelectProduct(productID int) error {
	m.mu.Lock()
	switch m.view.(type) {
	case Listing, Detail:
		m.view = Detail{ProductID: productID}
	default:
		defer m.mu.Unlock()
		return m.conflictLocked("select-product")
	}
	state, observers := m.stateLocked()
	m.mu.Unlock()

	notify(observers, state)
	return nil
}

// Back leaves the detail view for the listing, or leaves checkout according
// to the configured policy.
func (m *Machine) Back() error {
	m.mu.Lock()
	switch m.view.(type) {
	case Detail:
		m.view = Listing{}
	case Checkout:
		prior := m.prior
		if prior == nil {
			prior = Listing{}
		}
		m.view = prior
		m.prior = nil
		// Default policy reopens the cart overlay on the way out.
		m.cartOpen = m.policy == enums.CheckoutBackReopenCart
	default:
		defer m.mu.Unlock()
		return m.conflictLocked("back")
	}
	state, observers := m.stateLocked()
	m.mu.Unlock()

	notify(observers, state)
	return nil
}

// OpenCart shows the cart overlay on top of whatever view is current.
func (m *Machine) OpenCart() {
	m.setCartOpen(true)
}

// CloseCart hides the cart overlay.
func (m *Machine) CloseCart() {
	m.setCartOpen(false)
}

// BeginCheckout moves to the checkout screen. The trigger lives inside the
// cart overlay, so the overlay must be open; it is force-closed on entry.
func (m *Machine) BeginCheckout() error {
	m.mu.Lock()
	if !m.cartOpen {
		defer m.mu.Unlock()
		return m.conflictLocked("begin-checkout")
	}
	if _, ok := m.view.(Checkout); ok {
		defer m.mu.Unlock()
		return m.conflictLocked("begin-checkout")
	}
	m.prior = m.view
	m.view = Checkout{}
	m.cartOpen = false
	state, observers := m.stateLocked()
	m.mu.Unlock()

	notify(observers, state)
	return nil
}

// CompleteOrder moves from checkout to the confirmation carrying the order.
func (m *Machine) CompleteOrder(order orders.Order) error {
	m.mu.Lock()
	if _, ok := m.view.(Checkout); !ok {
		defer m.mu.Unlock()
		return m.conflictLocked("complete-order")
	}
	m.view = Confirmation{Order: order}
	m.prior = nil
	state, observers := m.stateLocked()
	m.mu.Unlock()

	notify(observers, state)
	return nil
}

// ContinueShopping loops from the confirmation back to the listing, dropping
// the completed order from navigation state.
func (m *Machine) ContinueShopping() error {
	m.mu.Lock()
	if _, ok := m.view.(Confirmation); !ok {
		defer m.mu.Unlock()
		return m.conflictLocked("continue-shopping")
	}
	m.view = Listing{}
	state, observers := m.stateLocked()
	m.mu.Unlock()

	notify(observers, state)
	return nil
}

// Home jumps to the listing from anywhere, the header's home action. It
// clears any selection or completed order and never fails.
func (m *Machine) Home() {
	m.mu.Lock()
	m.view = Listing{}
	m.prior = nil
	state, observers := m.stateLocked()
	m.mu.Unlock()

	notify(observers, state)
}

func (m *Machine) setCartOpen(open bool) {
	m.mu.Lock()
	if m.cartOpen == open {
		m.mu.Unlock()
		return
	}
	m.cartOpen = open
	state, observers := m.stateLocked()
	m.mu.Unlock()

	notify(observers, state)
}

func (m *Machine) stateLocked() (State, []Observer) {
	return State{View: m.view, CartOpen: m.cartOpen}, m.observers
}

func (m *Machine) conflictLocked(trigger string) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "navigation trigger not valid in current view").
		WithDetails(map[string]any{
			"trigger": trigger,
			"view":    m.view.Kind().String(),
		})
}

// Observers run outside the machine lock so a callback may query the machine.
func notify(observers []Observer, state State) {
	for _, observer := range observers {
		observer(state)
	}
}
