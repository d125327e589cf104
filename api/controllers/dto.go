package controllers

import (
	"github.com/packlane/storefront/internal/cart"
	"github.com/packlane/storefront/internal/navigation"
	"github.com/packlane/storefront/internal/orders"
)

type cartState struct {
	Lines   []cart.Line  `json:"lines"`
	Summary cart.Summary `json:"summary"`
}

func newCartState(ledger *cart.Ledger) cartState {
	return cartState{
		Lines:   ledger.Lines(),
		Summary: ledger.Summary(),
	}
}

type navigationState struct {
	View              string        `json:"view"`
	SelectedProductID *int          `json:"selected_product_id,omitempty"`
	Order             *orders.Order `json:"order,omitempty"`
	CartOpen          bool          `json:"cart_open"`
}

func newNavigationState(state navigation.State) navigationState {
	dto := navigationState{
		View:     state.View.Kind().String(),
		CartOpen: state.CartOpen,
	}
	switch view := state.View.(type) {
	case navigation.Detail:
		id := view.ProductID
		dto.SelectedProductID = &id
	case navigation.Confirmation:
		order := view.Order
		dto.Order = &order
	}
	return dto
}

type sessionState struct {
	SessionID  string          `json:"session_id"`
	Navigation navigationState `json:"navigation"`
	Cart       cartState       `json:"cart"`
}
