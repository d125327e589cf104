package enums

import "fmt"

// NavEvent is a trigger accepted by the navigation machine.
type NavEvent string

const (
	NavSelectProduct    NavEvent = "select-product"
	NavBack             NavEvent = "back"
	NavOpenCart         NavEvent = "open-cart"
	NavCloseCart        NavEvent = "close-cart"
	NavBeginCheckout    NavEvent = "begin-checkout"
	NavContinueShopping NavEvent = "continue-shopping"
	NavHome             NavEvent = "home"
)

var validNavEvents = []NavEvent{
	NavSelectProduct,
	NavBack,
	NavOpenCart,
	NavCloseCart,
	NavBeginCheckout,
	NavContinueShopping,
	NavHome,
}

// String implements fmt.Stringer.
func (n NavEvent) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NavEvent.
func (n NavEvent) IsValid() bool {
	for _, candidate := range validNavEvents {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNavEvent converts raw input into a NavEvent.
func ParseNavEvent(value string) (NavEvent, error) {
	for _, candidate := range validNavEvents {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid navigation event %q", value)
}
