package enums

import "fmt"

// CheckoutBackPolicy decides where "back" lands when pressed on the checkout
// screen: reopen the cart overlay, or return to the prior view.
type CheckoutBackPolicy string

const (
	CheckoutBackReopenCart CheckoutBackPolicy = "reopen-cart"
	CheckoutBackPriorView  CheckoutBackPolicy = "prior-view"
)

var validCheckoutBackPolicies = []CheckoutBackPolicy{
	CheckoutBackReopenCart,
	CheckoutBackPriorView,
}

// String implements fmt.Stringer.
func (c CheckoutBackPolicy) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutBackPolicy.
func (c CheckoutBackPolicy) IsValid() bool {
	for _, candidate := range validCheckoutBackPolicies {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutBackPolicy converts raw input into a CheckoutBackPolicy.
func ParseCheckoutBackPolicy(value string) (CheckoutBackPolicy, error) {
	for _, candidate := range validCheckoutBackPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout back policy %q", value)
}
