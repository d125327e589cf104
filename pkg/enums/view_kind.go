package enums

import "fmt"

// ViewKind names the top-level screen the navigation machine is presenting.
type ViewKind string

const (
	ViewListing      ViewKind = "listing"
	ViewDetail       ViewKind = "detail"
	ViewCheckout     ViewKind = "checkout"
	ViewConfirmation ViewKind = "confirmation"
)

var validViewKinds = []ViewKind{
	ViewListing,
	ViewDetail,
	ViewCheckout,
	ViewConfirmation,
}

// String implements fmt.Stringer.
func (v ViewKind) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ViewKind.
func (v ViewKind) IsValid() bool {
	for _, candidate := range validViewKinds {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseViewKind converts raw input into a ViewKind.
func ParseViewKind(value string) (ViewKind, error) {
	for _, candidate := range validViewKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view kind %q", value)
}
