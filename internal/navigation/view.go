package navigation

import (
	"github.com/packlane/storefront/internal/orders"
	"github.com/packlane/storefront/pkg/enums"
)

// View is the sealed set of screens the machine can present. Each variant
// carries exactly the data its screen needs, so a detail view without a
// product id or a confirmation without an order cannot be constructed.
type View interface {
	Kind() enums.ViewKind
	sealedView()
}

// Listing is the browsable product grid.
type Listing struct{}

func (Listing) Kind() enums.ViewKind { return enums.ViewListing }
func (Listing) sealedView()          {}

// Detail presents a single product.
type Detail struct {
	ProductID int
}

func (Detail) Kind() enums.ViewKind { return enums.ViewDetail }
func (Detail) sealedView()          {}

// Checkout presents the checkout form.
type Checkout struct{}

func (Checkout) Kind() enums.ViewKind { return enums.ViewCheckout }
func (Checkout) sealedView()          {}

// Confirmation presents a completed order.
type Confirmation struct {
	Order orders.Order
}

func (Confirmation) Kind() enums.ViewKind { return enums.ViewConfirmation }
func (Confirmation) sealedView()          {}
