package orders

import (
	"strings"
	"testing"
	"time"

	"github.com/packlane/storefront/internal/cart"
	"github.com/packlane/storefront/internal/catalog"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func fixedAssembler() *Assembler {
	return NewAssembler(
		WithClock(func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string { return "order-1" }),
	)
}

func checkoutForms() (Customer, ShippingAddress) {
	customer := Customer{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"}
	shipping := ShippingAddress{Address: "1 Analytical Way", City: "London", State: "LD", ZipCode: "12345"}
	return customer, shipping
}

func snapshotFixture() []cart.Line {
	return []cart.Line{
		{
			Product:  catalog.Product{ID: 1, Title: "A Mug", Price: decimal.RequireFromString("9.99")},
			Quantity: 2,
		},
		{
			Product:  catalog.Product{ID: 2, Title: "B Shirt", Price: decimal.RequireFromString("19.99")},
			Quantity: 1,
		},
	}
}

func TestCompleteAssemblesOrder(t *testing.T) {
	customer, shipping := checkoutForms()
	order, err := fixedAssembler().Complete(snapshotFixture(), customer, shipping)
	require.NoError(t, err)

	require.Equal(t, "order-1", order.ID)
	require.Equal(t, time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC), order.Date)
	require.Equal(t, "39.97", order.Total.StringFixed(2))
	require.Len(t, order.Items, 2)
	require.Equal(t, customer, order.Customer)
	require.Equal(t, shipping, order.Shipping)
}

func TestCompleteTotalIndependentOfLaterCartMutation(t *testing.T) {
	ledger := cart.NewLedger(nil)
	ledger.Add(catalog.Product{ID: 1, Title: "A Mug", Price: decimal.RequireFromString("9.99")})
	ledger.Add(catalog.Product{ID: 1, Title: "A Mug", Price: decimal.RequireFromString("9.99")})

	customer, shipping := checkoutForms()
	order, err := fixedAssembler().Complete(ledger.Snapshot(), customer, shipping)
	require.NoError(t, err)

	ledger.UpdateQuantity(1, 50)
	ledger.Add(catalog.Product{ID: 3, Title: "C Lamp", Price: decimal.NewFromInt(100)})
	ledger.Clear()

	require.Equal(t, "19.98", order.Total.StringFixed(2))
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)
}

func TestCompleteRejectsEmptySnapshot(t *testing.T) {
	customer, shipping := checkoutForms()
	_, err := fixedAssembler().Complete(nil, customer, shipping)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCompleteRejectsMissingFormFields(t *testing.T) {
	customer, shipping := checkoutForms()

	missingEmail := customer
	missingEmail.Email = ""
	_, err := fixedAssembler().Complete(snapshotFixture(), missingEmail, shipping)
	require.NotNil(t, pkgerrors.As(err))

	badEmail := customer
	badEmail.Email = "not-an-email"
	_, err = fixedAssembler().Complete(snapshotFixture(), badEmail, shipping)
	require.NotNil(t, pkgerrors.As(err))

	missingZip := shipping
	missingZip.ZipCode = ""
	_, err = fixedAssembler().Complete(snapshotFixture(), customer, missingZip)
	require.NotNil(t, pkgerrors.As(err))
}

func TestDefaultIDGeneratorUnique(t *testing.T) {
	assembler := NewAssembler()
	customer, shipping := checkoutForms()

	first, err := assembler.Complete(snapshotFixture(), customer, shipping)
	require.NoError(t, err)
	second, err := assembler.Complete(snapshotFixture(), customer, shipping)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestReceiptRendersOrder(t *testing.T) {
	customer, shipping := checkoutForms()
	order, err := fixedAssembler().Complete(snapshotFixture(), customer, shipping)
	require.NoError(t, err)

	receipt := Receipt(order)
	for _, want := range []string{
		"Order ID: order-1",
		"Ada Lovelace",
		"ada@example.com",
		"London, LD 12345",
		"A Mug x 2 - $19.98",
		"B Shirt x 1 - $19.99",
		"Total: $39.97",
		"Thank you for your order!",
	} {
		if !strings.Contains(receipt, want) {
			t.Fatalf("receipt missing %q:\n%s", want, receipt)
		}
	}
}
