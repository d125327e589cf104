package orders

import (
	"fmt"
	"strings"
)

// Receipt renders the plain-text receipt offered on the confirmation screen.
func Receipt(order Order) string {
	var b strings.Builder

	b.WriteString("Order Confirmation\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", order.Date.Format("Jan 2, 2006"))

	b.WriteString("Customer Information:\n")
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", order.Customer.Name, order.Customer.Email, order.Customer.Phone)

	b.WriteString("Shipping Address:\n")
	fmt.Fprintf(&b, "%s\n%s, %s %s\n\n", order.Shipping.Address, order.Shipping.City, order.Shipping.State, order.Shipping.ZipCode)

	b.WriteString("Items:\n")
	for _, line := range order.Items {
		fmt.Fprintf(&b, "%s x %d - $%s\n", line.Product.Title, line.Quantity, line.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: $%s\n\n", order.Total.StringFixed(2))
	b.WriteString("Thank you for your order!\n")

	return b.String()
}
