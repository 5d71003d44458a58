package dialog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"orderbot/internal/domain"
)

// Money renders an amount in cents as a decimal string, "5130" -> "51.30".
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParsePrice converts user input like "24.90", "24,90" or "24" to cents.
func ParsePrice(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, errors.New("empty price")
	}
	whole, frac, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, errors.New("invalid price")
	}
	if len(frac) > 2 {
		return 0, errors.New("invalid price")
	}
	var cents int64
	if frac != "" {
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, errors.New("invalid price")
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}
	total := units*100 + cents
	if total <= 0 {
		return 0, errors.New("price must be positive")
	}
	return total, nil
}

const (
	welcomeText = "Welcome! Use the menu below to browse the catalog, manage your cart and place an order."
	aboutText   = "We cook to order and deliver every day from 11:00 to 22:00. Questions? Just send us a message."
)

func mainMenuKeyboard() Keyboard {
	return Keyboard{
		row(Button{Label: "Menu"}, Button{Label: "Cart"}),
		row(Button{Label: "My Orders"}, Button{Label: "About"}),
	}
}

func mainMenu(msg string) ShowText {
	return ShowText{Text: msg, Keyboard: mainMenuKeyboard()}
}

func categoryKeyboard(categories []domain.Category, backPayload string) Keyboard {
	var kb Keyboard
	for _, c := range categories {
		kb = append(kb, row(Button{Label: c.Name, Payload: "cat_" + c.ID}))
	}
	kb = append(kb, row(Button{Label: "Close", Payload: backPayload}))
	return kb
}

// productKeyboard is the quantity picker attached to a product card.
func productKeyboard(productID string, qty int, backPayload string) Keyboard {
	return Keyboard{
		row(
			Button{Label: "−", Payload: "qty_minus_" + productID},
			Button{Label: strconv.Itoa(qty), Payload: "noop"},
			Button{Label: "+", Payload: "qty_plus_" + productID},
		),
		row(Button{Label: "Add to cart", Payload: "add_cart_" + productID}),
		row(Button{Label: "Back", Payload: backPayload}),
	}
}

func productCaption(p *domain.Product) string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.Description)
	}
	fmt.Fprintf(&b, "\nPrice: %s", Money(p.PriceCents))
	return b.String()
}

func cartView(lines []domain.CartLine) (string, Keyboard) {
	if len(lines) == 0 {
		return "Your cart is empty.", nil
	}
	var b strings.Builder
	b.WriteString("Your cart:\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "%s x%d = %s\n", l.ProductName, l.Quantity, Money(l.LineTotalCents()))
	}
	fmt.Fprintf(&b, "\nTotal: %s", Money(cartTotal(lines)))

	var kb Keyboard
	for _, l := range lines {
		kb = append(kb, row(
			Button{Label: "−", Payload: "cart_minus_" + l.ProductID},
			Button{Label: fmt.Sprintf("%s (%d)", l.ProductName, l.Quantity), Payload: "noop"},
			Button{Label: "+", Payload: "cart_plus_" + l.ProductID},
			Button{Label: "✕", Payload: "cart_remove_" + l.ProductID},
		))
	}
	kb = append(kb,
		row(Button{Label: "Clear cart", Payload: "cart_clear"}),
		row(Button{Label: "Checkout", Payload: "checkout"}),
		row(Button{Label: "Close", Payload: "back_main"}),
	)
	return b.String(), kb
}

func cartTotal(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotalCents()
	}
	return total
}

func deliveryPrompt(lines []domain.CartLine) ShowText {
	text := fmt.Sprintf("Order total: %s\nHow would you like to get it?", Money(cartTotal(lines)))
	return ShowText{Text: text, Keyboard: Keyboard{
		row(Button{Label: "Pickup", Payload: "delivery_pickup"}),
		row(Button{Label: "Delivery", Payload: "delivery_delivery"}),
		row(Button{Label: "Cancel", Payload: "checkout_cancel"}),
	}}
}

func confirmationSummary(c *domain.CheckoutContext) ShowText {
	var b strings.Builder
	b.WriteString("Please confirm your order:\n\n")
	for _, l := range c.Lines {
		fmt.Fprintf(&b, "%s x%d = %s\n", l.ProductName, l.Quantity, Money(l.LineTotalCents()))
	}
	fmt.Fprintf(&b, "\nItems: %s\n", Money(cartTotal(c.Lines)))
	if c.DeliveryType == domain.DeliveryDelivery {
		fmt.Fprintf(&b, "Delivery: %s\n", Money(c.DeliveryCostCents))
		fmt.Fprintf(&b, "Address: %s\n", c.Address)
	} else {
		fmt.Fprintf(&b, "Pickup at: %s\n", c.Address)
	}
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\n", c.Name, c.Phone)
	if c.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", c.Comment)
	}
	fmt.Fprintf(&b, "\nTotal: %s", Money(cartTotal(c.Lines)+c.DeliveryCostCents))
	return ShowText{Text: b.String(), Keyboard: Keyboard{
		row(Button{Label: "Confirm", Payload: "confirm_order"}),
		row(Button{Label: "Cancel", Payload: "cancel_order"}),
	}}
}

func historyView(orders []domain.Order) string {
	if len(orders) == 0 {
		return "You have no orders yet."
	}
	var b strings.Builder
	b.WriteString("Your orders:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "\n#%d from %s, %s, %s\n",
			o.OrderNumber, o.CreatedAt.Format("02.01.2006 15:04"), Money(o.GrandTotalCents()), o.Status)
		for _, l := range o.Items {
			fmt.Fprintf(&b, "  %s x%d\n", l.ProductName, l.Quantity)
		}
	}
	return b.String()
}

// FormatOrderAlert renders the text sent to every notification receiver when
// an order is placed.
func FormatOrderAlert(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d\n\n", o.OrderNumber)
	for _, l := range o.Items {
		fmt.Fprintf(&b, "%s x%d = %s\n", l.ProductName, l.Quantity, Money(l.LineTotalCents()))
	}
	fmt.Fprintf(&b, "\nItems: %s\n", Money(o.ItemsTotalCents))
	if o.DeliveryType == domain.DeliveryDelivery {
		fmt.Fprintf(&b, "Delivery: %s\nAddress: %s\n", Money(o.DeliveryCostCents), o.Address)
	} else {
		fmt.Fprintf(&b, "Pickup at: %s\n", o.Address)
	}
	fmt.Fprintf(&b, "Total: %s\n\nCustomer: %s\nPhone: %s\n", Money(o.GrandTotalCents()), o.CustomerName, o.Phone)
	if o.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", o.Comment)
	}
	return b.String()
}
