package dialog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"orderbot/internal/domain"
	checkoutsvc "orderbot/internal/service/checkout"
)

// startCheckout snapshots the cart and enters the guided checkout. Pressing
// the checkout button mid-flow silently restarts from a fresh snapshot.
func (e *Engine) startCheckout(ctx context.Context, sess *domain.Session) ([]Render, error) {
	lines, err := e.carts.Get(ctx, sess.UserChatID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []Render{text("Your cart is empty.")}, nil
	}
	sess.Reset()
	sess.Checkout = &domain.CheckoutContext{Lines: lines}
	sess.State = domain.StateAwaitingDeliveryType
	return []Render{deliveryPrompt(lines)}, nil
}

func (e *Engine) checkoutAction(ctx context.Context, sess *domain.Session, a Action) ([]Render, error) {
	c := sess.Checkout
	switch a.Kind {
	case ActionNoop:
		return nil, nil

	case ActionCheckoutCancel:
		sess.Reset()
		return []Render{mainMenu("Checkout cancelled. Your cart is kept.")}, nil

	case ActionChooseDelivery:
		if sess.State != domain.StateAwaitingDeliveryType {
			return e.reprompt(sess), nil
		}
		switch a.ID {
		case domain.DeliveryPickup:
			c.DeliveryType = domain.DeliveryPickup
			c.DeliveryCostCents = 0
			c.Address = e.pickupAddress
			sess.State = domain.StateAwaitingName
			return []Render{text(fmt.Sprintf("Pickup at %s.\nWhat is your name?", e.pickupAddress))}, nil
		case domain.DeliveryDelivery:
			c.DeliveryType = domain.DeliveryDelivery
			c.DeliveryCostCents = e.deliveryCostCents
			sess.State = domain.StateAwaitingAddress
			return []Render{text(fmt.Sprintf("Delivery costs %s.\nWhat is the delivery address?", Money(c.DeliveryCostCents)))}, nil
		}
		return e.reprompt(sess), nil

	case ActionSkipComment:
		if sess.State != domain.StateAwaitingComment {
			return e.reprompt(sess), nil
		}
		c.Comment = ""
		sess.State = domain.StateAwaitingConfirmation
		return []Render{confirmationSummary(c)}, nil

	case ActionConfirmOrder:
		if sess.State != domain.StateAwaitingConfirmation {
			return e.reprompt(sess), nil
		}
		return e.placeOrder(ctx, sess)

	case ActionCancelOrder:
		if sess.State != domain.StateAwaitingConfirmation {
			return e.reprompt(sess), nil
		}
		sess.Reset()
		return []Render{mainMenu("Order cancelled. Your cart is kept.")}, nil
	}
	return e.reprompt(sess), nil
}

func (e *Engine) checkoutText(ctx context.Context, sess *domain.Session, input string) ([]Render, error) {
	c := sess.Checkout
	switch sess.State {
	case domain.StateAwaitingAddress:
		if len([]rune(input)) < 5 {
			return []Render{text("That address looks too short. Please send the full delivery address.")}, nil
		}
		c.Address = input
		sess.State = domain.StateAwaitingName
		return []Render{text("What is your name?")}, nil

	case domain.StateAwaitingName:
		if len([]rune(input)) < 2 {
			return []Render{text("Please send your name.")}, nil
		}
		c.Name = input
		sess.State = domain.StateAwaitingPhone
		return []Render{phonePrompt()}, nil

	case domain.StateAwaitingPhone:
		phone, ok := normalizePhone(input)
		if !ok {
			return []Render{text("That does not look like a phone number. Send it as digits, e.g. +375291234567.")}, nil
		}
		return e.checkoutPhone(ctx, sess, phone)

	case domain.StateAwaitingComment:
		c.Comment = input
		sess.State = domain.StateAwaitingConfirmation
		return []Render{confirmationSummary(c)}, nil
	}
	return e.reprompt(sess), nil
}

// checkoutPhone accepts a phone from either typed text or a shared contact
// and persists it on the user record for the next checkout.
func (e *Engine) checkoutPhone(ctx context.Context, sess *domain.Session, phone string) ([]Render, error) {
	if err := e.users.UpdatePhone(ctx, sess.UserChatID, phone); err != nil {
		e.logger.Printf("dialog: save phone chat_id=%d error=%v", sess.UserChatID, err)
	}
	sess.Checkout.Phone = phone
	sess.State = domain.StateAwaitingComment
	return []Render{commentPrompt()}, nil
}

func (e *Engine) placeOrder(ctx context.Context, sess *domain.Session) ([]Render, error) {
	c := sess.Checkout
	order, err := e.checkout.PlaceOrder(ctx, checkoutsvc.PlaceOrderInput{
		UserChatID:        sess.UserChatID,
		CustomerName:      c.Name,
		Phone:             c.Phone,
		Address:           c.Address,
		Comment:           c.Comment,
		DeliveryType:      c.DeliveryType,
		DeliveryCostCents: c.DeliveryCostCents,
		Lines:             c.Lines,
	})
	if err != nil {
		e.logger.Printf("dialog: place order chat_id=%d error=%v", sess.UserChatID, err)
		return []Render{text("Could not place the order. Please try again.")}, nil
	}
	sess.Reset()
	msg := fmt.Sprintf("Order #%d accepted! We will contact you shortly.", order.OrderNumber)
	return []Render{mainMenu(msg)}, nil
}

// reprompt re-emits the current step's prompt without touching the context.
func (e *Engine) reprompt(sess *domain.Session) []Render {
	c := sess.Checkout
	switch sess.State {
	case domain.StateAwaitingDeliveryType:
		return []Render{deliveryPrompt(c.Lines)}
	case domain.StateAwaitingAddress:
		return []Render{text("What is the delivery address?")}
	case domain.StateAwaitingName:
		return []Render{text("What is your name?")}
	case domain.StateAwaitingPhone:
		return []Render{phonePrompt()}
	case domain.StateAwaitingComment:
		return []Render{commentPrompt()}
	case domain.StateAwaitingConfirmation:
		return []Render{confirmationSummary(c)}
	}
	return nil
}

func phonePrompt() ShowText {
	return ShowText{
		Text: "Send your phone number, or share your contact.",
		Keyboard: Keyboard{
			row(Button{Label: "Share contact", RequestContact: true}),
		},
	}
}

func commentPrompt() ShowText {
	return ShowText{
		Text: "Any comment for the order?",
		Keyboard: Keyboard{
			row(Button{Label: "Skip", Payload: "skip_comment"}),
		},
	}
}

var phoneRe = regexp.MustCompile(`^\+?\d{7,15}$`)

func normalizePhone(s string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if !phoneRe.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}
