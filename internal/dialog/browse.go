package dialog

import (
	"context"
	"errors"
	"fmt"

	"orderbot/internal/domain"
)

// browseAction serves the stateless catalog and cart buttons. These work from
// any idle or administrative state; only an active checkout shadows them.
func (e *Engine) browseAction(ctx context.Context, sess *domain.Session, a Action) ([]Render, error) {
	switch a.Kind {
	case ActionNoop:
		return nil, nil

	case ActionCloseMenu:
		return []Render{DeleteMessage{}}, nil

	case ActionBackToMenu:
		categories, err := e.catalog.MainCategories(ctx)
		if err != nil {
			return nil, err
		}
		if len(categories) == 0 {
			return []Render{EditText{Text: "The menu is empty for now."}}, nil
		}
		return []Render{EditText{Text: "Choose a category:", Keyboard: categoryKeyboard(categories, "back_main")}}, nil

	case ActionOpenCategory, ActionBackToCategory:
		return e.openCategory(ctx, sess, a.ID)

	case ActionQtyPlus, ActionQtyMinus:
		qty := e.pickedQty(sess, a.ID)
		if a.Kind == ActionQtyPlus {
			qty++
		} else if qty > 1 {
			qty--
		}
		e.setPickedQty(sess, a.ID, qty)
		back, err := e.productBackPayload(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		return []Render{UpdateKeyboard{Keyboard: productKeyboard(a.ID, qty, back)}}, nil

	case ActionAddToCart:
		qty := e.pickedQty(sess, a.ID)
		product, err := e.carts.Add(ctx, sess.UserChatID, a.ID, qty)
		if errors.Is(err, domain.ErrNotFound) {
			return []Render{text("This product is no longer available.")}, nil
		}
		if err != nil {
			return nil, err
		}
		e.setPickedQty(sess, a.ID, 1)
		back, err := e.productBackPayload(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		return []Render{
			UpdateKeyboard{Keyboard: productKeyboard(a.ID, 1, back)},
			text(fmt.Sprintf("Added %d x %s to your cart.", qty, product.Name)),
		}, nil

	case ActionCartPlus, ActionCartMinus, ActionCartRemove:
		return e.adjustCartLine(ctx, sess, a)

	case ActionCartClear:
		if err := e.carts.Clear(ctx, sess.UserChatID); err != nil {
			return nil, err
		}
		return []Render{EditText{Text: "Your cart is empty."}}, nil
	}
	return nil, nil
}

// openCategory shows either the subcategory list or the product cards of a
// leaf category. Subcategory lists replace the pressed message; product cards
// arrive as fresh messages, so the stale list is removed first.
func (e *Engine) openCategory(ctx context.Context, sess *domain.Session, id string) ([]Render, error) {
	category, err := e.catalog.Category(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return []Render{EditText{Text: "This category no longer exists."}}, nil
	}
	if err != nil {
		return nil, err
	}

	back := "back_main"
	if category.ParentID != nil {
		back = "back_to_cat_" + *category.ParentID
	}

	subs, err := e.catalog.Subcategories(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(subs) > 0 {
		return []Render{EditText{Text: "Choose a category:", Keyboard: categoryKeyboard(subs, back)}}, nil
	}

	products, err := e.catalog.ActiveProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		kb := Keyboard{row(Button{Label: "Back", Payload: back})}
		return []Render{EditText{Text: "No products in this category yet.", Keyboard: kb}}, nil
	}

	renders := []Render{DeleteMessage{}}
	for _, p := range products {
		kb := productKeyboard(p.ID, e.pickedQty(sess, p.ID), back)
		if p.ImageURL != "" {
			renders = append(renders, ShowPhoto{URL: p.ImageURL, Caption: productCaption(&p), Keyboard: kb})
		} else {
			renders = append(renders, ShowText{Text: productCaption(&p), Keyboard: kb})
		}
	}
	return renders, nil
}

// adjustCartLine mutates one cart line and redraws the cart message. Plus and
// minus are relative adjustments applied by the store, so two near-simultaneous
// presses both land; a press on a line that is already gone changes nothing.
func (e *Engine) adjustCartLine(ctx context.Context, sess *domain.Session, a Action) ([]Render, error) {
	var err error
	switch a.Kind {
	case ActionCartPlus:
		err = e.carts.Adjust(ctx, sess.UserChatID, a.ID, 1)
	case ActionCartMinus:
		err = e.carts.Adjust(ctx, sess.UserChatID, a.ID, -1)
	case ActionCartRemove:
		err = e.carts.SetQuantity(ctx, sess.UserChatID, a.ID, 0)
	}
	if err != nil {
		return nil, err
	}
	lines, err := e.carts.Get(ctx, sess.UserChatID)
	if err != nil {
		return nil, err
	}
	view, kb := cartView(lines)
	return []Render{EditText{Text: view, Keyboard: kb}}, nil
}

// productBackPayload points a product card's back button at the listing the
// card came from.
func (e *Engine) productBackPayload(ctx context.Context, productID string) (string, error) {
	product, err := e.catalog.Product(ctx, productID)
	if err != nil {
		return "back_to_menu", nil
	}
	category, err := e.catalog.Category(ctx, product.CategoryID)
	if err != nil {
		return "back_to_menu", nil
	}
	if category.ParentID != nil {
		return "back_to_cat_" + *category.ParentID, nil
	}
	return "back_to_menu", nil
}

func (e *Engine) pickedQty(sess *domain.Session, productID string) int {
	if q := sess.Quantities[productID]; q > 0 {
		return q
	}
	return 1
}

func (e *Engine) setPickedQty(sess *domain.Session, productID string, qty int) {
	if sess.Quantities == nil {
		sess.Quantities = make(map[string]int)
	}
	sess.Quantities[productID] = qty
}
