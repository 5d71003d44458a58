package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"orderbot/internal/domain"
	productrepo "orderbot/internal/repository/product"
	catalogsvc "orderbot/internal/service/catalog"
)

func adminMenuKeyboard() Keyboard {
	return Keyboard{
		row(Button{Label: "Categories", Payload: "admin_categories"}),
		row(Button{Label: "Products", Payload: "admin_products"}),
		row(Button{Label: "Admins", Payload: "admin_admins"}),
		row(Button{Label: "Order receivers", Payload: "admin_receivers"}),
		row(Button{Label: "Broadcast", Payload: "admin_broadcast"}),
		row(Button{Label: "Close", Payload: "admin_close"}),
	}
}

func adminBackKeyboard() Keyboard {
	return Keyboard{row(Button{Label: "Back", Payload: "admin_back"})}
}

// adminAction serves the administrative menu tree. The caller has already
// verified operator permission. Menu presses work from any state, so a stale
// admin keyboard keeps working after the flow was left.
func (e *Engine) adminAction(ctx context.Context, sess *domain.Session, a Action) ([]Render, error) {
	if !sess.InAdminFlow() {
		sess.Checkout = nil
		sess.State = domain.StateAdminMenu
	}
	if sess.Admin == nil {
		sess.Admin = &domain.AdminContext{}
	}
	ad := sess.Admin

	switch a.Kind {
	case ActionAdminClose:
		sess.Reset()
		return []Render{DeleteMessage{}}, nil

	case ActionAdminBack:
		sess.State = domain.StateAdminMenu
		sess.Admin = &domain.AdminContext{}
		return []Render{EditText{Text: "Admin menu", Keyboard: adminMenuKeyboard()}}, nil

	case ActionAdminAdmins:
		return e.rosterView(ctx, e.admins, "Admins", "admin_add_admin", "admin_del_admin")

	case ActionAdminReceivers:
		return e.rosterView(ctx, e.receivers, "Order receivers", "admin_add_receiver", "admin_del_receiver")

	case ActionAdminAddAdmin:
		sess.State = domain.StateAddingAdminID
		return []Render{EditText{Text: "Send the numeric chat id to add as admin.", Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminAddReceiver:
		sess.State = domain.StateAddingReceiverID
		return []Render{EditText{Text: "Send the numeric chat id to add as order receiver.", Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminDelAdmin:
		return e.rosterRemovalView(ctx, e.admins, "Choose an admin to remove:", "remove_admin_")

	case ActionAdminDelReceiver:
		return e.rosterRemovalView(ctx, e.receivers, "Choose a receiver to remove:", "remove_receiver_")

	case ActionRemoveAdmin:
		id, err := parseChatID(a.ID)
		if err != nil {
			return nil, nil
		}
		if id == sess.UserChatID {
			return []Render{EditText{Text: "You cannot remove yourself.", Keyboard: adminBackKeyboard()}}, nil
		}
		if err := e.admins.Remove(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return e.rosterRemovalView(ctx, e.admins, "Admin removed. Choose another to remove:", "remove_admin_")

	case ActionRemoveReceiver:
		id, err := parseChatID(a.ID)
		if err != nil {
			return nil, nil
		}
		if err := e.receivers.Remove(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return e.rosterRemovalView(ctx, e.receivers, "Receiver removed. Choose another to remove:", "remove_receiver_")

	case ActionAdminCategories:
		return []Render{EditText{Text: "Categories", Keyboard: Keyboard{
			row(Button{Label: "Add category", Payload: "admin_add_category"}),
			row(Button{Label: "Add subcategory", Payload: "admin_add_subcategory"}),
			row(Button{Label: "Rename category", Payload: "admin_edit_category"}),
			row(Button{Label: "Delete category", Payload: "admin_delete_category"}),
			row(Button{Label: "Back", Payload: "admin_back"}),
		}}}, nil

	case ActionAdminAddCategory:
		sess.State = domain.StateAddingCategoryName
		return []Render{EditText{Text: "Send the new category name.", Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminAddSubcategory:
		mains, err := e.catalog.MainCategories(ctx)
		if err != nil {
			return nil, err
		}
		if len(mains) == 0 {
			return []Render{EditText{Text: "Create a main category first.", Keyboard: adminBackKeyboard()}}, nil
		}
		return []Render{EditText{Text: "Choose the parent category:", Keyboard: pickCategoryKeyboard(mains, "subcat_parent_")}}, nil

	case ActionSubcategoryParent:
		ad.ParentCategoryID = a.ID
		sess.State = domain.StateAddingSubcategory
		return []Render{EditText{Text: "Send the subcategory name.", Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminEditCategory:
		all, err := e.catalog.AllCategories(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return []Render{EditText{Text: "There are no categories yet.", Keyboard: adminBackKeyboard()}}, nil
		}
		return []Render{EditText{Text: "Choose a category to rename:", Keyboard: pickCategoryKeyboard(all, "edit_cat_")}}, nil

	case ActionEditCategory:
		ad.CategoryID = a.ID
		sess.State = domain.StateEditingCategoryName
		return []Render{EditText{Text: "Send the new name.", Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminDeleteCategory:
		all, err := e.catalog.AllCategories(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return []Render{EditText{Text: "There are no categories yet.", Keyboard: adminBackKeyboard()}}, nil
		}
		return []Render{EditText{Text: "Choose a category to delete:", Keyboard: pickCategoryKeyboard(all, "del_cat_")}}, nil

	case ActionDeleteCategory:
		err := e.catalog.DeleteCategory(ctx, a.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return []Render{EditText{Text: "Category not found.", Keyboard: adminBackKeyboard()}}, nil
		}
		if err != nil {
			return nil, err
		}
		return []Render{EditText{
			Text:     "Category deleted together with its subcategories and products.",
			Keyboard: adminBackKeyboard(),
		}}, nil

	case ActionAdminProducts:
		return []Render{EditText{Text: "Products", Keyboard: Keyboard{
			row(Button{Label: "Add product", Payload: "admin_add_product"}),
			row(Button{Label: "List products", Payload: "admin_list_products"}),
			row(Button{Label: "Edit product", Payload: "admin_edit_product"}),
			row(Button{Label: "Delete product", Payload: "admin_delete_product"}),
			row(Button{Label: "Back", Payload: "admin_back"}),
		}}}, nil

	case ActionAdminAddProduct:
		leaves, err := e.catalog.LeafCategories(ctx)
		if err != nil {
			return nil, err
		}
		if len(leaves) == 0 {
			return []Render{EditText{Text: "Create a category first.", Keyboard: adminBackKeyboard()}}, nil
		}
		return []Render{EditText{Text: "Choose the product's category:", Keyboard: pickCategoryKeyboard(leaves, "add_prod_cat_")}}, nil

	case ActionAddProductCategory:
		sess.Admin = &domain.AdminContext{ProductCategoryID: a.ID}
		sess.State = domain.StateAddingProductName
		return []Render{EditText{Text: "Send the product name.", Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminListProducts:
		products, err := e.catalog.AllProducts(ctx)
		if err != nil {
			return nil, err
		}
		return []Render{EditText{Text: productListText(products), Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminEditProduct:
		return e.pickProductView(ctx, "Choose a product to edit:", "edit_prod_")

	case ActionEditProduct:
		ad.ProductID = a.ID
		return []Render{EditText{Text: "What would you like to change?", Keyboard: Keyboard{
			row(Button{Label: "Name", Payload: "edit_prod_field_name"}),
			row(Button{Label: "Description", Payload: "edit_prod_field_description"}),
			row(Button{Label: "Price", Payload: "edit_prod_field_price"}),
			row(Button{Label: "Image", Payload: "edit_prod_field_image"}),
			row(Button{Label: "Back", Payload: "admin_back"}),
		}}}, nil

	case ActionEditProductField:
		switch a.Field {
		case "name", "description", "price", "image":
		default:
			return nil, nil
		}
		ad.ProductField = a.Field
		sess.State = domain.StateEditingProductValue
		return []Render{EditText{Text: editFieldPrompt(a.Field), Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminDeleteProduct:
		return e.pickProductView(ctx, "Choose a product to delete:", "del_prod_")

	case ActionDeleteProduct:
		err := e.catalog.DeleteProduct(ctx, a.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return []Render{EditText{Text: "Product not found.", Keyboard: adminBackKeyboard()}}, nil
		}
		if err != nil {
			return nil, err
		}
		return []Render{EditText{Text: "Product deleted.", Keyboard: adminBackKeyboard()}}, nil

	case ActionAdminBroadcast:
		sess.State = domain.StateComposingBroadcast
		return []Render{EditText{Text: "Send the broadcast text. It will go to every user.", Keyboard: adminBackKeyboard()}}, nil
	}
	return nil, nil
}

// adminText serves the text-awaiting administrative states. Invalid input
// re-prompts and stays in the same state.
func (e *Engine) adminText(ctx context.Context, sess *domain.Session, input string) ([]Render, error) {
	if sess.Admin == nil {
		sess.Admin = &domain.AdminContext{}
	}
	ad := sess.Admin

	switch sess.State {
	case domain.StateAddingAdminID:
		id, err := parseChatID(input)
		if err != nil {
			return []Render{text("Send a numeric chat id.")}, nil
		}
		err = e.admins.Add(ctx, id, sess.UserChatID)
		if errors.Is(err, domain.ErrAlreadyExists) {
			return e.toAdminMenu(sess, "Already an admin."), nil
		}
		if err != nil {
			return nil, err
		}
		return e.toAdminMenu(sess, fmt.Sprintf("Admin %d added.", id)), nil

	case domain.StateAddingReceiverID:
		id, err := parseChatID(input)
		if err != nil {
			return []Render{text("Send a numeric chat id.")}, nil
		}
		err = e.receivers.Add(ctx, id, sess.UserChatID)
		if errors.Is(err, domain.ErrAlreadyExists) {
			return e.toAdminMenu(sess, "Already a receiver."), nil
		}
		if err != nil {
			return nil, err
		}
		return e.toAdminMenu(sess, fmt.Sprintf("Receiver %d added.", id)), nil

	case domain.StateAddingCategoryName:
		if _, err := e.catalog.CreateCategory(ctx, input, nil); err != nil {
			return []Render{text("Send a non-empty category name.")}, nil
		}
		return e.toAdminMenu(sess, fmt.Sprintf("Category %q created.", strings.TrimSpace(input))), nil

	case domain.StateAddingSubcategory:
		parent := ad.ParentCategoryID
		if _, err := e.catalog.CreateCategory(ctx, input, &parent); err != nil {
			return []Render{text("Send a non-empty subcategory name.")}, nil
		}
		return e.toAdminMenu(sess, fmt.Sprintf("Subcategory %q created.", strings.TrimSpace(input))), nil

	case domain.StateEditingCategoryName:
		err := e.catalog.RenameCategory(ctx, ad.CategoryID, input)
		if errors.Is(err, domain.ErrNotFound) {
			return e.toAdminMenu(sess, "Category not found."), nil
		}
		if err != nil {
			return []Render{text("Send a non-empty name.")}, nil
		}
		return e.toAdminMenu(sess, "Category renamed."), nil

	case domain.StateAddingProductName:
		if strings.TrimSpace(input) == "" {
			return []Render{text("Send a non-empty product name.")}, nil
		}
		ad.ProductName = strings.TrimSpace(input)
		sess.State = domain.StateAddingProductDesc
		return []Render{text("Send the product description, or '-' to skip.")}, nil

	case domain.StateAddingProductDesc:
		if input != "-" {
			ad.ProductDesc = input
		}
		sess.State = domain.StateAddingProductPrice
		return []Render{text("Send the price, e.g. 24.90.")}, nil

	case domain.StateAddingProductPrice:
		cents, err := ParsePrice(input)
		if err != nil {
			return []Render{text("Send the price as a number, e.g. 24.90.")}, nil
		}
		ad.ProductPriceCents = cents
		sess.State = domain.StateAddingProductImage
		return []Render{text("Send the image URL, or '-' to skip.")}, nil

	case domain.StateAddingProductImage:
		image := ""
		if input != "-" {
			image = input
		}
		product, err := e.catalog.CreateProduct(ctx, catalogsvc.CreateProductInput{
			Name:        ad.ProductName,
			Description: ad.ProductDesc,
			PriceCents:  ad.ProductPriceCents,
			ImageURL:    image,
			CategoryID:  ad.ProductCategoryID,
		})
		if err != nil {
			return nil, err
		}
		return e.toAdminMenu(sess, fmt.Sprintf("Product %q created.", product.Name)), nil

	case domain.StateEditingProductValue:
		return e.applyProductEdit(ctx, sess, input)

	case domain.StateComposingBroadcast:
		audience, err := e.users.ListChatIDs(ctx)
		if err != nil {
			return nil, err
		}
		delivered := e.broadcast.Broadcast(ctx, audience, input)
		return e.toAdminMenu(sess, fmt.Sprintf("Broadcast delivered to %d of %d users.", delivered, len(audience))), nil
	}
	return nil, nil
}

func (e *Engine) applyProductEdit(ctx context.Context, sess *domain.Session, input string) ([]Render, error) {
	ad := sess.Admin
	var patch productrepo.Patch
	switch ad.ProductField {
	case "name":
		if strings.TrimSpace(input) == "" {
			return []Render{text("Send a non-empty name.")}, nil
		}
		v := strings.TrimSpace(input)
		patch.Name = &v
	case "description":
		v := input
		if v == "-" {
			v = ""
		}
		patch.Description = &v
	case "price":
		cents, err := ParsePrice(input)
		if err != nil {
			return []Render{text("Send the price as a number, e.g. 24.90.")}, nil
		}
		patch.PriceCents = &cents
	case "image":
		v := input
		if v == "-" {
			v = ""
		}
		patch.ImageURL = &v
	default:
		return e.toAdminMenu(sess, "Nothing to edit."), nil
	}

	err := e.catalog.UpdateProduct(ctx, ad.ProductID, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return e.toAdminMenu(sess, "Product not found."), nil
	}
	if err != nil {
		return nil, err
	}
	return e.toAdminMenu(sess, "Product updated."), nil
}

func (e *Engine) toAdminMenu(sess *domain.Session, msg string) []Render {
	sess.State = domain.StateAdminMenu
	sess.Admin = &domain.AdminContext{}
	return []Render{textKB(msg, adminMenuKeyboard())}
}

func (e *Engine) rosterView(ctx context.Context, store rosterStore, title, addPayload, delPayload string) ([]Render, error) {
	entries, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":\n")
	if len(entries) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, entry := range entries {
		fmt.Fprintf(&b, "%d\n", entry.ChatID)
	}
	return []Render{EditText{Text: b.String(), Keyboard: Keyboard{
		row(Button{Label: "Add", Payload: addPayload}),
		row(Button{Label: "Remove", Payload: delPayload}),
		row(Button{Label: "Back", Payload: "admin_back"}),
	}}}, nil
}

func (e *Engine) rosterRemovalView(ctx context.Context, store rosterStore, title, prefix string) ([]Render, error) {
	entries, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []Render{EditText{Text: "The list is empty.", Keyboard: adminBackKeyboard()}}, nil
	}
	var kb Keyboard
	for _, entry := range entries {
		kb = append(kb, row(Button{
			Label:   strconv.FormatInt(entry.ChatID, 10),
			Payload: prefix + strconv.FormatInt(entry.ChatID, 10),
		}))
	}
	kb = append(kb, row(Button{Label: "Back", Payload: "admin_back"}))
	return []Render{EditText{Text: title, Keyboard: kb}}, nil
}

func (e *Engine) pickProductView(ctx context.Context, title, prefix string) ([]Render, error) {
	products, err := e.catalog.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []Render{EditText{Text: "There are no products yet.", Keyboard: adminBackKeyboard()}}, nil
	}
	var kb Keyboard
	for _, p := range products {
		kb = append(kb, row(Button{
			Label:   fmt.Sprintf("%s (%s)", p.Name, Money(p.PriceCents)),
			Payload: prefix + p.ID,
		}))
	}
	kb = append(kb, row(Button{Label: "Back", Payload: "admin_back"}))
	return []Render{EditText{Text: title, Keyboard: kb}}, nil
}

func pickCategoryKeyboard(categories []domain.Category, prefix string) Keyboard {
	var kb Keyboard
	for _, c := range categories {
		kb = append(kb, row(Button{Label: c.Name, Payload: prefix + c.ID}))
	}
	kb = append(kb, row(Button{Label: "Back", Payload: "admin_back"}))
	return kb
}

func productListText(products []domain.Product) string {
	if len(products) == 0 {
		return "There are no products yet."
	}
	var b strings.Builder
	b.WriteString("Products:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "%s: %s\n", p.Name, Money(p.PriceCents))
	}
	return b.String()
}

func parseChatID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid chat id")
	}
	return id, nil
}
