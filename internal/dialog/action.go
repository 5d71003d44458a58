package dialog

import "strings"

// ActionKind tags a parsed button payload.
type ActionKind string

const (
	ActionNoop           ActionKind = "noop"
	ActionCloseMenu      ActionKind = "close_menu"
	ActionBackToMenu     ActionKind = "back_to_menu"
	ActionBackToCategory ActionKind = "back_to_category"
	ActionOpenCategory   ActionKind = "open_category"
	ActionQtyPlus        ActionKind = "qty_plus"
	ActionQtyMinus       ActionKind = "qty_minus"
	ActionAddToCart      ActionKind = "add_to_cart"
	ActionCartPlus       ActionKind = "cart_plus"
	ActionCartMinus      ActionKind = "cart_minus"
	ActionCartRemove     ActionKind = "cart_remove"
	ActionCartClear      ActionKind = "cart_clear"
	ActionCheckout       ActionKind = "checkout"
	ActionChooseDelivery ActionKind = "choose_delivery"
	ActionCheckoutCancel ActionKind = "checkout_cancel"
	ActionSkipComment    ActionKind = "skip_comment"
	ActionConfirmOrder   ActionKind = "confirm_order"
	ActionCancelOrder    ActionKind = "cancel_order"

	ActionAdminClose          ActionKind = "admin_close"
	ActionAdminBack           ActionKind = "admin_back"
	ActionAdminAdmins         ActionKind = "admin_admins"
	ActionAdminReceivers      ActionKind = "admin_receivers"
	ActionAdminCategories     ActionKind = "admin_categories"
	ActionAdminProducts       ActionKind = "admin_products"
	ActionAdminBroadcast      ActionKind = "admin_broadcast"
	ActionAdminAddAdmin       ActionKind = "admin_add_admin"
	ActionAdminDelAdmin       ActionKind = "admin_del_admin"
	ActionRemoveAdmin         ActionKind = "remove_admin"
	ActionAdminAddReceiver    ActionKind = "admin_add_receiver"
	ActionAdminDelReceiver    ActionKind = "admin_del_receiver"
	ActionRemoveReceiver      ActionKind = "remove_receiver"
	ActionAdminAddCategory    ActionKind = "admin_add_category"
	ActionAdminAddSubcategory ActionKind = "admin_add_subcategory"
	ActionSubcategoryParent   ActionKind = "subcategory_parent"
	ActionAdminEditCategory   ActionKind = "admin_edit_category"
	ActionEditCategory        ActionKind = "edit_category"
	ActionAdminDeleteCategory ActionKind = "admin_delete_category"
	ActionDeleteCategory      ActionKind = "delete_category"
	ActionAdminAddProduct     ActionKind = "admin_add_product"
	ActionAddProductCategory  ActionKind = "add_product_category"
	ActionAdminListProducts   ActionKind = "admin_list_products"
	ActionAdminEditProduct    ActionKind = "admin_edit_product"
	ActionEditProduct         ActionKind = "edit_product"
	ActionEditProductField    ActionKind = "edit_product_field"
	ActionAdminDeleteProduct  ActionKind = "admin_delete_product"
	ActionDeleteProduct       ActionKind = "delete_product"
)

// Action is a parsed button payload: a kind plus at most one operand.
type Action struct {
	Kind  ActionKind
	ID    string
	Field string
}

// prefixed maps payload prefixes to kinds for payloads carrying an operand.
// Longer prefixes must be listed before their prefixes-of (edit_prod_field_
// before edit_prod_).
var prefixed = []struct {
	prefix string
	kind   ActionKind
}{
	{"cat_", ActionOpenCategory},
	{"back_to_cat_", ActionBackToCategory},
	{"qty_plus_", ActionQtyPlus},
	{"qty_minus_", ActionQtyMinus},
	{"add_cart_", ActionAddToCart},
	{"cart_plus_", ActionCartPlus},
	{"cart_minus_", ActionCartMinus},
	{"cart_remove_", ActionCartRemove},
	{"delivery_", ActionChooseDelivery},
	{"remove_admin_", ActionRemoveAdmin},
	{"remove_receiver_", ActionRemoveReceiver},
	{"subcat_parent_", ActionSubcategoryParent},
	{"edit_cat_", ActionEditCategory},
	{"del_cat_", ActionDeleteCategory},
	{"add_prod_cat_", ActionAddProductCategory},
	{"edit_prod_field_", ActionEditProductField},
	{"edit_prod_", ActionEditProduct},
	{"del_prod_", ActionDeleteProduct},
}

var bare = map[string]ActionKind{
	"noop":                  ActionNoop,
	"back_main":             ActionCloseMenu,
	"back_to_menu":          ActionBackToMenu,
	"cart_clear":            ActionCartClear,
	"checkout":              ActionCheckout,
	"checkout_cancel":       ActionCheckoutCancel,
	"skip_comment":          ActionSkipComment,
	"confirm_order":         ActionConfirmOrder,
	"cancel_order":          ActionCancelOrder,
	"admin_close":           ActionAdminClose,
	"admin_back":            ActionAdminBack,
	"admin_admins":          ActionAdminAdmins,
	"admin_receivers":       ActionAdminReceivers,
	"admin_categories":      ActionAdminCategories,
	"admin_products":        ActionAdminProducts,
	"admin_broadcast":       ActionAdminBroadcast,
	"admin_add_admin":       ActionAdminAddAdmin,
	"admin_del_admin":       ActionAdminDelAdmin,
	"admin_add_receiver":    ActionAdminAddReceiver,
	"admin_del_receiver":    ActionAdminDelReceiver,
	"admin_add_category":    ActionAdminAddCategory,
	"admin_add_subcategory": ActionAdminAddSubcategory,
	"admin_edit_category":   ActionAdminEditCategory,
	"admin_delete_category": ActionAdminDeleteCategory,
	"admin_add_product":     ActionAdminAddProduct,
	"admin_list_products":   ActionAdminListProducts,
	"admin_edit_product":    ActionAdminEditProduct,
	"admin_delete_product":  ActionAdminDeleteProduct,
}

// ParseAction decodes an opaque button payload into a typed action. The
// payload grammar is parsed exactly once, here; nothing downstream looks at
// prefix strings. Unknown payloads are reported, not errors.
func ParseAction(payload string) (Action, bool) {
	if kind, ok := bare[payload]; ok {
		return Action{Kind: kind}, true
	}
	for _, p := range prefixed {
		if strings.HasPrefix(payload, p.prefix) {
			operand := payload[len(p.prefix):]
			if operand == "" {
				return Action{}, false
			}
			if p.kind == ActionEditProductField {
				return Action{Kind: p.kind, Field: operand}, true
			}
			return Action{Kind: p.kind, ID: operand}, true
		}
	}
	return Action{}, false
}

// adminOnly reports whether an action requires operator permission.
func (a Action) adminOnly() bool {
	switch a.Kind {
	case ActionAdminClose, ActionAdminBack, ActionAdminAdmins, ActionAdminReceivers,
		ActionAdminCategories, ActionAdminProducts, ActionAdminBroadcast,
		ActionAdminAddAdmin, ActionAdminDelAdmin, ActionRemoveAdmin,
		ActionAdminAddReceiver, ActionAdminDelReceiver, ActionRemoveReceiver,
		ActionAdminAddCategory, ActionAdminAddSubcategory, ActionSubcategoryParent,
		ActionAdminEditCategory, ActionEditCategory, ActionAdminDeleteCategory,
		ActionDeleteCategory, ActionAdminAddProduct, ActionAddProductCategory,
		ActionAdminListProducts, ActionAdminEditProduct, ActionEditProduct,
		ActionEditProductField, ActionAdminDeleteProduct, ActionDeleteProduct:
		return true
	}
	return false
}
