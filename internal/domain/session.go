package domain

import "time"

// State names one step of a guided dialogue. It determines which event
// shapes the engine accepts next.
type State string

// Customer checkout flow states.
const (
	StateIdle                 State = "idle"
	StateAwaitingDeliveryType State = "awaiting_delivery_type"
	StateAwaitingAddress      State = "awaiting_address"
	StateAwaitingName         State = "awaiting_name"
	StateAwaitingPhone        State = "awaiting_phone"
	StateAwaitingComment      State = "awaiting_comment"
	StateAwaitingConfirmation State = "awaiting_confirmation"
)

// Administrative flow states. Each leaf state accepts exactly one input
// shape and returns to the admin menu on success.
const (
	StateAdminMenu           State = "admin_menu"
	StateAddingAdminID       State = "adding_admin_id"
	StateAddingReceiverID    State = "adding_receiver_id"
	StateAddingCategoryName  State = "adding_category_name"
	StateAddingSubcategory   State = "adding_subcategory_name"
	StateEditingCategoryName State = "editing_category_name"
	StateAddingProductName   State = "adding_product_name"
	StateAddingProductDesc   State = "adding_product_description"
	StateAddingProductPrice  State = "adding_product_price"
	StateAddingProductImage  State = "adding_product_image"
	StateEditingProductValue State = "editing_product_field_value"
	StateComposingBroadcast  State = "composing_broadcast"
)

// CheckoutContext carries the fields accumulated by the checkout flow.
// Lines is a snapshot of the cart taken when checkout starts; the live cart
// is only cleared once the order is confirmed.
type CheckoutContext struct {
	Lines             []CartLine `json:"lines"`
	DeliveryType      string     `json:"deliveryType,omitempty"`
	DeliveryCostCents int64      `json:"deliveryCostCents"`
	Address           string     `json:"address,omitempty"`
	Name              string     `json:"name,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Comment           string     `json:"comment,omitempty"`
}

// AdminContext carries the pending operands of the administrative flow.
type AdminContext struct {
	ParentCategoryID  string `json:"parentCategoryId,omitempty"`
	CategoryID        string `json:"categoryId,omitempty"`
	ProductID         string `json:"productId,omitempty"`
	ProductField      string `json:"productField,omitempty"`
	ProductCategoryID string `json:"productCategoryId,omitempty"`
	ProductName       string `json:"productName,omitempty"`
	ProductDesc       string `json:"productDesc,omitempty"`
	ProductPriceCents int64  `json:"productPriceCents,omitempty"`
}

// Session is the per-user conversational state. Exactly one of Checkout or
// Admin is non-nil while the matching flow is active; both are nil in Idle.
// Quantities (product id to picked quantity in the browse view) lives outside
// the flow contexts and survives flow resets.
type Session struct {
	UserChatID int64            `json:"userChatId"`
	State      State            `json:"state"`
	Checkout   *CheckoutContext `json:"checkout,omitempty"`
	Admin      *AdminContext    `json:"admin,omitempty"`
	Quantities map[string]int   `json:"quantities,omitempty"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// Reset returns the session to Idle and discards any in-flight flow context.
// Picked quantities are deliberately kept.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Checkout = nil
	s.Admin = nil
}

// InAdminFlow reports whether the session is in any administrative state.
func (s *Session) InAdminFlow() bool {
	switch s.State {
	case StateAdminMenu, StateAddingAdminID, StateAddingReceiverID,
		StateAddingCategoryName, StateAddingSubcategory, StateEditingCategoryName,
		StateAddingProductName, StateAddingProductDesc, StateAddingProductPrice,
		StateAddingProductImage, StateEditingProductValue, StateComposingBroadcast:
		return true
	}
	return false
}
