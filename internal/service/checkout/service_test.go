package checkout

import (
	"context"
	"errors"
	"testing"

	"orderbot/internal/domain"
)

type stubOrders struct {
	created    []domain.Order
	createErr  error
	byUser     []domain.Order
	lastStatus string
	lastID     string
}

func (s *stubOrders) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	o.ID = "order-id"
	s.created = append(s.created, o)
	return &o, nil
}

func (s *stubOrders) ListByUser(_ context.Context, _ int64, _ int) ([]domain.Order, error) {
	return s.byUser, nil
}

func (s *stubOrders) List(_ context.Context, _ int) ([]domain.Order, error) {
	return s.byUser, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id, status string) error {
	s.lastID = id
	s.lastStatus = status
	return nil
}

type stubCarts struct {
	cleared []int64
}

func (s *stubCarts) Clear(_ context.Context, userChatID int64) error {
	s.cleared = append(s.cleared, userChatID)
	return nil
}

type stubCounter struct {
	value int64
}

func (s *stubCounter) Next(_ context.Context, _ string) (int64, error) {
	s.value++
	return s.value, nil
}

type recordingNotifier struct {
	orders []*domain.Order
}

func (n *recordingNotifier) OrderCreated(_ context.Context, o *domain.Order) {
	n.orders = append(n.orders, o)
}

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: "a", ProductName: "Salmon Classic", Quantity: 2, UnitPriceCents: 2490},
		{ProductID: "b", ProductName: "Soy Sauce", Quantity: 1, UnitPriceCents: 150},
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := New(&stubOrders{}, &stubCarts{}, &stubCounter{}, nil, nil)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{DeliveryType: domain.DeliveryPickup})
	if err == nil || err.Error() != "cart is empty" {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestPlaceOrderUnknownDeliveryType(t *testing.T) {
	svc := New(&stubOrders{}, &stubCarts{}, &stubCounter{}, nil, nil)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{Lines: sampleLines(), DeliveryType: "teleport"})
	if err == nil || err.Error() != "unknown delivery type" {
		t.Fatalf("expected delivery type error, got %v", err)
	}
}

func TestPlaceOrderPickupScenario(t *testing.T) {
	orders := &stubOrders{}
	carts := &stubCarts{}
	notifier := &recordingNotifier{}
	svc := New(orders, carts, &stubCounter{}, notifier, nil)

	got, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserChatID:   42,
		CustomerName: "Ann",
		Phone:        "+375291112233",
		Address:      "12a Railway St",
		DeliveryType: domain.DeliveryPickup,
		Lines:        sampleLines(),
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if got.ItemsTotalCents != 5130 {
		t.Fatalf("items total = %d, want 5130", got.ItemsTotalCents)
	}
	if got.DeliveryCostCents != 0 {
		t.Fatalf("pickup delivery cost = %d, want 0", got.DeliveryCostCents)
	}
	if got.OrderNumber != 1 {
		t.Fatalf("first order number = %d, want 1", got.OrderNumber)
	}
	if got.Status != domain.OrderStatusNew {
		t.Fatalf("status = %q, want new", got.Status)
	}
	if len(carts.cleared) != 1 || carts.cleared[0] != 42 {
		t.Fatalf("cart not cleared for user, cleared=%v", carts.cleared)
	}
	if len(notifier.orders) != 1 || notifier.orders[0].OrderNumber != 1 {
		t.Fatalf("notifier not told about the order")
	}
}

func TestPlaceOrderSequentialNumbers(t *testing.T) {
	svc := New(&stubOrders{}, &stubCarts{}, &stubCounter{}, nil, nil)

	first, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserChatID: 1, DeliveryType: domain.DeliveryPickup, Lines: sampleLines(),
	})
	if err != nil {
		t.Fatalf("first order: %v", err)
	}
	second, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserChatID: 2, DeliveryType: domain.DeliveryDelivery, DeliveryCostCents: 400, Lines: sampleLines(),
	})
	if err != nil {
		t.Fatalf("second order: %v", err)
	}
	if second.OrderNumber != first.OrderNumber+1 {
		t.Fatalf("numbers %d then %d, want consecutive", first.OrderNumber, second.OrderNumber)
	}
}

func TestPlaceOrderSnapshotDoesNotAliasInput(t *testing.T) {
	orders := &stubOrders{}
	svc := New(orders, &stubCarts{}, &stubCounter{}, nil, nil)

	lines := sampleLines()
	if _, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserChatID: 1, DeliveryType: domain.DeliveryPickup, Lines: lines,
	}); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	lines[0].Quantity = 99
	if orders.created[0].Items[0].Quantity != 2 {
		t.Fatalf("order items alias the live slice")
	}
}

func TestSetStatusValidation(t *testing.T) {
	orders := &stubOrders{}
	svc := New(orders, &stubCarts{}, &stubCounter{}, nil, nil)

	if err := svc.SetStatus(context.Background(), "o1", "vanished"); err == nil {
		t.Fatalf("expected unknown status error")
	}
	if err := svc.SetStatus(context.Background(), "o1", domain.OrderStatusDelivering); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if orders.lastID != "o1" || orders.lastStatus != domain.OrderStatusDelivering {
		t.Fatalf("status update not forwarded: %s %s", orders.lastID, orders.lastStatus)
	}
}

func TestPlaceOrderCounterError(t *testing.T) {
	svc := New(&stubOrders{}, &stubCarts{}, failingCounter{}, nil, nil)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserChatID: 1, DeliveryType: domain.DeliveryPickup, Lines: sampleLines(),
	})
	if err == nil || !errors.Is(err, errCounter) {
		t.Fatalf("expected counter error, got %v", err)
	}
}

var errCounter = errors.New("counter down")

type failingCounter struct{}

func (failingCounter) Next(_ context.Context, _ string) (int64, error) {
	return 0, errCounter
}
