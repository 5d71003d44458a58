package checkout

import (
	"context"
	"errors"
	"io"
	"log"

	"orderbot/internal/domain"
)

// orderNumberCounter names the durable sequence behind Order.OrderNumber.
const orderNumberCounter = "order_number"

type Service struct {
	orders   orderRepo
	carts    cartRepo
	counters counterRepo
	notifier Notifier
	logger   *log.Logger
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userChatID int64, limit int) ([]domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type cartRepo interface {
	Clear(ctx context.Context, userChatID int64) error
}

type counterRepo interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Notifier is told about every completed order. Delivery is best effort and
// must never fail the checkout.
type Notifier interface {
	OrderCreated(ctx context.Context, o *domain.Order)
}

func New(orders orderRepo, carts cartRepo, counters counterRepo, notifier Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, carts: carts, counters: counters, notifier: notifier, logger: logger}
}

type PlaceOrderInput struct {
	UserChatID        int64
	CustomerName      string
	Phone             string
	Address           string
	Comment           string
	DeliveryType      string
	DeliveryCostCents int64
	Lines             []domain.CartLine
}

// PlaceOrder turns the checkout snapshot into a persisted order: it computes
// the items total, draws the next order number, stores a deep copy of the
// lines, clears the live cart and announces the order. The stored items never
// alias the caller's slice.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if len(in.Lines) == 0 {
		return nil, errors.New("cart is empty")
	}
	if in.DeliveryType != domain.DeliveryPickup && in.DeliveryType != domain.DeliveryDelivery {
		return nil, errors.New("unknown delivery type")
	}

	var itemsTotal int64
	items := make([]domain.CartLine, len(in.Lines))
	copy(items, in.Lines)
	for _, l := range items {
		itemsTotal += l.LineTotalCents()
	}

	number, err := s.counters.Next(ctx, orderNumberCounter)
	if err != nil {
		return nil, err
	}

	created, err := s.orders.Create(ctx, domain.Order{
		OrderNumber:       number,
		UserChatID:        in.UserChatID,
		CustomerName:      in.CustomerName,
		Phone:             in.Phone,
		Address:           in.Address,
		Comment:           in.Comment,
		DeliveryType:      in.DeliveryType,
		DeliveryCostCents: in.DeliveryCostCents,
		Items:             items,
		ItemsTotalCents:   itemsTotal,
		Status:            domain.OrderStatusNew,
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, in.UserChatID); err != nil {
		// the order exists; a stale cart is recoverable by the user
		s.logger.Printf("checkout: clear cart chat_id=%d error=%v", in.UserChatID, err)
	}

	if s.notifier != nil {
		s.notifier.OrderCreated(ctx, created)
	}
	return created, nil
}

// History returns the user's most recent orders, newest first.
func (s *Service) History(ctx context.Context, userChatID int64, limit int) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userChatID, limit)
}

// Recent returns the latest orders across all users, for the operator API.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.orders.List(ctx, limit)
}

// SetStatus updates an order's status. Any known status is accepted in any
// order; progression is not enforced here.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if !domain.ValidOrderStatus(status) {
		return errors.New("unknown status")
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
