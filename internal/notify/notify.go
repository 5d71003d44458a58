package notify

import (
	"context"
	"io"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"orderbot/internal/dialog"
	"orderbot/internal/domain"
)

// maxInFlight bounds concurrent deliveries so a large audience does not open
// an unbounded number of outbound requests.
const maxInFlight = 8

// Sender delivers one text message to one recipient.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Fanout delivers text to every recipient concurrently and returns how many
// deliveries succeeded. A failed recipient is logged and skipped; it never
// aborts the rest of the fan-out.
func Fanout(ctx context.Context, sender Sender, logger *log.Logger, recipients []int64, text string) int {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var delivered atomic.Int64
	g := &errgroup.Group{}
	g.SetLimit(maxInFlight)
	for _, chatID := range recipients {
		g.Go(func() error {
			if err := sender.SendText(ctx, chatID, text); err != nil {
				logger.Printf("notify: send chat_id=%d error=%v", chatID, err)
				return nil
			}
			delivered.Add(1)
			return nil
		})
	}
	g.Wait()
	return int(delivered.Load())
}

// Broadcaster fans a text out to an explicit recipient list.
type Broadcaster struct {
	sender Sender
	logger *log.Logger
}

func NewBroadcaster(sender Sender, logger *log.Logger) *Broadcaster {
	return &Broadcaster{sender: sender, logger: logger}
}

func (b *Broadcaster) Broadcast(ctx context.Context, recipients []int64, text string) int {
	return Fanout(ctx, b.sender, b.logger, recipients, text)
}

type rosterLister interface {
	List(ctx context.Context) ([]domain.RosterEntry, error)
}

// OrderObserver is told about completed orders. Implementations must treat
// delivery as best effort.
type OrderObserver interface {
	OrderCreated(ctx context.Context, o *domain.Order)
}

// OrderNotifier alerts every registered receiver when an order is placed.
type OrderNotifier struct {
	receivers rosterLister
	sender    Sender
	logger    *log.Logger
}

func NewOrderNotifier(receivers rosterLister, sender Sender, logger *log.Logger) *OrderNotifier {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &OrderNotifier{receivers: receivers, sender: sender, logger: logger}
}

func (n *OrderNotifier) OrderCreated(ctx context.Context, o *domain.Order) {
	entries, err := n.receivers.List(ctx)
	if err != nil {
		n.logger.Printf("notify: list receivers order=%s error=%v", o.ID, err)
		return
	}
	if len(entries) == 0 {
		return
	}
	recipients := make([]int64, 0, len(entries))
	for _, e := range entries {
		recipients = append(recipients, e.ChatID)
	}
	delivered := Fanout(ctx, n.sender, n.logger, recipients, dialog.FormatOrderAlert(o))
	n.logger.Printf("notify: order #%d alerted %d/%d receivers", o.OrderNumber, delivered, len(recipients))
}

// Combined fans OrderCreated out to several observers in order.
func Combined(observers ...OrderObserver) OrderObserver {
	return multiObserver(observers)
}

type multiObserver []OrderObserver

func (m multiObserver) OrderCreated(ctx context.Context, o *domain.Order) {
	for _, obs := range m {
		obs.OrderCreated(ctx, o)
	}
}
