package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbot/internal/domain"
)

type recordingSender struct {
	mu   sync.Mutex
	fail map[int64]bool
	sent map[int64]string
}

func newRecordingSender(fail ...int64) *recordingSender {
	s := &recordingSender{fail: map[int64]bool{}, sent: map[int64]string{}}
	for _, id := range fail {
		s.fail[id] = true
	}
	return s
}

func (s *recordingSender) SendText(_ context.Context, chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[chatID] {
		return errors.New("unreachable")
	}
	s.sent[chatID] = text
	return nil
}

func TestFanoutCountsSuccesses(t *testing.T) {
	sender := newRecordingSender(2, 4)

	delivered := Fanout(context.Background(), sender, nil, []int64{1, 2, 3, 4, 5}, "hello")

	assert.Equal(t, 3, delivered)
	assert.Len(t, sender.sent, 3)
	assert.Equal(t, "hello", sender.sent[1])
	assert.NotContains(t, sender.sent, int64(2))
}

func TestFanoutEmptyAudience(t *testing.T) {
	sender := newRecordingSender()

	assert.Zero(t, Fanout(context.Background(), sender, nil, nil, "hello"))
}

func TestFanoutLargeAudience(t *testing.T) {
	sender := newRecordingSender()
	recipients := make([]int64, 100)
	for i := range recipients {
		recipients[i] = int64(i + 1)
	}

	delivered := Fanout(context.Background(), sender, nil, recipients, "hello")

	assert.Equal(t, 100, delivered)
}

type staticRoster struct {
	entries []domain.RosterEntry
	err     error
}

func (s staticRoster) List(context.Context) ([]domain.RosterEntry, error) {
	return s.entries, s.err
}

func TestOrderNotifierAlertsReceivers(t *testing.T) {
	sender := newRecordingSender()
	notifier := NewOrderNotifier(staticRoster{entries: []domain.RosterEntry{
		{ChatID: 100}, {ChatID: 200},
	}}, sender, nil)

	notifier.OrderCreated(context.Background(), &domain.Order{
		OrderNumber:  7,
		CustomerName: "Alice",
		Phone:        "+375291234567",
		DeliveryType: domain.DeliveryPickup,
		Address:      "12a Railway St",
		Items: []domain.CartLine{
			{ProductID: "p1", ProductName: "Philadelphia", Quantity: 2, UnitPriceCents: 2490},
		},
		ItemsTotalCents: 4980,
		Status:          domain.OrderStatusNew,
	})

	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[100], "New order #7")
	assert.Contains(t, sender.sent[100], "Philadelphia x2")
	assert.Contains(t, sender.sent[200], "Alice")
}

func TestOrderNotifierSurvivesRosterFailure(t *testing.T) {
	sender := newRecordingSender()
	notifier := NewOrderNotifier(staticRoster{err: errors.New("db down")}, sender, nil)

	notifier.OrderCreated(context.Background(), &domain.Order{OrderNumber: 1})

	assert.Empty(t, sender.sent)
}

func TestCombinedTellsEveryObserver(t *testing.T) {
	var calls []string
	a := observerFunc(func(*domain.Order) { calls = append(calls, "a") })
	b := observerFunc(func(*domain.Order) { calls = append(calls, "b") })

	Combined(a, b).OrderCreated(context.Background(), &domain.Order{})

	assert.Equal(t, []string{"a", "b"}, calls)
}

type observerFunc func(*domain.Order)

func (f observerFunc) OrderCreated(_ context.Context, o *domain.Order) { f(o) }
