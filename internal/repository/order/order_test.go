package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"orderbot/internal/domain"
	"orderbot/internal/migrate"
)

func TestPostgres_CreateAndListByUser(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	const user = int64(999001)

	created, err := repo.Create(ctx, domain.Order{
		OrderNumber:  1,
		UserChatID:   user,
		CustomerName: "Alice",
		Phone:        "+375291234567",
		DeliveryType: domain.DeliveryPickup,
		Items: []domain.CartLine{
			{ProductID: "5f0c43a4-4a15-4b5f-8c9e-111111111111", ProductName: "Philadelphia", Quantity: 2, UnitPriceCents: 2490},
			{ProductID: "5f0c43a4-4a15-4b5f-8c9e-222222222222", ProductName: "Ginger", Quantity: 1, UnitPriceCents: 150},
		},
		ItemsTotalCents: 5130,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing generated fields: %+v", created)
	}
	if created.Status != domain.OrderStatusNew {
		t.Fatalf("expected status new, got %q", created.Status)
	}

	orders, err := repo.ListByUser(ctx, user, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	got := orders[0]
	if got.ItemsTotalCents != 5130 || len(got.Items) != 2 {
		t.Fatalf("items not preserved: %+v", got)
	}
	if got.Items[0].ProductName != "Philadelphia" || got.Items[0].Quantity != 2 {
		t.Fatalf("item snapshot lost: %+v", got.Items[0])
	}
}

func TestPostgres_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, domain.Order{
		OrderNumber:  2,
		UserChatID:   999002,
		CustomerName: "Bob",
		Phone:        "+375290000000",
		DeliveryType: domain.DeliveryDelivery,
		Items:        []domain.CartLine{{ProductID: "5f0c43a4-4a15-4b5f-8c9e-333333333333", ProductName: "Tom yam", Quantity: 1, UnitPriceCents: 1800}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpdateStatus(ctx, created.ID, domain.OrderStatusPreparing); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	orders, err := repo.ListByUser(ctx, 999002, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if orders[0].Status != domain.OrderStatusPreparing {
		t.Fatalf("status not updated: %q", orders[0].Status)
	}

	err = repo.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", domain.OrderStatusCancelled)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE orders`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
