package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed rows use fixed ids so repeated runs update in place instead of piling
// up duplicates.
type categorySeed struct {
	ID       string
	Name     string
	ParentID string
	Sort     int
}

type productSeed struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	PriceCents  int64
	Sort        int
}

var categories = []categorySeed{
	{ID: "a1000000-0000-4000-8000-000000000001", Name: "Sushi", Sort: 1},
	{ID: "a1000000-0000-4000-8000-000000000002", Name: "Classic rolls", ParentID: "a1000000-0000-4000-8000-000000000001", Sort: 1},
	{ID: "a1000000-0000-4000-8000-000000000003", Name: "Baked rolls", ParentID: "a1000000-0000-4000-8000-000000000001", Sort: 2},
	{ID: "a1000000-0000-4000-8000-000000000004", Name: "Tempura rolls", ParentID: "a1000000-0000-4000-8000-000000000001", Sort: 3},
	{ID: "a1000000-0000-4000-8000-000000000005", Name: "Hot dishes", Sort: 2},
	{ID: "a1000000-0000-4000-8000-000000000006", Name: "Sauces and extras", Sort: 3},
}

var products = []productSeed{
	{ID: "b2000000-0000-4000-8000-000000000001", CategoryID: "a1000000-0000-4000-8000-000000000002", Name: "Philadelphia", Description: "Salmon, cream cheese, cucumber", PriceCents: 2490, Sort: 1},
	{ID: "b2000000-0000-4000-8000-000000000002", CategoryID: "a1000000-0000-4000-8000-000000000002", Name: "California", Description: "Crab, avocado, tobiko", PriceCents: 1990, Sort: 2},
	{ID: "b2000000-0000-4000-8000-000000000003", CategoryID: "a1000000-0000-4000-8000-000000000003", Name: "Baked salmon roll", Description: "Salmon under cheese cap", PriceCents: 2250, Sort: 1},
	{ID: "b2000000-0000-4000-8000-000000000004", CategoryID: "a1000000-0000-4000-8000-000000000004", Name: "Shrimp tempura roll", Description: "Crispy shrimp, spicy sauce", PriceCents: 2390, Sort: 1},
	{ID: "b2000000-0000-4000-8000-000000000005", CategoryID: "a1000000-0000-4000-8000-000000000005", Name: "Tom yam", Description: "Spicy soup with shrimp", PriceCents: 1800, Sort: 1},
	{ID: "b2000000-0000-4000-8000-000000000006", CategoryID: "a1000000-0000-4000-8000-000000000005", Name: "Miso soup", Description: "Classic miso with tofu", PriceCents: 950, Sort: 2},
	{ID: "b2000000-0000-4000-8000-000000000007", CategoryID: "a1000000-0000-4000-8000-000000000006", Name: "Ginger", Description: "", PriceCents: 150, Sort: 1},
	{ID: "b2000000-0000-4000-8000-000000000008", CategoryID: "a1000000-0000-4000-8000-000000000006", Name: "Wasabi", Description: "", PriceCents: 150, Sort: 2},
}

// Apply inserts demo catalog data for manual testing. With a non-zero
// adminChatID that chat is also registered as admin and order receiver.
// Idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool, adminChatID int64) error {
	for _, c := range categories {
		if err := upsertCategory(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	if adminChatID != 0 {
		if err := ensureRosters(ctx, pool, adminChatID); err != nil {
			return fmt.Errorf("ensure rosters: %w", err)
		}
	}
	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categories (id, name, parent_id, sort_order)
VALUES ($1, $2, NULLIF($3, '')::uuid, $4)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    parent_id = EXCLUDED.parent_id,
    sort_order = EXCLUDED.sort_order
`
	_, err := pool.Exec(ctx, q, c.ID, c.Name, c.ParentID, c.Sort)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price_cents, category_id, is_active, sort_order)
VALUES ($1, $2, $3, $4, $5, true, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category_id = EXCLUDED.category_id,
    sort_order = EXCLUDED.sort_order
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.CategoryID, p.Sort)
	return err
}

func ensureRosters(ctx context.Context, pool *pgxpool.Pool, chatID int64) error {
	for _, table := range []string{"admins", "receivers"} {
		q := fmt.Sprintf(`INSERT INTO %s (chat_id, added_by) VALUES ($1, $1) ON CONFLICT (chat_id) DO NOTHING`, table)
		if _, err := pool.Exec(ctx, q, chatID); err != nil {
			return err
		}
	}
	return nil
}
