package store

import (
	"context"
	"fmt"

	"voice-orders/pkg/models"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, name, category, price, description, available
        FROM menu_items
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	menu := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price,
			&item.Description, &item.Available)
		if err != nil {
			return nil, err
		}
		menu = append(menu, item)
	}
	return menu, rows.Err()
}

// SaveMenu bulk-upserts the given items. The batch is not transactional
// across items; a partial failure may leave some rows written. Callers
// treat this as best-effort and re-fetch on error.
func (s *Store) SaveMenu(ctx context.Context, items []models.MenuItem) error {
	batch := &pgx.Batch{}

	for _, item := range items {
		batch.Queue(`
            INSERT INTO menu_items (id, name, category, price, description, available)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (id) DO UPDATE SET
                name = EXCLUDED.name,
                category = EXCLUDED.category,
                price = EXCLUDED.price,
                description = EXCLUDED.description,
                available = EXCLUDED.available
        `, item.ID, item.Name, item.Category, item.Price, item.Description, item.Available)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("save menu: %w", err)
		}
	}
	return br.Close()
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
