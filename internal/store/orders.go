package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"voice-orders/pkg/models"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, customer_name, customer_phone, customer_address, items,
               special_instructions, status, created_at, updated_at
        FROM orders
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	row := s.pool.QueryRow(ctx, `
        SELECT id, customer_name, customer_phone, customer_address, items,
               special_instructions, status, created_at, updated_at
        FROM orders
        WHERE id = $1
    `, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

// SaveOrder upserts by id. updated_at is always stamped inside the write;
// the caller's local timestamp does not survive the round trip, so the
// order struct is refreshed with the stored timestamps before returning.
func (s *Store) SaveOrder(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
        INSERT INTO orders (id, customer_name, customer_phone, customer_address,
                            items, special_instructions, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
        ON CONFLICT (id) DO UPDATE SET
            customer_name = EXCLUDED.customer_name,
            customer_phone = EXCLUDED.customer_phone,
            customer_address = EXCLUDED.customer_address,
            items = EXCLUDED.items,
            special_instructions = EXCLUDED.special_instructions,
            status = EXCLUDED.status,
            updated_at = now()
        RETURNING created_at, updated_at
    `, order.ID, order.CustomerName, order.CustomerPhone, order.CustomerAddress,
		itemsJSON, order.SpecialInstructions, order.Status, order.CreatedAt,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

type pgxRow interface {
	Scan(dest ...any) error
}

func scanOrder(row pgxRow) (models.Order, error) {
	var order models.Order
	var itemsJSON []byte

	err := row.Scan(&order.ID, &order.CustomerName, &order.CustomerPhone,
		&order.CustomerAddress, &itemsJSON, &order.SpecialInstructions,
		&order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return models.Order{}, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return models.Order{}, fmt.Errorf("unmarshal order items: %w", err)
		}
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	if order.Status == "" {
		order.Status = models.StatusNew
	}
	return order, nil
}
