package orders

import (
	"context"
	"fmt"

	"voice-orders/internal/status"
	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"
)

type Store interface {
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id string) (models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error
}

type Publisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

type Service struct {
	store     Store
	publisher Publisher
	logger    *logger.Logger
}

func NewService(st Store, publisher Publisher, log *logger.Logger) *Service {
	return &Service{
		store:     st,
		publisher: publisher,
		logger:    log,
	}
}

// List returns orders newest first, optionally filtered to a status set.
func (s *Service) List(ctx context.Context, statuses []string) ([]models.Order, error) {
	orders, err := s.store.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return orders, nil
	}

	wanted := map[string]bool{}
	for _, st := range statuses {
		wanted[st] = true
	}

	filtered := []models.Order{}
	for _, order := range orders {
		if wanted[order.Status] {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

// UpdateStatus moves an order to the requested status. Only target
// membership in the allowed set is validated; see internal/status. The
// store stamps updatedAt as part of the write.
func (s *Service) UpdateStatus(ctx context.Context, requestID, id, target string) (models.Order, error) {
	if !status.ValidTarget(target) {
		return models.Order{}, status.ErrInvalidTarget
	}

	order, err := s.store.GetOrderByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	order.Status = target
	if err := s.store.SaveOrder(ctx, &order); err != nil {
		return models.Order{}, err
	}

	s.logger.Info(requestID, "order_status_updated",
		fmt.Sprintf("Order %s moved to %s", order.ID, target))

	if err := s.publisher.PublishOrderEvent(models.OrderEvent{
		Type:   models.EventUpdate,
		Record: models.RowFromOrder(order),
	}); err != nil {
		s.logger.Error(requestID, "event_publish_failed", "Failed to publish order event", err)
	}

	return order, nil
}
