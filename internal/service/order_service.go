package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"greenshop/internal/domain"
	"greenshop/internal/events"
	"greenshop/internal/repository"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderService orchestrates checkout: it snapshots the cart into a new
// order and clears the cart. This is the only operation spanning two
// collections and it is not atomic; the underlying store has no cross-key
// transactions, so a failed cart clear after a persisted order leaves the
// two collections desynchronized.
type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Checkout(ctx context.Context, info domain.CustomerInfo) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) ([]domain.Order, error)
}

type orderService struct {
	orders    repository.OrderRepository
	cart      repository.CartRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(
	orders repository.OrderRepository,
	cart repository.CartRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		cart:      cart,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns all orders, newest first.
func (s *orderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// Checkout creates a pending order from the current cart snapshot and
// clears the cart. An empty cart returns ErrEmptyCart and leaves the
// order collection untouched.
func (s *orderService) Checkout(ctx context.Context, info domain.CustomerInfo) (*domain.Order, error) {
	items, err := s.cart.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	now := time.Now()
	order := domain.Order{
		ID:              fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CustomerName:    info.Name,
		CustomerPhone:   info.Phone,
		CustomerAddress: info.Address,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now.UTC().Format(time.RFC3339),
	}

	if _, err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("order %s persisted but cart clear failed: %w", order.ID, err)
	}

	// Best-effort event; checkout already succeeded.
	event := events.OrderCreatedEvent{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   now,
	}
	if err := s.publisher.Publish(ctx, events.OrderCreatedKey, event); err != nil {
		s.logger.Warn("Failed to publish order created event",
			zap.Error(err),
			zap.String("order_id", order.ID),
		)
	}

	return &order, nil
}

// SetStatus updates the status of the order matching by id. Unknown ids
// leave the collection unchanged.
func (s *orderService) SetStatus(ctx context.Context, id string, status domain.OrderStatus) ([]domain.Order, error) {
	return s.orders.SetStatus(ctx, id, status)
}
