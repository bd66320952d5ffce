package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"greenshop/internal/domain"
	"greenshop/internal/kv"
)

const ordersKey = "greenshop_orders"

// OrderRepository holds the order collection. Orders are only ever
// inserted and status-mutated, never deleted.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Insert(ctx context.Context, order domain.Order) ([]domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) ([]domain.Order, error)
}

type orderRepository struct {
	store kv.Store
}

// NewOrderRepository creates an OrderRepository on top of the given store.
func NewOrderRepository(store kv.Store) OrderRepository {
	return &orderRepository{store: store}
}

// List returns the order collection, newest first. An absent key is an
// empty collection.
func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	raw, err := r.store.Get(ctx, ordersKey)
	if err != nil {
		if err == kv.ErrKeyNotFound {
			return []domain.Order{}, nil
		}
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// Insert prepends the order so listings stay most-recent-first.
func (r *orderRepository) Insert(ctx context.Context, order domain.Order) ([]domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	updated := append([]domain.Order{order}, orders...)
	if err := r.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// SetStatus replaces the status of the order matching by id. The store
// accepts any status value; one-directional transitions are a caller
// concern. An unknown id leaves the collection unchanged.
func (r *orderRepository) SetStatus(ctx context.Context, id string, status domain.OrderStatus) ([]domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
		}
	}

	if err := r.save(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) save(ctx context.Context, orders []domain.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}
	if err := r.store.Set(ctx, ordersKey, raw); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}
	return nil
}
