package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"greenshop/internal/domain"
	"greenshop/internal/kv"
)

const cartKey = "greenshop_cart"

// CartListener is notified with the full cart after every successful
// mutation. Callers needing reactivity (badge counters, cross-process
// broadcasters) subscribe explicitly; listeners must not mutate the slice.
type CartListener func(items []domain.CartItem)

// CartRepository holds the single cart collection. Item ids are unique;
// adding an already-carted product merges quantities instead of
// duplicating a row.
type CartRepository interface {
	List(ctx context.Context) ([]domain.CartItem, error)
	AddItem(ctx context.Context, product domain.Product, quantity int) ([]domain.CartItem, error)
	SetQuantity(ctx context.Context, productID string, quantity int) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, productID string) ([]domain.CartItem, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Subscribe(listener CartListener)
}

type cartRepository struct {
	store kv.Store

	mu        sync.Mutex
	listeners []CartListener
}

// NewCartRepository creates a CartRepository on top of the given store.
func NewCartRepository(store kv.Store) CartRepository {
	return &cartRepository{store: store}
}

// List returns the cart collection. An absent key is an empty cart; no
// seeding happens here.
func (r *cartRepository) List(ctx context.Context) ([]domain.CartItem, error) {
	raw, err := r.store.Get(ctx, cartKey)
	if err != nil {
		if err == kv.ErrKeyNotFound {
			return []domain.CartItem{}, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

// AddItem puts quantity units of product into the cart, merging into the
// existing row when the product is already carted. Quantities below one
// are treated as one.
func (r *cartRepository) AddItem(ctx context.Context, product domain.Product, quantity int) ([]domain.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity += quantity
			merged = true
		}
	}
	if !merged {
		items = append(items, domain.CartItem{Product: product, Quantity: quantity})
	}

	if err := r.save(ctx, items); err != nil {
		return nil, err
	}
	r.notify(items)
	return items, nil
}

// SetQuantity sets the quantity of the row matching productID. A quantity
// of zero or less removes the row, identically to RemoveItem.
func (r *cartRepository) SetQuantity(ctx context.Context, productID string, quantity int) ([]domain.CartItem, error) {
	if quantity <= 0 {
		return r.RemoveItem(ctx, productID)
	}

	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity = quantity
		}
	}

	if err := r.save(ctx, items); err != nil {
		return nil, err
	}
	r.notify(items)
	return items, nil
}

// RemoveItem drops the row matching productID; unknown ids are no-ops.
func (r *cartRepository) RemoveItem(ctx context.Context, productID string) ([]domain.CartItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != productID {
			updated = append(updated, item)
		}
	}

	if err := r.save(ctx, updated); err != nil {
		return nil, err
	}
	r.notify(updated)
	return updated, nil
}

// Clear removes the whole cart collection.
func (r *cartRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, cartKey); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	r.notify([]domain.CartItem{})
	return nil
}

// Count returns the sum of quantities across all cart rows.
func (r *cartRepository) Count(ctx context.Context) (int, error) {
	items, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Subscribe registers a listener for cart change notifications.
func (r *cartRepository) Subscribe(listener CartListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *cartRepository) notify(items []domain.CartItem) {
	r.mu.Lock()
	listeners := make([]CartListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		listener(items)
	}
}

func (r *cartRepository) save(ctx context.Context, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.store.Set(ctx, cartKey, raw); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}
