package service

import (
	"context"
	"strings"
	"testing"

	"greenshop/internal/domain"
	"greenshop/internal/events"
	"greenshop/internal/kv"
	"greenshop/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	keys     []string
	payloads []interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload interface{}) error {
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newCheckoutFixture(t *testing.T) (OrderService, repository.CartRepository, repository.OrderRepository, *recordingPublisher) {
	t.Helper()
	store := kv.NewMemoryStore()
	cart := repository.NewCartRepository(store)
	orders := repository.NewOrderRepository(store)
	publisher := &recordingPublisher{}
	svc := NewOrderService(orders, cart, publisher, zap.NewNop())
	return svc, cart, orders, publisher
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	svc, _, orders, publisher := newCheckoutFixture(t)

	_, err := svc.Checkout(ctx, domain.CustomerInfo{Name: "A", Phone: "0901", Address: "HN"})
	require.ErrorIs(t, err, ErrEmptyCart)

	persisted, err := orders.List(ctx)
	require.NoError(t, err)
	require.Empty(t, persisted)
	require.Empty(t, publisher.keys)
}

func TestCheckoutSnapshotsCartAndClearsIt(t *testing.T) {
	ctx := context.Background()
	svc, cart, orders, publisher := newCheckoutFixture(t)

	_, err := cart.AddItem(ctx, domain.Product{ID: "p1", Name: "Áo thun", Price: 189000}, 2)
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, domain.Product{ID: "p2", Name: "Tai nghe", Price: 450000}, 1)
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, domain.CustomerInfo{
		Name:    "Nguyễn Văn A",
		Phone:   "0901234567",
		Address: "12 Lý Thường Kiệt, Hà Nội",
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(order.ID, "ORD-"))
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Equal(t, 189000*2+450000*1.0, order.TotalAmount)
	require.Len(t, order.Items, 2)
	require.Equal(t, "Nguyễn Văn A", order.CustomerName)
	require.NotEmpty(t, order.CreatedAt)

	// Order persisted, cart cleared.
	persisted, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	require.Equal(t, order.ID, persisted[0].ID)

	count, err := cart.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	// Exactly one order.created event.
	require.Equal(t, []string{events.OrderCreatedKey}, publisher.keys)
	event, ok := publisher.payloads[0].(events.OrderCreatedEvent)
	require.True(t, ok)
	require.Equal(t, order.ID, event.OrderID)
	require.Equal(t, order.TotalAmount, event.TotalAmount)
	require.Equal(t, 2, event.ItemCount)
}

func TestCheckoutOrderSurvivesProductEdits(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	catalog := repository.NewCatalogRepository(store)
	cart := repository.NewCartRepository(store)
	orders := repository.NewOrderRepository(store)
	svc := NewOrderService(orders, cart, events.NopPublisher{}, zap.NewNop())

	product := domain.Product{ID: "p1", Name: "Áo thun", Price: 100000}
	_, err := cart.AddItem(ctx, product, 1)
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, domain.CustomerInfo{Name: "A", Phone: "0901", Address: "HN"})
	require.NoError(t, err)

	// Editing the catalog afterwards does not touch the snapshot.
	product.Price = 999999
	_, err = catalog.UpdateProduct(ctx, product)
	require.NoError(t, err)

	persisted, err := orders.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 100000.0, persisted[0].Items[0].Price)
	require.Equal(t, order.TotalAmount, persisted[0].TotalAmount)
}

func TestSetStatusDelegates(t *testing.T) {
	ctx := context.Background()
	svc, cart, _, _ := newCheckoutFixture(t)

	_, err := cart.AddItem(ctx, domain.Product{ID: "p1", Price: 1000}, 1)
	require.NoError(t, err)
	order, err := svc.Checkout(ctx, domain.CustomerInfo{Name: "A", Phone: "0901", Address: "HN"})
	require.NoError(t, err)

	orders, err := svc.SetStatus(ctx, order.ID, domain.OrderStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCompleted, orders[0].Status)
}
