package repository

import (
	"context"
	"testing"

	"greenshop/internal/domain"
	"greenshop/internal/kv"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func testProduct(id string) domain.Product {
	return domain.Product{ID: id, Name: "Sản phẩm " + id, Price: 10000}
}

func TestCartListEmptyWhenAbsent(t *testing.T) {
	repo := NewCartRepository(kv.NewMemoryStore())

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCartAddMergesQuantities(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore())

	_, err := repo.AddItem(ctx, testProduct("p1"), 2)
	require.NoError(t, err)
	items, err := repo.AddItem(ctx, testProduct("p1"), 3)
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)
}

func TestCartAddCoercesQuantityToOne(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore())

	items, err := repo.AddItem(ctx, testProduct("p1"), 0)
	require.NoError(t, err)
	require.Equal(t, 1, items[0].Quantity)

	items, err = repo.AddItem(ctx, testProduct("p2"), -7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		require.Equal(t, 1, item.Quantity)
	}
}

func TestCartSetQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore())

	_, err := repo.AddItem(ctx, testProduct("p1"), 2)
	require.NoError(t, err)

	items, err := repo.SetQuantity(ctx, "p1", 0)
	require.NoError(t, err)
	require.Empty(t, items)

	_, err = repo.AddItem(ctx, testProduct("p2"), 1)
	require.NoError(t, err)
	items, err = repo.SetQuantity(ctx, "p2", -3)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore())

	_, err := repo.AddItem(ctx, testProduct("p1"), 2)
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	// Clearing an already empty cart works.
	require.NoError(t, repo.Clear(ctx))
}

func TestCartListenersObserveEveryMutation(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore())

	var snapshots [][]domain.CartItem
	repo.Subscribe(func(items []domain.CartItem) {
		snapshots = append(snapshots, items)
	})

	_, err := repo.AddItem(ctx, testProduct("p1"), 2)
	require.NoError(t, err)
	_, err = repo.SetQuantity(ctx, "p1", 4)
	require.NoError(t, err)
	_, err = repo.RemoveItem(ctx, "p1")
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx))

	require.Len(t, snapshots, 4)
	require.Equal(t, 2, snapshots[0][0].Quantity)
	require.Equal(t, 4, snapshots[1][0].Quantity)
	require.Empty(t, snapshots[2])
	require.Empty(t, snapshots[3])
}

func TestProperty_CartCountSumsQuantities(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("count equals the sum of item quantities after any add sequence", prop.ForAll(
		func(quantities []int) bool {
			ctx := context.Background()
			repo := NewCartRepository(kv.NewMemoryStore())

			expected := 0
			for i, q := range quantities {
				// Alternate between two products so merging is exercised.
				id := "even"
				if i%2 == 1 {
					id = "odd"
				}
				if _, err := repo.AddItem(ctx, testProduct(id), q); err != nil {
					t.Logf("FAIL: failed to add item: %v", err)
					return false
				}
				if q < 1 {
					q = 1
				}
				expected += q
			}

			count, err := repo.Count(ctx)
			if err != nil {
				t.Logf("FAIL: failed to count cart: %v", err)
				return false
			}
			if count != expected {
				t.Logf("FAIL: expected count %d, got %d", expected, count)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-2, 10)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SetQuantityNonPositiveEqualsRemove(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("setting a non-positive quantity and removing yield the same cart", prop.ForAll(
		func(initial int, target int) bool {
			ctx := context.Background()

			setRepo := NewCartRepository(kv.NewMemoryStore())
			removeRepo := NewCartRepository(kv.NewMemoryStore())

			for _, repo := range []CartRepository{setRepo, removeRepo} {
				if _, err := repo.AddItem(ctx, testProduct("keep"), 1); err != nil {
					t.Logf("FAIL: failed to add item: %v", err)
					return false
				}
				if _, err := repo.AddItem(ctx, testProduct("target"), initial); err != nil {
					t.Logf("FAIL: failed to add item: %v", err)
					return false
				}
			}

			afterSet, err := setRepo.SetQuantity(ctx, "target", target)
			if err != nil {
				t.Logf("FAIL: failed to set quantity: %v", err)
				return false
			}
			afterRemove, err := removeRepo.RemoveItem(ctx, "target")
			if err != nil {
				t.Logf("FAIL: failed to remove item: %v", err)
				return false
			}

			if len(afterSet) != len(afterRemove) {
				t.Logf("FAIL: carts differ in length: %d vs %d", len(afterSet), len(afterRemove))
				return false
			}
			for i := range afterSet {
				if afterSet[i] != afterRemove[i] {
					t.Logf("FAIL: carts differ at item %d", i)
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 10),
		gen.IntRange(-5, 0),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
