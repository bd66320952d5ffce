package repository

import (
	"context"
	"sync/atomic"
	"testing"

	"greenshop/internal/domain"
	"greenshop/internal/kv"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// countingStore records how many writes reach the underlying store.
type countingStore struct {
	kv.Store
	sets atomic.Int64
}

func (s *countingStore) Set(ctx context.Context, key string, value []byte) error {
	s.sets.Add(1)
	return s.Store.Set(ctx, key, value)
}

func TestListProductsSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: kv.NewMemoryStore()}
	repo := NewCatalogRepository(store)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)
	require.Equal(t, "Áo Thun Cotton Organic Premium", products[0].Name)
	require.EqualValues(t, 1, store.sets.Load())

	// Seeded data is now persisted; subsequent reads do not write again.
	again, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, products, again)
	require.EqualValues(t, 1, store.sets.Load())
}

func TestListCategoriesSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: kv.NewMemoryStore()}
	repo := NewCatalogRepository(store)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 5)
	require.EqualValues(t, 1, store.sets.Load())

	_, err = repo.ListCategories(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, store.sets.Load())
}

func TestSeedingSkippedWhenCollectionExists(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "greenshop_products", []byte(`[]`)))

	repo := NewCatalogRepository(store)
	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestCreateProductPrepends(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(kv.NewMemoryStore())

	product := domain.Product{ID: "p-new", Name: "Nón lá", Price: 45000}
	products, err := repo.CreateProduct(ctx, product)
	require.NoError(t, err)
	require.Len(t, products, 7)
	require.Equal(t, "p-new", products[0].ID)
}

func TestUpdateProductUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(kv.NewMemoryStore())

	before, err := repo.ListProducts(ctx)
	require.NoError(t, err)

	after, err := repo.UpdateProduct(ctx, domain.Product{ID: "does-not-exist", Name: "ghost"})
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestDeleteProductRemovesAllMatches(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(kv.NewMemoryStore())

	_, err := repo.CreateProduct(ctx, domain.Product{ID: "dup", Name: "a"})
	require.NoError(t, err)
	_, err = repo.CreateProduct(ctx, domain.Product{ID: "dup", Name: "b"})
	require.NoError(t, err)

	products, err := repo.DeleteProduct(ctx, "dup")
	require.NoError(t, err)
	for _, p := range products {
		require.NotEqual(t, "dup", p.ID)
	}
}

func TestDeleteLastProductPersistsEmptyArray(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "greenshop_products", []byte(`[{"id":"only","name":"x","price":1}]`)))

	repo := NewCatalogRepository(store)
	products, err := repo.DeleteProduct(ctx, "only")
	require.NoError(t, err)
	require.Empty(t, products)

	raw, err := store.Get(ctx, "greenshop_products")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))
}

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(kv.NewMemoryStore())

	categories, err := repo.CreateCategory(ctx, domain.CategoryItem{ID: "sports", Label: "Thể thao", Icon: "⚽"})
	require.NoError(t, err)
	require.Equal(t, "sports", categories[len(categories)-1].ID)

	categories, err = repo.UpdateCategory(ctx, domain.CategoryItem{ID: "sports", Label: "Thể thao & Dã ngoại", Icon: "⚽"})
	require.NoError(t, err)
	require.Equal(t, "Thể thao & Dã ngoại", categories[len(categories)-1].Label)

	categories, err = repo.DeleteCategory(ctx, "sports")
	require.NoError(t, err)
	for _, c := range categories {
		require.NotEqual(t, "sports", c.ID)
	}
}

func TestProperty_ProductCreationPreservesAttributes(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a created product is retrievable with all attributes intact", prop.ForAll(
		func(id string, name string, price float64, rating float64, sold int) bool {
			ctx := context.Background()
			repo := NewCatalogRepository(kv.NewMemoryStore())

			product := domain.Product{
				ID:       id,
				Name:     name,
				Price:    price,
				Image:    "https://picsum.photos/seed/" + id + "/300",
				Rating:   rating,
				Sold:     sold,
				Location: "Hà Nội",
				Category: "fashion",
			}

			if _, err := repo.CreateProduct(ctx, product); err != nil {
				t.Logf("FAIL: failed to create product: %v", err)
				return false
			}

			products, err := repo.ListProducts(ctx)
			if err != nil {
				t.Logf("FAIL: failed to list products: %v", err)
				return false
			}

			if products[0] != product {
				t.Logf("FAIL: stored product %+v differs from %+v", products[0], product)
				return false
			}
			return true
		},
		gen.RegexMatch(`[a-z0-9-]{3,20}`),     // id
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),  // name
		gen.Float64Range(0.01, 99999999),      // price
		gen.Float64Range(0, 5),                // rating
		gen.IntRange(0, 100000),               // sold
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_DeleteAfterCreateRestoresCatalog(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("deleting a freshly created id restores the previous catalog", prop.ForAll(
		func(id string, name string) bool {
			ctx := context.Background()
			repo := NewCatalogRepository(kv.NewMemoryStore())

			before, err := repo.ListProducts(ctx)
			if err != nil {
				t.Logf("FAIL: failed to list products: %v", err)
				return false
			}

			if _, err := repo.CreateProduct(ctx, domain.Product{ID: id, Name: name, Price: 1000}); err != nil {
				t.Logf("FAIL: failed to create product: %v", err)
				return false
			}

			after, err := repo.DeleteProduct(ctx, id)
			if err != nil {
				t.Logf("FAIL: failed to delete product: %v", err)
				return false
			}

			if len(after) != len(before) {
				t.Logf("FAIL: expected %d products after delete, got %d", len(before), len(after))
				return false
			}
			for i := range before {
				if before[i] != after[i] {
					t.Logf("FAIL: product %d differs after delete", i)
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[a-z0-9]{8,16}`),     // id, distinct from the seeded numeric ids
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`), // name
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
