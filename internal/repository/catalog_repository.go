package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"greenshop/internal/domain"
	"greenshop/internal/kv"
)

// Storage keys, one per collection.
const (
	productsKey   = "greenshop_products"
	categoriesKey = "greenshop_categories"
)

// CatalogRepository defines product and category collection access.
// Every mutation reads the full collection, transforms it, writes it back
// and returns the updated collection.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, id string) ([]domain.Product, error)

	ListCategories(ctx context.Context) ([]domain.CategoryItem, error)
	CreateCategory(ctx context.Context, category domain.CategoryItem) ([]domain.CategoryItem, error)
	UpdateCategory(ctx context.Context, category domain.CategoryItem) ([]domain.CategoryItem, error)
	DeleteCategory(ctx context.Context, id string) ([]domain.CategoryItem, error)
}

type catalogRepository struct {
	store kv.Store
}

// NewCatalogRepository creates a CatalogRepository on top of the given store.
func NewCatalogRepository(store kv.Store) CatalogRepository {
	return &catalogRepository{store: store}
}

// ListProducts returns the product collection, seeding the fixed initial
// catalog with a single write when the key has never been written.
func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := r.store.Get(ctx, productsKey)
	if err != nil {
		if err == kv.ErrKeyNotFound {
			seed := seedProducts()
			if err := r.saveProducts(ctx, seed); err != nil {
				return nil, err
			}
			return seed, nil
		}
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// CreateProduct prepends the product so admin listings stay most-recent-first.
// A duplicate id is accepted and yields two records sharing an id.
func (r *catalogRepository) CreateProduct(ctx context.Context, product domain.Product) ([]domain.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	updated := append([]domain.Product{product}, products...)
	if err := r.saveProducts(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateProduct replaces the record matching by id, preserving the order of
// untouched records. An unknown id leaves the collection unchanged.
func (r *catalogRepository) UpdateProduct(ctx context.Context, product domain.Product) ([]domain.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == product.ID {
			products[i] = product
		}
	}

	if err := r.saveProducts(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteProduct removes the record matching by id. An unknown id is a
// silent no-op.
func (r *catalogRepository) DeleteProduct(ctx context.Context, id string) ([]domain.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			updated = append(updated, p)
		}
	}

	if err := r.saveProducts(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListCategories returns the category collection, seeding on first read.
func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.CategoryItem, error) {
	raw, err := r.store.Get(ctx, categoriesKey)
	if err != nil {
		if err == kv.ErrKeyNotFound {
			seed := seedCategories()
			if err := r.saveCategories(ctx, seed); err != nil {
				return nil, err
			}
			return seed, nil
		}
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	var categories []domain.CategoryItem
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// CreateCategory appends the category at the end of the collection.
func (r *catalogRepository) CreateCategory(ctx context.Context, category domain.CategoryItem) ([]domain.CategoryItem, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	updated := append(categories, category)
	if err := r.saveCategories(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateCategory replaces the record matching by id; unknown ids are no-ops.
func (r *catalogRepository) UpdateCategory(ctx context.Context, category domain.CategoryItem) ([]domain.CategoryItem, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		if categories[i].ID == category.ID {
			categories[i] = category
		}
	}

	if err := r.saveCategories(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory removes the record matching by id. Products referencing
// the category keep their slug and are orphaned silently.
func (r *catalogRepository) DeleteCategory(ctx context.Context, id string) ([]domain.CategoryItem, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]domain.CategoryItem, 0, len(categories))
	for _, c := range categories {
		if c.ID != id {
			updated = append(updated, c)
		}
	}

	if err := r.saveCategories(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *catalogRepository) saveProducts(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	if err := r.store.Set(ctx, productsKey, raw); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}
	return nil
}

func (r *catalogRepository) saveCategories(ctx context.Context, categories []domain.CategoryItem) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	if err := r.store.Set(ctx, categoriesKey, raw); err != nil {
		return fmt.Errorf("failed to write categories: %w", err)
	}
	return nil
}
