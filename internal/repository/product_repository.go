package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/model"
)

// Stock status buckets accepted by the catalog filter.
const (
	StockInStock    = "in_stock"
	StockLowStock   = "low_stock"
	StockOutOfStock = "out_of_stock"
)

// Sort orders accepted by the catalog filter.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter describes one catalog query. All predicates are
// conjunctive; zero values mean "not filtered" except the price
// bounds, which are always applied.
type ProductFilter struct {
	Search      string
	Category    string
	MinPrice    float64
	MaxPrice    float64
	StockStatus string
	SortBy      string
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List runs one parameterized query applying every active predicate.
// LOWER() keeps the substring match case-insensitive across dialects
// (MySQL in production, sqlite in tests).
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	q = q.Where("price >= ? AND price <= ?", filter.MinPrice, filter.MaxPrice)

	switch filter.StockStatus {
	case StockInStock:
		q = q.Where("stock >= ?", model.InStockMin)
	case StockLowStock:
		q = q.Where("stock > 0 AND stock < ?", model.InStockMin)
	case StockOutOfStock:
		q = q.Where("stock = 0")
	}

	// Secondary id key keeps the ordering total on ties.
	switch filter.SortBy {
	case SortPriceAsc:
		q = q.Order("price ASC, id ASC")
	case SortPriceDesc:
		q = q.Order("price DESC, id ASC")
	default:
		q = q.Order("created_at DESC, id DESC")
	}

	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category = ?", category).Count(&count).Error
	return count, err
}
