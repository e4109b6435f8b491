package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// Default price range applied when the caller sends no bounds.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
)

// ProductQuery carries raw catalog filter parameters as the handler
// collected them. Normalization (defaults, clamping, validation)
// happens in the service so every caller gets identical semantics.
type ProductQuery struct {
	Search      string
	Category    string
	MinPrice    float64
	MaxPrice    float64
	StockStatus string
	SortBy      string
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Stock       int
}

// ProductUpdate is a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Stock       *int
}

// CatalogService handles product reads and admin mutations.
type CatalogService interface {
	ListProducts(ctx context.Context, query ProductQuery) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, update ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
	}
}

// normalize turns a raw query into a repository filter. Malformed
// bounds are repaired rather than rejected: negatives clamp to zero
// and an inverted range is swapped, so the read path stays total.
func normalize(query ProductQuery) (repository.ProductFilter, error) {
	minPrice, maxPrice := query.MinPrice, query.MaxPrice
	if minPrice < 0 {
		minPrice = 0
	}
	if maxPrice < 0 {
		maxPrice = 0
	}
	if minPrice > maxPrice {
		minPrice, maxPrice = maxPrice, minPrice
	}

	switch query.StockStatus {
	case "", repository.StockInStock, repository.StockLowStock, repository.StockOutOfStock:
	default:
		return repository.ProductFilter{}, apperrors.ErrInvalidStockStatus
	}

	sortBy := query.SortBy
	switch sortBy {
	case "":
		sortBy = repository.SortNewest
	case repository.SortNewest, repository.SortPriceAsc, repository.SortPriceDesc:
	default:
		return repository.ProductFilter{}, apperrors.ErrInvalidSortBy
	}

	return repository.ProductFilter{
		Search:      query.Search,
		Category:    query.Category,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		StockStatus: query.StockStatus,
		SortBy:      sortBy,
	}, nil
}

// ListProducts returns every product satisfying all active predicates,
// in the requested order. Pure read, full result set.
func (s *catalogService) ListProducts(ctx context.Context, query ProductQuery) ([]model.Product, error) {
	filter, err := normalize(query)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// CreateProduct validates the category reference and persists the product.
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	category, err := s.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies a partial update. An update carrying no fields
// is rejected.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, update ProductUpdate) (*model.Product, error) {
	if update.Name == nil && update.Description == nil && update.Price == nil &&
		update.Category == nil && update.ImageURL == nil && update.Stock == nil {
		return nil, apperrors.ErrEmptyUpdate
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if update.Category != nil {
		category, err := s.resolveCategory(ctx, *update.Category)
		if err != nil {
			return nil, err
		}
		product.Category = category
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// resolveCategory matches a category reference ignoring case and
// returns its stored spelling. Products always carry that canonical
// name, so the exact-match category filter and the referenced-delete
// guard see every reference.
func (s *catalogService) resolveCategory(ctx context.Context, name string) (string, error) {
	category, err := s.categories.FindByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.ErrCategoryNotFound
		}
		return "", fmt.Errorf("resolve category: %w", err)
	}
	return category.Name, nil
}
