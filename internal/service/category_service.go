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

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// CategoryService handles category reads and admin mutations. Name
// uniqueness ignores case; a category keeps its name (including a pure
// case change) without tripping the duplicate check.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, update CategoryUpdate) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) CategoryService {
	return &categoryService{
		categories: categories,
		products:   products,
	}
}

// ListCategories returns all categories, newest first.
func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves a category by ID.
func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

// CreateCategory rejects names already used by any category, ignoring case.
func (s *categoryService) CreateCategory(ctx context.Context, input CategoryInput) (*model.Category, error) {
	exists, err := s.categories.ExistsWithName(ctx, input.Name, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// UpdateCategory applies a partial update. The duplicate check
// excludes the record being updated, so renaming a category to its own
// name succeeds.
func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, update CategoryUpdate) (*model.Category, error) {
	if update.Name == nil && update.Description == nil {
		return nil, apperrors.ErrEmptyUpdate
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if update.Name != nil {
		exists, err := s.categories.ExistsWithName(ctx, *update.Name, id)
		if err != nil {
			return nil, fmt.Errorf("check category name: %w", err)
		}
		if exists {
			return nil, apperrors.ErrDuplicateCategory
		}
		category.Name = *update.Name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category unless products still reference it.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}

	inUse, err := s.products.CountByCategory(ctx, category.Name)
	if err != nil {
		return fmt.Errorf("count category references: %w", err)
	}
	if inUse > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
