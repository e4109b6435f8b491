package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// UserService exposes user administration operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	// UpdateRole promotes or demotes a user between the user and admin
	// roles. The owner is untouchable and the owner role unassignable.
	UpdateRole(ctx context.Context, email, role string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateRole(ctx context.Context, email, role string) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, apperrors.ErrInvalidRole
	}

	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if target.Role == model.RoleOwner {
		return nil, apperrors.ErrCannotModifyOwner
	}

	if err := s.users.UpdateRole(ctx, email, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	target.Role = role
	return target, nil
}
