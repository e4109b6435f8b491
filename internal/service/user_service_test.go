package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func TestUserService_UpdateRole(t *testing.T) {
	t.Run("owner role is unassignable", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users)

		_, err := svc.UpdateRole(context.Background(), "a@example.com", model.RoleOwner)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users)

		_, err := svc.UpdateRole(context.Background(), "a@example.com", "superadmin")

		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users)

		users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.UpdateRole(context.Background(), "ghost@example.com", model.RoleAdmin)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("the owner cannot be demoted", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users)

		users.On("FindByEmail", mock.Anything, "owner@example.com").Return(&model.User{
			ID:    uuid.New(),
			Email: "owner@example.com",
			Role:  model.RoleOwner,
		}, nil)

		_, err := svc.UpdateRole(context.Background(), "owner@example.com", model.RoleUser)

		assert.ErrorIs(t, err, apperrors.ErrCannotModifyOwner)
		users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("promoting a user to admin succeeds", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users)

		users.On("FindByEmail", mock.Anything, "u@example.com").Return(&model.User{
			ID:    uuid.New(),
			Email: "u@example.com",
			Role:  model.RoleUser,
		}, nil)
		users.On("UpdateRole", mock.Anything, "u@example.com", model.RoleAdmin).Return(nil)

		updated, err := svc.UpdateRole(context.Background(), "u@example.com", model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, updated.Role)
		users.AssertExpectations(t)
	})
}
