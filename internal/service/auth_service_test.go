package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func newAuthMocks() (*MockUserRepository, *MockSessionRepository, *MockProvider, *MockSessionStore, AuthService) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	provider := new(MockProvider)
	store := new(MockSessionStore)
	return users, sessions, provider, store, NewAuthService(users, sessions, provider, store)
}

func TestAuthService_ExchangeSession_FirstUserBecomesOwner(t *testing.T) {
	users, sessions, provider, store, svc := newAuthMocks()

	data := &auth.SessionData{
		Email:        "first@example.com",
		Name:         "First User",
		SessionToken: "tok-1",
	}
	provider.On("FetchSessionData", mock.Anything, "handshake-1").Return(data, nil)
	users.On("FindByEmail", mock.Anything, "first@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Count", mock.Anything).Return(int64(0), nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = uuid.New()
		}).Return(nil)
	sessions.On("DeleteByUser", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
	store.On("StoreSession", mock.Anything, "tok-1", mock.AnythingOfType("uuid.UUID"), SessionTTL).Return(nil)

	user, session, err := svc.ExchangeSession(context.Background(), "handshake-1")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleOwner, user.Role)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), session.ExpiresAt, time.Minute)
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestAuthService_ExchangeSession_SubsequentUsersGetUserRole(t *testing.T) {
	users, sessions, provider, store, svc := newAuthMocks()

	data := &auth.SessionData{
		Email:        "second@example.com",
		Name:         "Second User",
		SessionToken: "tok-2",
	}
	provider.On("FetchSessionData", mock.Anything, "handshake-2").Return(data, nil)
	users.On("FindByEmail", mock.Anything, "second@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Count", mock.Anything).Return(int64(1), nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = uuid.New()
		}).Return(nil)
	sessions.On("DeleteByUser", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
	store.On("StoreSession", mock.Anything, "tok-2", mock.AnythingOfType("uuid.UUID"), SessionTTL).Return(nil)

	user, _, err := svc.ExchangeSession(context.Background(), "handshake-2")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestAuthService_ExchangeSession_ReturningUserKeepsRole(t *testing.T) {
	users, sessions, provider, store, svc := newAuthMocks()

	existing := &model.User{
		ID:    uuid.New(),
		Email: "admin@example.com",
		Role:  model.RoleAdmin,
	}
	data := &auth.SessionData{
		Email:        "admin@example.com",
		SessionToken: "tok-3",
	}
	provider.On("FetchSessionData", mock.Anything, "handshake-3").Return(data, nil)
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(existing, nil)
	sessions.On("DeleteByUser", mock.Anything, existing.ID).Return(nil)
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
	store.On("StoreSession", mock.Anything, "tok-3", existing.ID, SessionTTL).Return(nil)

	user, _, err := svc.ExchangeSession(context.Background(), "handshake-3")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	sessions.AssertCalled(t, "DeleteByUser", mock.Anything, existing.ID)
}

func TestAuthService_ExchangeSession_ProviderFailure(t *testing.T) {
	_, _, provider, _, svc := newAuthMocks()

	provider.On("FetchSessionData", mock.Anything, "bad-handshake").
		Return(nil, errors.New("status 401"))

	_, _, err := svc.ExchangeSession(context.Background(), "bad-handshake")

	assert.ErrorIs(t, err, apperrors.ErrAuthProvider)
}

func TestAuthService_CurrentUser(t *testing.T) {
	t.Run("empty token is anonymous", func(t *testing.T) {
		_, _, _, _, svc := newAuthMocks()

		_, err := svc.CurrentUser(context.Background(), "")

		assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})

	t.Run("cache hit skips the sessions table", func(t *testing.T) {
		users, sessions, _, store, svc := newAuthMocks()

		cached := &model.User{ID: uuid.New(), Email: "hit@example.com"}
		store.On("GetSession", mock.Anything, "tok-hit").Return(cached.ID, nil)
		users.On("FindByID", mock.Anything, cached.ID).Return(cached, nil)

		user, err := svc.CurrentUser(context.Background(), "tok-hit")

		assert.NoError(t, err)
		assert.Equal(t, cached.Email, user.Email)
		sessions.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
	})

	t.Run("expired session is destroyed and reported", func(t *testing.T) {
		users, sessions, _, store, svc := newAuthMocks()

		userID := uuid.New()
		store.On("GetSession", mock.Anything, "tok-old").Return(uuid.Nil, errors.New("session not cached"))
		sessions.On("FindByToken", mock.Anything, "tok-old").Return(&model.Session{
			Token:     "tok-old",
			UserID:    userID,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)
		sessions.On("DeleteByToken", mock.Anything, "tok-old").Return(nil)
		store.On("DeleteSession", mock.Anything, "tok-old").Return(nil)

		_, err := svc.CurrentUser(context.Background(), "tok-old")

		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
		sessions.AssertCalled(t, "DeleteByToken", mock.Anything, "tok-old")
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("valid session resolves and re-caches the token", func(t *testing.T) {
		users, sessions, _, store, svc := newAuthMocks()

		user := &model.User{ID: uuid.New(), Email: "live@example.com"}
		store.On("GetSession", mock.Anything, "tok-live").Return(uuid.Nil, errors.New("session not cached"))
		sessions.On("FindByToken", mock.Anything, "tok-live").Return(&model.Session{
			Token:     "tok-live",
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		store.On("StoreSession", mock.Anything, "tok-live", user.ID, mock.AnythingOfType("time.Duration")).Return(nil)

		got, err := svc.CurrentUser(context.Background(), "tok-live")

		assert.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		store.AssertExpectations(t)
	})

	t.Run("unknown token is anonymous", func(t *testing.T) {
		_, sessions, _, store, svc := newAuthMocks()

		store.On("GetSession", mock.Anything, "tok-missing").Return(uuid.Nil, errors.New("session not cached"))
		sessions.On("FindByToken", mock.Anything, "tok-missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.CurrentUser(context.Background(), "tok-missing")

		assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})
}

func TestAuthService_Logout(t *testing.T) {
	_, sessions, _, store, svc := newAuthMocks()

	sessions.On("DeleteByToken", mock.Anything, "tok-1").Return(nil)
	store.On("DeleteSession", mock.Anything, "tok-1").Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), "tok-1"))
	sessions.AssertExpectations(t)
	store.AssertExpectations(t)
}
