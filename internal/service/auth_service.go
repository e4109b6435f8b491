package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// SessionTTL is how long a session stays valid after login.
const SessionTTL = 7 * 24 * time.Hour

// AuthService exchanges external login handshakes for local sessions
// and resolves session tokens back to users.
type AuthService interface {
	// ExchangeSession validates the handshake's session id with the
	// external provider, upserts the user and issues a local session.
	// The first user ever registered becomes the owner.
	ExchangeSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error)
	// CurrentUser resolves a session token to its user. Expired
	// sessions are destroyed and reported as expired; callers on read
	// paths treat that as anonymous.
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	// Logout destroys the session identified by token.
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	provider auth.ProviderInterface
	store    auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	provider auth.ProviderInterface,
	store auth.SessionStoreInterface,
) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		provider: provider,
		store:    store,
	}
}

func (s *authService) ExchangeSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error) {
	data, err := s.provider.FetchSessionData(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrAuthProvider, err)
	}

	user, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("find user: %w", err)
		}
		user, err = s.registerUser(ctx, data)
		if err != nil {
			return nil, nil, err
		}
	}

	// One active session per user: replace whatever was there.
	if err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
		return nil, nil, fmt.Errorf("replace sessions: %w", err)
	}

	session := &model.Session{
		Token:     data.SessionToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	_ = s.store.StoreSession(ctx, session.Token, user.ID, SessionTTL)

	return user, session, nil
}

// registerUser creates the user record for a first-time login. An
// empty user table promotes the registrant to owner.
func (s *authService) registerUser(ctx context.Context, data *auth.SessionData) (*model.User, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	role := model.RoleUser
	if count == 0 {
		role = model.RoleOwner
	}

	user := &model.User{
		Email:   data.Email,
		Name:    data.Name,
		Picture: data.Picture,
		Role:    role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	// Cache hit resolves the token without touching the sessions table.
	if userID, err := s.store.GetSession(ctx, token); err == nil {
		user, err := s.users.FindByID(ctx, userID)
		if err == nil {
			return user, nil
		}
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	now := time.Now()
	if session.Expired(now) {
		_ = s.sessions.DeleteByToken(ctx, token)
		_ = s.store.DeleteSession(ctx, token)
		return nil, apperrors.ErrSessionExpired
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	_ = s.store.StoreSession(ctx, token, user.ID, session.ExpiresAt.Sub(now))
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	_ = s.store.DeleteSession(ctx, token)
	return nil
}
