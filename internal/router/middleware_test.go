package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "storefront/internal/errors"
	"storefront/internal/handler"
	"storefront/internal/model"
)

// stubAuthService resolves every token to a fixed user or error.
type stubAuthService struct {
	user *model.User
	err  error
}

func (s *stubAuthService) ExchangeSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error) {
	return nil, nil, apperrors.ErrAuthProvider
}

func (s *stubAuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return nil
}

func newTestRouter(auth *stubAuthService) *echo.Echo {
	e := echo.New()
	api := e.Group("/api", WithSession(auth))

	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	api.GET("/products", ok)

	staff := api.Group("", RequireRole(model.RoleAdmin, model.RoleOwner))
	staff.POST("/products", ok)

	owner := api.Group("", RequireRole(model.RoleOwner))
	owner.PUT("/admin/users/:email", ok)

	return e
}

func request(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func userWithRole(role string) *model.User {
	return &model.User{ID: uuid.New(), Email: role + "@example.com", Role: role}
}

func TestWithSession_AnonymousPassesReadPaths(t *testing.T) {
	e := newTestRouter(&stubAuthService{})

	rec := request(e, http.MethodGet, "/api/products", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithSession_ExpiredSessionIsAnonymous(t *testing.T) {
	e := newTestRouter(&stubAuthService{err: apperrors.ErrSessionExpired})

	// Read path still serves; mutation path sees no user.
	rec := request(e, http.MethodGet, "/api/products", "tok-old")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(e, http.MethodPost, "/api/products", "tok-old")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		auth     *stubAuthService
		token    string
		method   string
		path     string
		expected int
	}{
		{
			name:     "anonymous mutation gets 401",
			auth:     &stubAuthService{},
			method:   http.MethodPost,
			path:     "/api/products",
			expected: http.StatusUnauthorized,
		},
		{
			name:     "plain user mutation gets a flat 403",
			auth:     &stubAuthService{user: userWithRole(model.RoleUser)},
			token:    "tok-user",
			method:   http.MethodPost,
			path:     "/api/products",
			expected: http.StatusForbidden,
		},
		{
			name:     "admin may mutate the catalog",
			auth:     &stubAuthService{user: userWithRole(model.RoleAdmin)},
			token:    "tok-admin",
			method:   http.MethodPost,
			path:     "/api/products",
			expected: http.StatusOK,
		},
		{
			name:     "owner may mutate the catalog",
			auth:     &stubAuthService{user: userWithRole(model.RoleOwner)},
			token:    "tok-owner",
			method:   http.MethodPost,
			path:     "/api/products",
			expected: http.StatusOK,
		},
		{
			name:     "admin may not manage roles",
			auth:     &stubAuthService{user: userWithRole(model.RoleAdmin)},
			token:    "tok-admin",
			method:   http.MethodPut,
			path:     "/api/admin/users/u@example.com",
			expected: http.StatusForbidden,
		},
		{
			name:     "owner may manage roles",
			auth:     &stubAuthService{user: userWithRole(model.RoleOwner)},
			token:    "tok-owner",
			method:   http.MethodPut,
			path:     "/api/admin/users/u@example.com",
			expected: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestRouter(tt.auth)
			rec := request(e, tt.method, tt.path, tt.token)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
