package router

import (
	"errors"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/service"
)

// userContextKey is where WithSession stores the resolved user.
const userContextKey = "current_user"

// CurrentUser returns the authenticated user stored in context, or nil
// when the request is anonymous.
func CurrentUser(c echo.Context) *model.User {
	if u, ok := c.Get(userContextKey).(*model.User); ok {
		return u
	}
	return nil
}

// WithSession resolves the request's session token into a user and
// stores it in context. Missing, unknown and expired sessions all pass
// through as anonymous; only unexpected failures abort the request.
func WithSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := handler.SessionToken(c)
			if token == "" {
				return next(c)
			}

			user, err := authService.CurrentUser(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotAuthenticated) || errors.Is(err, apperrors.ErrSessionExpired) {
					return next(c)
				}
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRole enforces that the authenticated user holds one of the
// given roles. Anonymous requests get 401; authenticated requests with
// a role outside the set get a flat 403 carrying no resource detail.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNotAuthenticated)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if !allowed[user.Role] {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}
