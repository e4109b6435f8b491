package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/service"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// SessionToken extracts the session token from the request: cookie
// first, Authorization bearer as a fallback for non-browser clients.
func SessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// AuthHandler handles session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CreateSession godoc
// @Summary Exchange an external login handshake for a session cookie
// @Description Validates the X-Session-ID with the external auth provider, creates the user on first login (first user ever becomes owner) and sets the session cookie.
// @Tags auth
// @Produce json
// @Param X-Session-ID header string true "Handshake session id from the auth provider redirect"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/session [post]
func (h *AuthHandler) CreateSession(c echo.Context) error {
	sessionID := c.Request().Header.Get("X-Session-ID")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "session ID required",
			Code:  "SESSION_ID_REQUIRED",
		})
	}

	user, session, err := h.authService.ExchangeSession(c.Request().Context(), sessionID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return c.JSON(http.StatusOK, user)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security SessionCookie
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context(), SessionToken(c))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Security SessionCookie
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), SessionToken(c)); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}
