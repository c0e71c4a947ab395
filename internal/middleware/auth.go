package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/services"
)

const (
	SessionCookie = "session"

	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxName     = "userName"
)

// SessionParser validates a session token.
type SessionParser interface {
	ParseToken(token string) (*services.SessionClaims, error)
}

// RequireAuth rejects requests without a valid session cookie and exposes
// the session user to downstream handlers.
func RequireAuth(sessions SessionParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := sessions.ParseToken(cookie.Value)
			if err != nil {
				ClearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			SetSession(c, claims)
			return next(c)
		}
	}
}

// SetSession stores the session user on the request context.
func SetSession(c echo.Context, claims *services.SessionClaims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxName, claims.Name)
}

// UserID returns the authenticated user's ID, or "" outside RequireAuth.
func UserID(c echo.Context) string {
	return getString(c, ctxUserID)
}

func Username(c echo.Context) string {
	return getString(c, ctxUsername)
}

func getString(c echo.Context, key string) string {
	if val, ok := c.Get(key).(string); ok {
		return val
	}
	return ""
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}
