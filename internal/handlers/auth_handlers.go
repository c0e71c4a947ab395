package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/middleware"
	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/services"
)

const defaultRedirect = "/dashboard"

// AuthHandler handles login, registration and the session cookie.
type AuthHandler struct {
	auth          *services.AuthService
	secureCookies bool
}

func NewAuthHandler(auth *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies}
}

// SessionUser is the public view of the logged-in user.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	User       *SessionUser `json:"user"`
	RedirectTo string       `json:"redirectTo,omitempty"`
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RedirectTo string `json:"redirectTo"`
}

type registerRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	RedirectTo string `json:"redirectTo"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return h.startSession(c, http.StatusOK, user, req.RedirectTo)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Password, req.Name)
	if err != nil {
		return err
	}
	return h.startSession(c, http.StatusCreated, user, req.RedirectTo)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{
		"status": "logged out",
	})
}

// Session reports the current user, or null when there is no valid session.
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, sessionResponse{})
	}

	claims, err := h.auth.ParseToken(cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	return c.JSON(http.StatusOK, sessionResponse{User: &SessionUser{
		ID:       claims.UserID,
		Username: claims.Username,
		Name:     claims.Name,
	}})
}

func (h *AuthHandler) startSession(c echo.Context, status int, user *models.User, redirectTo string) error {
	token, expires, err := h.auth.IssueToken(user, time.Now())
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(status, sessionResponse{
		User:       &SessionUser{ID: user.ID, Username: user.Username, Name: user.Name},
		RedirectTo: safeRedirect(redirectTo),
	})
}

// safeRedirect only allows local paths.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return defaultRedirect
	}
	return target
}
