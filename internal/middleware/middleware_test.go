package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/logging"
	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
	"github.com/LipezJ/eco-hogar/internal/repository"
	"github.com/LipezJ/eco-hogar/internal/services"
)

func TestRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		remote []string
		want   []int
	}{
		{
			name:   "burst then deny",
			limit:  2,
			remote: []string{"192.0.2.1:1234", "192.0.2.1:1234", "192.0.2.1:1234"},
			want:   []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests},
		},
		{
			name:   "clients are limited separately",
			limit:  1,
			remote: []string{"192.0.2.1:1234", "192.0.2.2:1234", "192.0.2.1:1234"},
			want:   []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests},
		},
		{
			name:   "disabled",
			limit:  0,
			remote: []string{"192.0.2.1:1234", "192.0.2.1:1234", "192.0.2.1:1234"},
			want:   []int{http.StatusNoContent, http.StatusNoContent, http.StatusNoContent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.HTTPErrorHandler = NewErrorHandler(logging.Discard())
			e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, RateLimit(tt.limit, time.Minute))

			for i, remote := range tt.remote {
				req := httptest.NewRequest(http.MethodPost, "/login", nil)
				req.RemoteAddr = remote
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, req)
				if rec.Code != tt.want[i] {
					t.Errorf("request %d from %s: status %d; want %d", i+1, remote, rec.Code, tt.want[i])
				}
			}
		})
	}
}

type fakeSessions struct{}

func (fakeSessions) ParseToken(token string) (*services.SessionClaims, error) {
	if token != "good" {
		return nil, services.ErrInvalidSession
	}
	return &services.SessionClaims{UserID: "u1", Username: "ana", Name: "Ana"}, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantClear  bool
	}{
		{name: "no cookie", wantStatus: http.StatusUnauthorized},
		{name: "invalid cookie", cookie: "bad", wantStatus: http.StatusUnauthorized, wantClear: true},
		{name: "valid cookie", cookie: "good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.HTTPErrorHandler = NewErrorHandler(logging.Discard())
			e.GET("/me", func(c echo.Context) error {
				return c.String(http.StatusOK, UserID(c)+":"+Username(c))
			}, RequireAuth(fakeSessions{}))

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() != "u1:ana" {
				t.Errorf("body = %q; want u1:ana", rec.Body.String())
			}
			cleared := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == SessionCookie && c.MaxAge < 0 {
					cleared = true
				}
			}
			if cleared != tt.wantClear {
				t.Errorf("cookie cleared = %v; want %v", cleared, tt.wantClear)
			}
		})
	}
}

func TestErrorHandlerStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantField  string
	}{
		{name: "validation", err: &models.ValidationError{Fields: models.FieldErrors{"amount": "must be positive"}}, wantStatus: http.StatusBadRequest, wantField: "amount"},
		{name: "invalid input", err: &projection.InvalidInputError{Field: "term", Err: projection.ErrInvalidTerm}, wantStatus: http.StatusBadRequest, wantField: "term"},
		{name: "not found", err: fmt.Errorf("load: %w", repository.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "username taken", err: repository.ErrUsernameTaken, wantStatus: http.StatusConflict},
		{name: "bad credentials", err: services.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "already paid", err: services.ErrAlreadyPaid, wantStatus: http.StatusConflict},
		{name: "http error", err: echo.NewHTTPError(http.StatusTeapot, "short and stout"), wantStatus: http.StatusTeapot},
		{name: "unexpected", err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.HTTPErrorHandler = NewErrorHandler(logging.Discard())
			e.GET("/", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
			if tt.wantField != "" {
				if _, ok := body.Fields[tt.wantField]; !ok {
					t.Errorf("fields = %v; want %s", body.Fields, tt.wantField)
				}
			}
			if tt.wantStatus == http.StatusInternalServerError && body.Error != "internal server error" {
				t.Errorf("internal error leaked: %q", body.Error)
			}
		})
	}
}

func TestRequestLoggerIncludesSessionUser(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(logging.Discard())
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info", "test")))
	e.GET("/me", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RequireAuth(fakeSessions{}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"uri=/me", "status=204", "user=u1", "username=ana"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %s", want, out)
		}
	}
}
