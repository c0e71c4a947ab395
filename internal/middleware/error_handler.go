package middleware

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
	"github.com/LipezJ/eco-hogar/internal/repository"
	"github.com/LipezJ/eco-hogar/internal/services"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewErrorHandler maps domain errors to HTTP statuses and renders them as
// JSON. Unexpected errors are logged and hidden from the client.
func NewErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := classify(err)
		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"err", err,
			)
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(code)
		} else {
			sendErr = c.JSON(code, body)
		}
		if sendErr != nil {
			logger.Error("failed to write error response", "err", sendErr)
		}
	}
}

func classify(err error) (int, ErrorResponse) {
	var (
		he      *echo.HTTPError
		ve      *models.ValidationError
		invalid *projection.InvalidInputError
	)

	switch {
	case errors.As(err, &he):
		msg, ok := he.Message.(string)
		if !ok || msg == "" {
			msg = http.StatusText(he.Code)
		}
		return he.Code, ErrorResponse{Error: msg}
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: ve.Fields}
	case errors.As(err, &invalid):
		return http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Fields: map[string]string{invalid.Field: invalid.Err.Error()},
		}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "not found"}
	case errors.Is(err, repository.ErrUsernameTaken):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidSession):
		return http.StatusUnauthorized, ErrorResponse{Error: err.Error()}
	case errors.Is(err, services.ErrAlreadyPaid):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	case errors.Is(err, services.ErrInstallmentOutOfRange):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}
