package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nexusflow/nexusflow-api/internal/api/response"
	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/token"
)

// NewHTTPErrorHandler returns the failure translator: the single place where
// errors become HTTP responses. It:
//   - Maps the closed error taxonomy to deterministic status codes.
//   - Collapses authentication failures to fixed messages (expiry excepted)
//     so responses never reveal which validation step failed.
//   - Logs unexpected errors in full and returns a generic 500 body.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, response.Error(msg, code))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, gate short-circuits).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// Token verification outcomes. Expiry is surfaced distinctly; every other
	// verification failure shares one generic message.
	case errors.Is(err, token.ErrExpired):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, token.ErrMalformed), errors.Is(err, token.ErrSignatureInvalid):
		return http.StatusUnauthorized, "Invalid or expired token"

	// Authentication and authorization.
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrAccountDeactivated):
		return http.StatusUnauthorized, "Account is deactivated"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied"

	// Not found. The login lookup shares the fixed user message.
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound, err.Error()

	// Validation and business rules carry safe, specific messages.
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrDuplicateCode),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrAdminExists),
		errors.Is(err, domain.ErrSetupDisabled):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrBadInvitation):
		return http.StatusForbidden, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "An internal server error occurred"
}
