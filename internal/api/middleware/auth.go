package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/metrics"
	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/token"
)

const identityKey = "identity"

// UserFinder is the single credential-store lookup the identity gate needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Auth is the per-request identity gate. It extracts the bearer token,
// verifies it, re-reads the credential record by subject, and attaches a
// request-scoped identity. Roles always come from the store, not from the
// token, so role changes and deactivation take effect on the next request.
func Auth(tokens *token.Manager, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				// The verification outcome is propagated as-is; the failure
				// translator collapses everything but expiry to one generic
				// message so callers cannot probe which step failed.
				metrics.AuthFailuresTotal.WithLabelValues(verifyFailureReason(err)).Inc()
				return err
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
				}
				return err
			}
			if !user.Active {
				metrics.AuthFailuresTotal.WithLabelValues("deactivated").Inc()
				return domain.ErrAccountDeactivated
			}

			c.Set(identityKey, domain.Identity{
				UserID:   user.ID,
				Username: user.Username,
				Roles:    user.RoleNames(),
			})

			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Auth, or false when the gate
// has not run for this request.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func verifyFailureReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired_token"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed_token"
	}
}
