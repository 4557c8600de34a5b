package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/metrics"
	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// RequireRoles enforces role-based access on routes behind Auth. An empty
// role list admits any authenticated identity; otherwise the identity must
// hold at least one of the given roles.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !identity.HasAnyRole(roles...) {
				metrics.ForbiddenTotal.Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
