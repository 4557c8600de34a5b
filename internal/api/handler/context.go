package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/middleware"
	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// currentIdentity extracts the identity attached by the Auth middleware.
// Its presence proves the gate ran for this request; a handler reached
// without it is a routing mistake and is rejected, not served.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.Username == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
