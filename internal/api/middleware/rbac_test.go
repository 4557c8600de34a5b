package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

func contextWithIdentity(roles ...string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(identityKey, domain.Identity{UserID: "u1", Username: "alice", Roles: roles})
	return c
}

func TestRequireRoles_EmptySetAdmitsAnyIdentity(t *testing.T) {
	c := contextWithIdentity(domain.RoleTeamMember)
	if err := RequireRoles()(passthrough)(c); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestRequireRoles_Overlap(t *testing.T) {
	c := contextWithIdentity(domain.RoleTeamMember, domain.RoleProjectManager)
	if err := RequireRoles(domain.RoleProjectManager)(passthrough)(c); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestRequireRoles_NoOverlap(t *testing.T) {
	c := contextWithIdentity(domain.RoleTeamMember)
	err := RequireRoles(domain.RoleAdmin)(passthrough)(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := RequireRoles(domain.RoleAdmin)(passthrough)(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
