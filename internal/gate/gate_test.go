package gate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/session"
)

func principalWithRole(role models.Role) *session.Principal {
	return &session.Principal{UID: uuid.New(), LoginID: "test", Role: role}
}

func TestEvaluateLoading(t *testing.T) {
	state := session.NewState()

	decision := Evaluate(state, Roles(models.RoleAdmin), "")
	assert.Equal(t, StatusLoading, decision.Status)
	assert.Empty(t, decision.RedirectTo, "loading never redirects")
}

func TestEvaluateAnonymous(t *testing.T) {
	state := session.NewState()
	state.Clear()

	decision := Evaluate(state, Roles(models.RoleAdmin), "/reports")
	assert.Equal(t, StatusUnauthenticated, decision.Status)
	assert.Equal(t, LoginPath, decision.RedirectTo)
}

func TestEvaluateAllowed(t *testing.T) {
	state := session.NewState()
	state.Set(principalWithRole(models.RoleManager))

	decision := Evaluate(state, Roles(models.RoleAdmin, models.RoleManager), "")
	assert.Equal(t, StatusAllowed, decision.Status)
	assert.Empty(t, decision.RedirectTo)
}

func TestEvaluateEmptySetAllowsAnyAuthenticated(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleManager, models.RoleEmployee} {
		decision := EvaluatePrincipal(principalWithRole(role), nil, "")
		assert.Equal(t, StatusAllowed, decision.Status, "role %s", role)
	}
}

func TestEvaluateEmployeeDeniedAlwaysDashboard(t *testing.T) {
	// The page fallback is ignored for employees: they always land on the
	// dashboard to avoid redirect loops.
	decision := EvaluatePrincipal(principalWithRole(models.RoleEmployee), Roles(models.RoleAdmin, models.RoleManager), "/settings")
	assert.Equal(t, StatusDenied, decision.Status)
	assert.Equal(t, DashboardPath, decision.RedirectTo)
}

func TestEvaluateDeniedFallback(t *testing.T) {
	decision := EvaluatePrincipal(principalWithRole(models.RoleManager), Roles(models.RoleAdmin), "/reports")
	assert.Equal(t, StatusDenied, decision.Status)
	assert.Equal(t, "/reports", decision.RedirectTo)

	// Missing fallback defaults to the dashboard.
	decision = EvaluatePrincipal(principalWithRole(models.RoleManager), Roles(models.RoleAdmin), "")
	assert.Equal(t, StatusDenied, decision.Status)
	assert.Equal(t, DashboardPath, decision.RedirectTo)
}

func TestEvaluateNilPrincipal(t *testing.T) {
	decision := EvaluatePrincipal(nil, Roles(models.RoleAdmin), "")
	assert.Equal(t, StatusUnauthenticated, decision.Status)
	assert.Equal(t, LoginPath, decision.RedirectTo)
}

func TestEvaluateIdempotent(t *testing.T) {
	state := session.NewState()
	state.Set(principalWithRole(models.RoleEmployee))
	allowed := Roles(models.RoleAdmin)

	first := Evaluate(state, allowed, "/settings")
	second := Evaluate(state, allowed, "/settings")
	assert.Equal(t, first, second, "unchanged inputs must yield an identical decision")
}

func TestLandingPath(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleManager, models.RoleEmployee} {
		assert.Equal(t, DashboardPath, LandingPath(role), "role %s", role)
	}
	assert.Equal(t, LoginPath, LandingPath(models.Role("unknown")))
}

func TestMenuFor(t *testing.T) {
	adminMenu := MenuFor(models.RoleAdmin)
	employeeMenu := MenuFor(models.RoleEmployee)

	assert.NotEmpty(t, adminMenu)
	assert.NotEmpty(t, employeeMenu)
	assert.Greater(t, len(adminMenu), len(employeeMenu), "admin menu is the widest")
}
