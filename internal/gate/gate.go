// Package gate decides whether a resolved session may enter a role-gated
// page: render, send to login, or send to a role-appropriate fallback.
package gate

import (
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/session"
)

type Status int

const (
	StatusLoading Status = iota
	StatusAllowed
	StatusDenied
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAllowed:
		return "allowed"
	case StatusDenied:
		return "denied"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Decision is the terminal outcome of one gate evaluation. RedirectTo is
// empty for Loading and Allowed.
type Decision struct {
	Status     Status
	RedirectTo string
}

// RoleSet is an explicit allowed-role literal attached to a page or route.
type RoleSet map[models.Role]struct{}

func Roles(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (rs RoleSet) Has(r models.Role) bool {
	_, ok := rs[r]
	return ok
}

// Evaluate is pure over its inputs: evaluating twice with unchanged inputs
// yields the same decision and no duplicate redirect.
//
// An empty allowed set means any authenticated principal may enter. A
// denied employee is always sent to the dashboard rather than the page's
// fallback, which keeps the lowest-privilege role out of redirect loops.
func Evaluate(state *session.State, allowed RoleSet, fallback string) Decision {
	if state.IsLoading() {
		return Decision{Status: StatusLoading}
	}

	principal, ok := state.Current()
	if !ok {
		return Decision{Status: StatusUnauthenticated, RedirectTo: LoginPath}
	}

	return EvaluatePrincipal(principal, allowed, fallback)
}

// EvaluatePrincipal gates an already-resolved principal.
func EvaluatePrincipal(principal *session.Principal, allowed RoleSet, fallback string) Decision {
	if principal == nil {
		return Decision{Status: StatusUnauthenticated, RedirectTo: LoginPath}
	}

	if len(allowed) == 0 || allowed.Has(principal.Role) {
		return Decision{Status: StatusAllowed}
	}

	if principal.Role == models.RoleEmployee {
		return Decision{Status: StatusDenied, RedirectTo: DashboardPath}
	}
	if fallback == "" {
		fallback = DashboardPath
	}
	return Decision{Status: StatusDenied, RedirectTo: fallback}
}
