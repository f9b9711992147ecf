package session

import (
	"context"
	"sync"

	"github.com/umutcano/staffhub-backend/internal/identity"
)

// Phase is the lifecycle of the process-wide session state.
type Phase int

const (
	// PhaseUnknown holds until the provider reports its first auth state.
	PhaseUnknown Phase = iota
	PhaseAnonymous
	PhaseAuthenticated
)

// State holds at most one Principal. It is re-derived from scratch on every
// provider notification; each notification is a full snapshot, so last
// write wins.
type State struct {
	mu        sync.RWMutex
	phase     Phase
	principal *Principal
}

func NewState() *State {
	return &State{phase: PhaseUnknown}
}

// Set records a provider-reported auth state: a concrete Principal, or nil
// for signed-out.
func (s *State) Set(p *Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.phase = PhaseAnonymous
		s.principal = nil
		return
	}
	s.phase = PhaseAuthenticated
	s.principal = p
}

// Clear drops the session on explicit logout.
func (s *State) Clear() {
	s.Set(nil)
}

func (s *State) Current() (*Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal, s.phase == PhaseAuthenticated
}

func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase == PhaseUnknown
}

func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Bind subscribes the state to the provider's auth-state stream, resolving
// each reported identity back into a Principal. Returns the unsubscribe
// function.
func (s *State) Bind(provider identity.Provider, resolver *Resolver) func() {
	return provider.Subscribe(func(id *identity.Identity) {
		if id == nil {
			s.Set(nil)
			return
		}
		p, err := resolver.ResolveFromRestoredSession(context.Background(), id.UID)
		if err != nil || p == nil {
			// Resolution failures and integrity faults mean no session.
			s.Set(nil)
			return
		}
		s.Set(p)
	})
}
