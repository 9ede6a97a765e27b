package session

import (
	"context"
	"sync"
)

// EventKind classifies an auth state change.
type EventKind int

const (
	// InitialLoad is the first identity read after startup.
	InitialLoad EventKind = iota
	// SignedIn is a fresh login.
	SignedIn
	// SignedOut is a logout or session expiry.
	SignedOut
	// TokenRefreshed is a credential rotation for the same identity.
	// Strictly a UI no-op: it must never re-trigger privileged prompts
	// or reloads.
	TokenRefreshed
)

func (k EventKind) String() string {
	switch k {
	case InitialLoad:
		return "initial_load"
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	case TokenRefreshed:
		return "token_refreshed"
	}
	return "unknown"
}

// Store wraps an AuthProvider and fans auth events out to subscribers.
// Providers tend to re-fire "signed in" on every token rotation; the
// store downgrades those repeats to TokenRefreshed so downstream code
// can rely on SignedIn meaning a genuinely new login.
type Store struct {
	auth AuthProvider

	mu        sync.Mutex
	current   *Identity
	listeners map[int]func(EventKind, *Identity)
	nextID    int
	stop      func()
}

// NewStore subscribes to the provider immediately. Call Close when done.
func NewStore(auth AuthProvider) *Store {
	s := &Store{
		auth:      auth,
		listeners: make(map[int]func(EventKind, *Identity)),
	}
	s.stop = auth.OnChange(s.dispatch)
	return s
}

// Current returns the identity as of the last event, falling back to the
// provider when no event has arrived yet.
func (s *Store) Current(ctx context.Context) (*Identity, error) {
	s.mu.Lock()
	id := s.current
	s.mu.Unlock()
	if id != nil {
		return id, nil
	}
	return s.auth.CurrentIdentity(ctx)
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing is guaranteed to stop deliveries; repeated setup never
// leaks listeners.
func (s *Store) Subscribe(cb func(EventKind, *Identity)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = cb
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SignOut delegates to the provider; the resulting SignedOut event flows
// back through dispatch like any other change.
func (s *Store) SignOut(ctx context.Context) error {
	return s.auth.SignOut(ctx)
}

// Close detaches the store from its provider.
func (s *Store) Close() {
	if s.stop != nil {
		s.stop()
	}
}

func (s *Store) dispatch(kind EventKind, identity *Identity) {
	s.mu.Lock()
	if kind == SignedIn && sameIdentity(s.current, identity) {
		kind = TokenRefreshed
	}
	switch kind {
	case SignedIn, InitialLoad, TokenRefreshed:
		s.current = identity
	case SignedOut:
		s.current = nil
		identity = nil
	}
	cbs := make([]func(EventKind, *Identity), 0, len(s.listeners))
	for _, cb := range s.listeners {
		cbs = append(cbs, cb)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(kind, identity)
	}
}

func sameIdentity(a, b *Identity) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID == b.ID
}
