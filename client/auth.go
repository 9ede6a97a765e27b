package client

import (
	"Scorekeeper/session"
	"context"
	"net/http"
	"net/url"
	"sync"
)

// PasswordAuth implements session.AuthProvider against the server's
// email/password endpoints. Login installs the bearer token on the
// shared gateway so every subsequent call is authenticated.
type PasswordAuth struct {
	gw *HTTPGateway

	mu        sync.Mutex
	identity  *session.Identity
	listeners map[int]func(session.EventKind, *session.Identity)
	nextID    int
}

// NewPasswordAuth wraps the gateway's auth endpoints.
func NewPasswordAuth(gw *HTTPGateway) *PasswordAuth {
	return &PasswordAuth{
		gw:        gw,
		listeners: make(map[int]func(session.EventKind, *session.Identity)),
	}
}

// Login authenticates and fires a SignedIn event.
func (a *PasswordAuth) Login(ctx context.Context, email, password string) (*session.Identity, error) {
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID          string `json:"id"`
			Email       string `json:"email"`
			DisplayName string `json:"display_name"`
		} `json:"user"`
	}
	form := url.Values{"email": {email}, "password": {password}}
	if _, err := a.gw.do(ctx, http.MethodPost, "/login", form, &resp); err != nil {
		return nil, err
	}

	a.gw.SetToken(resp.Token)
	identity := &session.Identity{ID: resp.User.ID, Email: resp.User.Email}

	a.mu.Lock()
	a.identity = identity
	a.mu.Unlock()

	a.notify(session.SignedIn, identity)
	return identity, nil
}

// CurrentIdentity implements session.AuthProvider.
func (a *PasswordAuth) CurrentIdentity(ctx context.Context) (*session.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity, nil
}

// OnChange implements session.AuthProvider.
func (a *PasswordAuth) OnChange(cb func(session.EventKind, *session.Identity)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = cb
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// SignOut implements session.AuthProvider. The server drops the cookie
// session and revokes session-scoped state; the token is discarded
// locally regardless of the server's answer, so a dead backend cannot
// keep a client signed in.
func (a *PasswordAuth) SignOut(ctx context.Context) error {
	_, err := a.gw.do(ctx, http.MethodDelete, "/auth/logout", nil, nil)

	a.gw.SetToken("")
	a.mu.Lock()
	a.identity = nil
	a.mu.Unlock()

	a.notify(session.SignedOut, nil)
	return err
}

func (a *PasswordAuth) notify(kind session.EventKind, identity *session.Identity) {
	a.mu.Lock()
	cbs := make([]func(session.EventKind, *session.Identity), 0, len(a.listeners))
	for _, cb := range a.listeners {
		cbs = append(cbs, cb)
	}
	a.mu.Unlock()
	for _, cb := range cbs {
		cb(kind, identity)
	}
}
