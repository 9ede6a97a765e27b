package session

import (
	"context"
	"errors"
	"sync"
)

// InviteState is one step of the invite redemption machine.
type InviteState int

const (
	// Unvisited: no invite token has been seen.
	Unvisited InviteState = iota
	// Resolved: token metadata was read. Reachable with zero identity
	// and guaranteed not to have touched membership.
	Resolved
	// Redeeming: a join is in flight.
	Redeeming
	// Joined: membership created (or confirmed) and the campaign made
	// the active selection.
	Joined
	// Failed: the token was invalid, expired or exhausted. The join
	// intent is cleared so a stale token cannot cause a surprise join
	// on a later, unrelated login.
	Failed
)

func (s InviteState) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Resolved:
		return "resolved"
	case Redeeming:
		return "redeeming"
	case Joined:
		return "joined"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// InviteFlow drives one invite token from landing page to membership.
//
// Resolution is read-only and anonymous. Redemption requires an identity
// plus an explicit "join" intent captured beforehand; arriving with a
// token while already logged in never auto-joins. The intent is consumed
// exactly once, so the doubled callbacks some auth providers fire cannot
// redeem twice.
type InviteFlow struct {
	mu     sync.Mutex
	state  InviteState
	token  string
	invite *Invite
	intent bool
}

// NewInviteFlow starts in Unvisited.
func NewInviteFlow() *InviteFlow {
	return &InviteFlow{state: Unvisited}
}

// State returns the current machine state.
func (f *InviteFlow) State() InviteState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Invite returns the resolved metadata, nil before resolution.
func (f *InviteFlow) Invite() *Invite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invite
}

// Resolve reads the token's metadata. Never requires authentication and
// never mutates membership. A dead token moves the machine to Failed;
// connectivity trouble leaves it in Unvisited for an explicit retry.
func (f *InviteFlow) Resolve(ctx context.Context, gw Gateway, token string) (*Invite, error) {
	invite, err := gw.ResolveInvite(ctx, token)
	if err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		if errors.Is(err, ErrInvalidOrExpiredToken) {
			f.state = Failed
			f.intent = false
		}
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Resolved
	f.token = token
	f.invite = invite
	return invite, nil
}

// SetIntent records the explicit "join" action. Captured before any
// identity-establishing redirect so the post-login redemption is
// deliberate, never implicit.
func (f *InviteFlow) SetIntent() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Resolved {
		f.intent = true
	}
}

// HasIntent reports whether an unconsumed join intent is pending.
func (f *InviteFlow) HasIntent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.intent
}

// Redeem joins the campaign bound to the resolved token. It requires an
// identity and a pending intent; the intent is consumed before the
// gateway call, so a second invocation (doubled auth callback) finds no
// intent and joins nothing. Returns (nil, nil) when there is nothing to
// redeem. Failure moves the machine to Failed with the intent already
// gone.
func (f *InviteFlow) Redeem(ctx context.Context, gw Gateway, identity *Identity) (*Invite, error) {
	f.mu.Lock()
	if !f.intent || f.state != Resolved {
		f.mu.Unlock()
		return nil, nil
	}
	if identity == nil {
		f.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	f.intent = false
	f.state = Redeeming
	token := f.token
	f.mu.Unlock()

	invite, err := gw.RedeemInvite(ctx, token)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = Failed
		return nil, err
	}
	f.state = Joined
	f.invite = invite
	return invite, nil
}
