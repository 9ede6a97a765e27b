package session

import (
	"context"
	"sync"
)

// fakeGateway lets each test script the remote side. Unset hooks fall
// back to returning the struct fields.
type fakeGateway struct {
	mu sync.Mutex

	campaigns []Campaign
	snapshots map[string]*Snapshot
	invites   map[string]*Invite

	listErr    error
	fetchErr   error
	resolveErr error
	redeemErr  error

	fetchHook  func(ctx context.Context, campaignID string) (*Snapshot, error)
	redeemHook func(ctx context.Context, token string) (*Invite, error)

	redeemCalls  int
	memberships  map[string]bool
	adminEntered bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		snapshots:   map[string]*Snapshot{},
		invites:     map[string]*Invite{},
		memberships: map[string]bool{},
	}
}

func (g *fakeGateway) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]Campaign, len(g.campaigns))
	copy(out, g.campaigns)
	return out, nil
}

func (g *fakeGateway) FetchSnapshot(ctx context.Context, campaignID string) (*Snapshot, error) {
	if g.fetchHook != nil {
		return g.fetchHook(ctx, campaignID)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	if snap, ok := g.snapshots[campaignID]; ok {
		copied := *snap
		return &copied, nil
	}
	return &Snapshot{CampaignID: campaignID}, nil
}

func (g *fakeGateway) ResolveInvite(ctx context.Context, token string) (*Invite, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resolveErr != nil {
		return nil, g.resolveErr
	}
	if inv, ok := g.invites[token]; ok {
		return inv, nil
	}
	return nil, ErrInvalidOrExpiredToken
}

func (g *fakeGateway) RedeemInvite(ctx context.Context, token string) (*Invite, error) {
	if g.redeemHook != nil {
		return g.redeemHook(ctx, token)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.redeemCalls++
	if g.redeemErr != nil {
		return nil, g.redeemErr
	}
	inv, ok := g.invites[token]
	if !ok {
		return nil, ErrInvalidOrExpiredToken
	}
	if !g.memberships[inv.CampaignID] {
		g.memberships[inv.CampaignID] = true
		g.campaigns = append(g.campaigns, Campaign{ID: inv.CampaignID, Name: inv.CampaignName, Role: "member"})
	}
	return inv, nil
}

func (g *fakeGateway) EnterAdminMode(ctx context.Context, passphrase string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.adminEntered = true
	return nil
}

func (g *fakeGateway) ExitAdminMode(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.adminEntered = false
	return nil
}

func (g *fakeGateway) membershipCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, joined := range g.memberships {
		if joined {
			n++
		}
	}
	return n
}

// memSelectionStore is an in-memory SelectionStore.
type memSelectionStore struct {
	mu sync.Mutex
	id string
}

func (s *memSelectionStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, nil
}

func (s *memSelectionStore) Set(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	return nil
}

func (s *memSelectionStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	return nil
}

// fakeAuth is a scriptable AuthProvider; tests fire events by hand.
type fakeAuth struct {
	mu        sync.Mutex
	identity  *Identity
	listeners map[int]func(EventKind, *Identity)
	nextID    int
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{listeners: map[int]func(EventKind, *Identity){}}
}

func (a *fakeAuth) CurrentIdentity(ctx context.Context) (*Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity, nil
}

func (a *fakeAuth) OnChange(cb func(EventKind, *Identity)) func() {
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

func (a *fakeAuth) SignOut(ctx context.Context) error {
	a.fire(SignedOut, nil)
	return nil
}

// fire simulates a provider event, updating the provider's own view of
// the identity first.
func (a *fakeAuth) fire(kind EventKind, identity *Identity) {
	a.mu.Lock()
	if kind == SignedOut {
		a.identity = nil
	} else {
		a.identity = identity
	}
	cbs := make([]func(EventKind, *Identity), 0, len(a.listeners))
	for _, cb := range a.listeners {
		cbs = append(cbs, cb)
	}
	a.mu.Unlock()
	for _, cb := range cbs {
		cb(kind, identity)
	}
}

func (a *fakeAuth) listenerCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.listeners)
}
