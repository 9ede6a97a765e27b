package session

import (
	"context"
	"sync"
)

// View is what the coordinator hands the renderer after each sync pass:
// the derived mode plus a self-consistent snapshot. The renderer feeds
// nothing back except user-intent events.
type View struct {
	Mode     Mode
	Identity *Identity
	Active   *Campaign
	Snapshot Snapshot
}

// Coordinator runs the control flow: auth event → mode recompute →
// campaign load/validate → cache refresh → render. Everything is
// injected; there is no package-level state, so two coordinators can
// coexist in one process (tests do exactly that).
type Coordinator struct {
	store    *Store
	selector *Selector
	cache    *Cache
	invite   *InviteFlow
	gateways GatewayFactory
	render   func(View)

	mu        sync.Mutex
	ctx       context.Context
	identity  *Identity
	adminMode bool
	unsub     func()
}

// NewCoordinator wires the parts together. Render may be nil.
func NewCoordinator(store *Store, selector *Selector, cache *Cache, invite *InviteFlow, gateways GatewayFactory, render func(View)) *Coordinator {
	if render == nil {
		render = func(View) {}
	}
	return &Coordinator{
		store:    store,
		selector: selector,
		cache:    cache,
		invite:   invite,
		gateways: gateways,
		render:   render,
	}
}

// Start performs the initial load and subscribes to auth changes. The
// returned stop function unsubscribes; the coordinator holds no other
// resources.
func (c *Coordinator) Start(ctx context.Context) (stop func(), err error) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	// A selection change always triggers a full cache reload, even when
	// the same campaign is re-set after an external mutation.
	c.selector.OnChange(func(active *Campaign) {
		id := ""
		if active != nil {
			id = active.ID
		}
		c.cache.Refresh(ctx, c.gateway(), id)
		c.renderNow()
	})

	c.unsub = c.store.Subscribe(func(kind EventKind, identity *Identity) {
		c.handleAuthEvent(kind, identity)
	})

	identity, err := c.store.Current(ctx)
	if err != nil {
		c.unsub()
		return nil, err
	}
	c.handleAuthEvent(InitialLoad, identity)
	return func() { c.unsub() }, nil
}

// Mode returns the current derived access mode.
func (c *Coordinator) Mode() Mode {
	c.mu.Lock()
	identity := c.identity
	admin := c.adminMode
	c.mu.Unlock()
	return ResolveMode(identity, c.selector.Active(), c.inviteVisible(), admin)
}

// EnterAdmin passes the passphrase gate and, on success, reloads the
// system-wide campaign view. Elevation is never entered implicitly:
// this is the only way in.
func (c *Coordinator) EnterAdmin(ctx context.Context, passphrase string) error {
	if err := c.gateway().EnterAdminMode(ctx, passphrase); err != nil {
		return err
	}
	c.mu.Lock()
	c.adminMode = true
	c.mu.Unlock()

	if err := c.selector.LoadCampaigns(ctx, c.gateway()); err != nil {
		return err
	}
	c.renderNow()
	return nil
}

// ExitAdmin drops the elevation explicitly. Navigation alone must never
// leave a session silently privileged.
func (c *Coordinator) ExitAdmin(ctx context.Context) error {
	if err := c.gateway().ExitAdminMode(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.adminMode = false
	c.mu.Unlock()

	if err := c.selector.LoadCampaigns(ctx, c.gateway()); err != nil {
		return err
	}
	c.renderNow()
	return nil
}

// SignOut ends the session. The provider's SignedOut event drives the
// rest of the teardown, including admin revocation.
func (c *Coordinator) SignOut(ctx context.Context) error {
	return c.store.SignOut(ctx)
}

// VisitInvite resolves an invite landing page. Anonymous viewers become
// Guests of exactly that campaign: the cache is loaded with its data and
// nothing else.
func (c *Coordinator) VisitInvite(ctx context.Context, token string) error {
	invite, err := c.invite.Resolve(ctx, c.gateway(), token)
	if err != nil {
		return err
	}

	c.mu.Lock()
	anonymous := c.identity == nil
	c.mu.Unlock()
	if anonymous {
		if err := c.cache.Refresh(ctx, c.gateway(), invite.CampaignID); err != nil {
			return err
		}
	}
	c.renderNow()
	return nil
}

// RequestJoin records the explicit join intent for the visited invite.
// If an identity is already present the redemption runs immediately;
// otherwise it waits for the next SignedIn event.
func (c *Coordinator) RequestJoin(ctx context.Context) error {
	c.invite.SetIntent()

	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()
	if identity == nil {
		return nil
	}
	return c.redeemPending(ctx, identity)
}

func (c *Coordinator) handleAuthEvent(kind EventKind, identity *Identity) {
	// Credential rotation: same identity, nothing to redo.
	if kind == TokenRefreshed {
		return
	}

	c.mu.Lock()
	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	switch kind {
	case SignedOut:
		// Privilege never crosses identities.
		c.adminMode = false
		c.identity = nil
		c.mu.Unlock()
		c.selector.SetActive(nil)
		return
	case SignedIn, InitialLoad:
		c.identity = identity
	}
	c.mu.Unlock()

	if identity == nil {
		c.renderNow()
		return
	}

	c.redeemPending(ctx, identity)

	// Fail-closed: on gateway trouble the prior selection stands and the
	// stale-but-consistent view stays up.
	if err := c.selector.LoadCampaigns(ctx, c.gateway()); err != nil {
		c.renderNow()
		return
	}
	c.renderNow()
}

// redeemPending consumes a pending join intent, if any. The flow itself
// guarantees at-most-once redemption under doubled callbacks.
func (c *Coordinator) redeemPending(ctx context.Context, identity *Identity) error {
	invite, err := c.invite.Redeem(ctx, c.gateway(), identity)
	if err != nil || invite == nil {
		return err
	}
	if err := c.selector.LoadCampaigns(ctx, c.gateway()); err != nil {
		return err
	}
	if joined := findCampaign(c.selector.Campaigns(), invite.CampaignID); joined != nil {
		c.selector.SetActive(joined)
	}
	return nil
}

func (c *Coordinator) gateway() Gateway {
	return c.gateways(c.Mode())
}

func (c *Coordinator) inviteVisible() bool {
	if c.invite == nil {
		return false
	}
	st := c.invite.State()
	return st == Resolved || st == Redeeming || st == Joined
}

func (c *Coordinator) renderNow() {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()
	active := c.selector.Active()
	c.render(View{
		Mode:     c.Mode(),
		Identity: identity,
		Active:   active,
		Snapshot: c.cache.Snapshot(),
	})
}
