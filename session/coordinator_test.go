package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(gw Gateway) (*Coordinator, *fakeAuth, *Selector, *Cache) {
	auth := newFakeAuth()
	store := NewStore(auth)
	selector := NewSelector(&memSelectionStore{})
	cache := NewCache()
	invite := NewInviteFlow()
	coord := NewCoordinator(store, selector, cache, invite, SingleGateway(gw), nil)
	return coord, auth, selector, cache
}

func TestSignInLoadsCampaignsAndCache(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{{ID: "A", Name: "Friday Night", Role: "owner"}}
	gw.snapshots["A"] = snapshotFor("A")

	coord, auth, selector, cache := newTestCoordinator(gw)
	stop, err := coord.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	auth.fire(SignedIn, &Identity{ID: "u1", Email: "u1@example.com"})

	active := selector.Active()
	require.NotNil(t, active)
	assert.Equal(t, "A", active.ID)
	assert.Equal(t, "A", cache.Snapshot().CampaignID)
	assert.Equal(t, Editor, coord.Mode())
}

func TestTokenRefreshDoesNotReload(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{{ID: "A", Name: "Friday Night", Role: "owner"}}
	gw.snapshots["A"] = snapshotFor("A")

	coord, auth, _, cache := newTestCoordinator(gw)
	stop, err := coord.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	u1 := &Identity{ID: "u1"}
	auth.fire(SignedIn, u1)
	require.Equal(t, "A", cache.Snapshot().CampaignID)

	// A credential rotation must not disturb anything downstream.
	gw.mu.Lock()
	gw.listErr = ErrRemoteUnavailable
	gw.fetchErr = ErrRemoteUnavailable
	gw.mu.Unlock()
	auth.fire(SignedIn, u1)

	assert.Equal(t, "A", cache.Snapshot().CampaignID)
	assert.Equal(t, Editor, coord.Mode())
}

func TestAdminDoesNotSurviveSignOut(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{{ID: "A", Name: "Friday Night", Role: "owner"}}

	coord, auth, _, _ := newTestCoordinator(gw)
	stop, err := coord.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	ctx := context.Background()
	u1 := &Identity{ID: "u1", Email: "admin@example.com"}
	auth.fire(SignedIn, u1)

	require.NoError(t, coord.EnterAdmin(ctx, "hunter2"))
	assert.Equal(t, AdminImpersonation, coord.Mode())

	require.NoError(t, coord.SignOut(ctx))
	assert.NotEqual(t, AdminImpersonation, coord.Mode())

	// The same person signs back in: a fresh session is never admin.
	auth.fire(SignedIn, u1)
	assert.Equal(t, Editor, coord.Mode())
}

func TestSignOutClearsSelectionAndCache(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{{ID: "A", Name: "Friday Night", Role: "owner"}}
	gw.snapshots["A"] = snapshotFor("A")

	coord, auth, selector, cache := newTestCoordinator(gw)
	stop, err := coord.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	auth.fire(SignedIn, &Identity{ID: "u1"})
	require.NotNil(t, selector.Active())

	require.NoError(t, coord.SignOut(context.Background()))
	assert.Nil(t, selector.Active())
	assert.Empty(t, cache.Snapshot().CampaignID)
	assert.Equal(t, LoggedOutNoCampaign, coord.Mode())
}

func TestLoginWithIntentJoinsExactlyOnce(t *testing.T) {
	gw := newFakeGateway()
	gw.invites["tok1"] = &Invite{Token: "tok1", CampaignID: "B", CampaignName: "Sunday Club"}

	coord, auth, selector, _ := newTestCoordinator(gw)
	stop, err := coord.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	ctx := context.Background()
	require.NoError(t, coord.VisitInvite(ctx, "tok1"))
	require.NoError(t, coord.RequestJoin(ctx))

	// The auth callback fires twice for one login.
	u1 := &Identity{ID: "u1"}
	auth.fire(SignedIn, u1)
	auth.fire(SignedIn, u1)

	assert.Equal(t, 1, gw.redeemCalls)
	assert.Equal(t, 1, gw.membershipCount())
	active := selector.Active()
	require.NotNil(t, active)
	assert.Equal(t, "B", active.ID, "the joined campaign becomes the active selection")
}

func TestLoginWithoutIntentLeavesMembershipUnchanged(t *testing.T) {
	gw := newFakeGateway()
	gw.invites["tok1"] = &Invite{Token: "tok1", CampaignID: "B", CampaignName: "Sunday Club"}

	coord, auth, _, _ := newTestCoordinator(gw)
	stop, err := coord.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	require.NoError(t, coord.VisitInvite(context.Background(), "tok1"))
	// No "join" click: logging in while holding the token is not intent.
	auth.fire(SignedIn, &Identity{ID: "u1"})

	assert.Zero(t, gw.redeemCalls)
	assert.Zero(t, gw.membershipCount())
}

func TestAnonymousInviteVisitorIsGuestOfThatCampaignOnly(t *testing.T) {
	gw := newFakeGateway()
	gw.invites["tok1"] = &Invite{Token: "tok1", CampaignID: "B", CampaignName: "Sunday Club"}
	gw.snapshots["B"] = snapshotFor("B")

	coord, _, _, cache := newTestCoordinator(gw)
	stop, err := coord.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	require.NoError(t, coord.VisitInvite(context.Background(), "tok1"))

	assert.Equal(t, Guest, coord.Mode())
	assert.False(t, coord.Mode().CanEdit())
	assert.Equal(t, "B", cache.Snapshot().CampaignID)
}
