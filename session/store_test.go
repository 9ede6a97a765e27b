package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatedSignInBecomesTokenRefreshed(t *testing.T) {
	auth := newFakeAuth()
	store := NewStore(auth)
	defer store.Close()

	var kinds []EventKind
	store.Subscribe(func(kind EventKind, _ *Identity) {
		kinds = append(kinds, kind)
	})

	u1 := &Identity{ID: "u1", Email: "u1@example.com"}
	auth.fire(SignedIn, u1)
	// Providers re-fire "signed in" on every credential rotation.
	auth.fire(SignedIn, u1)
	auth.fire(SignedIn, u1)

	require.Len(t, kinds, 3)
	assert.Equal(t, SignedIn, kinds[0])
	assert.Equal(t, TokenRefreshed, kinds[1])
	assert.Equal(t, TokenRefreshed, kinds[2])
}

func TestSignInAfterSignOutIsGenuine(t *testing.T) {
	auth := newFakeAuth()
	store := NewStore(auth)
	defer store.Close()

	var kinds []EventKind
	store.Subscribe(func(kind EventKind, _ *Identity) {
		kinds = append(kinds, kind)
	})

	u1 := &Identity{ID: "u1"}
	auth.fire(SignedIn, u1)
	auth.fire(SignedOut, nil)
	auth.fire(SignedIn, u1)

	require.Len(t, kinds, 3)
	assert.Equal(t, []EventKind{SignedIn, SignedOut, SignedIn}, kinds)
}

func TestDifferentIdentityIsGenuineSignIn(t *testing.T) {
	auth := newFakeAuth()
	store := NewStore(auth)
	defer store.Close()

	var kinds []EventKind
	store.Subscribe(func(kind EventKind, _ *Identity) {
		kinds = append(kinds, kind)
	})

	auth.fire(SignedIn, &Identity{ID: "u1"})
	auth.fire(SignedIn, &Identity{ID: "u2"})

	assert.Equal(t, []EventKind{SignedIn, SignedIn}, kinds)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	auth := newFakeAuth()
	store := NewStore(auth)
	defer store.Close()

	delivered := 0
	unsubscribe := store.Subscribe(func(EventKind, *Identity) { delivered++ })

	auth.fire(SignedIn, &Identity{ID: "u1"})
	unsubscribe()
	auth.fire(SignedOut, nil)

	assert.Equal(t, 1, delivered)
}

func TestRepeatedSetupDoesNotLeakListeners(t *testing.T) {
	auth := newFakeAuth()

	for i := 0; i < 5; i++ {
		store := NewStore(auth)
		unsub := store.Subscribe(func(EventKind, *Identity) {})
		unsub()
		store.Close()
	}

	assert.Zero(t, auth.listenerCount())
}

func TestCurrentTracksEvents(t *testing.T) {
	auth := newFakeAuth()
	store := NewStore(auth)
	defer store.Close()

	ctx := context.Background()
	id, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)

	auth.fire(SignedIn, &Identity{ID: "u1", Email: "u1@example.com"})
	id, err = store.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "u1", id.ID)

	auth.fire(SignedOut, nil)
	id, err = store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
}
