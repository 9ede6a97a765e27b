package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoSelectSingleCampaign(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{{ID: "A", Name: "Friday Night", Role: "owner"}}

	sel := NewSelector(&memSelectionStore{})
	require.NoError(t, sel.LoadCampaigns(context.Background(), gw))

	active := sel.Active()
	require.NotNil(t, active)
	assert.Equal(t, "A", active.ID)
}

func TestNoAutoSelectWithTwoCampaigns(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{
		{ID: "A", Name: "Friday Night", Role: "owner"},
		{ID: "B", Name: "Sunday Club", Role: "member"},
	}

	sel := NewSelector(&memSelectionStore{})
	require.NoError(t, sel.LoadCampaigns(context.Background(), gw))

	assert.Nil(t, sel.Active(), "two campaigns and no persisted id: the UI shows a picker")
}

func TestPersistedSelectionPreferredOverAutoSelect(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{
		{ID: "A", Name: "Friday Night", Role: "owner"},
		{ID: "B", Name: "Sunday Club", Role: "member"},
	}
	store := &memSelectionStore{id: "B"}

	sel := NewSelector(store)
	require.NoError(t, sel.LoadCampaigns(context.Background(), gw))

	active := sel.Active()
	require.NotNil(t, active)
	assert.Equal(t, "B", active.ID)
}

func TestStalePersistedSelectionFallsBackToAutoSelect(t *testing.T) {
	// u1 owns only A but the store remembers B from before u1 left it.
	gw := newFakeGateway()
	gw.campaigns = []Campaign{{ID: "A", Name: "Friday Night", Role: "owner"}}
	store := &memSelectionStore{id: "B"}

	sel := NewSelector(store)
	require.NoError(t, sel.LoadCampaigns(context.Background(), gw))

	active := sel.Active()
	require.NotNil(t, active, "fallback is auto-select, not null")
	assert.Equal(t, "A", active.ID)

	persisted, _ := store.Get()
	assert.Equal(t, "A", persisted, "the dead id must not survive in the store")
}

func TestLoadCampaignsFailsClosed(t *testing.T) {
	gw := newFakeGateway()
	gw.campaigns = []Campaign{{ID: "A", Name: "Friday Night", Role: "owner"}}
	store := &memSelectionStore{}

	sel := NewSelector(store)
	require.NoError(t, sel.LoadCampaigns(context.Background(), gw))
	require.NotNil(t, sel.Active())

	gw.listErr = ErrRemoteUnavailable
	err := sel.LoadCampaigns(context.Background(), gw)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)

	active := sel.Active()
	require.NotNil(t, active, "prior selection untouched on gateway failure")
	assert.Equal(t, "A", active.ID)
	assert.Len(t, sel.Campaigns(), 1)
}

func TestSetActiveSameCampaignStillNotifies(t *testing.T) {
	sel := NewSelector(&memSelectionStore{})
	campaign := &Campaign{ID: "A", Name: "Friday Night", Role: "owner"}

	notifications := 0
	sel.OnChange(func(*Campaign) { notifications++ })

	sel.SetActive(campaign)
	sel.SetActive(campaign)

	assert.Equal(t, 2, notifications, "re-setting the same campaign reloads after external mutations")
}

func TestSetActiveNilClearsPersistence(t *testing.T) {
	store := &memSelectionStore{id: "A"}
	sel := NewSelector(store)

	sel.SetActive(nil)

	assert.Nil(t, sel.Active())
	persisted, _ := store.Get()
	assert.Empty(t, persisted)
}
