package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMode(t *testing.T) {
	identity := &Identity{ID: "u1", Email: "u1@example.com"}
	campaign := &Campaign{ID: "A", Name: "Friday Night", Role: "owner"}

	tests := []struct {
		name          string
		identity      *Identity
		active        *Campaign
		invitePresent bool
		adminFlag     bool
		want          Mode
	}{
		{"anonymous, no invite", nil, nil, false, false, LoggedOutNoCampaign},
		{"anonymous with invite is a guest", nil, nil, true, false, Guest},
		{"logged in, no campaign picked", identity, nil, false, false, LoggedOutNoCampaign},
		{"logged in with active campaign", identity, campaign, false, false, Editor},
		{"admin flag overrides editor", identity, campaign, false, true, AdminImpersonation},
		{"admin flag overrides pick-a-campaign", identity, nil, false, true, AdminImpersonation},
		{"admin flag overrides invite", identity, campaign, true, true, AdminImpersonation},
		{"admin flag means nothing without identity", nil, nil, true, true, Guest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMode(tt.identity, tt.active, tt.invitePresent, tt.adminFlag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanEdit(t *testing.T) {
	assert.True(t, Editor.CanEdit())
	assert.True(t, AdminImpersonation.CanEdit())
	assert.False(t, Guest.CanEdit())
	assert.False(t, LoggedOutNoCampaign.CanEdit())
}
