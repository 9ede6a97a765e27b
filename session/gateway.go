package session

import "context"

// Identity is an authenticated account, held only as a reference. Absent
// (nil) when the viewer is anonymous.
type Identity struct {
	ID    string
	Email string
}

// Campaign is a playgroup as seen by the current identity.
type Campaign struct {
	ID   string
	Name string
	Role string // "owner" or "member"
}

// Player is a meeple record inside one campaign.
type Player struct {
	ID        string
	Name      string
	ClaimedBy string
	Image     string
	Color     string
}

// Game is a board game registered in one campaign.
type Game struct {
	ID    string
	Name  string
	Image string
}

// Entry is a single recorded win.
type Entry struct {
	ID            string
	GameID        string
	GameName      string
	PlayerID      string
	PlayerName    string
	Date          string
	CreatedByName string
	UpdatedByName string
}

// Snapshot is the batched read for one campaign. The cache swaps whole
// snapshots, never patches them.
type Snapshot struct {
	CampaignID string
	Players    []Player
	Games      []Game
	Entries    []Entry
}

// Invite is the read-only view of an invite token.
type Invite struct {
	Token        string
	CampaignID   string
	CampaignName string
}

// Gateway is the remote data boundary of the core. Implementations talk
// to the hosted backend; tests substitute fakes.
type Gateway interface {
	// ListCampaigns returns every campaign visible to the current
	// identity, or all campaigns system-wide under admin impersonation.
	ListCampaigns(ctx context.Context) ([]Campaign, error)

	// FetchSnapshot performs the one batched read for a campaign.
	FetchSnapshot(ctx context.Context, campaignID string) (*Snapshot, error)

	// ResolveInvite reads invite metadata. Never requires authentication
	// and never mutates membership.
	ResolveInvite(ctx context.Context, token string) (*Invite, error)

	// RedeemInvite joins the campaign bound to the token. Requires
	// authentication.
	RedeemInvite(ctx context.Context, token string) (*Invite, error)

	// EnterAdminMode elevates the current session via the passphrase
	// gate; ExitAdminMode drops the elevation.
	EnterAdminMode(ctx context.Context, passphrase string) error
	ExitAdminMode(ctx context.Context) error
}

// GatewayFactory resolves the gateway for one operation given the access
// mode. Resolving once per operation replaces scattered "is admin?"
// checks at call sites.
type GatewayFactory func(Mode) Gateway

// SingleGateway is the factory for deployments with one backend client
// for every mode.
func SingleGateway(gw Gateway) GatewayFactory {
	return func(Mode) Gateway { return gw }
}

// AuthProvider is the external auth subsystem boundary.
type AuthProvider interface {
	// CurrentIdentity may block briefly while querying the remote auth
	// subsystem. Returns (nil, nil) when anonymous.
	CurrentIdentity(ctx context.Context) (*Identity, error)

	// OnChange registers a callback for auth state changes and returns
	// an unsubscribe function.
	OnChange(cb func(EventKind, *Identity)) (unsubscribe func())

	// SignOut drops the current identity.
	SignOut(ctx context.Context) error
}

// SelectionStore persists the active campaign id across reloads.
type SelectionStore interface {
	Get() (string, error)
	Set(campaignID string) error
	Remove() error
}
