package session

// Mode is the derived access mode. Never stored: recomputed whenever the
// identity, the active campaign or an invite token changes, and applied
// all-or-nothing per recomputation.
type Mode int

const (
	// LoggedOutNoCampaign covers both the anonymous landing state and a
	// logged-in user who has not picked a campaign yet.
	LoggedOutNoCampaign Mode = iota
	// Guest is read-only access scoped to exactly the invite's campaign.
	Guest
	// Editor is the only mode permitting mutation.
	Editor
	// AdminImpersonation bypasses membership scoping. Entered only via
	// the explicit passphrase gate, never implicitly.
	AdminImpersonation
)

func (m Mode) String() string {
	switch m {
	case LoggedOutNoCampaign:
		return "logged_out_no_campaign"
	case Guest:
		return "guest"
	case Editor:
		return "editor"
	case AdminImpersonation:
		return "admin_impersonation"
	}
	return "unknown"
}

// CanEdit reports whether the mode permits mutation.
func (m Mode) CanEdit() bool {
	return m == Editor || m == AdminImpersonation
}

// ResolveMode derives the access mode. Pure: same inputs, same mode.
//
// An anonymous viewer holding an invite is a Guest of that campaign and
// nothing else, even if another tab is an Editor elsewhere. The admin
// flag overrides Editor and Guest, but only for an authenticated
// identity: elevation without a login is meaningless.
func ResolveMode(identity *Identity, active *Campaign, invitePresent, adminFlag bool) Mode {
	if identity == nil {
		if invitePresent {
			return Guest
		}
		return LoggedOutNoCampaign
	}
	if adminFlag {
		return AdminImpersonation
	}
	if active == nil {
		return LoggedOutNoCampaign
	}
	return Editor
}
