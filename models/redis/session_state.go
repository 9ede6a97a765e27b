package redis

import "time"

// ActiveSelection mirrors the browser-side "last chosen campaign" key.
// One per user, survives reloads, discarded server-side when the user is
// no longer a member of the stored playgroup.
type ActiveSelection struct {
	UserID      string    `json:"user_id"`
	PlaygroupID string    `json:"playgroup_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminSession marks one JWT session as having passed the admin
// passphrase gate. Keyed by session id, never by email, so signing out
// (which rotates the session id) revokes it.
type AdminSession struct {
	SessionID string    `json:"session_id"`
	Email     string    `json:"email"`
	GrantedAt time.Time `json:"granted_at"`
}

// JoinIntent captures an explicit "join this campaign" action taken while
// holding an invite token, before any identity-establishing redirect.
// Redemption consumes it exactly once.
type JoinIntent struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	SetAt     time.Time `json:"set_at"`
}
