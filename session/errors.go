package session

import "errors"

// Every failure the core surfaces maps to one of these. None of them is
// fatal: callers return control to an interactive state and retry only on
// an explicit user action, never automatically.
var (
	// ErrRemoteUnavailable is a network or backend failure.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrNotAuthenticated means the operation requires an identity. The
	// UI surfaces it as a login prompt, not a crash.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrConflict is an optimistic-update race on claim/unclaim. State
	// must be re-fetched, never assumed.
	ErrConflict = errors.New("conflict")

	// ErrInvalidOrExpiredToken marks a dead invite link, distinct from
	// connectivity trouble.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired invite token")
)
