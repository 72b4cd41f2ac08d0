package auth

import (
	"context"
	"time"
)

// Session is the locally cached authenticated session: the identity shown to
// screens plus the provider tokens needed to keep it alive.
type Session struct {
	Identity     Identity
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// SessionStore abstracts persistence of the single current session. At most
// one session is current at a time; it exists between a successful
// sign-in/sign-up and an explicit sign-out. State must survive process
// restarts. Implementations serialize mutations (single-writer discipline);
// reads may happen concurrently from multiple screens.
type SessionStore interface {
	// Current returns the presently authenticated identity, or nil when
	// signed out.
	Current(ctx context.Context) (*Identity, error)

	// CurrentSession returns the full cached session including tokens, or
	// nil when signed out. Intended for the flow controller, not for screens.
	CurrentSession(ctx context.Context) (*Session, error)

	// SetCurrent replaces the current session.
	SetCurrent(ctx context.Context, s Session) error

	// Clear signs out locally. Subsequent Current calls return nil.
	Clear(ctx context.Context) error

	// UpdateDisplayName mutates the current identity's display name in place
	// and returns the updated identity. Fails with ErrNoActiveSession when
	// signed out.
	UpdateDisplayName(ctx context.Context, name string) (*Identity, error)
}
