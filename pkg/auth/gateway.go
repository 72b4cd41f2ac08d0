package auth

import (
	"context"
	"time"
)

// Principal is the remote provider's view of an authenticated account,
// including the tokens needed to act on its behalf.
type Principal struct {
	UID         string
	Email       string
	DisplayName string

	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Gateway abstracts the remote identity provider. Each call is a single
// request/response round trip with no internal retry; failures are mapped to
// the error taxonomy in errors.go and surfaced to the caller, which decides
// whether to retry.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (Principal, error)

	// SignUp creates the account and then writes the display name via a
	// secondary remote call. When that secondary call fails, the created
	// principal is still returned together with ErrProfileUpdateIncomplete.
	SignUp(ctx context.Context, email, password, fullName string) (Principal, error)

	SendPasswordReset(ctx context.Context, email string) error

	UpdateDisplayName(ctx context.Context, p Principal, name string) (Principal, error)

	// SignOut revokes the remote session where the provider supports it.
	// Callers treat failures as non-fatal; the local session is authoritative
	// for sign-out.
	SignOut(ctx context.Context, p Principal) error

	// CurrentPrincipal restores a session from a stored refresh token. Used
	// at cold start before any screen renders.
	CurrentPrincipal(ctx context.Context, refreshToken string) (Principal, error)
}
