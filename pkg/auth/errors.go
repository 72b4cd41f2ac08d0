package auth

import "errors"

// Validation errors. These are reported before any remote call is made.
var (
	ErrMissingField     = errors.New("required field is empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Remote-call outcomes. Raw provider error codes are mapped onto this fixed
// taxonomy by the gateway implementation; callers never see free-form remote
// messages. None of these are retried automatically.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password too weak")
	ErrUserNotFound       = errors.New("user not found")
	ErrNetwork            = errors.New("identity provider unreachable")
	ErrUnknown            = errors.New("identity provider error")
)

// ErrProfileUpdateIncomplete marks a sign-up that created the account but
// failed to write the display name. It is a success-with-warning, not a hard
// failure: the returned principal is valid and must still be stored.
var ErrProfileUpdateIncomplete = errors.New("account created but profile update incomplete")

// ErrNoActiveSession is returned when a session-scoped operation runs with no
// current identity. It signals a caller contract violation, not a transient
// condition.
var ErrNoActiveSession = errors.New("no active session")
