package auth

// Credentials carries raw field values collected by a screen for one submit
// attempt. They are never persisted.
type Credentials struct {
	Email           string
	Password        string
	ConfirmPassword string // sign-up only
	FullName        string // sign-up only
}

// Identity is the authenticated principal cached locally. It mirrors the
// account held by the remote identity provider, which stays the source of
// truth.
type Identity struct {
	ID              string
	Email           string
	DisplayName     string
	ProfileImageRef string // device-local image reference, not synced remotely
}

// Action identifies which user-initiated auth flow is being validated.
type Action int

const (
	ActionLogin Action = iota
	ActionSignUp
	ActionPasswordReset
)

// Intent is an abstract navigation instruction consumed by the UI layer.
type Intent string

const (
	IntentNone            Intent = ""
	IntentGoToHome        Intent = "home"
	IntentGoBack          Intent = "back"
	IntentGoToLogin       Intent = "login"
	IntentCloseEditDialog Intent = "close_edit"
)

// FlowResult is the outcome of a flow-controller operation. On failure the
// matching error is returned alongside and Message carries the user-facing
// text; the screen stays on its current state with field values intact.
type FlowResult struct {
	Identity *Identity
	Intent   Intent
	Message  string
	// Warning is set when the operation succeeded with a caveat, e.g. the
	// account was created but the display name could not be written.
	Warning error
}
