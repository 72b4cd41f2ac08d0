package auth

import "errors"

// User-facing status messages. Kept as a fixed table so screens render
// deterministic text instead of free-form remote error strings.
const (
	msgLoginSuccess  = "Logged in successfully!"
	msgSignUpSuccess = "Account created successfully!"
	msgResetSent     = "A password reset link has been sent to your email."
	msgNameUpdated   = "Profile updated."
	msgLoggedOut     = "You have been logged out."

	// Deliberately generic so a failed login does not reveal which field was
	// wrong.
	msgLoginFailed = "Login failed."
)

// MessageFor translates a flow error into the text a screen should show.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return "Please fill in all required fields."
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, ErrInvalidCredentials):
		return msgLoginFailed
	case errors.Is(err, ErrEmailInUse):
		return "This email is already registered."
	case errors.Is(err, ErrWeakPassword):
		return "Password should be at least 6 characters."
	case errors.Is(err, ErrUserNotFound):
		return "No account found for that email."
	case errors.Is(err, ErrNetwork):
		return "Network error. Please check your connection and try again."
	case errors.Is(err, ErrNoActiveSession):
		return "You are signed out. Please log in again."
	default:
		return "Something went wrong. Please try again."
	}
}
