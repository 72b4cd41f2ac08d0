package auth

import "strings"

// Validate performs the local input-shape checks for one auth action. It is
// synchronous, has no side effects, and must pass before any gateway call.
// Email format beyond non-emptiness is left to the identity provider.
func Validate(action Action, c Credentials) error {
	switch action {
	case ActionLogin:
		if blank(c.Email) || c.Password == "" {
			return ErrMissingField
		}
	case ActionSignUp:
		if blank(c.Email) || c.Password == "" || blank(c.FullName) {
			return ErrMissingField
		}
		if c.Password != c.ConfirmPassword {
			return ErrPasswordMismatch
		}
	case ActionPasswordReset:
		if blank(c.Email) {
			return ErrMissingField
		}
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
