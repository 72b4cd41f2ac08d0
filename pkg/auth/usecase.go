package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fibear/portal/pkg/security/idtoken"
)

// FlowUseCase orchestrates one user-initiated auth action: local validation,
// the remote call, the session-store update and the navigation intent handed
// back to the screen. Callers must not run two operations concurrently for
// the same screen; the UI disables the submit control while a call is in
// flight.
type FlowUseCase interface {
	// Bootstrap restores any cached session at cold start, refreshing expired
	// tokens through the gateway. It runs before the HTTP server accepts
	// requests.
	Bootstrap(ctx context.Context) error

	SubmitLogin(ctx context.Context, creds Credentials) (FlowResult, error)
	SubmitSignUp(ctx context.Context, creds Credentials) (FlowResult, error)
	SubmitPasswordReset(ctx context.Context, email string) (FlowResult, error)
	SubmitProfileEdit(ctx context.Context, newName string) (FlowResult, error)
	Logout(ctx context.Context) (FlowResult, error)
}

type flowController struct {
	gateway  Gateway
	sessions SessionStore
	log      *zap.Logger
}

// NewFlowController returns the default FlowUseCase implementation.
func NewFlowController(gateway Gateway, sessions SessionStore, log *zap.Logger) FlowUseCase {
	return &flowController{gateway: gateway, sessions: sessions, log: log}
}

// Tokens expiring within this window are refreshed at bootstrap rather than
// risking a 401 on the first screen render.
const expirySkew = 30 * time.Second

func (f *flowController) Bootstrap(ctx context.Context) error {
	sess, err := f.sessions.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		f.log.Info("bootstrap: no cached session")
		return nil
	}

	exp := sess.ExpiresAt
	// The token itself is authoritative for expiry; the stored timestamp can
	// lag behind a token replaced out of band.
	if claims, err := idtoken.Parse(sess.IDToken); err == nil && !claims.ExpiresAt.IsZero() {
		exp = claims.ExpiresAt
	}
	if time.Now().Add(expirySkew).Before(exp) {
		f.log.Info("bootstrap: cached session valid", zap.String("uid", sess.Identity.ID))
		return nil
	}

	p, err := f.gateway.CurrentPrincipal(ctx, sess.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrNetwork) {
			// Offline start: keep the cached identity, the next remote call
			// will surface the problem to the user.
			f.log.Warn("bootstrap: provider unreachable, keeping cached session")
			return nil
		}
		f.log.Warn("bootstrap: cached session rejected, clearing", zap.Error(err))
		return f.sessions.Clear(ctx)
	}

	refreshed := sessionFromPrincipal(p)
	refreshed.Identity.ProfileImageRef = sess.Identity.ProfileImageRef
	if err := f.sessions.SetCurrent(ctx, refreshed); err != nil {
		return err
	}
	f.log.Info("bootstrap: session refreshed", zap.String("uid", p.UID))
	return nil
}

func (f *flowController) SubmitLogin(ctx context.Context, creds Credentials) (FlowResult, error) {
	if err := Validate(ActionLogin, creds); err != nil {
		return failure(err), err
	}

	p, err := f.gateway.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		return failure(err), err
	}

	sess := sessionFromPrincipal(p)
	if err := f.sessions.SetCurrent(ctx, sess); err != nil {
		return failure(err), err
	}
	return FlowResult{
		Identity: &sess.Identity,
		Intent:   IntentGoToHome,
		Message:  msgLoginSuccess,
	}, nil
}

func (f *flowController) SubmitSignUp(ctx context.Context, creds Credentials) (FlowResult, error) {
	if err := Validate(ActionSignUp, creds); err != nil {
		return failure(err), err
	}

	p, err := f.gateway.SignUp(ctx, creds.Email, creds.Password, creds.FullName)
	var warning error
	if err != nil {
		if !errors.Is(err, ErrProfileUpdateIncomplete) {
			return failure(err), err
		}
		// The account exists even though the name was not set; treat as a
		// success the user can repair from the profile screen.
		warning = ErrProfileUpdateIncomplete
		f.log.Warn("sign-up: display name not written", zap.String("uid", p.UID))
	}

	sess := sessionFromPrincipal(p)
	if err := f.sessions.SetCurrent(ctx, sess); err != nil {
		return failure(err), err
	}
	return FlowResult{
		Identity: &sess.Identity,
		Intent:   IntentGoToHome,
		Message:  msgSignUpSuccess,
		Warning:  warning,
	}, nil
}

func (f *flowController) SubmitPasswordReset(ctx context.Context, email string) (FlowResult, error) {
	if err := Validate(ActionPasswordReset, Credentials{Email: email}); err != nil {
		return failure(err), err
	}
	if err := f.gateway.SendPasswordReset(ctx, email); err != nil {
		return failure(err), err
	}
	return FlowResult{Intent: IntentGoBack, Message: msgResetSent}, nil
}

func (f *flowController) SubmitProfileEdit(ctx context.Context, newName string) (FlowResult, error) {
	if blank(newName) {
		return failure(ErrMissingField), ErrMissingField
	}

	sess, err := f.sessions.CurrentSession(ctx)
	if err != nil {
		return failure(err), err
	}
	if sess == nil {
		return failure(ErrNoActiveSession), ErrNoActiveSession
	}

	if _, err := f.gateway.UpdateDisplayName(ctx, principalFromSession(*sess), newName); err != nil {
		return failure(err), err
	}
	ident, err := f.sessions.UpdateDisplayName(ctx, newName)
	if err != nil {
		return failure(err), err
	}
	return FlowResult{
		Identity: ident,
		Intent:   IntentCloseEditDialog,
		Message:  msgNameUpdated,
	}, nil
}

func (f *flowController) Logout(ctx context.Context) (FlowResult, error) {
	// Local sign-out is optimistic: the cache is cleared even when the remote
	// call fails, leaving a possibly dangling remote session.
	if sess, err := f.sessions.CurrentSession(ctx); err == nil && sess != nil {
		if err := f.gateway.SignOut(ctx, principalFromSession(*sess)); err != nil {
			f.log.Warn("logout: remote sign-out failed", zap.Error(err))
		}
	}
	if err := f.sessions.Clear(ctx); err != nil {
		return failure(err), err
	}
	return FlowResult{Intent: IntentGoToLogin, Message: msgLoggedOut}, nil
}

func failure(err error) FlowResult {
	return FlowResult{Message: MessageFor(err)}
}

func sessionFromPrincipal(p Principal) Session {
	return Session{
		Identity: Identity{
			ID:          p.UID,
			Email:       p.Email,
			DisplayName: p.DisplayName,
		},
		IDToken:      p.IDToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    p.ExpiresAt,
	}
}

func principalFromSession(s Session) Principal {
	return Principal{
		UID:          s.Identity.ID,
		Email:        s.Identity.Email,
		DisplayName:  s.Identity.DisplayName,
		IDToken:      s.IDToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
	}
}
