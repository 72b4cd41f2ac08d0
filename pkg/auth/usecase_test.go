package auth_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fibear/portal/pkg/auth"
	"github.com/fibear/portal/pkg/session"
)

// gatewayMock counts calls and delegates to optional per-method stubs.
type gatewayMock struct {
	signInCalls    int
	signUpCalls    int
	resetCalls     int
	updateCalls    int
	signOutCalls   int
	principalCalls int

	signInFn    func(email, password string) (auth.Principal, error)
	signUpFn    func(email, password, fullName string) (auth.Principal, error)
	resetFn     func(email string) error
	updateFn    func(p auth.Principal, name string) (auth.Principal, error)
	signOutFn   func(p auth.Principal) error
	principalFn func(refreshToken string) (auth.Principal, error)
}

func (g *gatewayMock) SignIn(_ context.Context, email, password string) (auth.Principal, error) {
	g.signInCalls++
	if g.signInFn != nil {
		return g.signInFn(email, password)
	}
	return auth.Principal{}, auth.ErrUnknown
}

func (g *gatewayMock) SignUp(_ context.Context, email, password, fullName string) (auth.Principal, error) {
	g.signUpCalls++
	if g.signUpFn != nil {
		return g.signUpFn(email, password, fullName)
	}
	return auth.Principal{}, auth.ErrUnknown
}

func (g *gatewayMock) SendPasswordReset(_ context.Context, email string) error {
	g.resetCalls++
	if g.resetFn != nil {
		return g.resetFn(email)
	}
	return nil
}

func (g *gatewayMock) UpdateDisplayName(_ context.Context, p auth.Principal, name string) (auth.Principal, error) {
	g.updateCalls++
	if g.updateFn != nil {
		return g.updateFn(p, name)
	}
	p.DisplayName = name
	return p, nil
}

func (g *gatewayMock) SignOut(_ context.Context, p auth.Principal) error {
	g.signOutCalls++
	if g.signOutFn != nil {
		return g.signOutFn(p)
	}
	return nil
}

func (g *gatewayMock) CurrentPrincipal(_ context.Context, refreshToken string) (auth.Principal, error) {
	g.principalCalls++
	if g.principalFn != nil {
		return g.principalFn(refreshToken)
	}
	return auth.Principal{}, auth.ErrInvalidCredentials
}

func (g *gatewayMock) totalCalls() int {
	return g.signInCalls + g.signUpCalls + g.resetCalls + g.updateCalls + g.signOutCalls + g.principalCalls
}

func newFlow(g auth.Gateway, store auth.SessionStore) auth.FlowUseCase {
	return auth.NewFlowController(g, store, zap.NewNop())
}

func principalU1() auth.Principal {
	return auth.Principal{
		UID:          "u1",
		Email:        "a@b.com",
		DisplayName:  "A",
		IDToken:      "idtok",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func TestSubmitLoginSuccessStoresSession(t *testing.T) {
	g := &gatewayMock{signInFn: func(email, password string) (auth.Principal, error) {
		assert.Equal(t, "a@b.com", email)
		assert.Equal(t, "pw123456", password)
		return principalU1(), nil
	}}
	store := session.NewMemoryStore()
	flow := newFlow(g, store)

	res, err := flow.SubmitLogin(context.Background(), auth.Credentials{Email: "a@b.com", Password: "pw123456"})
	require.NoError(t, err)

	assert.Equal(t, auth.IntentGoToHome, res.Intent)
	assert.Equal(t, "Logged in successfully!", res.Message)
	require.NotNil(t, res.Identity)
	assert.Equal(t, "u1", res.Identity.ID)

	ident, err := store.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, "u1", ident.ID)
	assert.Equal(t, "A", ident.DisplayName)
}

func TestSubmitLoginValidationFailureSkipsGateway(t *testing.T) {
	g := &gatewayMock{}
	store := session.NewMemoryStore()
	flow := newFlow(g, store)

	_, err := flow.SubmitLogin(context.Background(), auth.Credentials{Email: "", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrMissingField)
	assert.Equal(t, 0, g.totalCalls())

	ident, _ := store.Current(context.Background())
	assert.Nil(t, ident)
}

func TestSubmitLoginRemoteFailureLeavesSignedOut(t *testing.T) {
	g := &gatewayMock{signInFn: func(string, string) (auth.Principal, error) {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}}
	store := session.NewMemoryStore()
	flow := newFlow(g, store)

	res, err := flow.SubmitLogin(context.Background(), auth.Credentials{Email: "a@b.com", Password: "bad"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, auth.IntentNone, res.Intent)
	assert.Equal(t, "Login failed.", res.Message)

	ident, _ := store.Current(context.Background())
	assert.Nil(t, ident)
}

func TestSubmitSignUpSuccess(t *testing.T) {
	g := &gatewayMock{signUpFn: func(email, password, fullName string) (auth.Principal, error) {
		p := principalU1()
		p.DisplayName = fullName
		return p, nil
	}}
	store := session.NewMemoryStore()
	flow := newFlow(g, store)

	res, err := flow.SubmitSignUp(context.Background(), auth.Credentials{
		Email: "a@b.com", Password: "pw123456", ConfirmPassword: "pw123456", FullName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.IntentGoToHome, res.Intent)
	assert.Nil(t, res.Warning)

	ident, _ := store.Current(context.Background())
	require.NotNil(t, ident)
	assert.Equal(t, "Ana", ident.DisplayName)
}

func TestSubmitSignUpProfileUpdateIncompleteIsSuccessWithWarning(t *testing.T) {
	g := &gatewayMock{signUpFn: func(string, string, string) (auth.Principal, error) {
		return principalU1(), auth.ErrProfileUpdateIncomplete
	}}
	store := session.NewMemoryStore()
	flow := newFlow(g, store)

	res, err := flow.SubmitSignUp(context.Background(), auth.Credentials{
		Email: "a@b.com", Password: "pw123456", ConfirmPassword: "pw123456", FullName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.IntentGoToHome, res.Intent)
	assert.ErrorIs(t, res.Warning, auth.ErrProfileUpdateIncomplete)

	// The account is usable even though the name write failed.
	ident, _ := store.Current(context.Background())
	require.NotNil(t, ident)
	assert.Equal(t, "u1", ident.ID)
}

func TestSubmitSignUpMismatchSkipsGateway(t *testing.T) {
	g := &gatewayMock{}
	flow := newFlow(g, session.NewMemoryStore())

	_, err := flow.SubmitSignUp(context.Background(), auth.Credentials{
		Email: "a@b.com", Password: "one", ConfirmPassword: "two", FullName: "Ana",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
	assert.Equal(t, 0, g.totalCalls())
}

func TestSubmitPasswordResetDoesNotTouchSession(t *testing.T) {
	g := &gatewayMock{}
	store := session.NewMemoryStore()
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{Identity: auth.Identity{ID: "u1"}}))
	flow := newFlow(g, store)

	res, err := flow.SubmitPasswordReset(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, auth.IntentGoBack, res.Intent)
	assert.Equal(t, "A password reset link has been sent to your email.", res.Message)
	assert.Equal(t, 1, g.resetCalls)

	ident, _ := store.Current(context.Background())
	require.NotNil(t, ident)
	assert.Equal(t, "u1", ident.ID)
}

func TestSubmitPasswordResetIsRepeatable(t *testing.T) {
	g := &gatewayMock{}
	flow := newFlow(g, session.NewMemoryStore())

	for i := 0; i < 3; i++ {
		res, err := flow.SubmitPasswordReset(context.Background(), "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, auth.IntentGoBack, res.Intent)
	}
	assert.Equal(t, 3, g.resetCalls)
}

func TestSubmitProfileEditUpdatesBothSides(t *testing.T) {
	g := &gatewayMock{}
	store := session.NewMemoryStore()
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{
		Identity: auth.Identity{ID: "u1", Email: "a@b.com", DisplayName: "Old"},
	}))
	flow := newFlow(g, store)

	res, err := flow.SubmitProfileEdit(context.Background(), "New Name")
	require.NoError(t, err)
	assert.Equal(t, auth.IntentCloseEditDialog, res.Intent)
	require.NotNil(t, res.Identity)
	assert.Equal(t, "New Name", res.Identity.DisplayName)
	assert.Equal(t, 1, g.updateCalls)

	ident, _ := store.Current(context.Background())
	assert.Equal(t, "New Name", ident.DisplayName)
}

func TestSubmitProfileEditRemoteFailureKeepsOldName(t *testing.T) {
	g := &gatewayMock{updateFn: func(auth.Principal, string) (auth.Principal, error) {
		return auth.Principal{}, auth.ErrNetwork
	}}
	store := session.NewMemoryStore()
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{
		Identity: auth.Identity{ID: "u1", DisplayName: "Old"},
	}))
	flow := newFlow(g, store)

	_, err := flow.SubmitProfileEdit(context.Background(), "New Name")
	assert.ErrorIs(t, err, auth.ErrNetwork)

	ident, _ := store.Current(context.Background())
	assert.Equal(t, "Old", ident.DisplayName)
}

func TestSubmitProfileEditWithoutSession(t *testing.T) {
	g := &gatewayMock{}
	flow := newFlow(g, session.NewMemoryStore())

	_, err := flow.SubmitProfileEdit(context.Background(), "New Name")
	assert.ErrorIs(t, err, auth.ErrNoActiveSession)
	assert.Equal(t, 0, g.updateCalls)
}

func TestLogoutClearsEvenWhenRemoteSignOutFails(t *testing.T) {
	g := &gatewayMock{signOutFn: func(auth.Principal) error {
		return auth.ErrNetwork
	}}
	store := session.NewMemoryStore()
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{Identity: auth.Identity{ID: "u1"}}))
	flow := newFlow(g, store)

	res, err := flow.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, auth.IntentGoToLogin, res.Intent)

	ident, _ := store.Current(context.Background())
	assert.Nil(t, ident)
}

func TestLogoutWhenAlreadySignedOut(t *testing.T) {
	g := &gatewayMock{}
	flow := newFlow(g, session.NewMemoryStore())

	res, err := flow.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, auth.IntentGoToLogin, res.Intent)
	assert.Equal(t, 0, g.signOutCalls)
}

// unsignedToken builds a JWT-shaped token with only the claims segment
// populated, enough for unverified parsing.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestBootstrapNoCachedSession(t *testing.T) {
	g := &gatewayMock{}
	flow := newFlow(g, session.NewMemoryStore())

	require.NoError(t, flow.Bootstrap(context.Background()))
	assert.Equal(t, 0, g.totalCalls())
}

func TestBootstrapKeepsValidSession(t *testing.T) {
	g := &gatewayMock{}
	store := session.NewMemoryStore()
	tok := unsignedToken(t, map[string]any{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{
		Identity: auth.Identity{ID: "u1"},
		IDToken:  tok,
	}))
	flow := newFlow(g, store)

	require.NoError(t, flow.Bootstrap(context.Background()))
	assert.Equal(t, 0, g.principalCalls)

	ident, _ := store.Current(context.Background())
	require.NotNil(t, ident)
}

func TestBootstrapRefreshesExpiredSession(t *testing.T) {
	g := &gatewayMock{principalFn: func(refreshToken string) (auth.Principal, error) {
		assert.Equal(t, "refresh", refreshToken)
		p := principalU1()
		p.DisplayName = "Refreshed"
		return p, nil
	}}
	store := session.NewMemoryStore()
	tok := unsignedToken(t, map[string]any{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{
		Identity:     auth.Identity{ID: "u1", ProfileImageRef: "avatars/u1.png"},
		IDToken:      tok,
		RefreshToken: "refresh",
	}))
	flow := newFlow(g, store)

	require.NoError(t, flow.Bootstrap(context.Background()))
	assert.Equal(t, 1, g.principalCalls)

	sess, err := store.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Refreshed", sess.Identity.DisplayName)
	// Locally stored fields the provider does not carry survive the refresh.
	assert.Equal(t, "avatars/u1.png", sess.Identity.ProfileImageRef)
}

func TestBootstrapOfflineKeepsCachedSession(t *testing.T) {
	g := &gatewayMock{principalFn: func(string) (auth.Principal, error) {
		return auth.Principal{}, auth.ErrNetwork
	}}
	store := session.NewMemoryStore()
	tok := unsignedToken(t, map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{
		Identity: auth.Identity{ID: "u1"}, IDToken: tok, RefreshToken: "refresh",
	}))
	flow := newFlow(g, store)

	require.NoError(t, flow.Bootstrap(context.Background()))

	ident, _ := store.Current(context.Background())
	require.NotNil(t, ident)
	assert.Equal(t, "u1", ident.ID)
}

func TestBootstrapClearsRejectedSession(t *testing.T) {
	g := &gatewayMock{principalFn: func(string) (auth.Principal, error) {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}}
	store := session.NewMemoryStore()
	tok := unsignedToken(t, map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, store.SetCurrent(context.Background(), auth.Session{
		Identity: auth.Identity{ID: "u1"}, IDToken: tok, RefreshToken: "stale",
	}))
	flow := newFlow(g, store)

	require.NoError(t, flow.Bootstrap(context.Background()))

	ident, _ := store.Current(context.Background())
	assert.Nil(t, ident)
}

func TestMessageForUnknownError(t *testing.T) {
	assert.Equal(t, "Something went wrong. Please try again.", auth.MessageFor(errors.New("boom")))
}
