// Package firebase implements auth.Gateway against the Identity Toolkit REST
// surface used by the provider's mobile SDKs. Credential custody stays with
// the provider; this client only relays calls and maps raw error codes onto
// the portal's fixed taxonomy.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fibear/portal/pkg/auth"
	"github.com/fibear/portal/pkg/security/idtoken"
)

// Client is a minimal Identity Toolkit client. One request/response round
// trip per operation, no internal retry; a hung call is bounded by the HTTP
// client timeout.
type Client struct {
	APIKey   string
	BaseURL  string
	TokenURL string
	httpDo   *http.Client
}

func New(apiKey, baseURL, tokenURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://identitytoolkit.googleapis.com/v1"
	}
	if tokenURL == "" {
		tokenURL = "https://securetoken.googleapis.com/v1"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		TokenURL: tokenURL,
		httpDo:   &http.Client{Timeout: timeout},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type updateRequest struct {
	IDToken           string `json:"idToken"`
	DisplayName       string `json:"displayName,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type lookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	} `json:"users"`
}

type tokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Principal, error) {
	var out accountResponse
	err := c.post(ctx, "accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &out)
	if err != nil {
		// Never reveal whether the email or the password was wrong.
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.Principal{}, auth.ErrInvalidCredentials
		}
		return auth.Principal{}, err
	}
	return principalFromAccount(out), nil
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (auth.Principal, error) {
	var out accountResponse
	err := c.post(ctx, "accounts:signUp", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &out)
	if err != nil {
		return auth.Principal{}, err
	}
	p := principalFromAccount(out)

	// Secondary call: write the display name onto the fresh account. The
	// account already exists, so a failure here degrades to a warning and the
	// created principal is still returned.
	var upd accountResponse
	if err := c.post(ctx, "accounts:update", updateRequest{
		IDToken:     p.IDToken,
		DisplayName: fullName,
	}, &upd); err != nil {
		return p, fmt.Errorf("%w: %v", auth.ErrProfileUpdateIncomplete, err)
	}
	p.DisplayName = fullName
	return p, nil
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	var out struct {
		Email string `json:"email"`
	}
	return c.post(ctx, "accounts:sendOobCode", oobCodeRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}, &out)
}

func (c *Client) UpdateDisplayName(ctx context.Context, p auth.Principal, name string) (auth.Principal, error) {
	var out accountResponse
	if err := c.post(ctx, "accounts:update", updateRequest{
		IDToken:     p.IDToken,
		DisplayName: name,
	}, &out); err != nil {
		return auth.Principal{}, err
	}
	p.DisplayName = name
	return p, nil
}

// SignOut is a local no-op: the email/password REST surface exposes no
// session revocation, matching the observed app, which only drops its cached
// user. The dangling remote session expires with its refresh token.
func (c *Client) SignOut(ctx context.Context, p auth.Principal) error {
	return nil
}

func (c *Client) CurrentPrincipal(ctx context.Context, refreshToken string) (auth.Principal, error) {
	if refreshToken == "" {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	endpoint := fmt.Sprintf("%s/token?key=%s", c.TokenURL, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %v", auth.ErrUnknown, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.do(req, &tok); err != nil {
		return auth.Principal{}, err
	}

	p := auth.Principal{
		UID:          tok.UserID,
		IDToken:      tok.IDToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiryFromSeconds(tok.ExpiresIn),
	}

	// Profile fields are not part of the token exchange; fetch them, falling
	// back to the token claims when the lookup cannot complete.
	var lk lookupResponse
	if err := c.post(ctx, "accounts:lookup", lookupRequest{IDToken: p.IDToken}, &lk); err == nil && len(lk.Users) > 0 {
		p.UID = lk.Users[0].LocalID
		p.Email = lk.Users[0].Email
		p.DisplayName = lk.Users[0].DisplayName
	} else if claims, perr := idtoken.Parse(p.IDToken); perr == nil {
		if p.UID == "" {
			p.UID = claims.UserID
		}
		p.Email = claims.Email
	}
	return p, nil
}

func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrUnknown, err)
	}
	u := fmt.Sprintf("%s/%s?key=%s", c.BaseURL, endpoint, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrUnknown, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: http %d", auth.ErrNetwork, resp.StatusCode)
		}
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return mapRemoteCode(apiErr.Error.Message)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", auth.ErrUnknown, err)
	}
	return nil
}

// mapRemoteCode is the translation table from raw provider error codes to the
// portal taxonomy. Codes sometimes carry a suffix ("WEAK_PASSWORD : ..."), so
// matching is on the leading token.
func mapRemoteCode(code string) error {
	head := code
	if i := strings.IndexAny(code, " :"); i > 0 {
		head = code[:i]
	}
	switch head {
	case "EMAIL_NOT_FOUND":
		return auth.ErrUserNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED",
		"INVALID_REFRESH_TOKEN", "TOKEN_EXPIRED", "USER_NOT_FOUND":
		return auth.ErrInvalidCredentials
	case "EMAIL_EXISTS":
		return auth.ErrEmailInUse
	case "WEAK_PASSWORD":
		return auth.ErrWeakPassword
	default:
		return fmt.Errorf("%w: %s", auth.ErrUnknown, code)
	}
}

func principalFromAccount(a accountResponse) auth.Principal {
	return auth.Principal{
		UID:          a.LocalID,
		Email:        a.Email,
		DisplayName:  a.DisplayName,
		IDToken:      a.IDToken,
		RefreshToken: a.RefreshToken,
		ExpiresAt:    expiryFromSeconds(a.ExpiresIn),
	}
}

func expiryFromSeconds(s string) time.Time {
	secs, err := strconv.Atoi(s)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Now().Add(time.Duration(secs) * time.Second)
}
