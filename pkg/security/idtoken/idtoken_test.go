package idtoken

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestParse(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := buildToken(t, map[string]any{
		"user_id": "u1",
		"email":   "a@b.com",
		"exp":     exp.Unix(),
	})

	c, err := Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "a@b.com", c.Email)
	assert.True(t, c.ExpiresAt.Equal(exp))
}

func TestParseFallsBackToSubject(t *testing.T) {
	tok := buildToken(t, map[string]any{"sub": "u1"})

	c, err := Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.True(t, c.ExpiresAt.IsZero())
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("not-a-token")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	live := buildToken(t, map[string]any{"exp": now.Add(time.Hour).Unix()})
	stale := buildToken(t, map[string]any{"exp": now.Add(-time.Hour).Unix()})
	noExp := buildToken(t, map[string]any{"user_id": "u1"})

	assert.False(t, Expired(live, now))
	assert.True(t, Expired(stale, now))
	assert.True(t, Expired(noExp, now))
	assert.True(t, Expired("garbage", now))
}
