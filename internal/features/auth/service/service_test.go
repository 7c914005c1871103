package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-checkin-backend/internal/common/cache"
	apperrors "tg-checkin-backend/internal/common/errors"
)

func newSessions(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(cache.NewCacheService(client), "session-secret", "connect.sid", 24*time.Hour), mr
}

func withCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "connect.sid", Value: value})
	return r
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, 24*time.Hour)

	access, err := m.AccessToken()
	require.NoError(t, err)
	refresh, err := m.RefreshToken()
	require.NoError(t, err)

	assert.NoError(t, m.VerifyAccessToken(access))
	assert.NoError(t, m.VerifyRefreshToken(refresh))
	assert.ErrorIs(t, m.VerifyAccessToken(refresh), ErrInvalidToken)
	assert.ErrorIs(t, m.VerifyRefreshToken(access), ErrInvalidToken)
	assert.ErrorIs(t, m.VerifyAccessToken(""), ErrInvalidToken)

	other := NewTokenManager("other", time.Hour, time.Hour)
	assert.ErrorIs(t, other.VerifyAccessToken(access), ErrInvalidToken)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(access, claims)
	require.NoError(t, err)
	assert.Equal(t, "mini-app", claims.AppType)
	assert.Equal(t, "hwdb", claims.Company)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)
	access, err := m.AccessToken()
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	assert.ErrorIs(t, m.VerifyAccessToken(access), ErrInvalidToken)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	s, mr := newSessions(t)
	ctx := context.Background()

	ok, err := s.Authenticated(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, ok)

	value, err := s.Create(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 1)
	assert.Equal(t, 24*time.Hour, mr.TTL(mr.Keys()[0]))

	ok, err = s.Authenticated(ctx, withCookie(value))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Authenticated(ctx, withCookie(value+"x"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Destroy(ctx, withCookie(value)))
	assert.Empty(t, mr.Keys())

	ok, err = s.Authenticated(ctx, withCookie(value))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_Expires(t *testing.T) {
	s, mr := newSessions(t)
	ctx := context.Background()

	value, err := s.Create(ctx, "admin")
	require.NoError(t, err)

	mr.FastForward(24*time.Hour + time.Second)
	ok, err := s.Authenticated(ctx, withCookie(value))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService(t *testing.T) {
	sessions, _ := newSessions(t)
	s := NewAuthService(
		Credentials{Username: "admin", Password: "pw", ClientID: "panel", ClientSecret: "cs"},
		NewTokenManager("secret", time.Hour, time.Hour),
		sessions,
	)
	ctx := context.Background()

	_, err := s.Login(ctx, "", "pw")
	assert.Equal(t, "Missing required fields.", apperrors.PublicMessage(err))
	_, err = s.Login(ctx, "admin", "nope")
	assert.Equal(t, "Invalid credential.", apperrors.PublicMessage(err))
	assert.Equal(t, 400, apperrors.StatusCode(err))
	cookie, err := s.Login(ctx, "admin", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, cookie)

	_, err = s.IssueTokens("panel", "")
	assert.Equal(t, "Missing required field.", apperrors.PublicMessage(err))
	_, err = s.IssueTokens("panel", "wrong")
	assert.Equal(t, "Invalid credentials.", apperrors.PublicMessage(err))
	pair, err := s.IssueTokens("panel", "cs")
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}
