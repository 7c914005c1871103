package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-checkin-backend/internal/common/cache"
	"tg-checkin-backend/internal/features/auth/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens := service.NewTokenManager("secret", time.Hour, 24*time.Hour)
	sessions := service.NewSessionStore(cache.NewCacheService(client), "session-secret", "connect.sid", 24*time.Hour)
	svc := service.NewAuthService(service.Credentials{
		Username: "admin", Password: "pw", ClientID: "panel", ClientSecret: "cs",
	}, tokens, sessions)

	r := gin.New()
	NewAuthHandler(svc, tokens, sessions, false).RegisterRoutes(r)
	return r
}

func send(r http.Handler, method, path string, body interface{}, setup func(*http.Request)) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionFlow(t *testing.T) {
	r := newRouter(t)

	w := send(r, http.MethodGet, "/authenticate", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"isAuthenticated":false`)

	w = send(r, http.MethodPost, "/login", map[string]string{"username": "admin"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields.")

	w = send(r, http.MethodPost, "/login", map[string]string{"username": "admin", "password": "bad"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credential.")

	w = send(r, http.MethodPost, "/login", map[string]string{"username": "admin", "password": "pw"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login success")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]
	assert.Equal(t, "connect.sid", session.Name)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, 86400, session.MaxAge)

	withSession := func(req *http.Request) { req.AddCookie(session) }

	w = send(r, http.MethodGet, "/authenticate", nil, withSession)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You are authenticated.")

	w = send(r, http.MethodGet, "/logout", nil, withSession)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login out success")

	w = send(r, http.MethodGet, "/authenticate", nil, withSession)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = send(r, http.MethodGet, "/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenFlow(t *testing.T) {
	r := newRouter(t)

	w := send(r, http.MethodPost, "/token", map[string]string{"clientId": "panel"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required field.")

	w = send(r, http.MethodPost, "/token", map[string]string{"clientId": "panel", "clientSecret": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials.")

	w = send(r, http.MethodPost, "/token", map[string]string{"clientId": "panel", "clientSecret": "cs"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pair TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.Equal(t, "Success", pair.Message)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	bearer := func(token string) func(*http.Request) {
		return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }
	}

	w = send(r, http.MethodGet, "/authenticate", nil, bearer(pair.AccessToken))
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodGet, "/access-token", nil, bearer(pair.AccessToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(r, http.MethodGet, "/access-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = send(r, http.MethodGet, "/access-token", nil, bearer(pair.RefreshToken))
	require.Equal(t, http.StatusOK, w.Code)
	var refreshed TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken)
}
