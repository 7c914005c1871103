package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubTokens struct{}

func (stubTokens) VerifyAccessToken(raw string) error {
	if raw == "access" {
		return nil
	}
	return errors.New("invalid token")
}

func (stubTokens) VerifyRefreshToken(raw string) error {
	if raw == "refresh" {
		return nil
	}
	return errors.New("invalid token")
}

type stubSessions struct {
	ok  bool
	err error
}

func (s stubSessions) Authenticated(context.Context, *http.Request) (bool, error) {
	return s.ok, s.err
}

func serve(r *gin.Engine, header, value string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func router(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": IsAuthenticated(c)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := router(RequireAuth(stubTokens{}, stubSessions{}))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "", ""))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Authorization", "Basic abc"))
	assert.Equal(t, http.StatusForbidden, serve(r, "Authorization", "Bearer nope"))
	assert.Equal(t, http.StatusForbidden, serve(r, "Authorization", "Bearer refresh"))
	assert.Equal(t, http.StatusOK, serve(r, "Authorization", "bearer access"))

	withSession := router(RequireAuth(stubTokens{}, stubSessions{ok: true}))
	assert.Equal(t, http.StatusOK, serve(withSession, "", ""))

	// a broken session store falls through to the bearer check
	brokenStore := router(RequireAuth(stubTokens{}, stubSessions{err: errors.New("redis down")}))
	assert.Equal(t, http.StatusUnauthorized, serve(brokenStore, "", ""))
	assert.Equal(t, http.StatusOK, serve(brokenStore, "Authorization", "Bearer access"))
}

func TestOptionalAuth(t *testing.T) {
	r := router(OptionalAuth(stubTokens{}, nil))

	assert.Equal(t, http.StatusOK, serve(r, "", ""))
	assert.Equal(t, http.StatusOK, serve(r, "Authorization", "Bearer nope"))
}

func TestRequireRefreshToken(t *testing.T) {
	r := router(RequireRefreshToken(stubTokens{}))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "", ""))
	assert.Equal(t, http.StatusForbidden, serve(r, "Authorization", "Bearer access"))
	assert.Equal(t, http.StatusOK, serve(r, "Authorization", "Bearer refresh"))
}

func TestMiniAppAuth(t *testing.T) {
	r := router(MiniAppAuth("123:abc", time.Hour, stubTokens{}, stubSessions{}))

	assert.Equal(t, http.StatusForbidden, serve(r, InitDataHeader, "user=%7B%7D&hash=deadbeef"))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "", ""))
	assert.Equal(t, http.StatusOK, serve(r, "Authorization", "Bearer access"))
}
