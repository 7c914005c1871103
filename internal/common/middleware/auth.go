package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tg-checkin-backend/internal/common/errors"
)

const (
	ctxAuthenticated = "authenticated"
	ctxAuthMethod    = "auth_method"
)

// TokenVerifier checks bearer JWTs.
type TokenVerifier interface {
	VerifyAccessToken(raw string) error
	VerifyRefreshToken(raw string) error
}

// SessionChecker reports whether the request carries a live admin session.
type SessionChecker interface {
	Authenticated(ctx context.Context, r *http.Request) (bool, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func sessionAuthenticated(c *gin.Context, sessions SessionChecker) bool {
	if sessions == nil {
		return false
	}
	ok, err := sessions.Authenticated(c.Request.Context(), c.Request)
	if err != nil {
		logError(c, errors.NewCacheError("session lookup", err), http.StatusInternalServerError)
		return false
	}
	return ok
}

// RequireAuth admits a valid session or a valid access token.
// No credential is 401, a bad token is 403.
func RequireAuth(tokens TokenVerifier, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionAuthenticated(c, sessions) {
			c.Set(ctxAuthenticated, true)
			c.Set(ctxAuthMethod, "session")
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			RespondError(c, errors.NewUnauthorizedError("missing credentials"))
			return
		}
		if err := tokens.VerifyAccessToken(token); err != nil {
			RespondError(c, errors.NewForbiddenError(err.Error()))
			return
		}

		c.Set(ctxAuthenticated, true)
		c.Set(ctxAuthMethod, "bearer")
		c.Next()
	}
}

// OptionalAuth marks the request authenticated when a session or token is valid
// and never rejects.
func OptionalAuth(tokens TokenVerifier, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionAuthenticated(c, sessions) {
			c.Set(ctxAuthenticated, true)
			c.Set(ctxAuthMethod, "session")
		} else if token := bearerToken(c); token != "" && tokens.VerifyAccessToken(token) == nil {
			c.Set(ctxAuthenticated, true)
			c.Set(ctxAuthMethod, "bearer")
		}
		c.Next()
	}
}

// RequireRefreshToken guards the access-token exchange.
func RequireRefreshToken(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			RespondError(c, errors.NewUnauthorizedError("missing refresh token"))
			return
		}
		if err := tokens.VerifyRefreshToken(token); err != nil {
			RespondError(c, errors.NewForbiddenError(err.Error()))
			return
		}
		c.Next()
	}
}

func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(ctxAuthenticated)
}
