package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/logger"
)

const (
	InitDataHeader  = "init_data"
	ctxTelegramUser = "user"
)

// MiniAppAuth accepts Telegram init data from the mini-app and falls back to
// RequireAuth when the header is absent.
func MiniAppAuth(botToken string, expIn time.Duration, tokens TokenVerifier, sessions SessionChecker) gin.HandlerFunc {
	fallback := RequireAuth(tokens, sessions)

	return func(c *gin.Context) {
		raw := c.GetHeader(InitDataHeader)
		if raw == "" {
			fallback(c)
			return
		}

		if err := initdata.Validate(raw, botToken, expIn); err != nil {
			logger.Debug().Err(err).Msg("init data validation failed")
			RespondError(c, errors.NewForbiddenError("invalid init data"))
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			RespondError(c, errors.NewBadRequestError("failed to parse init data"))
			return
		}

		c.Set(ctxTelegramUser, parsed.User)
		c.Set(ctxAuthenticated, true)
		c.Set(ctxAuthMethod, "init_data")
		c.Next()
	}
}

// TelegramUser returns the init-data user, if the request came from the mini-app.
func TelegramUser(c *gin.Context) (initdata.User, bool) {
	v, ok := c.Get(ctxTelegramUser)
	if !ok {
		return initdata.User{}, false
	}
	u, ok := v.(initdata.User)
	return u, ok
}
