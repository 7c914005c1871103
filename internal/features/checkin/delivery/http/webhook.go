package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg-checkin-backend/internal/common/logger"
)

type Dispatch func(context.Context, tgbotapi.Update)

// WebhookHandler receives bot updates pushed by Telegram.
type WebhookHandler struct {
	token    string
	dispatch Dispatch
}

func NewWebhookHandler(botToken string, dispatch Dispatch) *WebhookHandler {
	return &WebhookHandler{token: botToken, dispatch: dispatch}
}

func (h *WebhookHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/webhook/telegram/:token", h.Receive)
}

// @Summary Telegram webhook
// @Description Always answers 200 so Telegram does not redeliver
// @Tags bot
// @Accept json
// @Param token path string true "Bot token"
// @Success 200
// @Failure 404
// @Router /webhook/telegram/{token} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("token")), []byte(h.token)) != 1 {
		c.Status(http.StatusNotFound)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Warn().Err(err).Msg("Malformed webhook update")
		c.Status(http.StatusOK)
		return
	}

	h.dispatch(c.Request.Context(), update)
	c.Status(http.StatusOK)
}
