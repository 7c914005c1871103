package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/middleware"
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/service"
)

type MiniAppHandler struct {
	service service.MiniAppService
}

func NewMiniAppHandler(s service.MiniAppService) *MiniAppHandler {
	return &MiniAppHandler{service: s}
}

func (h *MiniAppHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/tg-account", h.CheckIn)
	router.GET("/tg-account/:tgId", h.Latest)
}

// owns rejects init-data users acting on another tgId. Bearer and session
// callers are operators and may act on any account.
func owns(c *gin.Context, tgID string) bool {
	user, ok := middleware.TelegramUser(c)
	if !ok {
		return true
	}
	return strconv.FormatInt(user.ID, 10) == tgID
}

// @Summary Mini-app check-in
// @Description Upserts the live row from the pending contact entry and records a snapshot
// @Tags mini-app
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Security BearerAuth
// @Param body body models.MiniAppRequest true "Check-in"
// @Success 201 {object} models.MiniAppResponse
// @Failure 400 {object} middleware.MessageResponse
// @Failure 403 {object} middleware.MessageResponse
// @Failure 500 {object} middleware.MessageResponse "Cache expired"
// @Router /tg-account [post]
func (h *MiniAppHandler) CheckIn(c *gin.Context) {
	var req models.MiniAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", "Missing fields or malformed data."))
		return
	}
	if !owns(c, req.TgID) {
		middleware.RespondError(c, apperrors.NewForbiddenError("tgId does not match init data"))
		return
	}

	account, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MiniAppResponse{
		StatusCode: http.StatusCreated,
		Message:    "Telegram account created successfully",
		Data:       account,
	})
}

// @Summary Latest snapshot
// @Tags mini-app
// @Produce json
// @Security TelegramInitData
// @Security BearerAuth
// @Param tgId path string true "Telegram id"
// @Success 200 {object} models.MiniAppResponse
// @Router /tg-account/{tgId} [get]
func (h *MiniAppHandler) Latest(c *gin.Context) {
	tgID := c.Param("tgId")
	if !owns(c, tgID) {
		middleware.RespondError(c, apperrors.NewForbiddenError("tgId does not match init data"))
		return
	}

	account, err := h.service.Latest(c.Request.Context(), tgID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MiniAppResponse{
		StatusCode: http.StatusOK,
		Message:    "Success",
		Data:       account,
	})
}
