package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/middleware"
	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/common/validation"
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/service"
)

const msgInvalidBody = "Missing required fields,or input invalid fields."

// AccountHandler serves CRUD for one account collection under a route prefix.
type AccountHandler struct {
	service service.AccountService
	single  string
	plural  string
}

func NewLiveHandler(s service.AccountService) *AccountHandler {
	return &AccountHandler{service: s, single: "/account", plural: "/accounts"}
}

func NewHistoricHandler(s service.AccountService) *AccountHandler {
	return &AccountHandler{service: s, single: "/historic-account", plural: "/historic-accounts"}
}

func (h *AccountHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST(h.single, h.Create)
	router.PUT(h.single+"/:id", h.Update)
	router.GET(h.single+"/:id", h.Get)
	router.DELETE(h.single+"/:id", h.Delete)
	router.GET(h.plural, h.List)
}

func bindAccount(c *gin.Context) (models.AccountRequest, bool) {
	var req models.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Str("path", c.FullPath()).Msg(validation.BindingMessage(err))
		middleware.RespondError(c, apperrors.NewValidationError("body", msgInvalidBody))
		return req, false
	}
	return req, true
}

// @Summary Create account
// @Description Insert a live row (409 when tgId exists) or a historic row (409 when an identical one exists)
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.AccountRequest true "Account"
// @Success 201 {object} middleware.MessageResponse
// @Failure 400 {object} middleware.MessageResponse
// @Failure 409 {object} middleware.MessageResponse
// @Router /account [post]
// @Router /historic-account [post]
func (h *AccountHandler) Create(c *gin.Context) {
	req, ok := bindAccount(c)
	if !ok {
		return
	}
	if _, err := h.service.Create(c.Request.Context(), req); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, middleware.MessageResponse{Message: service.MsgCreated})
}

// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ObjectID"
// @Param body body models.AccountRequest true "Account"
// @Success 200 {object} middleware.MessageResponse
// @Failure 400 {object} middleware.MessageResponse "Invalid id, identical record or not found"
// @Router /account/{id} [put]
// @Router /historic-account/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	if _, err := validation.ValidateObjectID(c.Param("id")); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("id", apperrors.MsgInvalidID))
		return
	}
	req, ok := bindAccount(c)
	if !ok {
		return
	}
	if err := h.service.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, middleware.MessageResponse{Message: service.MsgUpdated})
}

// @Summary Get account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "ObjectID"
// @Success 200 {object} models.ItemResponse
// @Failure 400 {object} middleware.MessageResponse
// @Router /account/{id} [get]
// @Router /historic-account/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ItemResponse{Message: service.MsgFound, Data: account})
}

// @Summary Delete account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "ObjectID"
// @Success 200 {object} middleware.MessageResponse
// @Failure 400 {object} middleware.MessageResponse
// @Router /account/{id} [delete]
// @Router /historic-account/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, middleware.MessageResponse{Message: service.MsgDeleted})
}

// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive search"
// @Param filterFields query string false "Comma-separated fields that must all match search"
// @Param page query int false "Page, default 1"
// @Param pageSize query int false "Page size, default 2"
// @Param sortBy query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} pagination.Page[models.Account]
// @Router /accounts [get]
// @Router /historic-accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	q, err := pagination.ParseQuery(c.Request.URL.Query())
	if err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("query", err.Error()))
		return
	}
	items, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(items, q, total))
}
