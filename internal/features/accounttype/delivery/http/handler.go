package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/middleware"
	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/common/validation"
	"tg-checkin-backend/internal/features/accounttype/models"
	"tg-checkin-backend/internal/features/accounttype/service"
)

const msgMissingField = "输入需求字段"

type AccountTypeHandler struct {
	service service.AccountTypeService
}

func NewAccountTypeHandler(s service.AccountTypeService) *AccountTypeHandler {
	return &AccountTypeHandler{service: s}
}

func (h *AccountTypeHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/account-type", h.Create)
	router.PUT("/account-type", h.Update)
	router.PUT("/account-type/:id", h.Update)
	router.GET("/account-type/:id", h.Get)
	router.DELETE("/account-type/:id", h.Delete)
	router.GET("/account-types", h.List)
	router.GET("/accounts-type", h.List)

	router.POST("/verify_password", h.VerifyPassword)
	router.GET("/password_all", h.All)
}

// @Summary Create account type
// @Tags account-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateRequest true "Account type"
// @Success 201 {object} middleware.MessageResponse
// @Failure 400 {object} middleware.MessageResponse
// @Failure 409 {object} middleware.MessageResponse
// @Router /account-type [post]
func (h *AccountTypeHandler) Create(c *gin.Context) {
	var req models.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Str("path", c.FullPath()).Msg(validation.BindingMessage(err))
		middleware.RespondError(c, apperrors.NewValidationError("body", msgMissingField))
		return
	}
	if _, err := h.service.Create(c.Request.Context(), req); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, middleware.MessageResponse{Message: service.MsgCreated})
}

// @Summary Update account type
// @Description The id comes from the path, or from the body on PUT /account-type
// @Tags account-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string false "ObjectID"
// @Param body body models.UpdateRequest true "Account type"
// @Success 200 {object} middleware.MessageResponse
// @Failure 400 {object} middleware.MessageResponse
// @Router /account-type [put]
// @Router /account-type/{id} [put]
func (h *AccountTypeHandler) Update(c *gin.Context) {
	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Str("path", c.FullPath()).Msg(validation.BindingMessage(err))
		middleware.RespondError(c, apperrors.NewValidationError("body", msgMissingField))
		return
	}
	if err := h.service.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, middleware.MessageResponse{Message: service.MsgUpdated})
}

// @Summary Get account type
// @Tags account-types
// @Produce json
// @Security BearerAuth
// @Param id path string true "ObjectID"
// @Success 200 {object} models.ItemResponse
// @Failure 400 {object} middleware.MessageResponse
// @Router /account-type/{id} [get]
func (h *AccountTypeHandler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ItemResponse{Message: service.MsgFound, Data: t})
}

// @Summary Delete account type
// @Tags account-types
// @Produce json
// @Security BearerAuth
// @Param id path string true "ObjectID"
// @Success 200 {object} middleware.MessageResponse
// @Failure 400 {object} middleware.MessageResponse
// @Router /account-type/{id} [delete]
func (h *AccountTypeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, middleware.MessageResponse{Message: service.MsgDeleted})
}

// @Summary List account types
// @Tags account-types
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive search on type"
// @Param page query int false "Page, default 1"
// @Param pageSize query int false "Page size, default 2"
// @Param filterDate query string false "createdAt or updatedAt"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} pagination.Page[models.AccountType]
// @Router /account-types [get]
// @Router /accounts-type [get]
func (h *AccountTypeHandler) List(c *gin.Context) {
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

// @Summary Verify pass code
// @Tags pass-codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.VerifyRequest true "Pass code"
// @Success 200 {object} models.PassCodeResponse "data is null when no entry matches"
// @Failure 400 {object} models.PassCodeResponse
// @Router /verify_password [post]
func (h *AccountTypeHandler) VerifyPassword(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.PassCodeResponse{StatusCode: http.StatusBadRequest, Message: "Missing Field."})
		return
	}
	t, err := h.service.VerifyPassword(c.Request.Context(), req.PassCode)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	resp := models.PassCodeResponse{StatusCode: http.StatusOK, Message: "Success"}
	if t != nil {
		resp.Data = t
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary All pass codes
// @Tags pass-codes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PassCodeResponse
// @Router /password_all [get]
func (h *AccountTypeHandler) All(c *gin.Context) {
	items, err := h.service.All(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PassCodeResponse{StatusCode: http.StatusOK, Message: "Success", Data: items})
}
