package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tg-checkin-backend/internal/common/middleware"
	"tg-checkin-backend/internal/features/auth/service"
)

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret"`
}

type TokenRequest struct {
	ClientID     string `json:"clientId" example:"panel"`
	ClientSecret string `json:"clientSecret" example:"secret"`
}

type AuthStatusResponse struct {
	Message         string `json:"message" example:"You are authenticated."`
	IsAuthenticated bool   `json:"isAuthenticated" example:"true"`
}

type TokenResponse struct {
	Message      string `json:"message" example:"Success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type AuthHandler struct {
	service      service.AuthService
	tokens       middleware.TokenVerifier
	sessions     middleware.SessionChecker
	cookieName   string
	cookieMaxAge int
	secure       bool
}

func NewAuthHandler(s service.AuthService, tokens middleware.TokenVerifier, sessions *service.SessionStore, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		service:      s,
		tokens:       tokens,
		sessions:     sessions,
		cookieName:   sessions.CookieName(),
		cookieMaxAge: int(sessions.TTL().Seconds()),
		secure:       secureCookie,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRoutes) {
	optional := middleware.OptionalAuth(h.tokens, h.sessions)

	router.POST("/login", optional, h.Login)
	router.GET("/logout", middleware.RequireAuth(h.tokens, h.sessions), h.Logout)
	router.GET("/authenticate", optional, h.Authenticate)
	router.POST("/token", h.Token)
	router.GET("/access-token", middleware.RequireRefreshToken(h.tokens), h.AccessToken)
}

// @Summary Session login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} middleware.MessageResponse
// @Failure 400 {object} middleware.MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		c.JSON(http.StatusOK, middleware.MessageResponse{Message: "Login success"})
		return
	}

	var req LoginRequest
	_ = c.ShouldBindJSON(&req)

	cookie, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, cookie, h.cookieMaxAge, "/", "", h.secure, true)
	c.JSON(http.StatusOK, middleware.MessageResponse{Message: "Login success"})
}

// @Summary Session logout
// @Tags auth
// @Produce json
// @Success 200 {object} middleware.MessageResponse
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.Request); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, middleware.MessageResponse{Message: "Login out success"})
}

// @Summary Session probe
// @Tags auth
// @Produce json
// @Success 200 {object} AuthStatusResponse
// @Failure 401 {object} AuthStatusResponse
// @Router /authenticate [get]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		c.JSON(http.StatusOK, AuthStatusResponse{Message: "You are authenticated.", IsAuthenticated: true})
		return
	}
	c.JSON(http.StatusUnauthorized, AuthStatusResponse{Message: "You are unauthenticated.", IsAuthenticated: false})
}

// @Summary Client-credential tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Client credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} middleware.MessageResponse
// @Router /token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	_ = c.ShouldBindJSON(&req)

	pair, err := h.service.IssueTokens(req.ClientID, req.ClientSecret)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Message: "Success", AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// @Summary Exchange refresh token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TokenResponse
// @Failure 401 {object} middleware.MessageResponse
// @Failure 403 {object} middleware.MessageResponse
// @Router /access-token [get]
func (h *AuthHandler) AccessToken(c *gin.Context) {
	access, err := h.service.RefreshAccessToken()
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Message: "Success", AccessToken: access})
}
