package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printcraft/printcraft-api/internal/config"
	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/middleware"
	"github.com/printcraft/printcraft-api/internal/service"
)

type AuthHandler struct {
	svc    *service.AuthService
	jwtCfg config.JWTConfig
}

func NewAuthHandler(svc *service.AuthService, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{svc: svc, jwtCfg: jwtCfg}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		failFor(c, err)
		return
	}
	h.setTokenCookie(c, resp.Token)
	ok(c, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		failFor(c, err)
		return
	}
	h.setTokenCookie(c, resp.Token)
	ok(c, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.jwtCfg.CookieName, "", -1, "/", "", false, true)
	message(c, http.StatusOK, "logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.GetMe(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(h.jwtCfg.CookieName, token, int(h.jwtCfg.Expiration.Seconds()), "/", "", false, true)
}
