package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/service"
	"github.com/2023-Capston-Design/Backend-RE/pkg/jwt"
	"github.com/2023-Capston-Design/Backend-RE/pkg/response"
)

// AuthHandler 认证相关接口
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建认证 Handler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.OK(c, resp)
}

// RefreshToken 刷新令牌
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.OK(c, resp)
}

// Logout 登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		response.Unauthorized(c, 10002, "缺少认证信息")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me 查询当前登录成员
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	member, err := h.authService.GetCurrentMember(c.Request.Context(), currentMemberID(c))
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.OK(c, member)
}

// respondAuthError 认证域错误到 HTTP 响应的统一映射
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, err.Error())
	case errors.Is(err, service.ErrInvalidTokenType):
		response.Unauthorized(c, 11002, err.Error())
	case errors.Is(err, service.ErrTokenRevoked):
		response.Unauthorized(c, 11003, err.Error())
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenInvalid):
		response.Unauthorized(c, 10002, err.Error())
	case errors.Is(err, service.ErrInvalidMemberApproval):
		response.Forbidden(c, 20006, err.Error())
	case errors.Is(err, service.ErrEmailYetConfirmed):
		response.Forbidden(c, 20007, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 20001, err.Error())
	default:
		response.InternalError(c)
	}
}
