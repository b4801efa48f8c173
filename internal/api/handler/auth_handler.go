package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/api/middleware"
	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/pkg/jwt"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// AuthHandler 登录认证接口
type AuthHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Login 邮箱密码登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 10002, err.Error())
			return
		}
		h.logger.Error("登录处理失败", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Refresh 刷新令牌
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	resp, err := h.svc.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			response.Unauthorized(c, 10002, err.Error())
			return
		}
		h.logger.Error("令牌刷新失败", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Logout 注销当前令牌
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := c.MustGet(middleware.CtxClaims).(*jwt.Claims)
	if !ok {
		response.InternalError(c)
		return
	}

	if err := h.svc.Auth.Logout(c.Request.Context(), claims); err != nil {
		h.logger.Error("注销失败", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Profile 查询当前账号信息
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.svc.Auth.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 10002, err.Error())
			return
		}
		h.logger.Error("账号查询失败", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// RegisterUser 创建登录账号
// POST /api/auth/register（仅 ADMIN）
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	user, err := h.svc.Auth.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Conflict(c, 10005, err.Error())
			return
		}
		h.logger.Error("账号创建失败", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, user)
}
