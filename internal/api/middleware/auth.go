package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NASVIPS/rfid-attendance-system/pkg/jwt"
	"github.com/NASVIPS/rfid-attendance-system/pkg/redis"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// 上下文键
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxFacultyID = "faculty_id"
	CtxClaims    = "claims"
)

// JWTAuth 校验 Authorization: Bearer 头中的 Access Token
// 已注销的 Token 在 Redis 黑名单中，一并拒绝
func JWTAuth(jwtMgr *jwt.Manager, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证信息")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, 10002, "认证信息格式错误")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, 10002, "token 已过期")
			} else {
				response.Unauthorized(c, 10002, "token 无效")
			}
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "token 类型错误")
			c.Abort()
			return
		}

		blacklisted, err := cache.IsBlacklisted(c.Request.Context(), claims.ID)
		if err == nil && blacklisted {
			response.Unauthorized(c, 10002, "token 已失效")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxFacultyID, claims.FacultyID)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// RoleAuth 限制仅指定角色可访问，需在 JWTAuth 之后使用
func RoleAuth(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, 10003, "权限不足")
			c.Abort()
			return
		}
		c.Next()
	}
}
