package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/2023-Capston-Design/Backend-RE/pkg/jwt"
	"github.com/2023-Capston-Design/Backend-RE/pkg/redis"
	"github.com/2023-Capston-Design/Backend-RE/pkg/response"
)

// gin Context 中存放认证信息的键
const (
	ContextKeyMemberID = "member_id"
	ContextKeyRole     = "member_role"
	ContextKeyClaims   = "jwt_claims"
)

// JWTAuth 认证中间件
// 校验 Authorization: Bearer <token>，登出黑名单命中时拒绝
// redisClient 为 nil 时跳过黑名单检查（降级运行）
func JWTAuth(jwtManager *jwt.Manager, redisClient *redis.Client) gin.HandlerFunc {
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

		claims, err := jwtManager.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, 10002, "token 已过期")
			} else {
				response.Unauthorized(c, 10002, "token 无效")
			}
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "token 类型不正确")
			c.Abort()
			return
		}

		if redisClient != nil {
			revoked, err := redisClient.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token 已被注销")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyMemberID, claims.MemberID)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RoleAuth 角色鉴权中间件，须置于 JWTAuth 之后
func RoleAuth(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, 10003, "权限不足")
			c.Abort()
			return
		}
		c.Next()
	}
}
