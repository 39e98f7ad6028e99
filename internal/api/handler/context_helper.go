package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/2023-Capston-Design/Backend-RE/internal/api/middleware"
	"github.com/2023-Capston-Design/Backend-RE/pkg/jwt"
	"github.com/2023-Capston-Design/Backend-RE/pkg/response"
)

// currentMemberID 从上下文取当前登录成员 ID（JWTAuth 之后可用）
func currentMemberID(c *gin.Context) int64 {
	v, ok := c.Get(middleware.ContextKeyMemberID)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// currentClaims 从上下文取当前令牌声明
func currentClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(middleware.ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// parseIDParam 解析路径上的数字 ID；失败时已写入 400 响应
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "无效的 ID 参数")
		return 0, false
	}
	return id, true
}
