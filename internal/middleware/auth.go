package middleware

import (
	"strconv"
	"strings"

	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 校验 Bearer 令牌，并把用户标识写入上下文
func AuthMiddleware(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.Secret)
		if err != nil {
			logger.Log.Debug("JWT解析错误", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		// 登录用户按用户限流
		c.Set(security.RateLimitKey, "user:"+strconv.FormatUint(uint64(claims.UserID), 10))
		c.Next()
	}
}
