package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"chinitsu/common/jwts"
	"chinitsu/common/log"
	"chinitsu/common/utils"

	"github.com/google/uuid"
)

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		}

		// 处理预检请求
		if c.Method() == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
		}
		return nil
	}
}

// LoggerMiddleware 访问日志，在中间件内执行后续处理以统计耗时
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("HTTP %s %s %d %v ip=%s rid=%s",
			c.Method(), c.Path(), c.StatusCode(), time.Since(start), c.ClientIP(), c.GetString(KeyRequestID))
		return nil
	}
}

// AuthMiddleware 校验 Authorization: Bearer <jwt>，把 userID 写入上下文
func AuthMiddleware(secret string) MiddlewareFunc {
	return func(c *Context) error {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		token = strings.TrimPrefix(token, "Bearer ")
		if token == "" {
			return ErrUnauthorized("missing authorization token")
		}

		claims, err := jwts.ParseToken(token, secret)
		if err != nil {
			log.Debug("token 校验失败: %v", err)
			return ErrUnauthorized("invalid token")
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyNickname, claims.Nickname)
		return nil
	}
}

// RateLimitMiddleware 按客户端 IP 令牌桶限流
func RateLimitMiddleware(limiter *utils.KeyedRateLimiter) MiddlewareFunc {
	return func(c *Context) error {
		if !limiter.Allow(c.ClientIP()) {
			return NewError(http.StatusTooManyRequests, CodeTooMany, MsgTooMany)
		}
		return nil
	}
}

// RequestIDMiddleware 透传或生成 X-Request-ID
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(KeyRequestID, requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}

// TimeoutMiddleware 给请求 context 加超时，下游通过 c.Context() 感知
func TimeoutMiddleware(timeout time.Duration) MiddlewareFunc {
	return func(c *Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()
		c.ginCtx.Request = c.ginCtx.Request.WithContext(ctx)
		c.Next()
		if ctx.Err() == context.DeadlineExceeded {
			log.Warn("请求超时: %s %s took > %v", c.Method(), c.Path(), timeout)
		}
		return nil
	}
}

// SecurityMiddleware 安全头
func SecurityMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		c.SetHeader("X-Content-Type-Options", "nosniff")
		c.SetHeader("X-Frame-Options", "DENY")
		return nil
	}
}
