package api

import (
	"time"

	"chinitsu/common/http"
	"chinitsu/common/utils"
)

const requestTimeout = 10 * time.Second

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *http.HttpServer, h *Handler, limiter *utils.KeyedRateLimiter) {
	server.Use(
		http.RequestIDMiddleware(),
		http.LoggerMiddleware(),
		http.CorsMiddleware(),
		http.SecurityMiddleware(),
	)

	server.GET("/ping", PingHandler)
	server.GET("/health", h.HealthHandler)

	// API v1 路由组
	v1 := server.Group("/api/v1")
	v1.Use(http.RateLimitMiddleware(limiter), http.TimeoutMiddleware(requestTimeout))
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/guest", h.GuestHandler)
		}

		v1.POST("/analyze", h.AnalyzeHandler)

		// 答题相关路由（需要认证）
		quiz := v1.Group("/quiz", http.AuthMiddleware(h.jwtConf.Secret))
		{
			quiz.POST("/question", h.NewQuestionHandler)
			quiz.POST("/answer", h.SubmitAnswerHandler)
			quiz.GET("/stats", h.StatsHandler)
			quiz.GET("/history", h.HistoryHandler)
			quiz.GET("/leaderboard", h.LeaderboardHandler)
		}
	}
}
