package di

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Alessandra005/witcon2026/internal/infrastructure/cache"
	"github.com/Alessandra005/witcon2026/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	JWTAuth   *middleware.JWTAuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	Metrics   *middleware.Metrics

	// RequireAuthがfalseの場合、参加者エンドポイントはトークンを任意とする
	RequireAuth     bool
	ResumeRateLimit cache.RateLimitConfig
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container, reg prometheus.Registerer) *Middlewares {
	return &Middlewares{
		JWTAuth:         middleware.NewJWTAuthMiddleware(c.JWTService),
		RateLimit:       middleware.NewRateLimitMiddleware(c.RateLimiter),
		Metrics:         middleware.NewMetrics(reg),
		RequireAuth:     c.config.Security.RequireAuth,
		ResumeRateLimit: cache.ResumeUploadRateLimit(c.config.Resume.RateLimit, c.config.Resume.RateWindow),
	}
}
