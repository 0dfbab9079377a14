package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Alessandra005/witcon2026/internal/infrastructure/cache"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

const (
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// Limiter はレート制限の判定を行います
type Limiter interface {
	Allow(ctx context.Context, identifier string, config cache.RateLimitConfig) (*cache.RateLimitResult, error)
}

// RateLimitMiddleware はレート制限ミドルウェアを提供します
type RateLimitMiddleware struct {
	limiter Limiter
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
func NewRateLimitMiddleware(limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// ResumeUploads は履歴書を含む要求だけをレート制限するミドルウェアを返します
// 対象はmultipartの要求で、パスの参加者ID、なければIPアドレスで数える
func (m *RateLimitMiddleware) ResumeUploads(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsMultipart(c) {
				return next(c)
			}

			identifier := c.Param("id")
			if identifier == "" {
				identifier = c.RealIP()
			}

			result, err := m.limiter.Allow(c.Request().Context(), identifier, config)
			if err != nil {
				// レート制限チェックに失敗した場合はリクエストを許可
				logger.Warn(c.Request().Context(), "rate limit check failed", "error", err)
				return next(c)
			}

			c.Response().Header().Set(HeaderRateLimitRemaining, strconv.Itoa(result.Remaining))
			if !result.Allowed {
				c.Response().Header().Set(HeaderRateLimitReset, result.RetryAt.UTC().Format(time.RFC3339))
				return apperror.NewTooManyRequestsError("too many resume uploads, try again later")
			}

			return next(c)
		}
	}
}

// IsMultipart はmultipart/form-dataの要求かを判定します
func IsMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}
