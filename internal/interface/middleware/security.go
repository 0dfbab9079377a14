package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Alessandra005/witcon2026/pkg/config"
)

const hstsMaxAge = 365 * 24 * 60 * 60

// SecurityHeaders はAPI向けのセキュリティヘッダーを付与します
// HSTSはEnableHSTSが有効な場合のみ
func SecurityHeaders(cfg config.SecurityConfig) echo.MiddlewareFunc {
	secure := echomw.SecureConfig{
		XSSProtection:         "0",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	}
	if cfg.EnableHSTS {
		secure.HSTSMaxAge = hstsMaxAge
	}
	return echomw.SecureWithConfig(secure)
}

// CORS は参加者フロントエンドからのアクセスを許可します
// オリジンに"*"を含む場合は資格情報を送らせない
func CORS(cfg config.SecurityConfig) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, HeaderRequestID},
		ExposeHeaders: []string{
			HeaderRequestID, HeaderRateLimitRemaining, HeaderRateLimitReset,
		},
		AllowCredentials: !slices.Contains(cfg.CORSOrigins, "*"),
		MaxAge:           86400,
	})
}
