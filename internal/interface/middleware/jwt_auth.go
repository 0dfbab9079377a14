package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Alessandra005/witcon2026/pkg/apperror"
	"github.com/Alessandra005/witcon2026/pkg/jwt"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// TokenValidator はアクセストークンを検証します
type TokenValidator interface {
	ValidateToken(token string) (*jwt.AttendeeClaims, error)
}

// JWTAuthMiddleware はJWT認証ミドルウェアを提供します
type JWTAuthMiddleware struct {
	validator TokenValidator
}

// NewJWTAuthMiddleware は新しいJWTAuthMiddlewareを作成します
func NewJWTAuthMiddleware(validator TokenValidator) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{validator: validator}
}

// Authenticate は認証ミドルウェアを返します
func (m *JWTAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return apperror.NewUnauthorizedError("authorization header required")
			}

			claims, err := m.validator.ValidateToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return apperror.NewTokenExpiredError()
				}
				return apperror.NewUnauthorizedError("invalid token")
			}

			authenticate(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth はオプショナル認証ミドルウェアを返します
// トークンがあれば検証し、なくてもエラーにしない
func (m *JWTAuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}
			if claims, err := m.validator.ValidateToken(token); err == nil {
				authenticate(c, claims)
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, claims *jwt.AttendeeClaims) {
	SetClaims(c, claims)

	// UseCase層のログに含める
	ctx := logger.ContextWithUserID(c.Request().Context(), claims.UserID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func bearerToken(c echo.Context) (string, bool) {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
