package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/Alessandra005/witcon2026/pkg/jwt"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyClaims = "claims"
)

// GetUserID はコンテキストから認証済みユーザーIDを取得します
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetClaims はコンテキストからトークンのクレームを取得します
// 認証が無効な場合はnil
func GetClaims(c echo.Context) *jwt.AttendeeClaims {
	if claims, ok := c.Get(ContextKeyClaims).(*jwt.AttendeeClaims); ok {
		return claims
	}
	return nil
}

// SetClaims はコンテキストにクレームを設定します
func SetClaims(c echo.Context, claims *jwt.AttendeeClaims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyClaims, claims)
}
