package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Alessandra005/witcon2026/pkg/logger"
)

const (
	HeaderRequestID   = "X-Request-ID"
	maxRequestIDBytes = 128
)

// RequestID はX-Request-IDを引き継ぐか新規に採番し、ログ用のコンテキストに載せます
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if !validRequestID(id) {
				id = uuid.NewString()
			}

			c.Response().Header().Set(HeaderRequestID, id)
			ctx := logger.ContextWithRequestID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// 印字可能なASCIIのみ受け付ける
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDBytes {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
