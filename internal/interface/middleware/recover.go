package middleware

import (
	"fmt"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/Alessandra005/witcon2026/pkg/apperror"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// Recover はパニックをリカバーするミドルウェアを返します
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)

				logger.Error(c.Request().Context(), "panic recovered",
					"panic", fmt.Sprintf("%v", r),
					"stack", string(buf[:n]),
				)
				err = apperror.NewInternalError(fmt.Errorf("panic: %v", r))
			}()

			return next(c)
		}
	}
}
