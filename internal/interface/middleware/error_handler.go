package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Alessandra005/witcon2026/pkg/apperror"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody   `json:"error"`
	Meta  interface{} `json:"meta"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := apperror.As(err); ok {
		// 内部エラーの場合はログ出力
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(c.Request().Context(), "internal error", "error", appErr.Error())
		}

		_ = c.JSON(appErr.HTTPStatus, ErrorResponse{
			Error: ErrorBody{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	// Echo HTTPErrorの場合
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, ErrorResponse{
			Error: ErrorBody{
				Code:    httpErrorCode(he.Code),
				Message: fmt.Sprintf("%v", he.Message),
			},
		})
		return
	}

	// 未知のエラー
	logger.Error(c.Request().Context(), "unknown error", "error", err.Error())

	_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorBody{
			Code:    string(apperror.CodeInternalError),
			Message: "internal server error",
		},
	})
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(apperror.CodeNotFound)
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return string(apperror.CodeRateLimitExceeded)
	case http.StatusUnauthorized:
		return string(apperror.CodeUnauthorized)
	default:
		if status >= http.StatusInternalServerError {
			return string(apperror.CodeInternalError)
		}
		return string(apperror.CodeInvalidRequest)
	}
}

func errorStatus(err error) int {
	if appErr, ok := apperror.As(err); ok {
		return appErr.HTTPStatus
	}
	return 0
}
