package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode はAPIが返すエラーコードです
type ErrorCode string

const (
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeQuotaExceeded      ErrorCode = "QUOTA_EXCEEDED"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

var statusByCode = map[ErrorCode]int{
	CodeValidationError:    http.StatusBadRequest,
	CodeInvalidRequest:     http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeTokenExpired:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeQuotaExceeded:      http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeRateLimitExceeded:  http.StatusTooManyRequests,
	CodeInternalError:      http.StatusInternalServerError,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
}

// Status はコードに対応するHTTPステータスを返します
// 未登録のコードは500
func (c ErrorCode) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError はレスポンスに変換できるアプリケーションエラーです
type AppError struct {
	Code       ErrorCode    `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	HTTPStatus int          `json:"-"`
	Err        error        `json:"-"`
}

// FieldError はフィールド単位のエラーです
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New は任意のコードでAppErrorを作成します
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: code.Status()}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithCause は原因エラーを付けたコピーを返します
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// HasCode はコードが一致するかを返します
func (e *AppError) HasCode(code ErrorCode) bool {
	return e.Code == code
}

func NewValidationError(message string, details []FieldError) *AppError {
	e := New(CodeValidationError, message)
	e.Details = details
	return e
}

func NewInvalidRequestError(message string) *AppError {
	return New(CodeInvalidRequest, message)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func NewTokenExpiredError() *AppError {
	return New(CodeTokenExpired, "token has expired")
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message)
}

// NewQuotaExceededError は履歴書アップロード上限などの超過を表します
func NewQuotaExceededError(message string) *AppError {
	return New(CodeQuotaExceeded, message)
}

// NewNotFoundError は "<resource> not found" のメッセージで作成します
func NewNotFoundError(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return New(CodeRateLimitExceeded, message)
}

// NewInternalError は原因を隠した500エラーを作成します
func NewInternalError(err error) *AppError {
	return New(CodeInternalError, "internal server error").WithCause(err)
}

func NewServiceUnavailableError(message string) *AppError {
	return New(CodeServiceUnavailable, message)
}

// As はエラーチェーンからAppErrorを取り出します
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf はエラーチェーン中のAppErrorのコードを返します
// AppErrorを含まない場合は空文字
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

func IsUnauthorized(err error) bool {
	c := CodeOf(err)
	return c == CodeUnauthorized || c == CodeTokenExpired
}

func IsForbidden(err error) bool {
	return CodeOf(err) == CodeForbidden
}

func IsQuotaExceeded(err error) bool {
	return CodeOf(err) == CodeQuotaExceeded
}

func IsConflict(err error) bool {
	return CodeOf(err) == CodeConflict
}
