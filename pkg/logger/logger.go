package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Alessandra005/witcon2026/pkg/config"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
)

// Options はロガーの出力先と形式です
type Options struct {
	Level     slog.Level
	JSON      bool
	AddSource bool
	Writer    io.Writer // nilの場合はstdout
}

// OptionsFrom はアプリケーションのログ設定を変換します
// debugレベルではソース位置も出力する
func OptionsFrom(cfg config.LogConfig) Options {
	level := ParseLevel(cfg.Level)
	return Options{
		Level:     level,
		JSON:      !strings.EqualFold(cfg.Format, "text"),
		AddSource: level <= slog.LevelDebug,
	}
}

// Setup はデフォルトロガーを差し替えます
func Setup(opts Options) {
	slog.SetDefault(New(opts))
}

// New はコンテキストのrequest_idとuser_idを自動で付与するロガーを返します
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	ho := &slog.HandlerOptions{Level: opts.Level, AddSource: opts.AddSource}

	var h slog.Handler = slog.NewJSONHandler(w, ho)
	if !opts.JSON {
		h = slog.NewTextHandler(w, ho)
	}
	return slog.New(contextHandler{Handler: h})
}

// ParseLevel は不明な値をinfoとして扱います
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx == nil {
		return h.Handler.Handle(ctx, r)
	}
	for _, key := range []contextKey{RequestIDKey, UserIDKey} {
		id, ok := ctx.Value(key).(string)
		if ok && id != "" && !hasAttr(r, string(key)) {
			r.AddAttrs(slog.String(string(key), id))
		}
	}
	return h.Handler.Handle(ctx, r)
}

// 呼び出し側が明示したキーは上書きしない
func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		found = a.Key == key
		return !found
	})
	return found
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}

// ContextWithRequestID はリクエストIDをコンテキストに載せます
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// ContextWithUserID は認証済みユーザーIDをコンテキストに載せます
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// RequestIDFrom はコンテキストのリクエストIDを返します
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func Debug(ctx context.Context, msg string, args ...any) {
	slog.Default().DebugContext(ctx, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	slog.Default().InfoContext(ctx, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	slog.Default().WarnContext(ctx, msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	slog.Default().ErrorContext(ctx, msg, args...)
}
