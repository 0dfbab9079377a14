package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Alessandra005/witcon2026/internal/infrastructure/di"
)

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
	gatherer    prometheus.Gatherer
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares, gatherer prometheus.Gatherer) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
		gatherer:    gatherer,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupMetricsRoute()
	r.setupAttendeeRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupMetricsRoute はPrometheusのスクレイプ用ルートを設定します
func (r *Router) setupMetricsRoute() {
	if r.gatherer == nil {
		return
	}
	r.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
}

// setupAttendeeRoutes は参加者ルートを設定します
// パスは末尾スラッシュ付き
func (r *Router) setupAttendeeRoutes() {
	h := r.handlers.Attendee
	m := r.middlewares

	auth := m.JWTAuth.OptionalAuth()
	if m.RequireAuth {
		auth = m.JWTAuth.Authenticate()
	}
	resumeLimit := m.RateLimit.ResumeUploads(m.ResumeRateLimit)

	attendees := r.echo.Group("/attendees")

	// 登録は認証不要
	attendees.GET("/", h.ListAttendees, auth)
	attendees.POST("/create/", h.CreateAttendee, m.JWTAuth.OptionalAuth(), resumeLimit)

	attendees.GET("/:id/", h.GetAttendee, auth)
	attendees.PUT("/:id/", h.ReplaceAttendee, auth)
	attendees.PATCH("/:id/", h.PatchAttendee, auth, resumeLimit)
	attendees.DELETE("/:id/", h.DeleteAttendee, auth)
}
