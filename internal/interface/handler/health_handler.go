package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// CheckFunc は依存サービスの疎通確認関数です
type CheckFunc func(ctx context.Context) error

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	checks  map[string]CheckFunc
	timeout time.Duration
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler(timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
	}
}

// RegisterCheck はヘルスチェックを登録します
func (h *HealthHandler) RegisterCheck(name string, check CheckFunc) {
	h.checks[name] = check
}

// HealthResponse はヘルスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus はサービスのステータスを定義します
type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready はレディネスチェックを実行します
// 全ての依存サービスを並行して確認する
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		services = make(map[string]ServiceStatus, len(h.checks))
		healthy  = true
	)
	for name, check := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := check(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				services[name] = ServiceStatus{Status: "unhealthy", Message: err.Error()}
				healthy = false
				return
			}
			services[name] = ServiceStatus{Status: "healthy"}
		}()
	}
	wg.Wait()

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Services: services})
	}
	return c.JSON(http.StatusOK, ReadyResponse{Status: "ready", Services: services})
}
