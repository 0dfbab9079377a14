package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// Job は定期実行ジョブを定義します
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration // 1回の実行の上限（0は無制限）
	Fn       func(ctx context.Context) error
}

// Manager はバックグラウンドワーカーを管理します
type Manager struct {
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager は新しいManagerを作成します
func NewManager() *Manager {
	return &Manager{}
}

// Register は定期実行ジョブを登録します
func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

// Start は全ジョブのワーカーを開始します
// ctxの終了またはShutdownで停止する
func (m *Manager) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	for _, job := range m.jobs {
		m.wg.Add(1)
		go m.runJob(ctx, job)
	}
	logger.Info(ctx, "worker manager started", "jobs", len(m.jobs))
}

func (m *Manager) runJob(ctx context.Context, job Job) {
	defer m.wg.Done()

	// 初回は即座に実行する
	m.execute(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug(ctx, "worker stopping", "job", job.Name)
			return
		case <-ticker.C:
			m.execute(ctx, job)
		}
	}
}

func (m *Manager) execute(ctx context.Context, job Job) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}
	if err := job.Fn(ctx); err != nil {
		logger.Error(ctx, "worker job failed", "job", job.Name, "error", err)
	}
}

// Shutdown はすべてのワーカーを停止し、終了を待ちます
// timeoutを過ぎた場合はfalseを返す
func (m *Manager) Shutdown(timeout time.Duration) bool {
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		logger.Warn(context.Background(), "worker manager shutdown timed out")
		return false
	}
}
