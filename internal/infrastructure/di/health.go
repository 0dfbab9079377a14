package di

import (
	"github.com/Alessandra005/witcon2026/internal/infrastructure/worker"
)

// HealthChecks は接続中の依存サービスの疎通確認を返します
// /readyと定期ヘルスチェックジョブで共有する
func (c *Container) HealthChecks() []worker.HealthCheck {
	var checks []worker.HealthCheck
	if c.PgClient != nil {
		checks = append(checks, worker.HealthCheck{Name: "postgres", Check: c.PgClient.Health})
	}
	if c.RedisClient != nil {
		checks = append(checks, worker.HealthCheck{Name: "redis", Check: c.RedisClient.Health})
	}
	if c.MinIOClient != nil {
		checks = append(checks, worker.HealthCheck{Name: "minio", Check: c.MinIOClient.Health})
	}
	if c.amqp != nil && c.amqp.Enabled() {
		checks = append(checks, worker.HealthCheck{Name: "rabbitmq", Check: c.amqp.Health})
	}
	return checks
}
