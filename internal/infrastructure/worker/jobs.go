package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HealthCheck は依存サービスの疎通確認です
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewDependencyHealthJob は依存サービスを定期的に確認するジョブを作成します
// 結果はgaugeに 1(正常) / 0(異常) として記録する
func NewDependencyHealthJob(checks []HealthCheck, gauge *prometheus.GaugeVec) Job {
	return Job{
		Name:     "dependency_health",
		Interval: time.Minute,
		Timeout:  10 * time.Second,
		Fn: func(ctx context.Context) error {
			var errs []error
			for _, c := range checks {
				up := 1.0
				if err := c.Check(ctx); err != nil {
					up = 0
					errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
				}
				if gauge != nil {
					gauge.WithLabelValues(c.Name).Set(up)
				}
			}
			return errors.Join(errs...)
		},
	}
}
