// Package monitoring provides a Prometheus-backed event sink for execution
// telemetry.
package monitoring

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/symflow/symflow/engine/executor"
)

// Sink records execution events as Prometheus metrics. It implements
// executor.EventSink.
type Sink struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewSink(reg prometheus.Registerer) (*Sink, error) {
	s := &Sink{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symflow",
			Name:      "task_executions_total",
			Help:      "Task execution attempts by task, kind, and outcome.",
		}, []string{"task", "kind", "success", "category"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "symflow",
			Name:      "task_duration_seconds",
			Help:      "Task attempt duration by task and kind.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
		}, []string{"task", "kind"}),
	}
	for _, c := range []prometheus.Collector{s.executions, s.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Emit implements executor.EventSink
func (s *Sink) Emit(_ context.Context, event *executor.Event) {
	kind, _ := event.Metadata["kind"].(string)
	category, _ := event.Metadata["category"].(string)
	s.executions.WithLabelValues(
		event.Task,
		kind,
		strconv.FormatBool(event.Success),
		category,
	).Inc()
	s.duration.WithLabelValues(event.Task, kind).Observe(event.Duration.Seconds())
}
