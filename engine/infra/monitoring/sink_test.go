package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symflow/symflow/engine/executor"
)

func TestSink(t *testing.T) {
	t.Run("Should count executions by task, kind, and outcome", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		sink, err := NewSink(reg)
		require.NoError(t, err)
		ctx := context.Background()
		sink.Emit(ctx, &executor.Event{
			Task:     "add",
			Success:  true,
			Duration: 12 * time.Millisecond,
			Metadata: map[string]any{"kind": "symbolic"},
		})
		sink.Emit(ctx, &executor.Event{
			Task:     "add",
			Success:  true,
			Duration: 8 * time.Millisecond,
			Metadata: map[string]any{"kind": "symbolic"},
		})
		sink.Emit(ctx, &executor.Event{
			Task:     "summarize",
			Success:  false,
			Duration: 300 * time.Millisecond,
			Metadata: map[string]any{"kind": "neural", "category": "network"},
		})
		success := sink.executions.WithLabelValues("add", "symbolic", "true", "")
		assert.Equal(t, float64(2), testutil.ToFloat64(success))
		failure := sink.executions.WithLabelValues("summarize", "neural", "false", "network")
		assert.Equal(t, float64(1), testutil.ToFloat64(failure))
	})
	t.Run("Should reject duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewSink(reg)
		require.NoError(t, err)
		_, err = NewSink(reg)
		require.Error(t, err)
	})
}
