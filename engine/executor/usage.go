package executor

import (
	"sync"

	"github.com/symflow/symflow/engine/llm"
)

// UsageTracker accumulates request, token, and cost counters across all
// attempts run by one engine instance. It is the only state mutated
// concurrently by parallel attempts and is guarded accordingly.
type UsageTracker struct {
	mu                sync.Mutex
	requests          int64
	promptTokens      int64
	completionTokens  int64
	promptRatePer1K   float64
	responseRatePer1K float64
}

// UsageSnapshot is a point-in-time copy of the accumulated counters.
type UsageSnapshot struct {
	Requests         int64
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
	Cost             float64
}

func NewUsageTracker() *UsageTracker {
	return &UsageTracker{}
}

// SetRates configures per-1K-token pricing used for cost accounting.
func (t *UsageTracker) SetRates(promptPer1K, responsePer1K float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.promptRatePer1K = promptPer1K
	t.responseRatePer1K = responsePer1K
}

// RecordUsage implements llm.UsageRecorder.
func (t *UsageTracker) RecordUsage(usage llm.Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests++
	t.promptTokens += int64(usage.PromptTokens)
	t.completionTokens += int64(usage.CompletionTokens)
}

func (t *UsageTracker) Snapshot() UsageSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return UsageSnapshot{
		Requests:         t.requests,
		PromptTokens:     t.promptTokens,
		CompletionTokens: t.completionTokens,
		TotalTokens:      t.promptTokens + t.completionTokens,
		Cost: float64(t.promptTokens)/1000*t.promptRatePer1K +
			float64(t.completionTokens)/1000*t.responseRatePer1K,
	}
}
