package config

import (
	"time"
)

// Config is the recognized engine configuration surface. Every value can be
// overridden per call on the executor; these are process-wide defaults.
type Config struct {
	// Deadline applied to a single attempt of a symbolic task
	TimeoutSymbolic time.Duration `koanf:"timeout_symbolic" validate:"gt=0"`
	// Deadline applied to a single attempt of a neural task
	TimeoutNeural time.Duration `koanf:"timeout_neural"   validate:"gt=0"`
	// Deadline for hybrid tasks; treated as neural risk
	TimeoutHybrid time.Duration `koanf:"timeout_hybrid"   validate:"gt=0"`
	// Retry budget: attempts beyond the first
	MaxRetries int `koanf:"max_retries"      validate:"gte=0,lte=100"`
	// First backoff delay; doubles per attempt
	RetryDelayBase time.Duration `koanf:"retry_delay_base" validate:"gt=0"`
	// Cap applied to each backoff delay
	RetryDelayMax time.Duration `koanf:"retry_delay_max"  validate:"gt=0"`
	// Worker pool size for batch execution
	ParallelWorkers int `koanf:"parallel_workers" validate:"gt=0"`
}

func Default() *Config {
	return &Config{
		TimeoutSymbolic: 30 * time.Second,
		TimeoutNeural:   360 * time.Second,
		TimeoutHybrid:   360 * time.Second,
		MaxRetries:      3,
		RetryDelayBase:  1 * time.Second,
		RetryDelayMax:   10 * time.Second,
		ParallelWorkers: 4,
	}
}
