package llm

import "context"

// Request represents a single prompt sent to the generative backend,
// independent of provider.
type Request struct {
	Prompt      string
	Temperature float64
}

// Usage reports token accounting for one backend round trip.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the final result of a backend call. The backend may perform
// nested tool calls transparently; only the final textual content surfaces
// here.
type Response struct {
	Content string
	Usage   *Usage
}

// Client is the interface to the generative-model backend.
type Client interface {
	// GenerateContent sends a request to the backend and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	// Close cleans up any resources held by the client
	Close() error
}

// UsageRecorder receives per-call token usage for accounting. Optional; a nil
// recorder disables accounting without affecting correctness.
type UsageRecorder interface {
	RecordUsage(usage Usage)
}
