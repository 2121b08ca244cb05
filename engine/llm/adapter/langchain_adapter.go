package adapter

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/symflow/symflow/engine/llm"
)

// LangChainAdapter adapts a langchaingo model to the llm.Client interface.
type LangChainAdapter struct {
	model llms.Model
}

func NewLangChainAdapter(model llms.Model) (*LangChainAdapter, error) {
	if model == nil {
		return nil, fmt.Errorf("langchain model is required")
	}
	return &LangChainAdapter{model: model}, nil
}

// GenerateContent implements llm.Client
func (a *LangChainAdapter) GenerateContent(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt),
	}
	var options []llms.CallOption
	if req.Temperature > 0 {
		options = append(options, llms.WithTemperature(req.Temperature))
	}
	response, err := a.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, fmt.Errorf("langchain GenerateContent failed: %w", err)
	}
	return convertResponse(response)
}

func convertResponse(resp *llms.ContentResponse) (*llm.Response, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from LLM")
	}
	choice := resp.Choices[0]
	return &llm.Response{
		Content: choice.Content,
		Usage:   usageFromGenerationInfo(choice.GenerationInfo),
	}, nil
}

// usageFromGenerationInfo pulls token counters out of provider-specific
// generation metadata when present. Providers that report nothing leave usage
// nil and the runner falls back to estimation.
func usageFromGenerationInfo(info map[string]any) *llm.Usage {
	if len(info) == 0 {
		return nil
	}
	prompt, promptOK := intFromInfo(info, "PromptTokens", "prompt_tokens")
	completion, completionOK := intFromInfo(info, "CompletionTokens", "completion_tokens")
	if !promptOK && !completionOK {
		return nil
	}
	total, totalOK := intFromInfo(info, "TotalTokens", "total_tokens")
	if !totalOK {
		total = prompt + completion
	}
	return &llm.Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      total,
	}
}

func intFromInfo(info map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		switch v := info[key].(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			return int(v), true
		}
	}
	return 0, false
}

// Close implements llm.Client
func (a *LangChainAdapter) Close() error {
	return nil
}
