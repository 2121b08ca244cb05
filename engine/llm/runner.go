package llm

import (
	"context"
	"fmt"

	"github.com/symflow/symflow/engine/core"
	"github.com/symflow/symflow/engine/task"
	"github.com/symflow/symflow/pkg/logger"
)

// Runner executes neural tasks: it renders the prompt, calls the backend,
// extracts and parses the JSON result, and validates the output schema.
type Runner struct {
	client  Client
	prompts *PromptBuilder
	usage   UsageRecorder
}

func NewRunner(client Client, usage UsageRecorder) *Runner {
	return &Runner{
		client:  client,
		prompts: NewPromptBuilder(),
		usage:   usage,
	}
}

// Run performs one neural execution. On a parse failure it issues exactly one
// clarifying re-prompt; that extra call is independent of the executor's
// retry budget. A second parse failure surfaces the parser's message.
func (r *Runner) Run(ctx context.Context, cfg *task.Config, input core.Input) (core.Output, error) {
	log := logger.FromContext(ctx)
	prompt := r.prompts.Build(cfg, input)
	content, err := r.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}
	parsed, parseErr := ParseResponse(content)
	if parseErr != nil {
		log.Warn("Model response unparsable; issuing clarifying re-prompt",
			"task", cfg.Name,
			"parse_error", parseErr,
		)
		clarification := r.prompts.BuildClarification(cfg, content, parseErr)
		content, err = r.invoke(ctx, clarification)
		if err != nil {
			return nil, err
		}
		parsed, parseErr = ParseResponse(content)
		if parseErr != nil {
			return nil, core.NewError(parseErr, ErrCodeInvalidResponse, map[string]any{
				"task":    cfg.Name,
				"content": truncate(content, maxQuotedResponse),
			})
		}
	}
	validated, err := cfg.Output.Validate(parsed, "output")
	if err != nil {
		return nil, err
	}
	return core.Output(validated), nil
}

func (r *Runner) invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.GenerateContent(ctx, &Request{Prompt: prompt})
	if err != nil {
		return "", core.NewError(
			fmt.Errorf("generative backend call failed: %w", err),
			ErrCodeGeneration,
			nil,
		)
	}
	r.recordUsage(prompt, resp)
	return resp.Content, nil
}

func (r *Runner) recordUsage(prompt string, resp *Response) {
	if r.usage == nil {
		return
	}
	if resp.Usage != nil {
		r.usage.RecordUsage(*resp.Usage)
		return
	}
	promptTokens := EstimateTokens(prompt)
	completionTokens := EstimateTokens(resp.Content)
	r.usage.RecordUsage(Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	})
}
