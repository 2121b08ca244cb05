package llm

import (
	"fmt"
	"strings"

	"github.com/symflow/symflow/engine/core"
	"github.com/symflow/symflow/engine/schema"
	"github.com/symflow/symflow/engine/task"
)

// Reasoning delimiters the backend may use for free-form thinking before the
// final JSON answer.
const (
	ThinkOpen  = "[THINK]"
	ThinkClose = "[/THINK]"
)

// maxQuotedResponse bounds how much of a failed response is echoed back in
// the clarifying prompt.
const maxQuotedResponse = 500

// PromptBuilder renders task instructions and inputs into backend prompts.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build constructs the main prompt: task name, literal instructions, input
// pairs, the required output fields, and formatting rules.
func (b *PromptBuilder) Build(cfg *task.Config, input core.Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Task: %s\n\n", cfg.Name)
	fmt.Fprintf(&sb, "Instructions:\n%s\n\n", cfg.Instructions)
	if len(cfg.Input) > 0 {
		sb.WriteString("Inputs:\n")
		for _, field := range cfg.Input {
			fmt.Fprintf(&sb, "- %s: %v\n", field.Name, input[field.Name])
		}
		sb.WriteString("\n")
	}
	sb.WriteString(b.outputContract(cfg.Output))
	fmt.Fprintf(&sb,
		"\nYou may reason step by step first inside a single %s...%s block. "+
			"The block must be closed and the delimiters must not appear in the final answer.\n",
		ThinkOpen, ThinkClose,
	)
	return sb.String()
}

// BuildClarification constructs the stricter follow-up prompt used after a
// parse failure. It repeats the schema, quotes the failed response, states
// the parse error, and forbids any non-JSON content.
func (b *PromptBuilder) BuildClarification(cfg *task.Config, failed string, parseErr error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your previous response for task %q could not be parsed as JSON.\n\n", cfg.Name)
	fmt.Fprintf(&sb, "Parse error: %v\n\n", parseErr)
	fmt.Fprintf(&sb, "Previous response (truncated):\n%s\n\n", truncate(failed, maxQuotedResponse))
	sb.WriteString(b.outputContract(cfg.Output))
	sb.WriteString(
		"\nDo not include any text before or after the JSON object. " +
			"No reasoning blocks, no markdown, no commentary. " +
			"The response must be parseable JSON.\n",
	)
	return sb.String()
}

func (b *PromptBuilder) outputContract(output schema.Schema) string {
	var sb strings.Builder
	sb.WriteString("IMPORTANT: You MUST respond with a valid JSON object only, containing exactly these fields:\n")
	for _, field := range output {
		fmt.Fprintf(&sb, "- %s (%s)\n", field.Name, field.Kind)
	}
	return sb.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
