package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ParseResponse extracts the JSON payload from raw backend content, parses
// it, and normalizes every mapping key to snake_case. The result must be a
// JSON object.
func ParseResponse(content string) (map[string]any, error) {
	candidate := ExtractJSON(content)
	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %w", err)
	}
	obj, ok := NormalizeKeys(value).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid JSON in model response: expected a JSON object, got %T", value)
	}
	return obj, nil
}

// ExtractJSON locates the JSON payload inside raw model output. Preference
// order: strip reasoning blocks, then a fenced json code block, then the
// first balanced object span, then everything from the first brace onward.
func ExtractJSON(content string) string {
	stripped := stripThinkBlocks(content)
	if m := fencedJSONPattern.FindStringSubmatch(stripped); m != nil {
		return strings.TrimSpace(m[1])
	}
	if span, ok := extractJSONObject(stripped); ok {
		return span
	}
	if idx := strings.Index(stripped, "{"); idx >= 0 {
		return strings.TrimSpace(stripped[idx:])
	}
	return strings.TrimSpace(stripped)
}

// stripThinkBlocks removes matched [THINK]...[/THINK] pairs. When an opener
// has no closer, everything from the opener up to the first following brace
// is dropped instead.
func stripThinkBlocks(s string) string {
	for {
		open := strings.Index(s, ThinkOpen)
		if open < 0 {
			return s
		}
		rest := s[open+len(ThinkOpen):]
		closeIdx := strings.Index(rest, ThinkClose)
		if closeIdx >= 0 {
			s = s[:open] + rest[closeIdx+len(ThinkClose):]
			continue
		}
		if brace := strings.Index(rest, "{"); brace >= 0 {
			return s[:open] + rest[brace:]
		}
		return s[:open]
	}
}

// extractJSONObject scans the provided string and returns the first complete
// top-level JSON object. It keeps track of whether the parser is inside a
// quoted string and ignores structural characters that appear within strings
// or escaped sequences.
func extractJSONObject(s string) (string, bool) {
	inString := false
	escaped := false
	start := -1
	var stack []byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			if ch == '\\' {
				escaped = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			if len(stack) == 0 {
				if ch == '[' {
					continue
				}
				start = i
			}
			if ch == '{' {
				stack = append(stack, '}')
			} else {
				stack = append(stack, ']')
			}
		case '}', ']':
			if len(stack) == 0 {
				continue
			}
			expected := stack[len(stack)-1]
			if ch != expected {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 && start >= 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// NormalizeKeys rewrites every mapping key to snake_case, recursing through
// nested maps and slices. Non-composite values pass through unchanged.
func NormalizeKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[toSnakeCase(k)] = NormalizeKeys(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = NormalizeKeys(inner)
		}
		return out
	default:
		return value
	}
}

func toSnakeCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	prevLower := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '-' || r == '.':
			if prevLower {
				sb.WriteByte('_')
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			sb.WriteRune(r)
			prevLower = r != '_'
		}
	}
	return sb.String()
}
