package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/symflow/symflow/engine/core"
)

// -----------------------------------------------------------------------------
// Kind
// -----------------------------------------------------------------------------

// Kind is the declared primitive kind of a schema field.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindMap     Kind = "map"
	KindAny     Kind = "any"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindString, KindInteger, KindNumber, KindBoolean, KindArray, KindMap, KindAny:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Schema
// -----------------------------------------------------------------------------

// Field declares a single named parameter and its kind.
type Field struct {
	Name string
	Kind Kind
}

// Schema is an ordered list of declared fields. Order is preserved so prompt
// rendering enumerates parameters deterministically.
type Schema []Field

func New(fields ...Field) Schema {
	return Schema(fields)
}

func (s Schema) FieldNames() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

// ValidationError reports a missing parameter, a failed coercion, or a shape
// mismatch. It is terminal for the retry loop.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks values against the schema and returns a coerced copy. The
// scope label ("input" or "output") only affects error messages. Keys not
// declared by the schema pass through untouched. Coercion is idempotent:
// validating an already coerced map yields identical values.
func (s Schema) Validate(values map[string]any, scope string) (map[string]any, error) {
	coerced := make(map[string]any, len(values))
	for k, v := range values {
		coerced[k] = v
	}
	for _, field := range s {
		raw, ok := values[field.Name]
		if !ok {
			return nil, NewValidationError(
				"Missing required %s parameter: %s. Available: %s",
				scope, field.Name, availableKeys(values),
			)
		}
		value, err := Coerce(raw, field.Kind)
		if err != nil {
			return nil, err
		}
		coerced[field.Name] = value
	}
	return coerced, nil
}

// Coerce converts a single value to its declared kind. Scalar kinds apply
// best-effort conversion; array and map demand a matching runtime shape.
func Coerce(value any, kind Kind) (any, error) {
	switch kind {
	case KindAny:
		return value, nil
	case KindString:
		if s, ok := core.RenderScalar(value); ok {
			return s, nil
		}
	case KindInteger:
		if i, ok := core.ParseAnyInt(value); ok {
			return i, nil
		}
	case KindNumber:
		if f, ok := core.ParseAnyFloat(value); ok {
			return f, nil
		}
	case KindBoolean:
		if b, ok := core.ParseAnyBool(value); ok {
			return b, nil
		}
	case KindArray:
		if _, ok := value.([]any); ok {
			return value, nil
		}
		return nil, NewValidationError("Expected array, got %s", core.TypeName(value))
	case KindMap:
		if _, ok := value.(map[string]any); ok {
			return value, nil
		}
		return nil, NewValidationError("Expected map, got %s", core.TypeName(value))
	default:
		return nil, NewValidationError("Unknown kind: %s", kind)
	}
	return nil, NewValidationError("Cannot coerce %v to %s", value, kind)
}

func availableKeys(values map[string]any) string {
	if len(values) == 0 {
		return "[]"
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "[" + strings.Join(keys, ", ") + "]"
}
