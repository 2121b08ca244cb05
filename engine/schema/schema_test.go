package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	t.Run("Should coerce numeric strings for number fields", func(t *testing.T) {
		s := New(Field{Name: "a", Kind: KindNumber}, Field{Name: "b", Kind: KindNumber})
		out, err := s.Validate(map[string]any{"a": "10", "b": 32.5}, "input")
		require.NoError(t, err)
		assert.Equal(t, float64(10), out["a"])
		assert.Equal(t, 32.5, out["b"])
	})
	t.Run("Should reject fractional values for integer fields", func(t *testing.T) {
		s := New(Field{Name: "n", Kind: KindInteger})
		_, err := s.Validate(map[string]any{"n": 1.5}, "input")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot coerce")
	})
	t.Run("Should coerce integer strings", func(t *testing.T) {
		s := New(Field{Name: "n", Kind: KindInteger})
		out, err := s.Validate(map[string]any{"n": "42"}, "input")
		require.NoError(t, err)
		assert.Equal(t, int64(42), out["n"])
	})
	t.Run("Should coerce boolean literals case-insensitively", func(t *testing.T) {
		s := New(Field{Name: "flag", Kind: KindBoolean})
		for raw, want := range map[string]bool{
			"true": true, "TRUE": true, "yes": true, "1": true,
			"false": false, "No": false, "0": false,
		} {
			out, err := s.Validate(map[string]any{"flag": raw}, "input")
			require.NoError(t, err, "input %q", raw)
			assert.Equal(t, want, out["flag"], "input %q", raw)
		}
	})
	t.Run("Should reject unknown boolean spellings", func(t *testing.T) {
		s := New(Field{Name: "flag", Kind: KindBoolean})
		_, err := s.Validate(map[string]any{"flag": "maybe"}, "input")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot coerce maybe to boolean")
	})
	t.Run("Should render scalars to string fields", func(t *testing.T) {
		s := New(Field{Name: "v", Kind: KindString})
		out, err := s.Validate(map[string]any{"v": 42}, "input")
		require.NoError(t, err)
		assert.Equal(t, "42", out["v"])

		out, err = s.Validate(map[string]any{"v": true}, "input")
		require.NoError(t, err)
		assert.Equal(t, "true", out["v"])
	})
	t.Run("Should not coerce composites to string", func(t *testing.T) {
		s := New(Field{Name: "v", Kind: KindString})
		_, err := s.Validate(map[string]any{"v": []any{1, 2}}, "input")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot coerce")
	})
	t.Run("Should require matching runtime shape for array fields", func(t *testing.T) {
		s := New(Field{Name: "numbers", Kind: KindArray})
		_, err := s.Validate(map[string]any{"numbers": "not-an-array"}, "input")
		require.Error(t, err)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, err.Error(), "Expected array, got string")

		out, err := s.Validate(map[string]any{"numbers": []any{1.0, 2.0}}, "input")
		require.NoError(t, err)
		assert.Equal(t, []any{1.0, 2.0}, out["numbers"])
	})
	t.Run("Should require matching runtime shape for map fields", func(t *testing.T) {
		s := New(Field{Name: "meta", Kind: KindMap})
		_, err := s.Validate(map[string]any{"meta": []any{}}, "input")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Expected map, got array")
	})
	t.Run("Should pass any kind through untouched", func(t *testing.T) {
		s := New(Field{Name: "blob", Kind: KindAny})
		value := map[string]any{"nested": []any{1, "two"}}
		out, err := s.Validate(map[string]any{"blob": value}, "input")
		require.NoError(t, err)
		assert.Equal(t, value, out["blob"])
	})
	t.Run("Should report missing fields with available keys", func(t *testing.T) {
		s := New(Field{Name: "a", Kind: KindNumber}, Field{Name: "b", Kind: KindNumber})
		_, err := s.Validate(map[string]any{"a": 1}, "output")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing required output parameter: b")
		assert.Contains(t, err.Error(), "Available: [a]")
	})
	t.Run("Should be idempotent", func(t *testing.T) {
		s := New(
			Field{Name: "n", Kind: KindInteger},
			Field{Name: "f", Kind: KindNumber},
			Field{Name: "b", Kind: KindBoolean},
			Field{Name: "s", Kind: KindString},
		)
		first, err := s.Validate(map[string]any{"n": "7", "f": "1.25", "b": "yes", "s": 99}, "input")
		require.NoError(t, err)
		second, err := s.Validate(first, "input")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
	t.Run("Should keep undeclared keys", func(t *testing.T) {
		s := New(Field{Name: "a", Kind: KindNumber})
		out, err := s.Validate(map[string]any{"a": 1.0, "extra": "kept"}, "input")
		require.NoError(t, err)
		assert.Equal(t, "kept", out["extra"])
	})
}
