package task

import (
	"context"
	"fmt"

	"github.com/symflow/symflow/engine/core"
	"github.com/symflow/symflow/engine/schema"
)

// -----------------------------------------------------------------------------
// Task Kind
// -----------------------------------------------------------------------------

type Kind string

const (
	KindSymbolic Kind = "symbolic"
	KindNeural   Kind = "neural"
	KindHybrid   Kind = "hybrid"
)

func (k Kind) String() string {
	return string(k)
}

// -----------------------------------------------------------------------------
// Task Config
// -----------------------------------------------------------------------------

// Callable is the deterministic body of a symbolic task. It receives already
// validated inputs and must respect ctx cancellation to honor deadlines.
type Callable func(ctx context.Context, input core.Input) (core.Output, error)

// Config describes a single task. At least one of Instructions or Func must
// be set; a config with both is hybrid and always executes symbolically.
// Configs are created by the external definition loader and are immutable for
// the lifetime of the engine.
type Config struct {
	Name         string
	Input        schema.Schema
	Output       schema.Schema
	Instructions string
	Func         Callable
}

// Kind resolves the execution strategy for the task.
func (c *Config) Kind() (Kind, error) {
	switch {
	case c.Func != nil && c.Instructions != "":
		return KindHybrid, nil
	case c.Func != nil:
		return KindSymbolic, nil
	case c.Instructions != "":
		return KindNeural, nil
	default:
		return "", fmt.Errorf("task %q defines neither instructions nor a callable", c.Name)
	}
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if _, err := c.Kind(); err != nil {
		return err
	}
	for _, f := range c.Input {
		if !f.Kind.IsValid() {
			return fmt.Errorf("task %q input field %q has unknown kind %q", c.Name, f.Name, f.Kind)
		}
	}
	for _, f := range c.Output {
		if !f.Kind.IsValid() {
			return fmt.Errorf("task %q output field %q has unknown kind %q", c.Name, f.Name, f.Kind)
		}
	}
	return nil
}
