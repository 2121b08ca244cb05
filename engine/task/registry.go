package task

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds task configs keyed by name. Registration happens once at
// startup by the definition loader; lookups are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*Config
}

func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*Config)}
}

func (r *Registry) Add(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("task config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[cfg.Name]; exists {
		return fmt.Errorf("task %q is already registered", cfg.Name)
	}
	r.tasks[cfg.Name] = cfg
	return nil
}

func (r *Registry) Get(name string) (*Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.tasks[name]
	return cfg, ok
}

// Names returns all registered task names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
