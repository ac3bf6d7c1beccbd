// Package integrators advances a state by its source terms. Sources are
// supplied by a SourceFunc, so the same schemes serve any sweep backend.
package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/mergersrc/internal/dynamo"
)

// SourceFunc adds the sources for state at time t into src.
type SourceFunc func(state, src *dynamo.Field, t float64) error

type Integrator interface {
	Name() string
	// Step advances state from t to t+dt. src is scratch on entry and holds
	// the effective source that was applied on return.
	Step(f SourceFunc, state, src *dynamo.Field, t, dt float64) error
}

var registry = map[string]func() Integrator{
	"euler": func() Integrator { return NewEuler() },
	"heun":  func() Integrator { return NewHeun() },
}

func New(name string) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator %q (available: %v): %w", name, List(), dynamo.ErrInvalidConfig)
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
