package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/integrators"
	"github.com/san-kum/ballsim/internal/metrics"
)

type Registry struct {
	integrators map[string]func() dynamo.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Stepper),
	}

	r.integrators["semi-implicit"] = func() dynamo.Stepper { return integrators.NewSemiImplicitEuler() }
	r.integrators["explicit"] = func() dynamo.Stepper { return integrators.NewEuler() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Stepper, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(p dynamo.Params) []dynamo.Metric {
	return metrics.Default(p)
}
