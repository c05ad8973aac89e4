package aggregators

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/config"
	"github.com/go-sif/columnar/logging"
)

// Factory builds an Aggregator from Params
type Factory func(p Params) (columnar.Aggregator, error)

func infallible(f func(Params) columnar.Aggregator) Factory {
	return func(p Params) (columnar.Aggregator, error) {
		return f(p), nil
	}
}

// Registry resolves Aggregators by name
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	defaults  Params
}

// NewRegistry returns a Registry of the built-in Aggregators, whose default Params are derived from opts
func NewRegistry(opts *config.Options) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		defaults:  ParamsFromOptions(opts),
	}
	builtins := map[string]Factory{
		"sum":             infallible(Sum),
		"mean":            infallible(Mean),
		"var":             infallible(Variance),
		"std":             infallible(Std),
		"count":           infallible(Count),
		"min":             infallible(Min),
		"max":             infallible(Max),
		"median":          infallible(Median),
		"medianValue":     infallible(MedianValue),
		"percentile":      Percentile,
		"percentileValue": PercentileValue,
	}
	for name, f := range builtins {
		r.factories[name] = f
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide Registry, built from config.Default()
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(config.Default())
	})
	return defaultRegistry
}

// Register adds a named Factory. Names must be unique.
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("Aggregator %s is already registered", name)
	}
	r.factories[name] = f
	logging.With("aggregators").Debug("Registered aggregator", "name", name)
	return nil
}

// Get builds the named Aggregator with the default Params of this Registry
func (r *Registry) Get(name string) (columnar.Aggregator, error) {
	return r.GetWithParams(name, r.Defaults())
}

// GetWithParams builds the named Aggregator with the given Params
func (r *Registry) GetWithParams(name string, p Params) (columnar.Aggregator, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("Unknown aggregator %s", name)
	}
	logging.With("aggregators").Debug("Resolved aggregator", "name", name)
	return f(p)
}

// Defaults returns the default Params of this Registry
func (r *Registry) Defaults() Params {
	return r.defaults
}

// Names returns the sorted names of all registered Aggregators
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
