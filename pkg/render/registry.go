package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps flavor names to skeletons. directive.WithFlavor and the
// directive.flavor config key select a skeleton by looking its name up here;
// the directive keeps the skeleton it resolved at construction, so later
// registrations do not affect existing directives.
type Registry struct {
	mu        sync.RWMutex
	skeletons map[string]Skeleton
}

// NewRegistry creates an empty registry. Use it to offer custom flavors
// through directive.WithRegistry without touching DefaultRegistry.
func NewRegistry() *Registry {
	return &Registry{
		skeletons: make(map[string]Skeleton),
	}
}

// Register adds a skeleton under its Name(). A flavor name is claimed once;
// registering the same name again is an error rather than a silent swap of
// the markup every directive of that flavor produces.
func (r *Registry) Register(skeleton Skeleton) error {
	if skeleton == nil {
		return fmt.Errorf("render: skeleton is required")
	}
	name := skeleton.Name()
	if name == "" {
		return fmt.Errorf("render: skeleton name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.skeletons[name]; exists {
		return fmt.Errorf("render: skeleton %q already registered", name)
	}

	r.skeletons[name] = skeleton
	return nil
}

// MustRegister panics on registration failure. Used for the built-in
// flavors.
func (r *Registry) MustRegister(skeleton Skeleton) {
	if err := r.Register(skeleton); err != nil {
		panic(err)
	}
}

// Get returns the skeleton for a flavor. The error for an unknown flavor
// lists the registered ones.
func (r *Registry) Get(name string) (Skeleton, error) {
	r.mu.RLock()
	skeleton, ok := r.skeletons[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("render: skeleton %q not found (have: %s)", name, strings.Join(r.List(), ", "))
	}
	return skeleton, nil
}

// MustGet panics if the flavor is missing.
func (r *Registry) MustGet(name string) Skeleton {
	skeleton, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return skeleton
}

// List returns the registered flavor names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.skeletons))
	for name := range r.skeletons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a flavor is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.skeletons[name]
	return ok
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry holding the built-in
// bootstrap3 and bootstrap5 skeletons. The embedded templates are parsed on
// first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		registry := NewRegistry()
		registry.MustRegister(MustTemplateSkeleton(FlavorBootstrap3, TemplatesFS(), "bootstrap3.tpl"))
		registry.MustRegister(MustTemplateSkeleton(FlavorBootstrap5, TemplatesFS(), "bootstrap5.tpl"))
		defaultRegistry = registry
	})
	return defaultRegistry
}
