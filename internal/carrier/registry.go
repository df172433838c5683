package carrier

import (
	"sync"

	domainCarrier "shipping-management/internal/domain/carrier"
	appErrors "shipping-management/pkg/errors"
)

// Registry maps a carrier kind to its adapter.
type Registry struct {
	mu       sync.RWMutex
	adapters map[domainCarrier.ProviderKind]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domainCarrier.ProviderKind]Adapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Kind()] = a
}

// Get returns the adapter of kind or a config error when none is registered.
func (r *Registry) Get(kind domainCarrier.ProviderKind) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[kind]
	if !ok {
		return nil, appErrors.NewConfigError("no carrier integration registered for kind %q", kind)
	}
	return a, nil
}

// For resolves the adapter of c.
func (r *Registry) For(c *domainCarrier.Carrier) (Adapter, error) {
	if c == nil {
		return nil, appErrors.NewConfigError("carrier is not set")
	}
	return r.Get(c.Kind)
}
