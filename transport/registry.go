package transport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-exclusionlist/core"
)

type AdapterFactory func(config map[string]any) (core.TransportAdapter, error)

type Registry struct {
	mu        sync.RWMutex
	adapters  map[string]core.TransportAdapter
	factories map[string]AdapterFactory
}

func NewRegistry() *Registry {
	return &Registry{
		adapters:  map[string]core.TransportAdapter{},
		factories: map[string]AdapterFactory{},
	}
}

// NewDefaultRegistry registers the media factory. Each Build call produces
// an adapter tuned by the supplied timeout and max_response_bytes.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.RegisterFactory(KindMedia, mediaFactory)
	return registry
}

func (r *Registry) Register(adapter core.TransportAdapter) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	if adapter == nil {
		return fmt.Errorf("transport: adapter is nil")
	}
	kind := normalizeKind(adapter.Kind())
	if kind == "" {
		return fmt.Errorf("transport: adapter kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[kind]; exists {
		return fmt.Errorf("transport: adapter kind %q already registered", kind)
	}
	r.adapters[kind] = adapter
	return nil
}

func (r *Registry) RegisterFactory(kind string, factory AdapterFactory) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		return fmt.Errorf("transport: adapter kind is required")
	}
	if factory == nil {
		return fmt.Errorf("transport: adapter factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("transport: adapter factory kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// Build returns the registered adapter for kind, falling back to its factory.
func (r *Registry) Build(kind string, config map[string]any) (core.TransportAdapter, error) {
	if r == nil {
		return nil, fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		return nil, fmt.Errorf("transport: adapter kind is required")
	}

	r.mu.RLock()
	adapter, ok := r.adapters[kind]
	factory := r.factories[kind]
	r.mu.RUnlock()
	if ok {
		return adapter, nil
	}
	if factory == nil {
		return nil, fmt.Errorf("transport: adapter kind %q not registered", kind)
	}
	built, err := factory(cloneMap(config))
	if err != nil {
		return nil, err
	}
	if built == nil {
		return nil, fmt.Errorf("transport: factory for %q returned nil adapter", kind)
	}
	return built, nil
}

func (r *Registry) Get(kind string) (core.TransportAdapter, bool) {
	if r == nil {
		return nil, false
	}
	kind = normalizeKind(kind)
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[kind]
	return adapter, ok
}

func (r *Registry) List() []core.TransportAdapter {
	if r == nil {
		return []core.TransportAdapter{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.adapters))
	for kind := range r.adapters {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	result := make([]core.TransportAdapter, 0, len(kinds))
	for _, kind := range kinds {
		result = append(result, r.adapters[kind])
	}
	return result
}

func mediaFactory(config map[string]any) (core.TransportAdapter, error) {
	timeout, err := durationFromConfig(config, "timeout")
	if err != nil {
		return nil, err
	}
	adapter := NewMediaAdapter(httpClientFor(timeout))
	if limit := int64FromConfig(config, "max_response_bytes"); limit > 0 {
		adapter.MaxResponseBodyBytes = limit
	}
	return adapter, nil
}

func httpClientFor(timeout time.Duration) HTTPDoer {
	if timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: timeout}
}

// durationFromConfig reads a timeout. Bare numbers are seconds, matching the
// config loader.
func durationFromConfig(config map[string]any, key string) (time.Duration, error) {
	switch value := config[key].(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return value, nil
	case int:
		return time.Duration(value) * time.Second, nil
	case int64:
		return time.Duration(value) * time.Second, nil
	case float64:
		return time.Duration(value * float64(time.Second)), nil
	case string:
		if strings.TrimSpace(value) == "" {
			return 0, nil
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("transport: invalid %s %q: %w", key, value, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("transport: unsupported %s type %T", key, value)
	}
}

func int64FromConfig(config map[string]any, key string) int64 {
	switch value := config[key].(type) {
	case int:
		return int64(value)
	case int64:
		return value
	case float64:
		return int64(value)
	default:
		return 0
	}
}

func normalizeKind(kind string) string {
	return strings.TrimSpace(strings.ToLower(kind))
}

func cloneMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return map[string]any{}
	}
	output := make(map[string]any, len(input))
	for key, value := range input {
		output[key] = value
	}
	return output
}

var _ core.TransportResolver = (*Registry)(nil)
