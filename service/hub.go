package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Hub owns service instances and drives their lifecycle in dependency order
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	sorted   []string // Topological order, computed on InitAll
	inited   []string // Services that completed Init(), for rollback
	started  []string // Services that completed Start(), for rollback
	log      zerolog.Logger
}

// NewHub creates an empty service hub
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		services: make(map[string]Service),
		log:      log,
	}
}

// Register adds a service instance to the hub
// Clears cached sort order to force recomputation
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}

	h.services[name] = svc
	h.sorted = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet retrieves a service and casts to type T
// Panics if service not found or type mismatch
func MustGet[T any](h *Hub, name string) T {
	h.mu.RLock()
	svc, ok := h.services[name]
	h.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}

	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll resolves dependencies and calls Init on all services
// On failure, calls Stop on already-initialized services in reverse order
func (h *Hub) InitAll(args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		order, err := h.topologicalSort()
		if err != nil {
			return err
		}
		h.sorted = order
	}

	h.inited = nil
	for _, name := range h.sorted {
		if err := h.services[name].Init(args...); err != nil {
			h.stopReverse(h.inited)
			h.inited = nil
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		h.inited = append(h.inited, name)
		h.log.Debug().Str("service", name).Msg("service initialized")
	}

	return nil
}

// StartAll calls Start on all services in topological order
// On failure, stops every initialized service in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = nil
	for _, name := range h.sorted {
		if err := h.services[name].Start(); err != nil {
			h.stopReverse(h.inited)
			h.started = nil
			h.inited = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
		h.log.Debug().Str("service", name).Msg("service started")
	}

	return nil
}

// StopAll calls Stop on all initialized services in reverse topological order
// Every service gets Stop called; failures are logged and joined
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.stopReverse(h.inited)
	h.started = nil
	h.inited = nil
	return err
}

// stopReverse stops the named services last to first
func (h *Hub) stopReverse(names []string) error {
	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		svc, ok := h.services[name]
		if !ok {
			continue
		}
		if err := svc.Stop(); err != nil {
			h.log.Warn().Err(err).Str("service", name).Msg("service stop failed")
			errs = append(errs, fmt.Errorf("service %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// topologicalSort computes initialization order using Kahn's algorithm
// Ties are broken by name so the order is deterministic
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int)
	dependents := make(map[string][]string) // dep -> services that depend on it

	for name := range h.services {
		inDegree[name] = 0
	}

	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		next := dependents[name]
		sort.Strings(next)
		for _, dependent := range next {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, fmt.Errorf("circular dependency detected in services")
	}

	return result, nil
}

// Names returns all registered service names in sorted order
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
