package service

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// Hub owns the process services and starts them in dependency order
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	sorted   []string // dependency order, computed on StartAll
	started  []string // services whose Start succeeded, for rollback
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{services: make(map[string]Service)}
}

// Register adds a service; names must be unique
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
	h.mu.Lock()
	defer h.mu.Unlock()
	svc, ok := h.services[name]
	return svc, ok
}

// Order returns the start order, resolving dependencies if needed
func (h *Hub) Order() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.resolve(); err != nil {
		return nil, err
	}
	return append([]string(nil), h.sorted...), nil
}

// StartAll starts every service in dependency order
// On failure, already-started services are stopped in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.resolve(); err != nil {
		return err
	}

	h.started = h.started[:0]
	for _, name := range h.sorted {
		if err := h.services[name].Start(); err != nil {
			h.stopStarted()
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		log.Printf("[SERVICE] started %s", name)
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse order; errors are logged, every service gets Stop
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopStarted()
}

func (h *Hub) stopStarted() {
	for i := len(h.started) - 1; i >= 0; i-- {
		name := h.started[i]
		if err := h.services[name].Stop(); err != nil {
			log.Printf("[SERVICE] stop %s: %v", name, err)
		}
	}
	h.started = nil
}

// resolve computes the dependency order with Kahn's algorithm; caller holds mu
// Ties break by name so the order is stable across runs
func (h *Hub) resolve() error {
	if h.sorted != nil {
		return nil
	}

	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string)
	for name := range h.services {
		inDegree[name] = 0
	}
	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(h.services))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, d := range dependents[name] {
			inDegree[d]--
			if inDegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(order) != len(h.services) {
		return fmt.Errorf("circular dependency detected in services")
	}
	h.sorted = order
	return nil
}
