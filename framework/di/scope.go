package di

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ResolveHook observes instance construction. Hooks fire once per
// constructed instance, synchronously on the resolving goroutine; cache
// hits do not re-fire them.
type ResolveHook func(iface string, tag Tag, instance any)

// Scope is a bounded lifetime context holding one merged implementation
// table, one instance cache, and one cycle checker. It serves resolutions
// from creation until Close.
type Scope struct {
	mu        sync.RWMutex // guards instances, hooks, closed
	impls     map[string]Factory
	instances map[instanceKey]any
	cycles    cycleChecker
	hooks     []ResolveHook
	closed    bool
}

// NewScope merges the given binding sets in order (later sets shadow
// earlier ones per interface) and pushes the scope onto the process-wide
// scope stack. Pair every NewScope with a Close, in strict reverse
// creation order:
//
//	scope := di.NewScope(bindings)
//	defer scope.Close()
func NewScope(sets ...*Bindings) *Scope {
	s := &Scope{
		impls:     make(map[string]Factory),
		instances: make(map[instanceKey]any),
	}
	for _, set := range sets {
		set.mergeInto(s)
	}
	defaultStack.push(s)
	return s
}

// setImpl records factory as the effective implementation for iface.
// Last writer wins. Only called during merge, before the scope is
// visible on the stack, so the implementation table is read-only for
// the rest of the scope's lifetime.
func (s *Scope) setImpl(iface string, factory Factory) {
	s.impls[iface] = factory
}

// Resolve returns the instance of iface for the given tag, constructing
// it on first use. Under TagUnique every call constructs a fresh,
// uncached instance. Under any other tag, at most one instance per
// (tag, iface) pair is ever constructed for the lifetime of the scope:
// concurrent resolutions of the same pair observe exactly one instance.
//
// The factory may recursively resolve further services through this same
// scope; re-entering the same (tag, iface) pair on one call path fails
// with ErrCycle.
func (s *Scope) Resolve(iface string, tag Tag) (any, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrScopeClosed
	}

	factory, ok := s.impls[iface]
	if !ok {
		return nil, &NotBoundError{Interface: iface}
	}

	if tag == TagUnique {
		instance, err := factory()
		if err != nil {
			return nil, err
		}
		s.fireAfterResolve(iface, tag, instance)
		return instance, nil
	}

	key := instanceKey{tag: tag, iface: iface}

	for {
		// Fast path: cache hit under the read lock.
		s.mu.RLock()
		instance, hit := s.instances[key]
		s.mu.RUnlock()
		if hit {
			return instance, nil
		}

		release, wait, err := s.cycles.begin(key)
		if err != nil {
			return nil, err
		}
		if wait != nil {
			// Another goroutine is constructing this key; its result
			// lands in the cache before the guard is released.
			<-wait
			continue
		}

		return s.construct(key, factory, release)
	}
}

// construct invokes the factory and publishes the result, holding the
// cycle guard across the whole construction. Construction may be
// arbitrarily expensive and re-enter this scope, so no cache lock is
// held around the factory call.
func (s *Scope) construct(key instanceKey, factory Factory, release func()) (any, error) {
	defer release()

	instance, err := factory()
	if err != nil {
		return nil, err
	}

	// Re-check under the write lock, then insert.
	s.mu.Lock()
	if existing, hit := s.instances[key]; hit {
		s.mu.Unlock()
		return existing, nil
	}
	s.instances[key] = instance
	s.mu.Unlock()

	s.fireAfterResolve(key.iface, key.tag, instance)
	return instance, nil
}

// Close pops the scope off the stack and discards its instance cache.
// Service handles still holding resolved instances keep them alive.
// Closing a scope that is not the innermost live one fails with
// ErrScopeMismatch and leaves the scope open. Close is idempotent.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := defaultStack.pop(s); err != nil {
		return err
	}

	s.mu.Lock()
	s.closed = true
	s.instances = make(map[instanceKey]any)
	s.mu.Unlock()
	return nil
}

// Validate eagerly checks binding consistency without constructing
// anything: every bound interface must carry a usable factory.
func (s *Scope) Validate() error {
	var bad []string
	for iface, factory := range s.impls {
		if factory == nil {
			bad = append(bad, iface)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("di: nil factory bound for %s", strings.Join(bad, ", "))
}

// Bound reports whether iface has an effective implementation in this
// scope.
func (s *Scope) Bound(iface string) bool {
	_, ok := s.impls[iface]
	return ok
}

// Interfaces returns the sorted interface identities bound in this scope.
func (s *Scope) Interfaces() []string {
	out := make([]string, 0, len(s.impls))
	for iface := range s.impls {
		out = append(out, iface)
	}
	sort.Strings(out)
	return out
}

// AfterResolve registers a hook observing every construction in this
// scope.
func (s *Scope) AfterResolve(hook ResolveHook) {
	s.mu.Lock()
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()
}

func (s *Scope) fireAfterResolve(iface string, tag Tag, instance any) {
	s.mu.RLock()
	hooks := s.hooks
	s.mu.RUnlock()
	for _, hook := range hooks {
		hook(iface, tag, instance)
	}
}
