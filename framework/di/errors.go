package di

import (
	"errors"
	"fmt"
)

// ── Sentinels ────────────────────────────────────────────────────────────────

var (
	// ErrNotBound matches resolution of an interface with no registered
	// implementation in the active scope.
	ErrNotBound = errors.New("service interface is not bound")

	// ErrCycle matches a (tag, interface) key encountered as an ancestor
	// of its own construction.
	ErrCycle = errors.New("circular dependency")

	// ErrNoActiveScope matches resolution attempted while no scope is alive.
	ErrNoActiveScope = errors.New("no active dependency scope")

	// ErrScopeMismatch matches a scope closed out of reverse creation order.
	ErrScopeMismatch = errors.New("mismatched dependency scope stack")

	// ErrScopeClosed matches resolution against an already-closed scope.
	ErrScopeClosed = errors.New("dependency scope is closed")
)

// ── Typed errors ─────────────────────────────────────────────────────────────

// NotBoundError reports which interface had no implementation.
type NotBoundError struct {
	Interface string
}

func (e *NotBoundError) Error() string {
	return fmt.Sprintf("di: interface %q is not bound in the active scope", e.Interface)
}

func (e *NotBoundError) Unwrap() error { return ErrNotBound }

// CycleError reports the (tag, interface) key that re-entered its own
// construction.
type CycleError struct {
	Tag       Tag
	Interface string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("di: circular dependency constructing %q (tag %q)", e.Interface, e.Tag)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// TypeError reports a resolved instance that does not satisfy the Go type
// requested through a generic helper.
type TypeError struct {
	Interface string
	Instance  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("di: interface %q resolved to incompatible %T", e.Interface, e.Instance)
}
