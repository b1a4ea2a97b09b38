package di

// ── Generic resolvers ────────────────────────────────────────────────────────

// Resolve resolves iface under the default shared tag against the
// innermost live scope and asserts the result to T.
//
//	greeter, err := di.Resolve[Greeter]("greeter")
func Resolve[T any](iface string) (T, error) {
	return ResolveTagged[T](iface, TagShared)
}

// ResolveTagged resolves iface under an explicit tag against the
// innermost live scope.
func ResolveTagged[T any](iface string, tag Tag) (T, error) {
	var zero T

	scope, err := Current()
	if err != nil {
		return zero, err
	}
	instance, err := scope.Resolve(iface, tag)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &TypeError{Interface: iface, Instance: instance}
	}
	return typed, nil
}

// ── Service handle ───────────────────────────────────────────────────────────

// Ref is the consumer-facing service handle. It resolves exactly once,
// at construction, against the scope that is top of stack at that
// moment, and holds the typed instance for its own lifetime. Copies
// share the already-resolved instance; no re-resolution ever occurs.
// Holding a Ref keeps its instance alive past the owning scope's Close.
type Ref[T any] struct {
	value T
}

// NewRef resolves iface under the shared tag and wraps the result.
func NewRef[T any](iface string) (Ref[T], error) {
	return NewRefTagged[T](iface, TagShared)
}

// NewRefTagged resolves iface under an explicit tag and wraps the result.
func NewRefTagged[T any](iface string, tag Tag) (Ref[T], error) {
	value, err := ResolveTagged[T](iface, tag)
	if err != nil {
		return Ref[T]{}, err
	}
	return Ref[T]{value: value}, nil
}

// Get returns the resolved instance.
func (r Ref[T]) Get() T { return r.value }
