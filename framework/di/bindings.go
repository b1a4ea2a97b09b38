package di

// ── Identities ───────────────────────────────────────────────────────────────

// Tag distinguishes independent caching domains for the same interface
// within one scope.
type Tag string

const (
	// TagShared is the default sharing domain: one cached instance per
	// scope, constructed lazily on first resolution.
	TagShared Tag = "shared"

	// TagUnique disables caching: every resolution under it constructs a
	// fresh instance.
	TagUnique Tag = "unique"
)

// Factory constructs one new, owned instance of a concrete implementation.
// Constructor arguments are captured by the closure at registration time
// and reused for every invocation; nested dependencies are resolved inside
// the factory body and surface their errors through the return value.
type Factory func() (any, error)

// bindingKey identifies one (interface, implementation) registration.
type bindingKey struct {
	iface string
	impl  string
}

// ── Bindings ─────────────────────────────────────────────────────────────────

// Bindings accumulates (interface, implementation) → Factory entries in
// registration order. A set is built once via the fluent Service call,
// is read-only thereafter, and may be merged into any number of scopes.
type Bindings struct {
	order []bindingKey
	cells map[bindingKey]Factory
}

// NewBindings creates an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{cells: make(map[bindingKey]Factory)}
}

// Service registers factory as the constructor for impl implementing
// iface. Chainable:
//
//	b := di.NewBindings().
//	    Service("logger", "console", newConsoleLogger).
//	    Service("clock", "system", newSystemClock)
//
// Registering the same (iface, impl) pair again replaces its factory in
// place, keeping the original position. When different implementations
// are bound to one interface, the last distinct pair registered wins at
// merge time, deterministically in insertion order.
func (b *Bindings) Service(iface, impl string, factory Factory) *Bindings {
	key := bindingKey{iface: iface, impl: impl}
	if _, exists := b.cells[key]; !exists {
		b.order = append(b.order, key)
	}
	b.cells[key] = factory
	return b
}

// Len returns the number of registered (interface, implementation) pairs.
func (b *Bindings) Len() int { return len(b.order) }

// mergeInto sets each registration, in order, as the scope's effective
// implementation for its interface. Later entries overwrite earlier ones
// bound to the same interface.
func (b *Bindings) mergeInto(s *Scope) {
	for _, key := range b.order {
		s.setImpl(key.iface, b.cells[key])
	}
}
