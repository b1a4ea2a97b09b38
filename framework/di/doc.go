// Package di provides a scope-stack dependency-injection runtime.
//
// # Overview
//
// Calling code declares "give me the current implementation of interface X"
// without knowing which concrete implementation is active; configuration
// code selects implementations per scope. Interfaces, implementations and
// sharing domains are all identified by stable string keys, so no runtime
// type metadata is ever used as a registry key.
//
// # Bindings
//
//	bindings := di.NewBindings().
//	    Service("writer", "console", func() (any, error) {
//	        return &ConsoleWriter{}, nil
//	    }).
//	    Service("greeter", "prefix", func() (any, error) {
//	        out, err := di.Resolve[Writer]("writer")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return &PrefixGreeter{Out: out}, nil
//	    })
//
// A binding set is built once, is read-only afterwards, and may be merged
// into any number of scopes.
//
// # Scopes
//
// Creating a scope merges one or more binding sets (in order, later sets
// shadowing earlier ones per interface) and pushes the scope onto a
// process-wide stack. Resolution with no explicit scope always targets the
// top of that stack. Scopes must close in exact reverse creation order:
//
//	scope := di.NewScope(bindings)
//	defer scope.Close()
//
//	greeter, err := di.Resolve[Greeter]("greeter")
//
// # Sharing tags
//
// Within one scope, instances are cached per (tag, interface) pair. The
// default di.TagShared gives one instance per scope; custom tags give
// independently cached instances of the same interface; di.TagUnique
// bypasses the cache entirely:
//
//	a, _ := di.ResolveTagged[Conn]("conn", "pool-a") // cached under "pool-a"
//	b, _ := di.ResolveTagged[Conn]("conn", "pool-b") // independent instance
//	u, _ := di.ResolveTagged[Conn]("conn", di.TagUnique) // always fresh
//
// # Service handles
//
// Ref resolves once at construction against the innermost live scope and
// holds the typed instance for its own lifetime:
//
//	ref, err := di.NewRef[Greeter]("greeter")
//	ref.Get().Greet("world")
//
// # Errors
//
// Failures are reported to the immediate caller and matchable with
// errors.Is: ErrNotBound, ErrCycle, ErrNoActiveScope, ErrScopeMismatch,
// ErrScopeClosed. A failed construction caches nothing and releases its
// cycle-guard mark, so a later resolution attempt retries cleanly.
package di
