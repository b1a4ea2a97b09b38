package di

import "fmt"

// ── Provider interface ───────────────────────────────────────────────────────

// Provider contributes bindings to a scope in two phases.
//
// Register may only accumulate bindings: the scope does not exist yet,
// so resolution is off-limits. Boot runs once the scope built from those
// bindings is live, making it safe to resolve anything registered by any
// provider:
//
//	type GreeterProvider struct{ di.BaseProvider }
//
//	func (GreeterProvider) Register(b *di.Bindings) {
//	    b.Service("greeter", "prefix", newPrefixGreeter)
//	}
type Provider interface {
	// Register adds bindings. Do not resolve here.
	Register(b *Bindings)

	// Boot is called after the scope is open. Safe to resolve.
	Boot(s *Scope) error
}

// BaseProvider is an embeddable no-op Boot implementation. Embed it and
// override only what you need.
type BaseProvider struct{}

func (BaseProvider) Boot(_ *Scope) error { return nil }

// ── Assembly helpers ─────────────────────────────────────────────────────────

// CollectBindings runs the Register phase of each provider, in order,
// into one binding set. Later providers shadow earlier ones per
// interface, following the deterministic merge order of Bindings.
func CollectBindings(providers ...Provider) *Bindings {
	b := NewBindings()
	for _, p := range providers {
		p.Register(b)
	}
	return b
}

// BootAll runs the Boot phase of each provider, in order, stopping at
// the first failure.
func BootAll(s *Scope, providers ...Provider) error {
	for _, p := range providers {
		if err := p.Boot(s); err != nil {
			return fmt.Errorf("booting provider %T: %w", p, err)
		}
	}
	return nil
}
