package di

import "sync"

// scopeStack is the process-wide ordered stack of live scopes.
// Resolution with no explicit scope always targets the top. Every
// operation holds the stack mutex; the mutex is pure bookkeeping and is
// never held across construction.
type scopeStack struct {
	mu     sync.Mutex
	scopes []*Scope
}

// defaultStack is the stack NewScope pushes onto and Current reads from.
var defaultStack scopeStack

func (st *scopeStack) push(s *Scope) {
	st.mu.Lock()
	st.scopes = append(st.scopes, s)
	st.mu.Unlock()
}

// pop removes s, which must be the current top: scopes close in exact
// reverse creation order.
func (st *scopeStack) pop(s *Scope) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	n := len(st.scopes)
	if n == 0 || st.scopes[n-1] != s {
		return ErrScopeMismatch
	}
	st.scopes[n-1] = nil
	st.scopes = st.scopes[:n-1]
	return nil
}

func (st *scopeStack) top() (*Scope, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.scopes) == 0 {
		return nil, ErrNoActiveScope
	}
	return st.scopes[len(st.scopes)-1], nil
}

// Current returns the innermost live scope, or ErrNoActiveScope when no
// scope is alive. Only the top of the stack is consulted during
// resolution; outer scopes are shadowed, not searched.
func Current() (*Scope, error) {
	return defaultStack.top()
}
