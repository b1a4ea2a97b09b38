package di

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// instanceKey addresses one cached instance: a (tag, interface) pair.
type instanceKey struct {
	tag   Tag
	iface string
}

// construction is one in-flight factory invocation.
type construction struct {
	owner int64         // goroutine holding the guard
	done  chan struct{} // closed when the guard is released
}

// cycleChecker tracks the (tag, interface) keys currently under
// construction in one scope. Re-entry by the owning goroutine means the
// key is an ancestor of its own construction, which is a cycle. A different
// goroutine asking for the same key is not a cycle: it waits for the
// in-flight construction instead of starting a duplicate.
type cycleChecker struct {
	mu     sync.Mutex
	active map[instanceKey]*construction
}

// begin claims the construction guard for key. Exactly one result is
// meaningful:
//
//   - release non-nil: the caller owns construction and must call
//     release on every exit path, including panics.
//   - wait non-nil: another goroutine is constructing key; receive from
//     it, then re-check the instance cache.
//   - err non-nil: the calling goroutine is already constructing key.
func (c *cycleChecker) begin(key instanceKey) (release func(), wait <-chan struct{}, err error) {
	gid := goroutineID()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		c.active = make(map[instanceKey]*construction)
	}

	if in, busy := c.active[key]; busy {
		if in.owner == gid {
			return nil, nil, &CycleError{Tag: key.tag, Interface: key.iface}
		}
		return nil, in.done, nil
	}

	in := &construction{owner: gid, done: make(chan struct{})}
	c.active[key] = in

	return func() {
		c.mu.Lock()
		delete(c.active, key)
		c.mu.Unlock()
		close(in.done)
	}, nil, nil
}

// goroutineID parses the current goroutine's id out of its stack header
// ("goroutine 123 [running]:"). The runtime exposes no API for this.
// Construction call paths are synchronous within one goroutine, so the
// id is a stable identity for the duration of a resolve call.
func goroutineID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		if id, err := strconv.ParseInt(string(buf[:i]), 10, 64); err == nil {
			return id
		}
	}
	return -1
}
