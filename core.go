package weakref

import (
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
)

// generation groups the affinity token and the outstanding-handle flag that
// get stamped into every handle issued while it is current. Invalidation
// swaps in a fresh generation and retires the old one, which expires every
// previously issued handle at once.
type generation struct {
	aff  *Affinity
	flag *refFlag
}

// subjectBox pins the subject under its concrete pointer type together with
// the address used for identity comparison and hashing.
type subjectBox struct {
	v    any
	addr uintptr
}

// core is the untyped issuing engine behind Factory and Mixin.
type core struct {
	subject atomic.Pointer[subjectBox] // nil once the subject is destroyed
	gen     atomic.Pointer[generation] // nil until a designated constructor binds it
	mu      sync.Mutex                 // serializes generation rotation
	policy  Policy
}

// bind primes the core with its subject. Called exactly once, by a
// designated constructor.
func (c *core) bind(v any, policy Policy) {
	if c.gen.Load() != nil {
		violation("subject bound twice")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		violation("subject must be a non-nil pointer, got %T", v)
	}
	c.policy = policy
	c.subject.Store(&subjectBox{v: v, addr: rv.Pointer()})
	c.gen.Store(&generation{aff: NewAffinity(policy), flag: new(refFlag)})
}

// current returns the live generation, or panics if the owner skipped its
// designated constructor.
func (c *core) current() *generation {
	g := c.gen.Load()
	if g == nil {
		violation("subject was not created through its designated constructor")
	}
	return g
}

// issuance is the state shared by every copy of one issued handle.
type issuance struct {
	c        *core
	aff      *Affinity
	flag     *refFlag
	released atomic.Bool
}

// drop returns the issuance's outstanding slot. Only the first call counts;
// the finalizer path funnels here as well.
func (st *issuance) drop() {
	if st.released.CompareAndSwap(false, true) {
		st.flag.release()
	}
}

// issue mints the shared state for one new handle under the current
// generation. It returns nil state when the subject has been destroyed.
func (c *core) issue() (*issuance, uintptr) {
	g := c.current()
	box := c.subject.Load()
	if box == nil {
		return nil, 0
	}
	g.flag.acquire()
	st := &issuance{c: c, aff: g.aff, flag: g.flag}
	// Handles are plain values with no destructor, so the finalizer keeps
	// the outstanding count honest when the last copy of a handle is
	// dropped without Reset.
	runtime.SetFinalizer(st, (*issuance).drop)
	return st, box.addr
}

// invalidate retires the current generation and installs a fresh one. The
// old affinity token is expired before this returns, so a resolve of any
// earlier handle, from any goroutine, observes the revocation immediately.
//
// Rotation is serialized against itself only. An issue racing an
// invalidate may land on either side of the swap; callers that need a
// strict order must provide it, per the single-writer lifecycle discipline.
func (c *core) invalidate() {
	c.mu.Lock()
	old := c.current()
	old.aff.retire()
	c.gen.Store(&generation{aff: NewAffinity(c.policy), flag: new(refFlag)})
	c.mu.Unlock()

	Logger().Debug("weakref: generation retired")
}

// destroy clears the subject and retires the current generation. Nothing
// resolves afterwards and further issues yield empty handles.
func (c *core) destroy() {
	c.subject.Store(nil)
	c.invalidate()
}
