package weakref

// Mixin is the capability a type embeds to become handle-issuing through
// Adopt. The embedding alone is inert: handles can only be issued after the
// subject has been constructed through Adopt, which also hands back the
// strong owning side.
type Mixin struct {
	c core
}

// weakCore is the unexported hook behind Supporter; only types embedding
// Mixin can provide it, so adoption of arbitrary types fails to compile.
func (m *Mixin) weakCore() *core { return &m.c }

// Detach unbinds the current generation's goroutine affinity so the next
// resolve rebinds it. It is promoted onto the embedding subject, which lets
// the subject hand itself across goroutines.
func (m *Mixin) Detach() {
	m.c.current().aff.Detach()
}

// Supporter is satisfied exactly by pointers to types that embed Mixin.
type Supporter interface {
	weakCore() *core
}

// Adopt primes subject's embedded Mixin and returns the strong owning
// handle for it. It is the designated constructor for Mixin-based subjects:
// issuing from a subject that never passed through Adopt is a contract
// violation.
func Adopt[T Supporter](subject T, opts ...Option) *Strong[T] {
	o := options{policy: PolicyPanic}
	for _, opt := range opts {
		opt(&o)
	}
	c := subject.weakCore()
	c.bind(subject, o.policy)
	return &Strong[T]{subject: subject, c: c}
}

// Strong is the owning side of an adopted subject. It drives the lifecycle
// that handles merely observe: revocation, destruction, and the
// outstanding-handle introspection.
type Strong[T Supporter] struct {
	subject T
	c       *core
}

// Get returns the subject.
func (s *Strong[T]) Get() T { return s.subject }

// Handle issues a new handle to the subject under the current generation.
func (s *Strong[T]) Handle() Handle[T] {
	st, addr := s.c.issue()
	if st == nil {
		return Handle[T]{}
	}
	return Handle[T]{st: st, addr: addr}
}

// Invalidate revokes every handle issued so far; handles issued afterwards
// resolve normally.
func (s *Strong[T]) Invalidate() {
	s.c.invalidate()
}

// HasOutstanding reports whether any handle of the current generation is
// still held.
func (s *Strong[T]) HasOutstanding() bool {
	return !s.c.current().flag.zero()
}

// Wait blocks until every outstanding handle of the current generation has
// been released or collected.
func (s *Strong[T]) Wait() {
	s.c.current().flag.wait()
}

// Release ends the subject's observable lifetime: every handle resolves to
// empty from now on. The subject value itself is forgotten by the Strong
// but otherwise untouched.
func (s *Strong[T]) Release() {
	s.c.destroy()
	var zero T
	s.subject = zero
}

// HandleOf issues a handle to an adopted subject, typed at the subject's
// own type. It is the shorthand for code that holds the subject rather
// than its Strong.
func HandleOf[T Supporter](subject T) Handle[T] {
	st, addr := subject.weakCore().issue()
	if st == nil {
		return Handle[T]{}
	}
	return Handle[T]{st: st, addr: addr}
}

// HandleAs issues a handle statically typed at the view D of an adopted
// subject, sharing the subject's generation and outstanding count. It
// verifies that the subject satisfies D and reports false if it does not.
// Useful when a base-typed owner must hand out handles at a more specific
// or more abstract view.
func HandleAs[D any, T Supporter](subject T) (Handle[D], bool) {
	if _, ok := any(subject).(D); !ok {
		return Handle[D]{}, false
	}
	st, addr := subject.weakCore().issue()
	if st == nil {
		return Handle[D]{}, false
	}
	return Handle[D]{st: st, addr: addr}, true
}
