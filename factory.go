package weakref

// Option configures a Factory or an adopted Mixin at construction.
type Option func(*options)

type options struct {
	policy Policy
}

// WithPolicy selects how wrong-goroutine resolves are handled for every
// generation the factory creates. The default is PolicyPanic.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// Factory issues handles to a single subject and can revoke all of them at
// once. T is the subject's pointer type: a *Uploader gets a
// Factory[*Uploader] issuing Handle[*Uploader]. Store the factory in the
// subject and prime it with NewFactory from the subject's constructor.
//
// Issue and Invalidate may be called from any goroutine, but the factory
// does not serialize an Issue racing an Invalidate; whoever owns the
// subject's lifecycle is expected to be the only writer.
type Factory[T any] struct {
	c core
}

// NewFactory returns a factory bound to subject, which must be a non-nil
// pointer. This is the designated constructor: a factory that did not pass
// through here panics on use.
func NewFactory[T any](subject T, opts ...Option) *Factory[T] {
	o := options{policy: PolicyPanic}
	for _, opt := range opts {
		opt(&o)
	}
	f := &Factory[T]{}
	f.c.bind(subject, o.policy)
	return f
}

// Issue mints a new handle under the current generation. After Close it
// returns an empty handle.
func (f *Factory[T]) Issue() Handle[T] {
	st, addr := f.c.issue()
	if st == nil {
		return Handle[T]{}
	}
	return Handle[T]{st: st, addr: addr}
}

// Invalidate revokes every handle issued so far. Once it returns, any
// resolve of an earlier handle observes the revocation, from any
// goroutine. Handles issued afterwards resolve normally until the next
// Invalidate or Close.
func (f *Factory[T]) Invalidate() {
	f.c.invalidate()
}

// HasOutstanding reports whether any handle of the current generation is
// still held. It is observational only and never gates resolution.
func (f *Factory[T]) HasOutstanding() bool {
	return !f.c.current().flag.zero()
}

// Wait blocks until every outstanding handle of the current generation has
// been released or collected.
func (f *Factory[T]) Wait() {
	f.c.current().flag.wait()
}

// Detach unbinds the current generation's goroutine affinity so the next
// resolve rebinds it. Use it when handle ownership legitimately moves
// between goroutines.
func (f *Factory[T]) Detach() {
	f.c.current().aff.Detach()
}

// Close destroys the subject observation: every handle, of every
// generation, resolves to empty from now on, and further Issues return
// empty handles. The subject itself is untouched; its lifetime belongs to
// its owner.
func (f *Factory[T]) Close() {
	f.c.destroy()
}
