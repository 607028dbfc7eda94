package weakref

// Handle is a non-owning reference to a subject of type T. The zero value
// is an empty handle that resolves to nothing and is always safe to use.
//
// Copies of a handle are independent views over one issuance: they resolve,
// compare, and reset individually, but occupy a single outstanding slot in
// the factory's count.
type Handle[T any] struct {
	st   *issuance
	addr uintptr
}

// Get resolves the handle. It returns the subject and true while the
// subject is alive and the handle's generation has not been invalidated;
// otherwise it returns the zero value and false.
//
// Under a checking policy the resolve must happen on the goroutine the
// generation is bound to. PolicyPanic treats a mismatch as a contract
// violation; PolicyError makes it one more way to resolve to empty.
func (h Handle[T]) Get() (T, bool) {
	var zero T
	if h.st == nil || h.st.aff.expired() {
		return zero, false
	}
	if err := h.st.aff.Check(); err != nil {
		return zero, false
	}
	box := h.st.c.subject.Load()
	if box == nil {
		return zero, false
	}
	v, ok := box.v.(T)
	if !ok {
		// relabeled under a view the subject does not satisfy
		return zero, false
	}
	return v, true
}

// Must resolves the handle and panics if it is empty. It is the strict
// counterpart to Get for call sites that have already checked.
func (h Handle[T]) Must() T {
	v, ok := h.Get()
	if !ok {
		violation("strict dereference of a dead handle")
	}
	return v
}

// Alive reports whether the handle currently resolves.
func (h Handle[T]) Alive() bool {
	_, ok := h.Get()
	return ok
}

// Reset detaches this handle from its issuance and returns its outstanding
// slot to the factory. Other copies of the handle are unaffected.
func (h *Handle[T]) Reset() {
	if h.st != nil {
		h.st.drop()
		h.st = nil
	}
	h.addr = 0
}

// Addr returns the subject address cached at issuance, or 0 for an empty
// handle. It is stable for the life of the handle and intended as a hash
// key; unlike Get it never consults liveness.
func (h Handle[T]) Addr() uintptr {
	return h.addr
}

// live returns the resolved identity: the cached address while the handle
// resolves, 0 once it does not.
func (h Handle[T]) live() uintptr {
	if _, ok := h.Get(); ok {
		return h.addr
	}
	return 0
}

// Eq reports whether two handles of the same type resolve to the same
// subject. Two handles that no longer resolve are equal. Use Equal to
// compare handles of different static types.
func (h Handle[T]) Eq(other Handle[T]) bool {
	return h.live() == other.live()
}

// Erase strips the handle's static type, producing a neutral view that can
// live in heterogeneous collections. Recover re-specializes it.
func (h Handle[T]) Erase() Erased {
	return Erased{st: h.st, addr: h.addr}
}
