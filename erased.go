package weakref

// Erased is the type-neutral view of a handle. It shares the issuance of
// the handle it was erased from, resolves to the subject address rather
// than a typed value, and orders by that address so erased handles can key
// sorted or hashed collections regardless of their subjects' types.
//
// The zero value is an empty view.
type Erased struct {
	st   *issuance
	addr uintptr
}

// Get resolves the view. It returns the subject's address and true under
// exactly the conditions the originating handle would resolve, and 0 and
// false otherwise.
func (e Erased) Get() (uintptr, bool) {
	if e.st == nil || e.st.aff.expired() {
		return 0, false
	}
	if err := e.st.aff.Check(); err != nil {
		return 0, false
	}
	if e.st.c.subject.Load() == nil {
		return 0, false
	}
	return e.addr, true
}

// Alive reports whether the view currently resolves.
func (e Erased) Alive() bool {
	_, ok := e.Get()
	return ok
}

// Reset detaches this view from its issuance and returns its outstanding
// slot to the factory.
func (e *Erased) Reset() {
	if e.st != nil {
		e.st.drop()
		e.st = nil
	}
	e.addr = 0
}

// Addr returns the address cached at issuance, or 0 for an empty view.
// It never consults liveness; use it as a hash key.
func (e Erased) Addr() uintptr {
	return e.addr
}

// Eq reports whether two views resolve to the same subject. Two views that
// no longer resolve are equal.
func (e Erased) Eq(other Erased) bool {
	return e.live() == other.live()
}

// Less orders views by their cached addresses.
func (e Erased) Less(other Erased) bool {
	return e.addr < other.addr
}

func (e Erased) live() uintptr {
	if _, ok := e.Get(); ok {
		return e.addr
	}
	return 0
}

// Recover re-specializes an erased view under the static type T. The label
// is trusted at conversion time, mirroring Erase; resolution re-checks the
// subject's dynamic type, so a view recovered under a type the subject does
// not satisfy resolves to empty rather than to a mistyped value.
func Recover[T any](e Erased) Handle[T] {
	return Handle[T]{st: e.st, addr: e.addr}
}
