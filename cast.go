package weakref

import "reflect"

// This file is the conversion layer between handle types. Conversions never
// copy or touch the subject; they relabel the same issuance under another
// static view. Four shapes exist: same type (passthrough, plain
// assignment), concrete-to-related (As / UnsafeAs below), and erasure in
// either direction (Handle.Erase / Recover), which drops or restores the
// static label without inspecting the subject.

// As converts a handle to the static view To, verifying that the subject
// actually satisfies To at the moment of conversion. It returns an empty
// handle and false when the subject does not satisfy To or when the handle
// no longer resolves at all.
//
// This is the checked way to move between views of one subject: concrete
// pointer to interface, interface to concrete pointer, or between two
// interfaces the subject implements.
func As[To, From any](h Handle[From]) (Handle[To], bool) {
	if h.st == nil || h.st.aff.expired() {
		return Handle[To]{}, false
	}
	box := h.st.c.subject.Load()
	if box == nil {
		return Handle[To]{}, false
	}
	if _, ok := box.v.(To); !ok {
		return Handle[To]{}, false
	}
	return Handle[To]{st: h.st, addr: h.addr}, true
}

// UnsafeAs relabels a handle under the static view To without verifying
// anything. It is the escape hatch for call sites that have proven the
// relationship themselves and cannot afford the check. The trust only
// extends to the label: resolving a mislabeled handle yields empty, never
// a mistyped value.
func UnsafeAs[To, From any](h Handle[From]) Handle[To] {
	return Handle[To]{st: h.st, addr: h.addr}
}

// Equal compares two handles of possibly different static types.
//
// Handles of the same type compare by resolved identity, with two dead
// handles equal. Handles whose types are statically related, meaning one is
// an interface the other's type satisfies, compare the same way. Handles of
// unrelated types are never equal, even if their subjects share an address.
func Equal[T, U any](a Handle[T], b Handle[U]) bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	u := reflect.TypeOf((*U)(nil)).Elem()
	if t != u && !related(t, u) {
		return false
	}
	return a.live() == b.live()
}

// related reports whether one static type is an interface satisfied by the
// other. This is the only cross-type relation the conversion layer honors.
func related(t, u reflect.Type) bool {
	if t.Kind() == reflect.Interface && u.Implements(t) {
		return true
	}
	if u.Kind() == reflect.Interface && t.Implements(u) {
		return true
	}
	return false
}
