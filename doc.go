// package weakref provides self-invalidating weak handles to objects whose
// lifetime is managed elsewhere.
//
// A Handle is a non-owning reference that resolves to its subject until the
// subject is destroyed or its Factory revokes all outstanding handles, after
// which every resolve reports "gone" instead of dangling. Handles are cheap
// to copy, compare by resolved identity, and can be erased to a type-neutral
// view for heterogeneous storage.
//
// Consider a component that registers callbacks with systems it does not
// control. If the component can be torn down while callbacks are still
// queued, a raw pointer captured by the callback dangles. A handle does not:
//
//	type Uploader struct {
//		handles *weakref.Factory[*Uploader]
//		// ...
//	}
//
//	func NewUploader() *Uploader {
//		u := &Uploader{}
//		u.handles = weakref.NewFactory(u)
//		return u
//	}
//
//	func (u *Uploader) Start(net *Network) {
//		h := u.handles.Issue()
//		net.OnReply(func() {
//			if u, ok := h.Get(); ok {
//				u.finish()
//			}
//			// subject gone: drop the reply on the floor
//		})
//	}
//
// Calling u.handles.Invalidate() cuts off every handle issued so far;
// handles issued afterwards resolve normally until the next Invalidate or
// until u.handles.Close() destroys the subject observation entirely.
//
// Handles issued by one Factory generation are bound to the goroutine that
// first resolves one of them. Resolving from a different goroutine is a
// contract violation under the default policy; pass WithPolicy to choose
// between a panic diagnostic, an empty resolution, or no checking at all.
// Detach releases the binding when ownership legitimately moves between
// goroutines.
//
// Types may instead embed Mixin and be constructed through Adopt, which
// returns the strong owning side and enforces at compile time that only
// capability-bearing types issue handles.
package weakref
