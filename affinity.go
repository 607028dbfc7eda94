package weakref

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Affinity pins all resolves of the handles issued under it to a single
// goroutine. It starts unbound, binds to whichever goroutine checks it
// first, and stays bound until Detach unbinds it again.
//
// A Factory owns one Affinity per generation; handles reference it weakly
// in the sense that retiring the generation expires every such reference at
// once. An Affinity can also be used on its own to guard arbitrary state.
type Affinity struct {
	mu      sync.Mutex
	bound   uint64 // goroutine id, 0 when unbound
	policy  Policy
	retired atomic.Bool
}

// NewAffinity returns an unbound Affinity with the given mismatch policy.
func NewAffinity(policy Policy) *Affinity {
	return &Affinity{policy: policy}
}

// Check verifies that the calling goroutine is the one this Affinity is
// bound to, binding it first if it is still unbound.
//
// On a mismatch the reaction depends on the policy: PolicyPanic panics with
// a diagnostic, PolicyError returns an error wrapping ErrSequence, and
// PolicyOff never reaches here because checking is skipped entirely.
func (a *Affinity) Check() error {
	if a.policy == PolicyOff {
		return nil
	}

	a.mu.Lock()
	id := goid()
	if a.bound == 0 {
		a.bound = id
		a.mu.Unlock()
		return nil
	}
	bound := a.bound
	a.mu.Unlock()

	if bound == id {
		return nil
	}
	if a.policy == PolicyPanic {
		violation(
			"handle bound to goroutine %d resolved on goroutine %d; "+
				"call Detach before moving ownership between goroutines",
			bound, id,
		)
	}
	return fmt.Errorf("%w: bound to goroutine %d, called on %d", ErrSequence, bound, id)
}

// Detach discards the recorded goroutine so that the next Check rebinds the
// Affinity to its caller. It is ignored under PolicyOff.
func (a *Affinity) Detach() {
	if a.policy == PolicyOff {
		return
	}
	a.mu.Lock()
	a.bound = 0
	a.mu.Unlock()
}

// retire expires the Affinity. Handles holding it resolve to empty from the
// moment this returns; the state is permanent.
func (a *Affinity) retire() {
	a.retired.Store(true)
}

// expired reports whether the generation owning this Affinity was retired.
func (a *Affinity) expired() bool {
	return a.retired.Load()
}
