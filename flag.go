package weakref

import (
	"sync"
	"sync/atomic"
)

// refFlag counts the handles outstanding for one Factory generation. It is
// purely observational: resolution never consults it. The embedded rwmutex
// lets an owner block in wait until the count drains to zero.
type refFlag struct {
	mu    sync.RWMutex
	count int32
}

// acquire records one more outstanding handle and blocks wait calls.
func (f *refFlag) acquire() {
	atomic.AddInt32(&f.count, 1)
	f.mu.RLock()
}

// release records that a handle was dropped and unblocks wait if it was the
// last one. The release side may run on any goroutine, including the
// finalizer goroutine.
func (f *refFlag) release() {
	f.mu.RUnlock()
	atomic.AddInt32(&f.count, -1)
}

// zero returns whether any handles are outstanding.
func (f *refFlag) zero() bool {
	return atomic.LoadInt32(&f.count) == 0
}

// wait blocks until every outstanding handle has been released.
func (f *refFlag) wait() {
	f.mu.Lock()
	f.mu.Unlock()
}
