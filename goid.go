package weakref

import (
	"fmt"
	"runtime"
)

// goid returns the id of the calling goroutine.
//
// The runtime does not expose goroutine ids on purpose, but the stack header
// has carried a stable "goroutine N [state]:" prefix since the beginning and
// is cheap enough to parse for a checked-build-style affinity guard.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// "goroutine 123 [running]:\n"
	var id uint64
	_, _ = fmt.Sscanf(string(buf[:n]), "goroutine %d ", &id)
	return id
}
