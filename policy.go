package weakref

import (
	"errors"
	"fmt"
)

// Policy selects how an Affinity responds when a handle is resolved on a
// goroutine other than the one it is bound to. It is fixed at construction
// so that both behaviors stay testable in a single binary.
type Policy uint8

const (
	// PolicyPanic treats a wrong-goroutine resolve as an unrecoverable
	// contract violation and panics with a diagnostic. This is the default.
	PolicyPanic Policy = iota

	// PolicyError makes Check return an error wrapping ErrSequence; a
	// resolve on the wrong goroutine yields an empty result.
	PolicyError

	// PolicyOff disables checking entirely. Check always succeeds and
	// Detach is ignored.
	PolicyOff
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyPanic:
		return "panic"
	case PolicyError:
		return "error"
	case PolicyOff:
		return "off"
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

// ErrSequence is wrapped by the error returned from Affinity.Check when the
// calling goroutine does not match the bound one.
var ErrSequence = errors.New("weakref: wrong goroutine")

// violation logs and raises an unrecoverable contract violation.
func violation(format string, args ...any) {
	msg := "weakref: contract violation: " + fmt.Sprintf(format, args...)
	Logger().Error(msg)
	panic(msg)
}
