package bucket

import "fmt"

// InvalidOperationError is the distinguished precondition-violation signal
// raised by Peek-style operations called on an empty deque.
//
// It is recovered via panic/recover at the call boundary rather than
// returned as an error, matching the one place in this package's contract
// that signals caller misuse instead of an expected negative outcome.
//
// Recovery: callers that cannot guarantee non-emptiness should check
// [FixedSizeDeque.Count] (or catch the panic) before calling a Peek method.
type InvalidOperationError struct {
	Op  string
	Msg string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("bucket: %s: %s", e.Op, e.Msg)
}

func panicEmpty(op string) {
	panic(&InvalidOperationError{Op: op, Msg: "deque is empty"})
}
