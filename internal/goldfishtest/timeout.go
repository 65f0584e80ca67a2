// Package goldfishtest holds small test-only helpers shared across this
// module's _test.go files. It is internal: nothing outside this module
// may import it.
package goldfishtest

import (
	"testing"
	"time"
)

// RequireReceive reads one value from ch within timeout, or fails the
// test. It is a hang guard for tests that drive a codec over an
// io.Pipe (a real blocking Source/Sink rather than a bytes.Buffer): a
// sequencing bug that makes a reader block forever on the pipe fails
// the test loudly instead of hanging the whole suite. No test in this
// module calls it at present.
func RequireReceive[T any](t *testing.T, ch <-chan T, timeout time.Duration, what string) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("%s: channel closed without a value", what)
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("%s: timed out after %v", what, timeout)
	}
	panic("unreachable")
}
