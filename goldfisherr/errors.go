// Package goldfisherr defines the single closed error taxonomy shared
// by every GoldFish codec, mirroring the error kinds a reader or
// writer may surface (spec §7): ill-formed input, kind mismatches,
// integer overflow, debug-check misuse, I/O failure, and premature
// end of stream.
//
// Every error value produced by this module wraps one of the sentinel
// Code values below, so callers can classify failures with
// [errors.Is] against the sentinels rather than parsing messages —
// the same contract map1's ERR_* codes give its conformance tests,
// adapted to Go's error-wrapping idiom (bureau's lib packages use the
// same fmt.Errorf("...: %w", err) style throughout).
package goldfisherr

import "fmt"

// Code is one of the six error kinds in the taxonomy. Codes are
// sentinel errors: compare with errors.Is, not string equality.
type Code struct{ name string }

func (c *Code) Error() string { return c.name }

var (
	// IllFormed means input or output violates the wire format.
	IllFormed = &Code{"goldfish: ill_formed"}
	// KindMismatch means the caller viewed a document as the wrong kind.
	KindMismatch = &Code{"goldfish: kind_mismatch"}
	// IntegerOverflow means a value cannot be represented in the requested width.
	IntegerOverflow = &Code{"goldfish: integer_overflow"}
	// Misused means a debug-check sequencing invariant was violated.
	Misused = &Code{"goldfish: library_misused"}
	// IO means the underlying byte source or sink failed.
	IO = &Code{"goldfish: io_error"}
	// EOF means the byte source was exhausted before an item was fully read.
	EOF = &Code{"goldfish: eof"}
)

// wrapped pairs a taxonomy Code with a specific message and, when
// present, the underlying cause (an I/O error, typically).
type wrapped struct {
	code *Code
	msg  string
	err  error
}

func (w *wrapped) Error() string {
	if w.err != nil {
		return fmt.Sprintf("%s: %s: %v", w.code.name, w.msg, w.err)
	}
	if w.msg != "" {
		return fmt.Sprintf("%s: %s", w.code.name, w.msg)
	}
	return w.code.name
}

func (w *wrapped) Is(target error) bool { return target == w.code }
func (w *wrapped) Unwrap() error        { return w.err }

// New builds an error of the given taxonomy code with a formatted message.
func New(code *Code, format string, args ...any) error {
	return &wrapped{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an error of the given taxonomy code around a cause,
// typically a failure from the underlying byte source or sink.
func Wrap(code *Code, msg string, cause error) error {
	return &wrapped{code: code, msg: msg, err: cause}
}
