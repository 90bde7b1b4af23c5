package importer

import "fmt"

// InvariantViolation is the "frontend invariants violated" error class
// from spec.md §7: lifetime-parameter count mismatches, missing translated
// identifiers for regular parameters, mangling failures. These are
// programmer-error assertions; the caller is expected to let them abort
// the run rather than recover from them.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("importer invariant violated: %s", e.Message)
}

func invariantf(format string, args ...interface{}) error {
	return &InvariantViolation{Message: fmt.Sprintf(format, args...)}
}

// panicInvariant aborts the run with an InvariantViolation, per spec.md §7's
// "these are programmer-error assertions and abort the run."
func panicInvariant(format string, args ...interface{}) {
	panic(invariantf(format, args...))
}
