// Package lanczoserr defines the sentinel error set shared by every
// lanczos16 package, grounded on the teacher's matrix/errors.go and
// builder/errors.go convention: one file of package-level sentinels,
// each returned directly or wrapped with fmt.Errorf("...: %w", ...) at a
// call boundary, always checked via errors.Is — never a bespoke error
// type per package.
package lanczoserr

import "errors"

var (
	// ErrDimensionMismatch indicates incompatible matrix/vector shapes
	// were passed to an operation that requires equal dimensions.
	ErrDimensionMismatch = errors.New("lanczos16: dimension mismatch")

	// ErrInvalidWidth indicates a block width outside {64,128,256,512}.
	ErrInvalidWidth = errors.New("lanczos16: invalid block width")

	// ErrIndexOutOfRange indicates a row/column/bit index fell outside
	// the valid range for the receiver.
	ErrIndexOutOfRange = errors.New("lanczos16: index out of range")
)

// DebugAssert panics with msg if cond is false. Callers gate the call on
// their own debug flag (e.g. Arg.Debug) rather than this function
// checking one itself, since the flag that matters differs per workspace
// instance — this is only the shared panic primitive every package's
// debug-only invariant check uses, grounded on the
// rcm_gf16_is_symmetric-style assertions in
// original_source/src/mrs/block_lanczos_gf16.c.
func DebugAssert(cond bool, msg string) {
	if !cond {
		panic("lanczos16: debug assertion failed: " + msg)
	}
}
