// Package errs defines the error taxonomy shared by every package in this
// module. Construction-time and prover-side failures return a *Error of one
// of the documented kinds; verifiers never construct one for an algebraic
// check failure, they accumulate into verification.Result instead.
package errs

import "fmt"

// Kind is one of the orthogonal error categories a call can fail with.
type Kind int

const (
	// InvalidInput marks an argument that is null, empty, out of range, or
	// in the wrong domain.
	InvalidInput Kind = iota
	// GroupMismatch marks two operands belonging to incompatible groups.
	GroupMismatch
	// ShapeError marks inconsistent vector/matrix dimensions across related
	// inputs.
	ShapeError
	// WitnessInconsistent marks a prover-supplied statement/witness pair
	// that does not satisfy the claimed relation.
	WitnessInconsistent
	// BitLengthTooLarge marks a configured hash whose bit length would bias
	// a Fiat-Shamir challenge modulo q.
	BitLengthTooLarge
	// PreconditionViolated marks a global precondition failure, such as
	// SmallPrimeGroupMembers being called on a group whose generator is
	// not in {2,3,4}.
	PreconditionViolated
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case GroupMismatch:
		return "GroupMismatch"
	case ShapeError:
		return "ShapeError"
	case WitnessInconsistent:
		return "WitnessInconsistent"
	case BitLengthTooLarge:
		return "BitLengthTooLarge"
	case PreconditionViolated:
		return "PreconditionViolated"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by constructors and provers.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of the given kind, so callers can use
// errors.Is-style checks without a sentinel per call site.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
