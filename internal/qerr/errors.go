// Package qerr defines the sentinel errors shared by the simulation engine.
//
// Engine packages wrap exactly one of these with fmt.Errorf("%w: ...") so
// callers can match the failure class with errors.Is while still getting the
// operand shapes or indices in the message.
package qerr

import "errors"

var (
	// ErrDimension indicates incompatible operand shapes for add, subtract,
	// multiply or a matrix-vector product.
	ErrDimension = errors.New("qsim: dimension mismatch")

	// ErrIndex indicates an amplitude or matrix element access out of bounds.
	ErrIndex = errors.New("qsim: index out of range")

	// ErrInvalidArgument covers malformed constructor input: an amplitude list
	// whose length is not a power of two, a bit that is neither 0 nor 1, or a
	// named state that does not exist for the requested qubit count.
	ErrInvalidArgument = errors.New("qsim: invalid argument")

	// ErrInvalidTarget indicates a qubit index outside [0, n) or a repeated
	// index where distinct qubits are required.
	ErrInvalidTarget = errors.New("qsim: invalid target qubit")

	// ErrResourceExhausted is returned instead of attempting an allocation that
	// the dense representation cannot hold.
	ErrResourceExhausted = errors.New("qsim: qubit count exceeds dense representation limit")
)
