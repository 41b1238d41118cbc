// Package errors defines the build's error taxonomy: configuration errors,
// I/O errors, and internal invariant violations (spec §7), plus a
// PhaseError wrapper that attaches the failing phase name so the CLI and
// logger can report which step broke without inspecting error strings.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a fatal configuration error detected before
	// any I/O takes place (e.g. threads < 2).
	ErrConfiguration = errors.New("configuration error")
	// ErrIO marks a fatal read/write/remove failure.
	ErrIO = errors.New("i/o error")
	// ErrInvariant marks an internal invariant violation — a bug, not a
	// recoverable condition (e.g. a batch term missing from the global
	// dictionary).
	ErrInvariant = errors.New("internal invariant violation")
)

// Phase names used across the build, matching spec §7's phase taxonomy.
const (
	PhaseTokenize = "tokenize"
	PhaseMerge    = "merge"
	PhaseRemap    = "remap"
	PhaseConcat   = "concat"
	PhaseCleanup  = "cleanup"
)

// PhaseError reports which phase of the build failed and why. Batch is -1
// when the error isn't attributable to a specific batch.
type PhaseError struct {
	Phase string
	Batch int64
	Err   error
}

func (e *PhaseError) Error() string {
	if e.Batch >= 0 {
		return fmt.Sprintf("[%s] batch %d: %s", e.Phase, e.Batch, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// Wrap attaches phase context to err. It returns nil if err is nil.
func Wrap(phase string, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: phase, Batch: -1, Err: err}
}

// WrapBatch attaches phase and batch-number context to err.
func WrapBatch(phase string, batch int64, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: phase, Batch: batch, Err: err}
}

// Configf builds a configuration error with a formatted message.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// IOf wraps err as an I/O error with additional context.
func IOf(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, fmt.Sprintf(format, args...), err)
}

// Invariantf builds an internal-invariant error with a formatted message.
func Invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

// ExitCode maps an error to a process exit code: 2 for configuration
// errors, 3 for internal invariant violations, 1 for anything else
// (including I/O errors), 0 for nil. cmd/fwdindex uses this in place of
// the teacher's HTTP-status dispatch, which has no equivalent here.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return 2
	case errors.Is(err, ErrInvariant):
		return 3
	default:
		return 1
	}
}
