package engine

import "errors"

var (
	// ErrIncorrectLocation is returned when control flow would run past
	// the end of a method with no further block. Always fatal: it
	// signals a lifting defect or a bad translator jump target.
	ErrIncorrectLocation = errors.New("control flow ran past the end of a method")

	// ErrUntranslatable marks a statement the translator cannot turn
	// into a structured operation. Soft by default: the dispatcher logs
	// and skips, unless strict translation is enabled.
	ErrUntranslatable = errors.New("statement cannot be translated")

	// ErrNoForeignOS is returned when a native invoke is reached but no
	// foreign calling-convention adapter was configured.
	ErrNoForeignOS = errors.New("no foreign calling convention configured")

	// ErrNotNativeCall is returned when a native-return operation is
	// applied to a state that carries no pending foreign call.
	ErrNotNativeCall = errors.New("state has no pending native call")
)
