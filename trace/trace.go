// Package trace records engine telemetry events. The engine emits one
// event per noteworthy transition (calls, exits, degraded paths); the
// SQLite-backed Store persists them for offline inspection, and Nop
// discards them.
package trace

// Event kinds emitted by the engine.
const (
	KindCall    = "call"
	KindBranch  = "branch"
	KindReturn  = "return"
	KindExit    = "exit"
	KindSkipped = "skip_statement"
	KindEmpty   = "empty_block"

	// KindUnresolvedReturn marks the synthetic void return emitted when
	// an invoke target was never loaded. It is recorded distinctly from
	// genuine returns so loader gaps stay visible in telemetry.
	KindUnresolvedReturn = "unresolved_return"

	// KindClassInit marks a class initialization triggered as a side
	// effect of native call-site construction.
	KindClassInit = "class_init"
)

// Event is one telemetry record.
type Event struct {
	StateID uint64
	Kind    string
	Addr    string
	Detail  map[string]any
}

// Recorder receives engine telemetry events.
type Recorder interface {
	Record(ev Event) error
	Close() error
}

// Nop discards all events.
type Nop struct{}

func (Nop) Record(Event) error { return nil }
func (Nop) Close() error       { return nil }
