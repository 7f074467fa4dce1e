// Package engine implements the Javelin symbolic execution core: it
// walks one basic block at a time, interprets each statement's control
// effect, and produces the set of possible successor execution states.
// It also manages the call stack threading execution across method
// invocations, including the bridge into a foreign calling convention
// and back.
package engine

import (
	"github.com/tliron/commonlog"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/trace"
)

var log = commonlog.GetLogger("javelin.engine")

// Engine processes execution states against a loaded program. An
// Engine is stateless apart from its hook cache and safe for
// concurrent Process calls on independent states.
type Engine struct {
	prog     *bytecode.Program
	os       OS
	hooks    *hookCache
	recorder trace.Recorder
	strict   bool
	wordBits uint
}

// Option configures an Engine.
type Option func(*Engine)

// WithOS installs the foreign calling-convention adapter.
func WithOS(os OS) Option {
	return func(e *Engine) { e.os = os }
}

// WithHooks installs the built-in procedure registry.
func WithHooks(r Registry) Option {
	return func(e *Engine) { e.hooks = newHookCache(r) }
}

// WithRecorder installs a telemetry recorder.
func WithRecorder(r trace.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithStrictTranslation makes untranslatable statements fatal instead
// of logged-and-skipped.
func WithStrictTranslation(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// WithWordBits sets the machine word width used for exit codes and
// reference-sized values.
func WithWordBits(bits uint) Option {
	return func(e *Engine) { e.wordBits = bits }
}

// New returns an engine over the given program.
func New(prog *bytecode.Program, opts ...Option) *Engine {
	e := &Engine{
		prog:     prog,
		os:       noOS{},
		hooks:    newHookCache(nil),
		recorder: trace.Nop{},
		wordBits: 64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Program returns the loaded program the engine executes.
func (e *Engine) Program() *bytecode.Program { return e.prog }

// NewEntryState returns a fresh state positioned at the entry of the
// given method.
func (e *Engine) NewEntryState(method bytecode.MethodKey) *State {
	return NewState(bytecode.EntryAddress(method))
}

// record emits a telemetry event; recorder failures are logged, never
// propagated into dispatch.
func (e *Engine) record(state *State, kind string, detail map[string]any) {
	err := e.recorder.Record(trace.Event{
		StateID: state.ID,
		Kind:    kind,
		Addr:    state.Addr.String(),
		Detail:  detail,
	})
	if err != nil {
		log.Warningf("dropping telemetry event %s: %v", kind, err)
	}
}
