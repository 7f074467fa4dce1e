package engine

import (
	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
)

// HistoryEvent is one recorded execution event on a path.
type HistoryEvent struct {
	Kind     string
	Addr     bytecode.Address
	ExitCode *symbolic.Value
}

// History event kinds.
const (
	EventExit      = "exit"
	EventClassInit = "class_init"
)

// History accumulates per-path events.
type History struct {
	events []HistoryEvent
}

// Add appends an event.
func (h *History) Add(ev HistoryEvent) {
	h.events = append(h.events, ev)
}

// Events returns the recorded events, oldest first.
func (h *History) Events() []HistoryEvent { return h.events }

// ExitCode returns the exit code of the path's exit event, if any.
func (h *History) ExitCode() (symbolic.Value, bool) {
	for i := len(h.events) - 1; i >= 0; i-- {
		if h.events[i].Kind == EventExit && h.events[i].ExitCode != nil {
			return *h.events[i].ExitCode, true
		}
	}
	return symbolic.Value{}, false
}

// Fork returns a copy safe for independent appends.
func (h *History) Fork() *History {
	events := make([]HistoryEvent, len(h.events))
	copy(events, h.events)
	return &History{events: events}
}
