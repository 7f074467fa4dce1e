package engine

// StateOption is a per-state behavior toggle.
type StateOption string

const (
	// OptTrackDependencies enables fine-grained value-provenance
	// tracking. Discarded when execution is ending.
	OptTrackDependencies StateOption = "track-dependencies"

	// OptAutoReferences enables automatic reference bookkeeping.
	// Discarded when execution is ending.
	OptAutoReferences StateOption = "auto-references"
)

// OptionSet is the set of options active on one state.
type OptionSet map[StateOption]struct{}

// DefaultOptions returns the options a fresh state starts with.
func DefaultOptions() OptionSet {
	return OptionSet{
		OptTrackDependencies: {},
		OptAutoReferences:    {},
	}
}

// Has reports whether opt is active.
func (s OptionSet) Has(opt StateOption) bool {
	_, ok := s[opt]
	return ok
}

// Discard removes opt from the set.
func (s OptionSet) Discard(opt StateOption) {
	delete(s, opt)
}

// Fork returns an independent copy.
func (s OptionSet) Fork() OptionSet {
	cp := make(OptionSet, len(s))
	for k := range s {
		cp[k] = struct{}{}
	}
	return cp
}
