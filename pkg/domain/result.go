package domain

// ParseResult is the immutable pair of flattened state and transition
// records produced by one parse invocation. Both collections keep strict
// insertion order (depth-first, region-then-substate); the runtime depends
// on that order for deterministic initial-state selection.
type ParseResult struct {
	states      []StateRecord
	transitions []TransitionRecord
}

// NewParseResult wraps the finished collections. Ownership of the slices
// transfers to the result; the parser never touches them again.
func NewParseResult(states []StateRecord, transitions []TransitionRecord) ParseResult {
	return ParseResult{states: states, transitions: transitions}
}

// States returns the flattened state records in document order.
func (r ParseResult) States() []StateRecord {
	return r.states
}

// Transitions returns the transition records in document order.
func (r ParseResult) Transitions() []TransitionRecord {
	return r.transitions
}

// State looks up a state record by name.
func (r ParseResult) State(name string) (StateRecord, bool) {
	for _, s := range r.states {
		if s.Name == name {
			return s, true
		}
	}
	return StateRecord{}, false
}
