package domain

// SessionStatus defines the current mode of a running machine session.
type SessionStatus string

const (
	StatusActive     SessionStatus = "active"     // Normal operation
	StatusTerminated SessionStatus = "terminated" // Final state reached
)

// Snapshot captures the runtime state of one machine session. It is what
// gets persisted between events; the machine itself is rebuilt from the
// ParseResult on load.
type Snapshot struct {
	// Current is the name of the active state.
	Current string `json:"current"`

	// Status indicates if the session is still accepting events.
	Status SessionStatus `json:"status"`

	// Vars holds the extended-state variables guards evaluate against.
	Vars map[string]any `json:"vars"`

	// History tracks the path of visited state names, in order.
	History []string `json:"history"`
}

// NewSnapshot creates a clean snapshot positioned at a specific state.
func NewSnapshot(initial string) *Snapshot {
	return &Snapshot{
		Current: initial,
		Status:  StatusActive,
		Vars:    make(map[string]any),
		History: []string{initial},
	}
}
