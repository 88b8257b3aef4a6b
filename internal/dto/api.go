package dto

// SessionResponse is the JSON shape of one machine session.
type SessionResponse struct {
	ID      string         `json:"id"`
	Current string         `json:"current"`
	Status  string         `json:"status"`
	Vars    map[string]any `json:"vars,omitempty"`
	History []string       `json:"history,omitempty"`
}

// SessionListResponse lists the known session IDs.
type SessionListResponse struct {
	Sessions []string `json:"sessions"`
}

// EventRequest asks a session to consume one signal event.
type EventRequest struct {
	Event string `json:"event"`
}

// StateResponse is one flattened state record.
type StateResponse struct {
	Parent  string `json:"parent,omitempty"`
	Name    string `json:"name"`
	Initial bool   `json:"initial"`
}

// TransitionResponse is one flattened transition record.
type TransitionResponse struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Event  string `json:"event"`
}

// MachineResponse describes the parsed machine.
type MachineResponse struct {
	States      []StateResponse      `json:"states"`
	Transitions []TransitionResponse `json:"transitions"`
}

// ErrorResponse carries an API error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
