package domain

// TransitionRecord represents one directed, event-triggered transition.
// One record is emitted per (transition, signal trigger) pair: a model
// transition carrying several signal triggers fans out into several records
// sharing the same endpoints.
type TransitionRecord struct {
	// Source and Target are the endpoint state names as the model reports
	// them. They are forwarded without validation; a malformed model may
	// yield an empty name here and it is the consumer's job to notice.
	Source string `json:"source"`
	Target string `json:"target"`

	// Event is the name of the signal that triggers this transition.
	Event string `json:"event"`
}
