// Package dto holds the transport-level shapes of umlstate: the YAML model
// document schema and the JSON bodies of the HTTP API.
package dto

// ModelDocument is the root of a YAML model file. It mirrors the packaged
// elements of the abstract model: a list of elements, exactly one of which
// should be a state machine.
type ModelDocument struct {
	Elements []Element `json:"elements" mapstructure:"elements"`
}

// Element is one packaged element. Kind selects the shape; unknown kinds
// are kept so the parser can skip them by type, just like it would with
// any other model backend.
type Element struct {
	Kind    string   `json:"kind" mapstructure:"kind"`
	Name    string   `json:"name" mapstructure:"name"`
	Regions []Region `json:"regions" mapstructure:"regions"`
}

// ElementKindStateMachine is the element kind the parser extracts.
const ElementKindStateMachine = "statemachine"

// Region is one orthogonal container of states and transitions.
type Region struct {
	Name        string       `json:"name" mapstructure:"name"`
	Initial     string       `json:"initial" mapstructure:"initial"`
	States      []State      `json:"states" mapstructure:"states"`
	Transitions []Transition `json:"transitions" mapstructure:"transitions"`
}

// State is a state vertex. Nested regions make it composite.
type State struct {
	Name string `json:"name" mapstructure:"name"`

	// Entry and Exit name activities resolved through the action registry.
	Entry string `json:"entry,omitempty" mapstructure:"entry"`
	Exit  string `json:"exit,omitempty" mapstructure:"exit"`

	// Pseudo marks pseudostate kinds (choice, fork, join, final).
	Pseudo string `json:"pseudo,omitempty" mapstructure:"pseudo"`

	Regions []Region `json:"regions,omitempty" mapstructure:"regions"`
}

// Transition is a directed edge between two named vertices.
type Transition struct {
	Source   string        `json:"source" mapstructure:"source"`
	Target   string        `json:"target" mapstructure:"target"`
	Triggers []TriggerSpec `json:"triggers" mapstructure:"triggers"`
}

// TriggerSpec selects one trigger kind per entry. Exactly one field should
// be set; an entry with none is an anonymous trigger.
type TriggerSpec struct {
	// Signal names the signal event that fires the transition.
	Signal string `json:"signal,omitempty" mapstructure:"signal"`

	// After is a time event delay spec (filtered out by the parser).
	After string `json:"after,omitempty" mapstructure:"after"`

	// Call is a call event operation name (filtered out by the parser).
	Call string `json:"call,omitempty" mapstructure:"call"`

	// Change is a change event expression (filtered out by the parser).
	Change string `json:"change,omitempty" mapstructure:"change"`
}
