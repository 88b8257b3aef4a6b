package ports

// ElementKind discriminates the packaged elements of a model. The parser
// only cares about state machines; everything else (signals, data types)
// is opaque to it.
type ElementKind int

const (
	ElementOther ElementKind = iota
	ElementStateMachine
)

// VertexKind discriminates the nodes of a region's transition graph.
// The parser emits records for states only; pseudostates (choice, fork,
// join, final) belong to a different concern and are skipped.
type VertexKind int

const (
	VertexSimple VertexKind = iota
	VertexComposite
	VertexPseudostate
)

// IsState reports whether the kind is a simple or composite state.
func (k VertexKind) IsState() bool {
	return k == VertexSimple || k == VertexComposite
}

// EventKind discriminates trigger events. Only signal events qualify for
// transition records; the other kinds are recognized solely so they can be
// filtered deliberately rather than by accident.
type EventKind int

const (
	EventSignal EventKind = iota
	EventTime
	EventCall
	EventChange
)

// BehaviorKind discriminates entry/exit behavior slots. Only named
// activities bind to actions; anything else is treated as absent.
type BehaviorKind int

const (
	BehaviorActivity BehaviorKind = iota
	BehaviorOpaque
)

// Model is the root of a loaded state machine document.
type Model interface {
	// PackagedElements returns the top-level elements in document order.
	PackagedElements() []Element
}

// Element is one top-level packaged element of a model.
type Element interface {
	Kind() ElementKind
}

// StateMachine is the single machine element the parser expects to find.
type StateMachine interface {
	Element
	// Regions returns the machine's top-level regions in document order.
	Regions() []Region
}

// Region is a container of vertices and transitions representing one
// orthogonal part of a state machine or composite state.
type Region interface {
	// Vertices returns the region's direct child vertices in document order.
	Vertices() []Vertex

	// Transitions returns the transitions owned by this region in
	// document order.
	Transitions() []Transition

	// Owner returns the state owning this region, or nil when the region
	// belongs to the state machine itself. Used for parent resolution.
	Owner() Vertex
}

// Vertex is a node in a region's transition graph.
type Vertex interface {
	// Name returns the vertex identifier. May be empty on malformed
	// models; the parser forwards it as-is.
	Name() string

	Kind() VertexKind

	// Container returns the region this vertex lives in.
	Container() Region

	// Regions returns the nested regions of a composite state, in
	// document order. Empty for simple states and pseudostates.
	Regions() []Region

	// Entry and Exit return the behavior bound to the respective slot,
	// or nil when the slot is empty.
	Entry() Behavior
	Exit() Behavior

	// Initial reports whether this vertex is the designated initial
	// vertex of its containing region.
	Initial() bool
}

// Behavior is an entry or exit behavior slot of a state.
type Behavior interface {
	Kind() BehaviorKind
	// Name is the action identifier handed to the ActionResolver.
	Name() string
}

// Transition is a directed edge between two vertices.
type Transition interface {
	Source() Vertex
	Target() Vertex
	// Triggers returns the transition's triggers in document order.
	Triggers() []Trigger
}

// Trigger qualifies when a transition may fire.
type Trigger interface {
	// Event returns the trigger's event, or nil for anonymous triggers.
	Event() Event
}

// Event is the occurrence a trigger reacts to.
type Event interface {
	Kind() EventKind
	// Signal returns the signal name for EventSignal events. ok is false
	// when the event carries no signal at all.
	Signal() (name string, ok bool)
}
