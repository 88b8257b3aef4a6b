// Package memory provides an in-memory implementation of the ports model
// interfaces plus a matching session store.
//
// The model builder is the reference backing for the parser's capability
// view: the YAML adapter loads documents into it, and tests use it to
// assemble machines programmatically without touching any file format.
package memory

import "github.com/umlstate/umlstate/pkg/ports"

// Model is the root of an in-memory state machine document.
type Model struct {
	elements []ports.Element
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// PackagedElements returns the top-level elements in insertion order.
func (m *Model) PackagedElements() []ports.Element {
	return m.elements
}

// AddStateMachine appends a state machine element to the model.
func (m *Model) AddStateMachine(name string) *StateMachine {
	sm := &StateMachine{name: name}
	m.elements = append(m.elements, sm)
	return sm
}

// AddElement appends an opaque packaged element (signal declarations,
// data types). The parser skips these when locating the machine.
func (m *Model) AddElement(name string) {
	m.elements = append(m.elements, &element{name: name})
}

// element is a packaged element the parser has no interest in.
type element struct {
	name string
}

func (e *element) Kind() ports.ElementKind { return ports.ElementOther }

// StateMachine is the machine element of a model.
type StateMachine struct {
	name    string
	regions []*Region
}

func (s *StateMachine) Kind() ports.ElementKind { return ports.ElementStateMachine }

// Name returns the machine name.
func (s *StateMachine) Name() string { return s.name }

// Regions returns the machine's top-level regions.
func (s *StateMachine) Regions() []ports.Region {
	return regionPorts(s.regions)
}

// AddRegion appends a top-level region to the machine.
func (s *StateMachine) AddRegion(name string) *Region {
	r := &Region{name: name}
	s.regions = append(s.regions, r)
	return r
}

// Region is a container of vertices and transitions.
type Region struct {
	name        string
	owner       *State // nil for machine-owned regions
	vertices    []*State
	transitions []*Transition
	initial     string
}

// Vertices returns the region's direct child vertices in insertion order.
func (r *Region) Vertices() []ports.Vertex {
	out := make([]ports.Vertex, len(r.vertices))
	for i, v := range r.vertices {
		out[i] = v
	}
	return out
}

// Transitions returns the region's transitions in insertion order.
func (r *Region) Transitions() []ports.Transition {
	out := make([]ports.Transition, len(r.transitions))
	for i, t := range r.transitions {
		out[i] = t
	}
	return out
}

// Owner returns the composite state owning this region, or nil for
// machine-owned regions.
func (r *Region) Owner() ports.Vertex {
	if r.owner == nil {
		return nil
	}
	return r.owner
}

// SetInitial marks the named vertex as the region's initial state.
func (r *Region) SetInitial(name string) {
	r.initial = name
}

// AddState appends a state vertex to the region.
func (r *Region) AddState(name string, opts ...StateOption) *State {
	st := &State{name: name, kind: ports.VertexSimple, container: r}
	for _, opt := range opts {
		opt(st)
	}
	r.vertices = append(r.vertices, st)
	return st
}

// AddPseudostate appends a pseudostate vertex (choice, fork, final...)
// to the region. The parser never emits records for these.
func (r *Region) AddPseudostate(name string) *State {
	st := &State{name: name, kind: ports.VertexPseudostate, container: r}
	r.vertices = append(r.vertices, st)
	return st
}

// AddTransition appends a transition between two vertices of this region.
func (r *Region) AddTransition(source, target *State, triggers ...Trigger) *Transition {
	t := &Transition{source: source, target: target, triggers: triggers}
	r.transitions = append(r.transitions, t)
	return t
}

// State is a state vertex. It becomes composite once it owns a region.
type State struct {
	name      string
	kind      ports.VertexKind
	container *Region
	regions   []*Region
	entry     ports.Behavior
	exit      ports.Behavior
}

// StateOption configures a state at construction time.
type StateOption func(*State)

// WithEntry binds a named activity to the state's entry slot.
func WithEntry(action string) StateOption {
	return func(s *State) { s.entry = Activity(action) }
}

// WithExit binds a named activity to the state's exit slot.
func WithExit(action string) StateOption {
	return func(s *State) { s.exit = Activity(action) }
}

// WithOpaqueEntry fills the entry slot with an unrecognized behavior kind.
// The parser treats such slots as absent.
func WithOpaqueEntry(body string) StateOption {
	return func(s *State) { s.entry = opaque(body) }
}

func (s *State) Name() string            { return s.name }
func (s *State) Kind() ports.VertexKind  { return s.kind }
func (s *State) Container() ports.Region { return s.container }
func (s *State) Entry() ports.Behavior   { return s.entry }
func (s *State) Exit() ports.Behavior    { return s.exit }

// Regions returns the nested regions of a composite state.
func (s *State) Regions() []ports.Region {
	return regionPorts(s.regions)
}

// Initial reports whether this vertex is its region's initial state.
func (s *State) Initial() bool {
	return s.container != nil && s.container.initial == s.name
}

// AddRegion appends a nested region, turning the state composite.
func (s *State) AddRegion(name string) *Region {
	r := &Region{name: name, owner: s}
	s.regions = append(s.regions, r)
	if s.kind == ports.VertexSimple {
		s.kind = ports.VertexComposite
	}
	return r
}

// Activity is a named entry/exit behavior.
type Activity string

func (a Activity) Kind() ports.BehaviorKind { return ports.BehaviorActivity }
func (a Activity) Name() string             { return string(a) }

// opaque is a behavior of a kind the parser does not recognize.
type opaque string

func (o opaque) Kind() ports.BehaviorKind { return ports.BehaviorOpaque }
func (o opaque) Name() string             { return string(o) }

// Transition is a directed edge between two vertices.
type Transition struct {
	source   *State
	target   *State
	triggers []Trigger
}

func (t *Transition) Source() ports.Vertex { return t.source }
func (t *Transition) Target() ports.Vertex { return t.target }

func (t *Transition) Triggers() []ports.Trigger {
	out := make([]ports.Trigger, len(t.triggers))
	for i, tr := range t.triggers {
		out[i] = tr
	}
	return out
}

// Trigger qualifies when a transition may fire.
type Trigger struct {
	event ports.Event
}

func (t Trigger) Event() ports.Event { return t.event }

// OnSignal builds a trigger for a named signal event.
func OnSignal(name string) Trigger {
	return Trigger{event: signalEvent{name: name, named: true}}
}

// OnUnnamedSignal builds a signal-event trigger whose signal is missing.
// The parser skips these: there is no event name to emit.
func OnUnnamedSignal() Trigger {
	return Trigger{event: signalEvent{}}
}

// After builds a time-event trigger (filtered out by the parser).
func After(spec string) Trigger {
	return Trigger{event: plainEvent{kind: ports.EventTime, name: spec}}
}

// OnCall builds a call-event trigger (filtered out by the parser).
func OnCall(op string) Trigger {
	return Trigger{event: plainEvent{kind: ports.EventCall, name: op}}
}

// OnChange builds a change-event trigger (filtered out by the parser).
func OnChange(expr string) Trigger {
	return Trigger{event: plainEvent{kind: ports.EventChange, name: expr}}
}

// Anonymous builds a trigger with no event at all.
func Anonymous() Trigger {
	return Trigger{}
}

type signalEvent struct {
	name  string
	named bool
}

func (e signalEvent) Kind() ports.EventKind { return ports.EventSignal }

func (e signalEvent) Signal() (string, bool) {
	return e.name, e.named
}

type plainEvent struct {
	kind ports.EventKind
	name string
}

func (e plainEvent) Kind() ports.EventKind { return e.kind }

func (e plainEvent) Signal() (string, bool) { return "", false }

func regionPorts(rs []*Region) []ports.Region {
	out := make([]ports.Region, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}
