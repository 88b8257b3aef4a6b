// Package parser flattens a hierarchical state machine model into the
// ordered state and transition records the runtime consumes.
package parser

import (
	"github.com/umlstate/umlstate/pkg/domain"
	"github.com/umlstate/umlstate/pkg/ports"
)

// Parser walks a model's regions and produces a domain.ParseResult.
// It depends only on the narrow ports view of the model, never on a
// concrete model library or file format.
type Parser struct {
	model    ports.Model
	resolver ports.ActionResolver
}

// New creates a parser over a loaded model. The resolver binds entry/exit
// behavior names to actions; pass nil to skip action binding entirely.
func New(model ports.Model, resolver ports.ActionResolver) *Parser {
	return &Parser{model: model, resolver: resolver}
}

// accumulator holds the working collections of one Parse call. It is local
// to the call, so a Parser can be reused and concurrent parses over
// distinct models are independent.
type accumulator struct {
	states      []domain.StateRecord
	transitions []domain.TransitionRecord
}

// Parse locates the model's single state machine element and flattens it.
// Returns domain.ErrMachineNotFound when no machine element exists; no
// partial result is produced in that case.
//
// Output order is strict document order: all states of a region first,
// then each composite state's nested regions, then the region's
// transitions. The runtime relies on this for deterministic initial-state
// selection.
func (p *Parser) Parse() (domain.ParseResult, error) {
	machine, ok := findStateMachine(p.model)
	if !ok {
		return domain.ParseResult{}, domain.ErrMachineNotFound
	}

	acc := &accumulator{}
	for _, region := range machine.Regions() {
		p.walkRegion(region, acc)
	}
	return domain.NewParseResult(acc.states, acc.transitions), nil
}

// findStateMachine extracts the single machine element from the model's
// packaged elements. Exactly one is expected; the first wins.
func findStateMachine(model ports.Model) (ports.StateMachine, bool) {
	for _, el := range model.PackagedElements() {
		if el.Kind() != ports.ElementStateMachine {
			continue
		}
		if sm, ok := el.(ports.StateMachine); ok {
			return sm, true
		}
	}
	return nil, false
}

func (p *Parser) walkRegion(region ports.Region, acc *accumulator) {
	// Build states. Pseudostates (choice, fork, final...) are not emitted;
	// only state vertices carry hierarchy and lifecycle actions.
	for _, vertex := range region.Vertices() {
		if !vertex.Kind().IsState() {
			continue
		}

		record := domain.StateRecord{
			Parent:  parentName(vertex),
			Name:    vertex.Name(),
			Initial: vertex.Initial(),
		}
		p.bindActions(&record, vertex)
		acc.states = append(acc.states, record)

		// Recurse into nested regions after the owning state's own record.
		for _, sub := range vertex.Regions() {
			p.walkRegion(sub, acc)
		}
	}

	// Build transitions. One record per signal trigger; time, call, change
	// and anonymous triggers are filtered out on purpose.
	for _, transition := range region.Transitions() {
		for _, trigger := range transition.Triggers() {
			event := trigger.Event()
			if event == nil || event.Kind() != ports.EventSignal {
				continue
			}
			signal, ok := event.Signal()
			if !ok {
				continue
			}
			// Endpoint names are forwarded as the model reports them,
			// without validation. A dangling transition surfaces as an
			// empty name for the consumer to detect.
			acc.transitions = append(acc.transitions, domain.TransitionRecord{
				Source: transition.Source().Name(),
				Target: transition.Target().Name(),
				Event:  signal,
			})
		}
	}
}

// parentName resolves the name of the immediately enclosing composite
// state by inspecting the owner of the vertex's containing region.
// Top-level states (machine-owned regions) have no parent.
func parentName(vertex ports.Vertex) string {
	container := vertex.Container()
	if container == nil {
		return ""
	}
	owner := container.Owner()
	if owner == nil || !owner.Kind().IsState() {
		return ""
	}
	return owner.Name()
}

// bindActions resolves the vertex's entry and exit behavior names through
// the resolver. Binding is best-effort: an unrecognized behavior kind or
// an unresolvable name leaves the slot empty, it never fails the parse.
func (p *Parser) bindActions(record *domain.StateRecord, vertex ports.Vertex) {
	if p.resolver == nil {
		return
	}
	if name, ok := activityName(vertex.Entry()); ok {
		if action, ok := p.resolver.Resolve(name); ok {
			record.EntryActions = []domain.Action{action}
		}
	}
	if name, ok := activityName(vertex.Exit()); ok {
		if action, ok := p.resolver.Resolve(name); ok {
			record.ExitActions = []domain.Action{action}
		}
	}
}

func activityName(b ports.Behavior) (string, bool) {
	if b == nil || b.Kind() != ports.BehaviorActivity {
		return "", false
	}
	return b.Name(), true
}
