package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umlstate/umlstate/internal/parser"
	"github.com/umlstate/umlstate/pkg/adapters/memory"
	"github.com/umlstate/umlstate/pkg/domain"
	"github.com/umlstate/umlstate/pkg/ports"
)

// mapResolver implements ports.ActionResolver for testing.
type mapResolver map[string]domain.Action

func (m mapResolver) Resolve(id string) (domain.Action, bool) {
	a, ok := m[id]
	return a, ok
}

func noopAction(ctx context.Context, vars map[string]any) error { return nil }

func stateNames(records []domain.StateRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

func TestParse_MissingMachine(t *testing.T) {
	model := memory.NewModel()
	model.AddElement("just-a-signal")

	_, err := parser.New(model, nil).Parse()
	assert.True(t, errors.Is(err, domain.ErrMachineNotFound))
}

func TestParse_EndToEnd(t *testing.T) {
	// S1 (initial) --GO--> S2
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	s1 := region.AddState("S1")
	s2 := region.AddState("S2")
	region.SetInitial("S1")
	region.AddTransition(s1, s2, memory.OnSignal("GO"))

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)

	states := result.States()
	require.Len(t, states, 2)
	assert.Equal(t, "S1", states[0].Name)
	assert.True(t, states[0].Initial)
	assert.Equal(t, "S2", states[1].Name)
	assert.False(t, states[1].Initial)

	transitions := result.Transitions()
	require.Len(t, transitions, 1)
	assert.Equal(t, domain.TransitionRecord{Source: "S1", Target: "S2", Event: "GO"}, transitions[0])
}

func TestParse_NestedHierarchy(t *testing.T) {
	// Composite P contains region R with simple state C.
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	p := region.AddState("P")
	p.AddRegion("R").AddState("C")

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)

	pRec, ok := result.State("P")
	require.True(t, ok)
	assert.True(t, pRec.TopLevel())

	cRec, ok := result.State("C")
	require.True(t, ok)
	assert.Equal(t, "P", cRec.Parent)
}

func TestParse_Completeness_DeepNesting(t *testing.T) {
	// A > B > C, three levels deep. Every state gets exactly one record
	// with the nearest enclosing composite as parent.
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("top")
	a := region.AddState("A")
	inner := a.AddRegion("inner")
	b := inner.AddState("B")
	b.AddRegion("innermost").AddState("C")

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B", "C"}, stateNames(result.States()))
	assert.Equal(t, "", result.States()[0].Parent)
	assert.Equal(t, "A", result.States()[1].Parent)
	assert.Equal(t, "B", result.States()[2].Parent)
}

func TestParse_OrderPreservation(t *testing.T) {
	// Sibling regions R1 (A, B) then R2 (C): document order, never
	// reordered by name or type.
	model := memory.NewModel()
	machine := model.AddStateMachine("m")
	r1 := machine.AddRegion("R1")
	r1.AddState("B")
	r1.AddState("A")
	machine.AddRegion("R2").AddState("C")

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, stateNames(result.States()))
}

func TestParse_TransitionFanOut(t *testing.T) {
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	s1 := region.AddState("S1")
	s2 := region.AddState("S2")
	region.AddTransition(s1, s2, memory.OnSignal("GO"), memory.OnSignal("SKIP"))
	// A transition with no qualifying trigger emits nothing.
	region.AddTransition(s2, s1, memory.Anonymous())

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)

	transitions := result.Transitions()
	require.Len(t, transitions, 2)
	assert.Equal(t, "GO", transitions[0].Event)
	assert.Equal(t, "SKIP", transitions[1].Event)
	for _, tr := range transitions {
		assert.Equal(t, "S1", tr.Source)
		assert.Equal(t, "S2", tr.Target)
	}
}

func TestParse_TriggerFiltering(t *testing.T) {
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	s1 := region.AddState("S1")
	s2 := region.AddState("S2")
	region.AddTransition(s1, s2, memory.After("5s"))
	region.AddTransition(s1, s2, memory.OnCall("doWork"))
	region.AddTransition(s1, s2, memory.OnChange("x > 1"))
	// Signal event without a signal: recognized kind, nothing to emit.
	region.AddTransition(s1, s2, memory.OnUnnamedSignal())

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)
	assert.Empty(t, result.Transitions())
}

func TestParse_PseudostatesSkipped(t *testing.T) {
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	region.AddState("S1")
	choice := region.AddPseudostate("choice1")
	s2 := region.AddState("S2")
	// Transitions touching pseudostates still forward endpoint names.
	region.AddTransition(choice, s2, memory.OnSignal("PICK"))

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S2"}, stateNames(result.States()))
	require.Len(t, result.Transitions(), 1)
	assert.Equal(t, "choice1", result.Transitions()[0].Source)
}

func TestParse_ActionBinding(t *testing.T) {
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	region.AddState("S1", memory.WithEntry("known"), memory.WithExit("unknown"))

	resolver := mapResolver{"known": noopAction}

	result, err := parser.New(model, resolver).Parse()
	require.NoError(t, err)

	s1, ok := result.State("S1")
	require.True(t, ok)
	require.Len(t, s1.EntryActions, 1)
	// Best-effort: unresolvable exit name leaves the slot empty, no failure.
	assert.Empty(t, s1.ExitActions)
}

func TestParse_OpaqueBehaviorIgnored(t *testing.T) {
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	region.AddState("S1", memory.WithOpaqueEntry("known"))

	resolver := mapResolver{"known": noopAction}

	result, err := parser.New(model, resolver).Parse()
	require.NoError(t, err)

	s1, _ := result.State("S1")
	assert.Empty(t, s1.EntryActions, "unrecognized behavior kinds are treated as absent")
}

func TestParse_ReusableParser(t *testing.T) {
	// Accumulators are per-call: parsing twice must not double the output.
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	s1 := region.AddState("S1")
	region.AddTransition(s1, s1, memory.OnSignal("LOOP"))

	p := parser.New(model, nil)

	first, err := p.Parse()
	require.NoError(t, err)
	second, err := p.Parse()
	require.NoError(t, err)

	assert.Len(t, first.States(), 1)
	assert.Len(t, second.States(), 1)
	assert.Len(t, second.Transitions(), 1)
}

func TestParse_IgnoresNonMachineElements(t *testing.T) {
	model := memory.NewModel()
	model.AddElement("SignalDecl")
	model.AddStateMachine("m").AddRegion("main").AddState("S1")

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, stateNames(result.States()))
}

var _ ports.ActionResolver = mapResolver{}
