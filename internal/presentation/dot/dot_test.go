package dot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umlstate/umlstate/internal/parser"
	"github.com/umlstate/umlstate/internal/presentation/dot"
	"github.com/umlstate/umlstate/pkg/adapters/memory"
)

func TestGenerate(t *testing.T) {
	model := memory.NewModel()
	region := model.AddStateMachine("m").AddRegion("main")
	s1 := region.AddState("S1")
	p := region.AddState("P")
	region.SetInitial("S1")
	region.AddTransition(s1, p, memory.OnSignal("GO"))
	p.AddRegion("inner").AddState("C")

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)

	out, err := dot.Generate(result)
	require.NoError(t, err)

	assert.Contains(t, out, "digraph G")
	assert.Contains(t, out, `"S1"`)
	assert.Contains(t, out, "cluster_P", "composite states become clusters")
	assert.Contains(t, out, `"C"`)
	assert.Contains(t, out, `"S1"->"P"`)
	assert.Contains(t, out, `label="GO"`)
}

func TestGenerate_Empty(t *testing.T) {
	model := memory.NewModel()
	model.AddStateMachine("m")

	result, err := parser.New(model, nil).Parse()
	require.NoError(t, err)

	out, err := dot.Generate(result)
	require.NoError(t, err)
	assert.Contains(t, out, "digraph G")
}
