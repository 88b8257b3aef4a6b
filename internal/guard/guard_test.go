package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umlstate/umlstate/internal/guard"
)

func TestEval_EmptyIsTrue(t *testing.T) {
	ok, err := guard.Eval("  ", nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEval_Bool(t *testing.T) {
	vars := map[string]any{"count": 3, "armed": true}

	ok, err := guard.Eval("count >= 3 && armed", vars)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Eval("count > 3", vars)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEval_NonBoolRejected(t *testing.T) {
	_, err := guard.Eval("1 + 1", map[string]any{})
	assert.ErrorContains(t, err, "must evaluate to bool")
}

func TestCompile_RoundTrip(t *testing.T) {
	prog, err := guard.Compile("count < limit")
	require.NoError(t, err)

	ok, err := guard.EvalCompiled(prog, map[string]any{"count": 1, "limit": 2})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.EvalCompiled(prog, map[string]any{"count": 5, "limit": 2})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompile_EmptyIsNil(t *testing.T) {
	prog, err := guard.Compile("")
	require.NoError(t, err)
	assert.Nil(t, prog)

	ok, err := guard.EvalCompiled(nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompile_Invalid(t *testing.T) {
	_, err := guard.Compile("count >>> 1")
	assert.Error(t, err)
}
