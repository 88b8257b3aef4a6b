package middleware_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umlstate/umlstate/pkg/adapters/memory"
	"github.com/umlstate/umlstate/pkg/domain"
	"github.com/umlstate/umlstate/pkg/persistence/middleware"
)

func TestPIIMiddleware_MasksMatchingKeys(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewPIIMiddleware([]string{"(?i)password", "ssn"})
	store := mw(underlying)

	ctx := context.Background()
	snap := domain.NewSnapshot("S1")
	snap.Vars["Password"] = "hunter2"
	snap.Vars["user_ssn"] = "123-45-6789"
	snap.Vars["color"] = "green"
	snap.Vars["profile"] = map[string]any{
		"password_hint": "pet name",
		"city":          "Lisbon",
	}

	require.NoError(t, store.Save(ctx, "s", snap))

	stored, err := underlying.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "***", stored.Vars["Password"])
	assert.Equal(t, "***", stored.Vars["user_ssn"])
	assert.Equal(t, "green", stored.Vars["color"])
	profile := stored.Vars["profile"].(map[string]any)
	assert.Equal(t, "***", profile["password_hint"])
	assert.Equal(t, "Lisbon", profile["city"])

	// The engine-side snapshot keeps its values.
	assert.Equal(t, "hunter2", snap.Vars["Password"])
}

func TestPIIMiddleware_LoadPassesThrough(t *testing.T) {
	underlying := memory.NewStore()
	store := middleware.NewPIIMiddleware([]string{"secret"})(underlying)

	ctx := context.Background()
	snap := domain.NewSnapshot("S1")
	require.NoError(t, store.Save(ctx, "s", snap))

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "S1", loaded.Current)
}
