package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umlstate/umlstate/pkg/adapters/memory"
	"github.com/umlstate/umlstate/pkg/domain"
	"github.com/umlstate/umlstate/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secure := mw(underlying)

	ctx := context.Background()
	original := domain.NewSnapshot("S1")
	original.Vars["secret"] = "my-secret-sauce"

	require.NoError(t, secure.Save(ctx, "test-session", original))

	// The underlying store only sees the envelope.
	stored, err := underlying.Load(ctx, "test-session")
	require.NoError(t, err)
	assert.Equal(t, "encrypted", stored.Current)
	assert.NotContains(t, stored.Vars, "secret")
	assert.Contains(t, stored.Vars, "__encrypted__")

	// Loading through the middleware decrypts.
	loaded, err := secure.Load(ctx, "test-session")
	require.NoError(t, err)
	assert.Equal(t, "S1", loaded.Current)
	assert.Equal(t, "my-secret-sauce", loaded.Vars["secret"])
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)

	ctx := context.Background()
	original := domain.NewSnapshot("S1")
	original.Vars["data"] = "encrypted-with-old-key"
	require.NoError(t, secureOld.Save(ctx, "rotation-session", original))

	// Load with the new key active and the old one as fallback.
	secureNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := secureNew.Load(ctx, "rotation-session")
	require.NoError(t, err)
	assert.Equal(t, "encrypted-with-old-key", loaded.Vars["data"])

	// Re-saving re-encrypts with the new key; the old middleware can no
	// longer read it.
	require.NoError(t, secureNew.Save(ctx, "rotation-session", loaded))
	_, err = secureOld.Load(ctx, "rotation-session")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}
