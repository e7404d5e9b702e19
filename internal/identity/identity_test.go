package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesVerifiableSignature(t *testing.T) {
	id, err := New(42, 1000)
	require.NoError(t, err)
	require.NotEmpty(t, id.GenesisHex)

	payload := []byte("snapshot-bytes")
	sig := id.Sign(payload)
	assert.True(t, Verify(id.PublicKey, payload, sig))
	assert.False(t, Verify(id.PublicKey, []byte("tampered"), sig))
}

func TestNewIsRandomAcrossCalls(t *testing.T) {
	a, err := New(1, 0)
	require.NoError(t, err)
	b, err := New(1, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a.GenesisHex, b.GenesisHex)
}

func TestRestoreReproducesGenesisHash(t *testing.T) {
	id, err := New(7, 500)
	require.NoError(t, err)

	restored, err := Restore(id.PublicKeyHex(), id.PrivateKeyHex(), 7, 500)
	require.NoError(t, err)
	assert.Equal(t, id.GenesisHex, restored.GenesisHex)

	payload := []byte("x")
	sig := restored.Sign(payload)
	assert.True(t, Verify(id.PublicKey, payload, sig))
}
