package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestMarshalUnmarshalRoundTrips(t *testing.T) {
	e := Envelope{
		GenerationVersion: 3,
		Seed:              123456789,
		Tick:              42,
		Signature:         []byte{1, 2, 3, 4},
		Payload:           []byte("compressed-blob-bytes"),
	}

	data := Marshal(e)
	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	var future []byte
	future = protowire.AppendTag(future, 99, protowire.VarintType)
	future = protowire.AppendVarint(future, 7)

	e := Envelope{GenerationVersion: 1, Seed: 1, Tick: 1}
	data := append(Marshal(e), future...)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUnmarshalEmptyBytes(t *testing.T) {
	got, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Equal(t, Envelope{}, got)
}
