package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAlignsAndZeroes(t *testing.T) {
	a := New(64)
	buf := a.Alloc(5)
	require.NotNil(t, buf)
	assert.Len(t, buf, 5)
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
	assert.Equal(t, 8, a.Used())
}

func TestAllocFailsWhenExhausted(t *testing.T) {
	a := New(8)
	require.NotNil(t, a.Alloc(8))
	assert.Nil(t, a.Alloc(1))
}

func TestResetReclaimsAll(t *testing.T) {
	a := New(16)
	a.Alloc(16)
	assert.Nil(t, a.Alloc(1))
	a.Reset()
	assert.NotNil(t, a.Alloc(16))
}
