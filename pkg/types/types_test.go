package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUIDRoundTripsWithString(t *testing.T) {
	u := UID{Hi: 123, Lo: 456}
	parsed, err := ParseUID(u.String())
	require.NoError(t, err)
	assert.Equal(t, u, parsed)
}

func TestParseUIDRejectsMalformed(t *testing.T) {
	_, err := ParseUID("not-a-uid-at-all")
	assert.Error(t, err)
	_, err = ParseUID("123")
	assert.Error(t, err)
}

func TestResourceFromNameRoundTrips(t *testing.T) {
	r, ok := ResourceFromName(ResIron.String())
	require.True(t, ok)
	assert.Equal(t, ResIron, r)

	_, ok = ResourceFromName("not_a_resource")
	assert.False(t, ok)
}

func TestTechDomainFromNameRoundTrips(t *testing.T) {
	d, ok := TechDomainFromName(TechBiotech.String())
	require.True(t, ok)
	assert.Equal(t, TechBiotech, d)

	_, ok = TechDomainFromName("not_a_domain")
	assert.False(t, ok)
}
