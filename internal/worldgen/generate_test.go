package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/pkg/types"
)

func TestGenerateSectorIsDeterministic(t *testing.T) {
	coord := types.SectorCoord{X: 7, Y: -3, Z: 12}

	a := GenerateSector(42, coord)
	b := GenerateSector(42, coord)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Position, b[i].Position)
		require.Equal(t, len(a[i].Stars), len(b[i].Stars))
		for j := range a[i].Stars {
			assert.Equal(t, a[i].Stars[j], b[i].Stars[j])
		}
		require.Equal(t, len(a[i].Planets), len(b[i].Planets))
		for j := range a[i].Planets {
			assert.Equal(t, a[i].Planets[j], b[i].Planets[j])
		}
	}
}

func TestGenerateSectorDiffersAcrossSeeds(t *testing.T) {
	coord := types.SectorCoord{X: 1, Y: 1, Z: 1}
	a := GenerateSector(1, coord)
	b := GenerateSector(2, coord)

	if len(a) == len(b) && len(a) > 0 {
		differs := false
		for i := range a {
			if a[i].ID != b[i].ID {
				differs = true
				break
			}
		}
		assert.True(t, differs, "different seeds should not produce identical systems")
	}
}

func TestGenerateSectorDiffersAcrossCoords(t *testing.T) {
	a := GenerateSector(42, types.SectorCoord{X: 0, Y: 0, Z: 0})
	b := GenerateSector(42, types.SectorCoord{X: 1, Y: 0, Z: 0})

	if len(a) > 0 && len(b) > 0 {
		assert.NotEqual(t, a[0].ID, b[0].ID)
	}
}

func TestSectorStarCountBounded(t *testing.T) {
	for _, c := range []types.SectorCoord{
		{X: 0, Y: 0, Z: 0},
		{X: 100, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 50},
		{X: -40, Y: 30, Z: -5},
	} {
		r := rng.Derive(42, c.X, c.Y, c.Z)
		n := SectorStarCount(r, c)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 30)
	}
}

func TestHabitableZoneScalesWithLuminosity(t *testing.T) {
	innerSun, outerSun := HabitableZone(1.0)
	assert.InDelta(t, 0.95, innerSun, 1e-9)
	assert.InDelta(t, 1.37, outerSun, 1e-9)

	innerBright, outerBright := HabitableZone(4.0)
	assert.Greater(t, innerBright, innerSun)
	assert.Greater(t, outerBright, outerSun)
}

func TestGeneratePlanetHabitabilityBounded(t *testing.T) {
	r := rng.Derive(99, 0, 0, 0)
	star := generateStar(r, types.Vec3{})
	for i := 0; i < 20; i++ {
		p := generatePlanet(r, i, &star)
		assert.GreaterOrEqual(t, p.HabitabilityIndex, 0.0)
		assert.LessOrEqual(t, p.HabitabilityIndex, 1.0)
		if p.SurfaceTempK <= 200 || p.SurfaceTempK >= 340 {
			assert.Equal(t, 0.0, p.HabitabilityIndex)
		}
	}
}

func TestGenerateUIDDrawsTwoWords(t *testing.T) {
	r := rng.Derive(1, 0, 0, 0)
	first := GenerateUID(r)
	second := GenerateUID(r)
	assert.NotEqual(t, first, second)
	assert.False(t, first.IsNull())
}
