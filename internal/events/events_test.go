package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

func testSystem(habitability float64) *worldgen.System {
	return &worldgen.System{
		ID:   types.UID{Hi: 1, Lo: 2},
		Name: "Test System",
		Planets: []worldgen.Planet{
			{
				ID:                types.UID{Hi: 1, Lo: 3},
				Type:              worldgen.PlanetRocky,
				HabitabilityIndex: habitability,
				WaterCoverage:     0.5,
			},
		},
	}
}

func TestHazardSolarFlareReducedByMaterialsTech(t *testing.T) {
	p := probe.InitBob()
	p.TechLevels[types.TechMaterials] = 0
	before := p.HullIntegrity
	dmg := HazardSolarFlare(p, 0.5)
	assert.Greater(t, dmg, 0.0)
	assert.Less(t, p.HullIntegrity, before)

	p2 := probe.InitBob()
	p2.TechLevels[types.TechMaterials] = 2
	dmg2 := HazardSolarFlare(p2, 0.5)
	assert.Less(t, dmg2, dmg)
}

func TestHazardAsteroidDamagesHull(t *testing.T) {
	p := probe.InitBob()
	before := p.HullIntegrity
	HazardAsteroid(p, 0.5)
	assert.Less(t, p.HullIntegrity, before)
}

func TestHazardRadiationDamagesCompute(t *testing.T) {
	p := probe.InitBob()
	before := p.ComputeCapacity
	HazardRadiation(p, 0.5)
	assert.Less(t, p.ComputeCapacity, before)
}

func TestHullIntegrityNeverGoesNegative(t *testing.T) {
	p := probe.InitBob()
	p.HullIntegrity = 0.02
	HazardAsteroid(p, 1.0)
	assert.GreaterOrEqual(t, p.HullIntegrity, 0.0)
}

func TestTickProbeIsDeterministic(t *testing.T) {
	sys := testSystem(0.9)

	p1 := probe.InitBob()
	p1.SystemID = sys.ID
	log1 := &Log{}
	r1 := rng.Derive(42, 1, 2, 3)

	p2 := probe.InitBob()
	p2.SystemID = sys.ID
	log2 := &Log{}
	r2 := rng.Derive(42, 1, 2, 3)

	for tick := uint64(0); tick < 2000; tick++ {
		TickProbe(log1, p1, sys, tick, r1)
		TickProbe(log2, p2, testSystem(0.9), tick, r2)
	}

	require.Equal(t, len(log1.Events), len(log2.Events))
	for i := range log1.Events {
		assert.Equal(t, log1.Events[i], log2.Events[i])
	}
	assert.Equal(t, p1.HullIntegrity, p2.HullIntegrity)
}

func TestTickProbeSkipsDestroyedProbe(t *testing.T) {
	sys := testSystem(0.9)
	p := probe.InitBob()
	p.SystemID = sys.ID
	p.Status = types.StatusDestroyed
	log := &Log{}
	r := rng.Derive(1, 0, 0, 0)

	generated := TickProbe(log, p, sys, 1, r)
	assert.Equal(t, 0, generated)
}

func TestTickProbeSkipsWithoutSystem(t *testing.T) {
	p := probe.InitBob()
	log := &Log{}
	r := rng.Derive(1, 0, 0, 0)

	generated := TickProbe(log, p, nil, 1, r)
	assert.Equal(t, 0, generated)
}

func TestTickProbeRespectsMaxEventsPerTick(t *testing.T) {
	sys := testSystem(0.9)
	p := probe.InitBob()
	p.SystemID = sys.ID
	log := &Log{}
	r := rng.Derive(7, 0, 0, 0)

	for tick := uint64(0); tick < 50000; tick++ {
		generated := TickProbe(log, p, sys, tick, r)
		assert.LessOrEqual(t, generated, MaxEventsPerTick)
	}
}

func TestCheckPlanetForLifeNeverFiresOnZeroHabitability(t *testing.T) {
	planet := &worldgen.Planet{Type: worldgen.PlanetRocky, HabitabilityIndex: 0, WaterCoverage: 0}
	r := rng.Derive(1, 0, 0, 0)
	for i := 0; i < 1000; i++ {
		_, ok := CheckPlanetForLife(planet, r)
		assert.False(t, ok)
	}
}

func TestGenerateCivilizationPopulatesFields(t *testing.T) {
	planet := &worldgen.Planet{
		ID:                types.UID{Hi: 9, Lo: 9},
		Type:              worldgen.PlanetRocky,
		HabitabilityIndex: 1.0,
		WaterCoverage:     1.0,
	}
	r := rng.Derive(1, 0, 0, 0)

	var civ Civilization
	var found bool
	for i := 0; i < 5000; i++ {
		c, ok := GenerateCivilization(planet, types.UID{Hi: 1, Lo: 1}, uint64(i), r)
		if ok {
			civ = c
			found = true
			break
		}
	}
	require.True(t, found)
	assert.NotEmpty(t, civ.Name)
	assert.Equal(t, planet.ID, civ.HomeworldID)
	assert.GreaterOrEqual(t, len(civ.CulturalTraits), 1)
}

func TestLogAppendRespectsCapacity(t *testing.T) {
	log := &Log{}
	sys := testSystem(0.9)
	p := probe.InitBob()
	p.SystemID = sys.ID
	r := rng.Derive(3, 0, 0, 0)

	for i := 0; i < MaxEventLog+50; i++ {
		Generate(log, p, EvtDiscovery, int(DiscMineralDeposit), sys, uint64(i), r)
	}
	assert.LessOrEqual(t, len(log.Events), MaxEventLog)
}

func TestLogForProbeFiltersByProbeID(t *testing.T) {
	log := &Log{
		Events: []Event{
			{ProbeID: types.UID{Hi: 1, Lo: 1}, Description: "a"},
			{ProbeID: types.UID{Hi: 2, Lo: 2}, Description: "b"},
		},
	}
	out := log.ForProbe(types.UID{Hi: 1, Lo: 1})
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Description)
}
