package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

func testSystem(planetType worldgen.PlanetType) (*worldgen.System, *worldgen.Planet) {
	sys := &worldgen.System{}
	planet := worldgen.Planet{
		ID:        types.UID{Hi: 9, Lo: 9},
		Type:      planetType,
		MassEarth: 1.0,
	}
	planet.Resources[types.ResIron] = 0.5
	sys.Planets = []worldgen.Planet{planet}
	return sys, &sys.Planets[0]
}

func TestEnterOrbitRequiresInSystem(t *testing.T) {
	p := InitBob()
	sys, planet := testSystem(worldgen.PlanetRocky)
	p.LocationType = types.LocInterstellar

	res := p.Execute(Action{Type: ActEnterOrbit, TargetBody: planet.ID}, sys)
	require.NotNil(t, res.Err)
	assert.Equal(t, "invalid_precondition", string(res.Err.Kind))
}

func TestEnterOrbitThenLandThenLaunch(t *testing.T) {
	p := InitBob()
	sys, planet := testSystem(worldgen.PlanetRocky)

	res := p.Execute(Action{Type: ActEnterOrbit, TargetBody: planet.ID}, sys)
	require.Nil(t, res.Err)
	assert.Equal(t, types.LocOrbiting, p.LocationType)

	res = p.Execute(Action{Type: ActLand, TargetBody: planet.ID}, sys)
	require.Nil(t, res.Err)
	assert.Equal(t, types.LocLanded, p.LocationType)

	res = p.Execute(Action{Type: ActLaunch}, sys)
	require.Nil(t, res.Err)
	assert.Equal(t, types.LocOrbiting, p.LocationType)
}

func TestCannotLandOnGasGiant(t *testing.T) {
	p := InitBob()
	sys, planet := testSystem(worldgen.PlanetGasGiant)
	p.LocationType = types.LocOrbiting
	p.BodyID = planet.ID

	res := p.Execute(Action{Type: ActLand, TargetBody: planet.ID}, sys)
	require.NotNil(t, res.Err)
}

func TestSurveyProgressesOverMultipleTicksAndMarksDiscovery(t *testing.T) {
	p := InitBob()
	sys, planet := testSystem(worldgen.PlanetRocky)
	p.LocationType = types.LocOrbiting
	p.BodyID = planet.ID

	ticksNeeded := surveyTicks[0]
	var last Result
	for i := 0; i < ticksNeeded; i++ {
		last = p.Execute(Action{Type: ActSurvey, TargetBody: planet.ID, SurveyLevel: 0}, sys)
		require.Nil(t, last.Err)
	}
	assert.True(t, last.Completed)
	assert.True(t, planet.Surveyed[0])
	assert.Equal(t, p.ID, planet.DiscoveredBy)
}

func TestSurveyLevelRequiresPriorLevel(t *testing.T) {
	p := InitBob()
	sys, planet := testSystem(worldgen.PlanetRocky)
	p.LocationType = types.LocOrbiting
	p.BodyID = planet.ID

	res := p.Execute(Action{Type: ActSurvey, TargetBody: planet.ID, SurveyLevel: 1}, sys)
	require.NotNil(t, res.Err)
}

func TestMineRequiresLandedAndYieldsResource(t *testing.T) {
	p := InitBob()
	sys, planet := testSystem(worldgen.PlanetRocky)
	p.LocationType = types.LocLanded
	p.BodyID = planet.ID

	before := p.Resources[types.ResIron]
	res := p.Execute(Action{Type: ActMine, TargetResource: types.ResIron}, sys)
	require.Nil(t, res.Err)
	assert.Greater(t, p.Resources[types.ResIron], before)
	assert.Equal(t, types.StatusMining, p.Status)
}

func TestMineFailsWithoutAbundance(t *testing.T) {
	p := InitBob()
	sys, planet := testSystem(worldgen.PlanetRocky)
	p.LocationType = types.LocLanded
	p.BodyID = planet.ID

	res := p.Execute(Action{Type: ActMine, TargetResource: types.ResUranium}, sys)
	require.NotNil(t, res.Err)
}

func TestRepairConsumesIronAndEnergy(t *testing.T) {
	p := InitBob()
	p.HullIntegrity = 0.5
	p.Resources[types.ResIron] = 100

	res := p.Execute(Action{Type: ActRepair}, &worldgen.System{})
	require.Nil(t, res.Err)
	assert.InDelta(t, 0.55, p.HullIntegrity, 1e-9)
	assert.InDelta(t, 90.0, p.Resources[types.ResIron], 1e-9)
}

func TestRepairNoopAtFullHull(t *testing.T) {
	p := InitBob()
	res := p.Execute(Action{Type: ActRepair}, &worldgen.System{})
	require.NotNil(t, res.Err)
}

func TestDestroyedProbeCannotAct(t *testing.T) {
	p := InitBob()
	p.Status = types.StatusDestroyed
	res := p.Execute(Action{Type: ActWait}, &worldgen.System{})
	require.NotNil(t, res.Err)
}

func TestTickEnergyBurnsHydrogenBeforeFuel(t *testing.T) {
	p := InitBob()
	p.Resources[types.ResHydrogen] = 10
	fuelBefore := p.FuelKG
	energyBefore := p.EnergyJoules

	p.TickEnergy()

	assert.Less(t, p.Resources[types.ResHydrogen], 10.0)
	assert.Equal(t, fuelBefore, p.FuelKG)
	assert.Greater(t, p.EnergyJoules, energyBefore)
}
