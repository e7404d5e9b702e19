package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

func TestInitiateSetsTravelingState(t *testing.T) {
	p := probe.InitBob()
	res := Initiate(p, Order{TargetPos: types.Vec3{X: 10, Y: 0, Z: 0}})
	require.True(t, res.Success)
	assert.Equal(t, types.StatusTraveling, p.Status)
	assert.Equal(t, types.LocInterstellar, p.LocationType)
	assert.Greater(t, p.TravelRemainingLY, 0.0)
}

func TestInitiateRejectsWhileAlreadyTraveling(t *testing.T) {
	p := probe.InitBob()
	Initiate(p, Order{TargetPos: types.Vec3{X: 10}})
	res := Initiate(p, Order{TargetPos: types.Vec3{X: 20}})
	assert.False(t, res.Success)
}

func TestInitiateNoopWhenAlreadyAtTarget(t *testing.T) {
	p := probe.InitBob()
	res := Initiate(p, Order{TargetPos: p.Position})
	assert.True(t, res.Success)
	assert.Equal(t, uint64(0), res.EstimatedTicks)
	assert.NotEqual(t, types.StatusTraveling, p.Status)
}

func TestTickBurnsFuelAndAdvancesPosition(t *testing.T) {
	p := probe.InitBob()
	Initiate(p, Order{TargetPos: types.Vec3{X: 100}})
	r := rng.Derive(1, 0, 0, 0)

	fuelBefore := p.FuelKG
	Tick(p, r)
	assert.Less(t, p.FuelKG, fuelBefore)
	assert.Greater(t, p.Position.X, 0.0)
}

func TestTickArrivesWhenRemainingDistanceExhausted(t *testing.T) {
	p := probe.InitBob()
	Initiate(p, Order{TargetPos: types.Vec3{X: 0.01}})
	r := rng.Derive(1, 0, 0, 0)

	var last TickResult
	for i := 0; i < 10_000 && !last.Arrived && !last.FuelExhausted; i++ {
		last = Tick(p, r)
	}
	assert.True(t, last.Arrived)
	assert.Equal(t, types.StatusActive, p.Status)
	assert.Equal(t, types.LocInSystem, p.LocationType)
}

func TestTickExhaustsFuelEntersDormant(t *testing.T) {
	p := probe.InitBob()
	p.FuelKG = 0.00001
	Initiate(p, Order{TargetPos: types.Vec3{X: 0.5}})
	p.Status = types.StatusTraveling
	p.SpeedC = p.MaxSpeedC
	r := rng.Derive(1, 0, 0, 0)

	res := Tick(p, r)
	assert.True(t, res.FuelExhausted)
	assert.Equal(t, types.StatusDormant, p.Status)
	assert.Equal(t, 0.0, p.FuelKG)
}

func TestLorentzFactorMonotonic(t *testing.T) {
	assert.Equal(t, 1.0, LorentzFactor(0))
	low := LorentzFactor(0.1)
	high := LorentzFactor(0.9)
	assert.Greater(t, high, low)
	assert.Equal(t, 1e10, LorentzFactor(1.0))
}

func TestScanSortsByDistanceAndRespectsRange(t *testing.T) {
	p := probe.InitBob()
	p.SensorRangeLY = 20.0
	systems := []worldgen.System{
		{ID: types.UID{Lo: 1}, Position: types.Vec3{X: 15}, Stars: []worldgen.Star{{Class: worldgen.StarG}}},
		{ID: types.UID{Lo: 2}, Position: types.Vec3{X: 5}, Stars: []worldgen.Star{{Class: worldgen.StarM}}},
		{ID: types.UID{Lo: 3}, Position: types.Vec3{X: 50}, Stars: []worldgen.Star{{Class: worldgen.StarO}}},
	}

	out := Scan(p, systems, 10)
	require.Len(t, out, 2)
	assert.Equal(t, types.UID{Lo: 2}, out[0].SystemID)
	assert.Equal(t, types.UID{Lo: 1}, out[1].SystemID)
}
