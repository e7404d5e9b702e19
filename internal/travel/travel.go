// Package travel implements interstellar transit, the long-range
// sensor scan, and the Lorentz factor helper, ported
// from original_source/src/travel.c.
package travel

import (
	"math"
	"sort"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

const (
	fuelBurnPerLyKG       = 0.5
	micrometeoriteChance  = 0.0005
	micrometeoriteDamage  = 0.005
	minFuelForTravel      = 10.0
	ticksPerCycle         = 365
)

func dist(a, b types.Vec3) float64 {
	d := a.Sub(b)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// LorentzFactor returns gamma = 1/sqrt(1 - v^2/c^2), clamped at speed_c
// >= 1 since the drive can never reach light speed.
func LorentzFactor(speedC float64) float64 {
	if speedC <= 0 {
		return 1.0
	}
	if speedC >= 1.0 {
		return 1e10
	}
	return 1.0 / math.Sqrt(1.0-speedC*speedC)
}

// Order is the input to Initiate: where to go and what it is.
type Order struct {
	TargetPos    types.Vec3
	TargetSystem types.UID
	TargetSector types.SectorCoord
}

// InitiateResult reports acceptance and an estimated arrival tick count.
type InitiateResult struct {
	Success        bool
	EstimatedTicks uint64
}

// Initiate begins interstellar travel toward order, setting the
// probe's status to Traveling. Ported from travel_initiate.
func Initiate(p *probe.Probe, order Order) InitiateResult {
	if p.Status == types.StatusTraveling {
		return InitiateResult{}
	}

	d := dist(p.Position, order.TargetPos)
	if d < 0.001 {
		return InitiateResult{Success: true, EstimatedTicks: 0}
	}

	fuelNeeded := d * fuelBurnPerLyKG
	if p.FuelKG < minFuelForTravel && fuelNeeded > p.FuelKG {
		return InitiateResult{}
	}

	p.Status = types.StatusTraveling
	p.LocationType = types.LocInterstellar
	p.SpeedC = p.MaxSpeedC
	p.TravelRemainingLY = d
	p.Destination = order.TargetPos
	p.SystemID = order.TargetSystem
	p.Sector = order.TargetSector

	travelYears := d / p.SpeedC
	return InitiateResult{
		Success:        true,
		EstimatedTicks: uint64(travelYears * ticksPerCycle),
	}
}

// TickResult reports what happened this tick of an ongoing journey.
type TickResult struct {
	Arrived       bool
	FuelExhausted bool
}

// Tick advances one tick of an in-progress journey: fuel burn,
// position interpolation, micrometeorite hazard roll, arrival check.
// Ported from travel_tick.
func Tick(p *probe.Probe, r *rng.RNG) TickResult {
	if p.Status != types.StatusTraveling {
		return TickResult{}
	}

	lyPerTick := p.SpeedC / float64(ticksPerCycle)
	fuelCost := lyPerTick * fuelBurnPerLyKG

	if p.FuelKG < fuelCost {
		p.FuelKG = 0
		p.Status = types.StatusDormant
		p.SpeedC = 0
		return TickResult{FuelExhausted: true}
	}
	p.FuelKG -= fuelCost

	p.TravelRemainingLY -= lyPerTick

	if p.TravelRemainingLY > 0 {
		totalDist := dist(p.Position, p.Destination)
		if totalDist > 0.001 {
			frac := lyPerTick / totalDist
			if frac > 1.0 {
				frac = 1.0
			}
			p.Position.X += (p.Destination.X - p.Position.X) * frac
			p.Position.Y += (p.Destination.Y - p.Position.Y) * frac
			p.Position.Z += (p.Destination.Z - p.Position.Z) * frac
		}
	}

	if r.Double() < micrometeoriteChance {
		p.HullIntegrity -= micrometeoriteDamage
		if p.HullIntegrity < 0 {
			p.HullIntegrity = 0
		}
	}

	var res TickResult
	if p.TravelRemainingLY <= 0 {
		p.TravelRemainingLY = 0
		p.Status = types.StatusActive
		p.LocationType = types.LocInSystem
		p.Position = p.Destination
		p.SpeedC = 0
		res.Arrived = true
	}
	return res
}

// ScanResult is one entry of a long-range sensor sweep.
type ScanResult struct {
	SystemID             types.UID
	StarClass            worldgen.StarClass
	DistanceLY           float64
	Position             types.Vec3
	Sector               types.SectorCoord
	EstimatedTravelTicks uint64
}

// EstimateTravelTicks projects how many ticks a probe travelling at
// MaxSpeedC would take to cover distanceLY, the same formula Initiate
// uses to report EstimatedTicks once travel actually begins.
func EstimateTravelTicks(p *probe.Probe, distanceLY float64) uint64 {
	if p.MaxSpeedC <= 0 || distanceLY <= 0 {
		return 0
	}
	travelYears := distanceLY / p.MaxSpeedC
	return uint64(travelYears * ticksPerCycle)
}

// Scan finds systems within the probe's sensor range, sorted nearest
// first, capped at maxResults. Ported from travel_scan.
func Scan(p *probe.Probe, systems []worldgen.System, maxResults int) []ScanResult {
	out := make([]ScanResult, 0, maxResults)
	rangeLY := p.SensorRangeLY

	for i := range systems {
		if len(out) >= maxResults {
			break
		}
		sys := &systems[i]
		d := dist(p.Position, sys.Position)
		if d < 0.001 || d > rangeLY {
			continue
		}
		primary := sys.Primary()
		var class worldgen.StarClass
		if primary != nil {
			class = primary.Class
		}
		out = append(out, ScanResult{
			SystemID:             sys.ID,
			StarClass:            class,
			DistanceLY:           d,
			Position:             sys.Position,
			Sector:               sys.Sector,
			EstimatedTravelTicks: EstimateTravelTicks(p, d),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DistanceLY < out[j].DistanceLY })
	return out
}
