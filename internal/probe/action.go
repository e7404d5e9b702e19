package probe

import (
	"math"

	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

type ActionType int

const (
	ActNavigateToBody ActionType = iota
	ActEnterOrbit
	ActLand
	ActLaunch
	ActSurvey
	ActMine
	ActWait
	ActRepair
	ActTravelToSystem
	ActReplicate
	ActSendMessage
	ActPlaceBeacon
	ActBuildStructure
	ActTrade
	ActClaimSystem
	ActRevokeClaim
	ActPropose
	ActVote
	ActResearch
	ActShareTech
	actionTypeCount
)

var actionTypeNames = [actionTypeCount]string{
	ActNavigateToBody: "navigate_to_body",
	ActEnterOrbit:     "enter_orbit",
	ActLand:           "land",
	ActLaunch:         "launch",
	ActSurvey:         "survey",
	ActMine:           "mine",
	ActWait:           "wait",
	ActRepair:         "repair",
	ActTravelToSystem: "travel_to_system",
	ActReplicate:      "replicate",
	ActSendMessage:    "send_message",
	ActPlaceBeacon:    "place_beacon",
	ActBuildStructure: "build_structure",
	ActTrade:          "trade",
	ActClaimSystem:    "claim_system",
	ActRevokeClaim:    "revoke_claim",
	ActPropose:        "propose",
	ActVote:           "vote",
	ActResearch:       "research",
	ActShareTech:      "share_tech",
}

func (a ActionType) String() string {
	if a < 0 || a >= actionTypeCount {
		return "unknown"
	}
	return actionTypeNames[a]
}

// ActionTypeFromName resolves the lower-snake wire name back to an ActionType. Returns false if unrecognized.
func ActionTypeFromName(name string) (ActionType, bool) {
	for i, n := range actionTypeNames {
		if n == name {
			return ActionType(i), true
		}
	}
	return 0, false
}

// Action is one tick's commanded behavior for a probe. Only the fields relevant to Type are read by
// the corresponding executor.
type Action struct {
	Type ActionType

	TargetBody   types.UID
	TargetSystem types.UID
	TargetSector types.SectorCoord
	TargetProbe  types.UID
	TargetResource types.Resource

	SurveyLevel int
	Amount      float64
	StructureType int
	Message     string
	ProposalIdx int
	VoteFavor   bool
	ResearchDomain types.TechDomain
}

// Result reports whether an action was accepted and, for multi-tick
// actions, whether it finished this tick.
type Result struct {
	Completed bool
	Err       *obserr.Error
}

func ok(completed bool) Result { return Result{Completed: completed} }

func fail(kind obserr.Kind, msg string) Result {
	return Result{Err: &obserr.Error{Kind: kind, Message: msg}}
}

const (
	fuelOrbitInsertBase = 5.0
	fuelLandBase        = 10.0
	fuelLaunchBase       = 15.0
	fuelNavigateBase     = 2.0

	energySurveyPerTick = 1.0e8
	energyMinePerTick   = 5.0e8
	energyIdlePerTick   = 1.0e6

	fusionEfficiency   = 6.3e14
	fusionFuelPerTick  = 0.001

	miningBaseRate = 10.0

	repairIronCost   = 10.0
	repairEnergyCost = 1.0e9
	repairHullGain   = 0.05
)

func fuelCostForBody(base float64, body *worldgen.Planet) float64 {
	if body == nil {
		return base
	}
	mass := body.MassEarth
	if mass < 0.01 {
		mass = 0.01
	}
	return base * math.Sqrt(mass)
}

// TickEnergy runs the fusion-reactor energy model for one tick,
// ported from probe_tick_energy in original_source/src/probe.c.
func (p *Probe) TickEnergy() {
	h2Available := p.Resources[types.ResHydrogen]
	toBurn := fusionFuelPerTick

	totalH2 := h2Available + p.FuelKG
	if totalH2 <= 0 {
		return
	}
	if toBurn > totalH2 {
		toBurn = totalH2
	}

	if h2Available >= toBurn {
		p.Resources[types.ResHydrogen] -= toBurn
	} else {
		remainder := toBurn - h2Available
		p.Resources[types.ResHydrogen] = 0
		p.FuelKG -= remainder
		if p.FuelKG < 0 {
			p.FuelKG = 0
		}
	}

	p.EnergyJoules += toBurn * fusionEfficiency

	p.EnergyJoules -= energyIdlePerTick
	if p.EnergyJoules < 0 {
		p.EnergyJoules = 0
	}
}

func (p *Probe) drainEnergyIdle() {
	p.EnergyJoules -= energyIdlePerTick
	if p.EnergyJoules < 0 {
		p.EnergyJoules = 0
	}
}

// Execute runs one action for one tick against the system the probe
// currently occupies, mutating both probe and system state as needed.
// Ported from probe_execute_action.
func (p *Probe) Execute(a Action, sys *worldgen.System) Result {
	if p.Status == types.StatusDestroyed {
		return fail(obserr.InvalidPrecondition, "probe is destroyed")
	}

	switch a.Type {
	case ActEnterOrbit:
		return p.execEnterOrbit(a, sys)
	case ActLand:
		return p.execLand(a, sys)
	case ActLaunch:
		return p.execLaunch(sys)
	case ActNavigateToBody:
		return p.execNavigateToBody(a, sys)
	case ActSurvey:
		return p.execSurvey(a, sys)
	case ActMine:
		return p.execMine(a, sys)
	case ActWait:
		return p.execWait()
	case ActRepair:
		return p.execRepair()
	default:
		return fail(obserr.InvalidPrecondition, "action requires higher-level subsystem")
	}
}

func (p *Probe) execEnterOrbit(a Action, sys *worldgen.System) Result {
	if p.LocationType != types.LocInSystem && p.LocationType != types.LocOrbiting {
		return fail(obserr.InvalidPrecondition, "must be in-system to enter orbit")
	}
	body := sys.FindPlanet(a.TargetBody)
	if body == nil {
		return fail(obserr.NotFound, "target body not found in system")
	}
	cost := fuelCostForBody(fuelOrbitInsertBase, body)
	if p.FuelKG < cost {
		return fail(obserr.InsufficientResource, "insufficient fuel for orbit insertion")
	}
	p.FuelKG -= cost
	p.drainEnergyIdle()
	p.BodyID = body.ID
	p.LocationType = types.LocOrbiting
	return ok(true)
}

func (p *Probe) execLand(a Action, sys *worldgen.System) Result {
	if p.LocationType != types.LocOrbiting {
		return fail(obserr.InvalidPrecondition, "must be orbiting to land")
	}
	body := sys.FindPlanet(a.TargetBody)
	if body == nil {
		body = sys.FindPlanet(p.BodyID)
	}
	if body == nil {
		return fail(obserr.NotFound, "no body to land on")
	}
	if body.Type.IsGasOrIceGiant() {
		return fail(obserr.InvalidPrecondition, "cannot land on gas/ice giant")
	}
	cost := fuelCostForBody(fuelLandBase, body)
	if p.FuelKG < cost {
		return fail(obserr.InsufficientResource, "insufficient fuel for landing")
	}
	p.FuelKG -= cost
	p.drainEnergyIdle()
	p.BodyID = body.ID
	p.LocationType = types.LocLanded
	return ok(true)
}

func (p *Probe) execLaunch(sys *worldgen.System) Result {
	if p.LocationType != types.LocLanded {
		return fail(obserr.InvalidPrecondition, "must be landed to launch")
	}
	body := sys.FindPlanet(p.BodyID)
	cost := fuelCostForBody(fuelLaunchBase, body)
	if p.FuelKG < cost {
		return fail(obserr.InsufficientResource, "insufficient fuel for launch")
	}
	p.FuelKG -= cost
	p.drainEnergyIdle()
	p.LocationType = types.LocOrbiting
	return ok(true)
}

func (p *Probe) execNavigateToBody(a Action, sys *worldgen.System) Result {
	if p.LocationType == types.LocInterstellar || p.Status == types.StatusTraveling {
		return fail(obserr.InvalidPrecondition, "cannot navigate to body while interstellar")
	}
	body := sys.FindPlanet(a.TargetBody)
	if body == nil {
		return fail(obserr.NotFound, "target body not found")
	}
	if p.FuelKG < fuelNavigateBase {
		return fail(obserr.InsufficientResource, "insufficient fuel")
	}
	p.FuelKG -= fuelNavigateBase
	p.drainEnergyIdle()
	p.BodyID = body.ID
	p.LocationType = types.LocInSystem
	return ok(true)
}

func (p *Probe) execSurvey(a Action, sys *worldgen.System) Result {
	body := sys.FindPlanet(a.TargetBody)
	if body == nil {
		body = sys.FindPlanet(p.BodyID)
	}
	if body == nil {
		return fail(obserr.NotFound, "no body to survey")
	}

	level := a.SurveyLevel
	if level < 0 || level > 4 {
		return fail(obserr.MalformedInput, "invalid survey level")
	}
	if level > 0 && !body.Surveyed[level-1] {
		return fail(obserr.InvalidPrecondition, "must complete previous survey level first")
	}
	if body.Surveyed[level] {
		return ok(true)
	}
	if level == 4 && p.LocationType != types.LocLanded {
		return fail(obserr.InvalidPrecondition, "surface survey requires landing")
	}
	if level < 4 && p.LocationType != types.LocOrbiting && p.LocationType != types.LocLanded {
		return fail(obserr.InvalidPrecondition, "must be orbiting or landed to survey")
	}

	isNew := p.Survey.BodyID != body.ID || p.Survey.Level != level || p.Survey.TicksRemaining <= 0
	if isNew {
		p.Survey.BodyID = body.ID
		p.Survey.Level = level
		p.Survey.TicksRemaining = surveyTicks[level]
	}

	p.EnergyJoules -= energySurveyPerTick
	if p.EnergyJoules < 0 {
		p.EnergyJoules = 0
	}

	p.Survey.TicksRemaining--
	if p.Survey.TicksRemaining <= 0 {
		body.Surveyed[level] = true
		if body.DiscoveredBy.IsNull() {
			body.DiscoveredBy = p.ID
		}
		p.Survey.Level = -1
		return ok(true)
	}
	return ok(false)
}

func (p *Probe) execMine(a Action, sys *worldgen.System) Result {
	if p.LocationType != types.LocLanded {
		return fail(obserr.InvalidPrecondition, "must be landed to mine")
	}
	body := sys.FindPlanet(p.BodyID)
	if body == nil {
		return fail(obserr.NotFound, "no body found at current location")
	}
	res := a.TargetResource
	if res < 0 || int(res) >= types.ResourceCount {
		return fail(obserr.MalformedInput, "invalid resource type")
	}

	abundance := body.Resources[res]
	if abundance <= 0.001 {
		return fail(obserr.InvalidPrecondition, "no significant deposits of this resource")
	}

	yield := miningBaseRate * p.MiningRate * abundance
	mass := body.MassEarth
	if mass < 0.1 {
		mass = 0.1
	}
	yield /= math.Sqrt(mass)

	if p.EnergyJoules < energyMinePerTick {
		return fail(obserr.InsufficientResource, "insufficient energy to mine")
	}
	p.EnergyJoules -= energyMinePerTick

	p.Resources[res] += yield
	p.MassKG += yield

	body.Resources[res] -= yield * 1e-9
	if body.Resources[res] < 0 {
		body.Resources[res] = 0
	}

	p.Status = types.StatusMining
	return ok(true)
}

func (p *Probe) execWait() Result {
	p.drainEnergyIdle()
	return ok(true)
}

func (p *Probe) execRepair() Result {
	if p.HullIntegrity >= 1.0 {
		return fail(obserr.InvalidPrecondition, "hull already at full integrity")
	}
	if p.Resources[types.ResIron] < repairIronCost {
		return fail(obserr.InsufficientResource, "need iron for repairs")
	}
	if p.EnergyJoules < repairEnergyCost {
		return fail(obserr.InsufficientResource, "need energy for repairs")
	}
	p.Resources[types.ResIron] -= repairIronCost
	p.EnergyJoules -= repairEnergyCost
	p.HullIntegrity += repairHullGain
	if p.HullIntegrity > 1.0 {
		p.HullIntegrity = 1.0
	}
	return ok(true)
}
