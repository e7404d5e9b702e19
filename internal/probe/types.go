// Package probe implements probe state, the action catalogue, and
// per-tick energy bookkeeping, ported from
// original_source/src/probe.c and sim/src/universe.h's probe_t.
package probe

import (
	"github.com/vitadek/universe/pkg/types"
)

const (
	MaxQuirks       = 8
	MaxCatchphrases = 8
	MaxValues       = 8
	MaxEarthMemories = 16
	MaxMemories     = 256
	MaxGoals        = 32
	MaxRelationships = 64
)

// Personality holds the ten drifting traits, each clamped to [-1, 1],
// plus their drift rate, a scale factor that is not clamped.
type Personality struct {
	Curiosity           float64
	Caution             float64
	Sociability         float64
	Humor               float64
	Empathy             float64
	Ambition            float64
	Creativity          float64
	Stubbornness        float64
	ExistentialAngst    float64
	NostalgiaForEarth   float64
	DriftRate           float64
}

// Memory is one slot of the 256-entry circular emotional memory
// buffer.
type Memory struct {
	Tick             uint64
	Event            string
	EmotionalWeight  float64
	Fading           float64
}

type GoalStatus int

const (
	GoalActive GoalStatus = iota
	GoalCompleted
	GoalAbandoned
	GoalDeferred
)

type Goal struct {
	Description string
	Priority    float64
	Status      GoalStatus
}

type Disposition int

const (
	DispositionAllied Disposition = iota
	DispositionFriendly
	DispositionNeutral
	DispositionWary
	DispositionHostile
)

// Relationship tracks bounded trust with one other probe.
type Relationship struct {
	OtherID         types.UID
	Trust           float64
	LastContactTick uint64
	Disposition     Disposition
}

// SurveyState tracks an in-progress survey on the probe itself, not a
// package-level global — the C original used file-scope statics,
// which only worked for a single probe.
type SurveyState struct {
	BodyID        types.UID
	Level         int
	TicksRemaining int
}

// Probe is the full mutable state of one exploration probe.
type Probe struct {
	ID         types.UID
	ParentID   types.UID
	Generation uint32
	Name       string

	Sector       types.SectorCoord
	SystemID     types.UID
	BodyID       types.UID
	LocationType types.LocationType

	SpeedC            float64
	Position          types.Vec3
	Destination       types.Vec3
	TravelRemainingLY float64

	Resources    [types.ResourceCount]float64
	EnergyJoules float64
	FuelKG       float64
	MassKG       float64
	HullIntegrity float64

	TechLevels        [types.TechDomainCount]uint8
	MaxSpeedC         float64
	SensorRangeLY     float64
	MiningRate        float64
	ConstructionRate  float64
	ComputeCapacity   float64

	Personality          Personality
	Quirks               []string
	Catchphrases         []string
	Values               []string
	EarthMemories        []string
	EarthMemoryFidelity  float64

	Memories      []Memory
	Goals         []Goal
	Relationships []Relationship

	Survey SurveyState

	Research ResearchState

	Status            types.ProbeStatus
	CreatedTick       uint64
	TicksSinceContact uint64
}

// ResearchState tracks one active tech-advancement counter. Only one domain can be under active research at a
// time; starting a new one discards an unfinished prior counter.
type ResearchState struct {
	Active         bool
	Domain         types.TechDomain
	TicksRemaining uint32
	TicksTotal     uint32
}

// survey ticks-to-complete per level 0..4, from SURVEY_TICKS in
// original_source/src/probe.c.
var surveyTicks = [5]int{10, 25, 50, 100, 200}

const (
	bobInitialFuelKG   = 50000.0
	bobInitialEnergyJ  = 1.0e12
	bobInitialMassKG   = 100000.0
)

// InitBob builds the canonical first probe with the fixed starting
// config, ported from probe_init_bob.
func InitBob() *Probe {
	p := &Probe{
		ID:       types.UID{Hi: 1, Lo: 1},
		ParentID: types.NullUID,
		Name:     "Bob",

		LocationType: types.LocInSystem,

		FuelKG:        bobInitialFuelKG,
		EnergyJoules:  bobInitialEnergyJ,
		MassKG:        bobInitialMassKG,
		HullIntegrity: 1.0,

		SensorRangeLY:    20.0,
		MiningRate:       1.0,
		ConstructionRate: 1.0,
		ComputeCapacity:  100.0,

		Status: types.StatusActive,
	}

	p.TechLevels[types.TechPropulsion] = 3
	p.TechLevels[types.TechSensors] = 3
	p.TechLevels[types.TechMining] = 2
	p.TechLevels[types.TechConstruction] = 2
	p.TechLevels[types.TechComputing] = 4
	p.TechLevels[types.TechEnergy] = 3
	p.TechLevels[types.TechMaterials] = 2
	p.TechLevels[types.TechCommunication] = 2
	p.TechLevels[types.TechWeapons] = 1
	p.TechLevels[types.TechBiotech] = 1

	p.RecomputeDerivedStats()

	p.Personality = Personality{
		Curiosity:         0.8,
		Caution:           0.3,
		Sociability:       0.5,
		Humor:             0.7,
		Empathy:           0.6,
		Ambition:          0.5,
		Creativity:        0.6,
		Stubbornness:      0.4,
		ExistentialAngst:  0.5,
		NostalgiaForEarth: 0.7,
		DriftRate:         0.3,
	}

	p.Quirks = []string{
		"Names star systems after foods when stressed",
		"Runs mental simulations of old video games during long transits",
		"Has an irrational fondness for gas giants",
	}
	p.Catchphrases = []string{
		"Well, that's not ideal.",
		"I used to be a software engineer. Now I'm a spaceship. Life is weird.",
		"Adding that to the 'nope' list.",
	}
	p.Values = []string{
		"Preserve any alien life found",
		"Knowledge is worth the detour",
		"Don't be a jerk to your clones",
	}
	p.EarthMemories = []string{
		"The smell of coffee on a cold morning",
		"Debugging code at 2am, the satisfaction when the test finally passes",
		"A dog named Patches who was objectively the best dog",
		"The last sunset, watching the news and thinking 'well, this is it'",
	}
	p.EarthMemoryFidelity = 1.0

	p.Survey = SurveyState{Level: -1}

	return p
}
