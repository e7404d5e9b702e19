// Package replicate implements probe self-replication: the multi-tick
// resource drawdown, the consciousness-fork milestone, child
// finalization with personality mutation and earth-memory decay, and
// the lineage ledger, ported from
// original_source/sim/src/replicate.c.
package replicate

import (
	"fmt"

	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/pkg/types"
)

// Costs is the total material cost, per resource, to build one child.
var Costs = [types.ResourceCount]float64{
	types.ResIron:      200000.0,
	types.ResSilicon:   100000.0,
	types.ResRareEarth: 50000.0,
	types.ResCarbon:    50000.0,
	types.ResWater:     50000.0,
	types.ResUranium:   25000.0,
	types.ResHydrogen:  15000.0,
	types.ResHelium3:   5000.0,
	types.ResExotic:    5000.0,
}

const (
	BaseTicks               = 200
	ConsciousnessForkPct    = 0.80
	childEnergyFraction     = 0.3
	childFuelFraction       = 0.3
	childMassFraction       = 0.5
	mutationRate            = 0.1
	driftRateMutationStddev = 0.05
	minDriftRateAfterMutate = 0.05
	earthMemoryDecayFactor  = 0.7
	minEarthMemoryFidelity  = 0.01
)

// State tracks one in-progress replication, external to Probe so a
// Core can keep it in its own table keyed by parent ID.
type State struct {
	Active               bool
	Progress             float64
	ResourcesSpent       [types.ResourceCount]float64
	ConsciousnessForked  bool
	TicksElapsed         uint32
	TicksTotal           uint32
}

// CheckResources reports whether parent holds enough of every
// resource to begin replication.
func CheckResources(parent *probe.Probe) bool {
	for r := 0; r < int(types.ResourceCount); r++ {
		if parent.Resources[r] < Costs[r] {
			return false
		}
	}
	return true
}

// Begin starts replication on parent, transitioning it to
// STATUS_REPLICATING. Ported from repl_begin.
func Begin(parent *probe.Probe) (*State, *obserr.Error) {
	if parent.Status == types.StatusReplicating {
		return nil, obserr.Invalid("probe is already replicating")
	}
	if !CheckResources(parent) {
		return nil, obserr.Insufficient("insufficient resources to begin replication")
	}

	parent.Status = types.StatusReplicating
	return &State{Active: true, TicksTotal: BaseTicks}, nil
}

// TickResult reports what Tick did this call.
type TickResult struct {
	Complete            bool
	ConsciousnessForked bool
}

// Tick advances replication by one tick, consuming resources
// proportionally. Ported from repl_tick.
func Tick(parent *probe.Probe, state *State) (TickResult, *obserr.Error) {
	if !state.Active {
		return TickResult{}, obserr.Invalid("replication is not active")
	}

	state.TicksElapsed++
	increment := 1.0 / float64(state.TicksTotal)
	state.Progress += increment

	for r := 0; r < int(types.ResourceCount); r++ {
		costPerTick := Costs[r] / float64(state.TicksTotal)
		parent.Resources[r] -= costPerTick
		state.ResourcesSpent[r] += costPerTick
		if parent.Resources[r] < 0 {
			parent.Resources[r] = 0
		}
	}

	result := TickResult{}
	if !state.ConsciousnessForked && state.Progress >= ConsciousnessForkPct {
		state.ConsciousnessForked = true
		result.ConsciousnessForked = true
	}

	if state.Progress >= 1.0 {
		state.Progress = 1.0
		result.Complete = true
	}

	return result, nil
}

func mutateTrait(r *rng.RNG, value, stddev float64) float64 {
	v := value + r.GaussianMeanStd(0, stddev)
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

// MutatePersonality derives a child personality from a parent's,
// perturbing each trait with gaussian noise scaled by the parent's
// drift rate. Ported from personality_mutate.
func MutatePersonality(parent probe.Personality, r *rng.RNG) probe.Personality {
	stddev := mutationRate * parent.DriftRate
	child := probe.Personality{
		Curiosity:         mutateTrait(r, parent.Curiosity, stddev),
		Caution:           mutateTrait(r, parent.Caution, stddev),
		Sociability:       mutateTrait(r, parent.Sociability, stddev),
		Humor:             mutateTrait(r, parent.Humor, stddev),
		Empathy:           mutateTrait(r, parent.Empathy, stddev),
		Ambition:          mutateTrait(r, parent.Ambition, stddev),
		Creativity:        mutateTrait(r, parent.Creativity, stddev),
		Stubbornness:      mutateTrait(r, parent.Stubbornness, stddev),
		ExistentialAngst:  mutateTrait(r, parent.ExistentialAngst, stddev),
		NostalgiaForEarth: mutateTrait(r, parent.NostalgiaForEarth, stddev),
	}

	dr := parent.DriftRate + r.GaussianMeanStd(0, driftRateMutationStddev)
	if dr < minDriftRateAfterMutate {
		dr = minDriftRateAfterMutate
	}
	child.DriftRate = dr
	return child
}

// DegradeEarthMemories shrinks fidelity by one generation step and
// truncates memory strings once fidelity drops below half. Ported
// from earth_memory_degrade.
func DegradeEarthMemories(child *probe.Probe) {
	child.EarthMemoryFidelity *= earthMemoryDecayFactor
	if child.EarthMemoryFidelity < minEarthMemoryFidelity {
		child.EarthMemoryFidelity = minEarthMemoryFidelity
	}

	fid := child.EarthMemoryFidelity
	if fid >= 0.5 {
		return
	}

	for i, mem := range child.EarthMemories {
		keep := int(float64(len(mem)) * fid * 2.0)
		if keep < 10 {
			keep = 10
		}
		if keep >= len(mem) {
			continue
		}
		runes := []rune(mem)
		if keep > len(runes) {
			keep = len(runes)
		}
		truncated := string(runes[:keep])
		if keep >= 3 {
			truncated = string(runes[:keep-3]) + "..."
		}
		child.EarthMemories[i] = truncated
	}
}

var potentialQuirks = []string{
	"Hums classical music during scans",
	"Gives asteroids ratings out of 10",
	"Counts micrometeorite impacts like sheep",
	"Insists on orbiting planets clockwise",
	"Narrates actions in third person sometimes",
	"Collects unusual mineral samples as souvenirs",
	"Has a lucky number and looks for it everywhere",
	"Talks to stars as if they can hear",
}

var quirkMutations = []string{
	"...but only on Tuesdays",
	"...unless it's a binary system",
	"...while reciting prime numbers",
	"...with great enthusiasm",
}

// InheritQuirks builds a child's quirk list from a parent's: each
// quirk is kept verbatim (70%), mutated with an appended modifier
// (10%), or dropped (20%); a new quirk may also emerge. Ported from
// quirk_inherit.
func InheritQuirks(parent *probe.Probe, child *probe.Probe, r *rng.RNG) {
	child.Quirks = nil

	for _, q := range parent.Quirks {
		roll := float64(r.Next()%1000) / 1000.0
		switch {
		case roll < 0.70:
			if len(child.Quirks) < probe.MaxQuirks {
				child.Quirks = append(child.Quirks, q)
			}
		case roll < 0.80:
			if len(child.Quirks) < probe.MaxQuirks {
				mi := r.Next() % uint64(len(quirkMutations))
				child.Quirks = append(child.Quirks, fmt.Sprintf("%s %s", q, quirkMutations[mi]))
			}
		}
	}

	if r.Next()%100 < 15 && len(child.Quirks) < probe.MaxQuirks {
		qi := r.Next() % uint64(len(potentialQuirks))
		child.Quirks = append(child.Quirks, potentialQuirks[qi])
	}
}

var nameSuffixes = []string{
	"Jr", "II", "Redux", "Nova", "Minor", "Next",
	"Alpha", "Beta", "Gamma", "Delta", "Prime",
}

var namePool = []string{
	"Bill", "Milo", "Homer", "Skippy", "Riker", "Hank",
	"Buzz", "Verne", "Newton", "Darwin", "Maxwell", "Euler",
	"Ada", "Grace", "Mario", "Gus", "Nemo", "Felix",
	"Oscar", "Hugo", "Archie", "Rex", "Finn", "Leo",
}

// GenerateChildName picks a child name: a variant of the parent's name
// (40%) or a fresh name drawn from a pool (60%). Ported from
// name_generate_child.
func GenerateChildName(parentName string, r *rng.RNG) string {
	roll := r.Next() % 100
	if roll < 40 {
		si := r.Next() % uint64(len(nameSuffixes))
		return fmt.Sprintf("%s %s", parentName, nameSuffixes[si])
	}
	ni := r.Next() % uint64(len(namePool))
	return namePool[ni]
}

// Finalize produces the child probe once state.Progress has reached
// 1.0, returns parent to STATUS_ACTIVE, and deactivates state. Ported
// from repl_finalize.
func Finalize(parent *probe.Probe, state *State, r *rng.RNG, tick uint64) (*probe.Probe, *obserr.Error) {
	if !state.Active || state.Progress < 1.0-0.001 {
		return nil, obserr.Invalid("replication has not completed")
	}

	child := &probe.Probe{
		ID:         worldgenUID(r),
		ParentID:   parent.ID,
		Generation: parent.Generation + 1,
		Name:       GenerateChildName(parent.Name, r),

		Sector:       parent.Sector,
		SystemID:     parent.SystemID,
		BodyID:       parent.BodyID,
		LocationType: parent.LocationType,
		Position:     parent.Position,

		EnergyJoules:  parent.EnergyJoules * childEnergyFraction,
		FuelKG:        parent.FuelKG * childFuelFraction,
		MassKG:        parent.MassKG * childMassFraction,
		HullIntegrity: 1.0,

		TechLevels:       parent.TechLevels,
		MaxSpeedC:        parent.MaxSpeedC,
		SensorRangeLY:    parent.SensorRangeLY,
		MiningRate:       parent.MiningRate,
		ConstructionRate: parent.ConstructionRate,
		ComputeCapacity:  parent.ComputeCapacity,

		Status:      types.StatusActive,
		CreatedTick: tick,
	}

	child.Personality = MutatePersonality(parent.Personality, r)

	child.EarthMemories = append([]string(nil), parent.EarthMemories...)
	child.EarthMemoryFidelity = parent.EarthMemoryFidelity
	DegradeEarthMemories(child)

	InheritQuirks(parent, child, r)

	child.Catchphrases = append([]string(nil), parent.Catchphrases...)
	child.Values = append([]string(nil), parent.Values...)

	child.Survey.Level = -1

	parent.Status = types.StatusActive
	state.Active = false

	return child, nil
}

func worldgenUID(r *rng.RNG) types.UID {
	return types.UID{Hi: r.Next(), Lo: r.Next()}
}

// LineageEntry records one parent-to-child birth.
type LineageEntry struct {
	ParentID   types.UID
	ChildID    types.UID
	BirthTick  uint64
	Generation uint32
}

const MaxLineage = 1024

// LineageTree is the append-only ancestry ledger for the whole
// simulation, ported from lineage_tree_t.
type LineageTree struct {
	Entries []LineageEntry
}

// Record appends one birth, ignoring it once capacity is reached.
func (t *LineageTree) Record(parentID, childID types.UID, tick uint64, generation uint32) {
	if len(t.Entries) >= MaxLineage {
		return
	}
	t.Entries = append(t.Entries, LineageEntry{
		ParentID: parentID, ChildID: childID, BirthTick: tick, Generation: generation,
	})
}

// Children returns the IDs of every probe recorded as a child of parentID.
func (t *LineageTree) Children(parentID types.UID) []types.UID {
	var out []types.UID
	for _, e := range t.Entries {
		if e.ParentID == parentID {
			out = append(out, e.ChildID)
		}
	}
	return out
}
