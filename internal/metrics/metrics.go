// Package metrics accumulates the tick-scheduler's step-16 sample
// ("metrics" command fields) as a single plain aggregate struct rather
// than a metrics library, mirroring original_source's per-tick
// metrics accumulation.
package metrics

import (
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/pkg/types"
)

// Snapshot is the point-in-time sample returned by the "metrics" pipe
// command.
type Snapshot struct {
	Tick                 uint64  `json:"tick"`
	ProbesSpawned        int     `json:"probes_spawned"`
	AvgTech              float64 `json:"avg_tech"`
	AvgTrust             float64 `json:"avg_trust"`
	SystemsExplored      int     `json:"systems_explored"`
	TotalDiscoveries     int     `json:"total_discoveries"`
	TotalHazardsSurvived int     `json:"total_hazards_survived"`
}

// Accumulator tracks running counters across the lifetime of a run;
// Sample folds them with the live probe table into a Snapshot.
type Accumulator struct {
	TotalDiscoveries     int
	TotalHazardsSurvived int
	exploredSystems      map[types.UID]struct{}
}

// NewAccumulator returns a zeroed counter set.
func NewAccumulator() *Accumulator {
	return &Accumulator{exploredSystems: make(map[types.UID]struct{})}
}

// RecordDiscovery increments the discovery counter, called whenever
// events.TickProbe fires an events.EvtDiscovery.
func (a *Accumulator) RecordDiscovery() { a.TotalDiscoveries++ }

// RecordHazardSurvived increments the hazard counter for any hazard
// event that leaves its probe not destroyed and with hull above zero.
func (a *Accumulator) RecordHazardSurvived() { a.TotalHazardsSurvived++ }

// RecordSystemExplored marks a system UID visited at least once; the
// set dedupes so re-visits do not inflate the count.
func (a *Accumulator) RecordSystemExplored(systemID types.UID) {
	a.exploredSystems[systemID] = struct{}{}
}

// Sample computes an instantaneous snapshot: average tech level and
// average pairwise trust are derived fresh from the probe table each
// call rather than tracked incrementally, since both change with the
// population's composition every tick.
func (a *Accumulator) Sample(tick uint64, probes []*probe.Probe) Snapshot {
	snap := Snapshot{
		Tick:                 tick,
		ProbesSpawned:        len(probes),
		SystemsExplored:      len(a.exploredSystems),
		TotalDiscoveries:     a.TotalDiscoveries,
		TotalHazardsSurvived: a.TotalHazardsSurvived,
	}
	if len(probes) == 0 {
		return snap
	}

	var techSum float64
	var trustSum float64
	var trustPairs int
	for _, p := range probes {
		for _, lvl := range p.TechLevels {
			techSum += float64(lvl)
		}
		for _, rel := range p.Relationships {
			trustSum += rel.Trust
			trustPairs++
		}
	}
	snap.AvgTech = techSum / float64(len(probes)*int(types.TechDomainCount))
	if trustPairs > 0 {
		snap.AvgTrust = trustSum / float64(trustPairs)
	}
	return snap
}
