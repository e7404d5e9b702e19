package probe

import "github.com/vitadek/universe/pkg/types"

// researchBaseTicks implements "research normally takes
// 50·(1+level) ticks".
func researchBaseTicks(currentLevel uint8) uint32 {
	return 50 * (1 + uint32(currentLevel))
}

// StartResearch begins advancing domain, discarding any unfinished
// prior counter. ticksTotal lets the caller apply the 0.4x shared
// research discount (society.SharedResearchTicks) instead of the
// normal rate.
func (p *Probe) StartResearch(domain types.TechDomain, ticksTotal uint32) {
	p.Research = ResearchState{
		Active:         true,
		Domain:         domain,
		TicksRemaining: ticksTotal,
		TicksTotal:     ticksTotal,
	}
}

// StartSelfResearch begins research at the normal (non-shared) rate
// for the domain's current level.
func (p *Probe) StartSelfResearch(domain types.TechDomain) {
	p.StartResearch(domain, researchBaseTicks(p.TechLevels[domain]))
}

// TickResearch advances the active counter by one tick, applying the
// tech level bump and recomputing derived stats on completion.
// Returns true if a level-up fired this tick.
func (p *Probe) TickResearch() bool {
	if !p.Research.Active {
		return false
	}
	if p.Research.TicksRemaining > 0 {
		p.Research.TicksRemaining--
	}
	if p.Research.TicksRemaining > 0 {
		return false
	}

	domain := p.Research.Domain
	if p.TechLevels[domain] < 255 {
		p.TechLevels[domain]++
	}
	p.Research = ResearchState{}
	p.RecomputeDerivedStats()
	return true
}

// RecomputeDerivedStats re-derives every tech-dependent rate from the
// current tech levels, called after any level change whether from
// self-research or a received share_tech. The base values match
// InitBob's starting constants at tech level 0 for the affected
// domain, scaling linearly per level thereafter.
func (p *Probe) RecomputeDerivedStats() {
	p.MaxSpeedC = 0.10 + 0.02*float64(p.TechLevels[types.TechPropulsion])
	p.SensorRangeLY = 20.0 + 5.0*float64(p.TechLevels[types.TechSensors])
	p.MiningRate = 1.0 + 0.3*float64(p.TechLevels[types.TechMining])
	p.ConstructionRate = 1.0 + 0.3*float64(p.TechLevels[types.TechConstruction])
	p.ComputeCapacity = 100.0 + 50.0*float64(p.TechLevels[types.TechComputing])
}
