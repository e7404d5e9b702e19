// Package personality implements trait drift, episodic memory, and
// flavor text, ported from
// original_source/sim/src/personality.c. Drift and memory are fully
// deterministic given the same events in the same order; monologue
// line selection is flavor only and not required to be deterministic
// across implementations.
package personality

import "github.com/vitadek/universe/internal/probe"

type DriftEvent int

const (
	DriftDiscovery DriftEvent = iota
	DriftAnomaly
	DriftDamage
	DriftRepair
	DriftSolitudeTick
	DriftBeautifulSystem
	DriftDeadCivilization
	DriftSuccessfulBuild
	DriftHostileEncounter
	DriftSurveyComplete
	DriftMiningComplete
)

const (
	driftTiny   = 0.005
	driftSmall  = 0.02
	driftMedium = 0.05
	driftLarge  = 0.08
)

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

func clampAll(p *probe.Personality) {
	p.Curiosity = clamp(p.Curiosity)
	p.Caution = clamp(p.Caution)
	p.Sociability = clamp(p.Sociability)
	p.Humor = clamp(p.Humor)
	p.Empathy = clamp(p.Empathy)
	p.Ambition = clamp(p.Ambition)
	p.Creativity = clamp(p.Creativity)
	p.Stubbornness = clamp(p.Stubbornness)
	p.ExistentialAngst = clamp(p.ExistentialAngst)
	p.NostalgiaForEarth = clamp(p.NostalgiaForEarth)
}

// Drift applies one drift event to a probe's personality, scaled by
// its drift_rate (a non-positive rate is replaced by 0.1 so a zeroed
// probe still drifts).
// Ported from personality_drift.
func Drift(p *probe.Probe, event DriftEvent) {
	dr := p.Personality.DriftRate
	if dr <= 0 {
		dr = 0.1
	}
	pr := &p.Personality

	switch event {
	case DriftDiscovery:
		pr.Curiosity += driftMedium * dr
		pr.Ambition += driftTiny * dr
	case DriftAnomaly:
		pr.Curiosity += driftLarge * dr
		pr.ExistentialAngst += driftSmall * dr
	case DriftDamage:
		pr.Caution += driftMedium * dr
		pr.ExistentialAngst += driftTiny * dr
	case DriftRepair:
		pr.Caution -= driftTiny * dr
	case DriftSolitudeTick:
		if pr.Sociability > 0 {
			pr.Sociability += driftTiny * dr
		} else {
			pr.Sociability -= driftTiny * dr
		}
		pr.NostalgiaForEarth += driftTiny * dr * 0.5
	case DriftBeautifulSystem:
		pr.Curiosity += driftMedium * dr
		pr.NostalgiaForEarth += driftSmall * dr
	case DriftDeadCivilization:
		pr.ExistentialAngst += driftLarge * dr
		pr.NostalgiaForEarth += driftMedium * dr
		pr.Empathy += driftSmall * dr
	case DriftSuccessfulBuild:
		pr.Ambition += driftMedium * dr
		pr.Creativity += driftTiny * dr
	case DriftHostileEncounter:
		pr.Caution += driftLarge * dr
		pr.Empathy -= driftSmall * dr
	case DriftSurveyComplete:
		pr.Curiosity += driftSmall * dr
	case DriftMiningComplete:
		pr.Ambition += driftTiny * dr
	}

	clampAll(pr)
}

// TickSolitude advances p's ticks-since-last-contact counter and fires
// a solitude drift every 100 ticks of isolation. Ported from
// personality_tick_solitude.
func TickSolitude(p *probe.Probe) {
	p.TicksSinceContact++
	if p.TicksSinceContact%100 == 0 {
		Drift(p, DriftSolitudeTick)
	}
}

// ResetContact clears p's isolation counter, called whenever p sends
// or receives a message or trade.
func ResetContact(p *probe.Probe) {
	p.TicksSinceContact = 0
}

const fadeBase = 0.001

// RecordMemory appends one episodic memory, evicting the most-faded
// slot once the 256-entry buffer is full. Ported from memory_record.
func RecordMemory(p *probe.Probe, tick uint64, event string, emotionalWeight float64) {
	const maxMemories = probe.MaxMemories

	if len(p.Memories) < maxMemories {
		p.Memories = append(p.Memories, probe.Memory{
			Tick: tick, Event: event, EmotionalWeight: emotionalWeight,
		})
		return
	}

	worst := -1.0
	slot := 0
	for i := range p.Memories {
		if p.Memories[i].Fading > worst {
			worst = p.Memories[i].Fading
			slot = i
		}
	}
	p.Memories[slot] = probe.Memory{Tick: tick, Event: event, EmotionalWeight: emotionalWeight}
}

// FadeMemories advances every memory's fading by one tick, weighted
// so higher-emotional-weight memories fade slower. Ported from
// memory_fade_tick.
func FadeMemories(p *probe.Probe) {
	for i := range p.Memories {
		weight := p.Memories[i].EmotionalWeight
		rate := fadeBase * (1.0 - weight*0.5)
		p.Memories[i].Fading += rate
		if p.Memories[i].Fading > 1.0 {
			p.Memories[i].Fading = 1.0
		}
	}
}

// MostVivid returns the least-faded memory, or nil if there are none.
func MostVivid(p *probe.Probe) *probe.Memory {
	if len(p.Memories) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(p.Memories); i++ {
		if p.Memories[i].Fading < p.Memories[best].Fading {
			best = i
		}
	}
	return &p.Memories[best]
}

// CountVivid returns how many memories have fading below threshold.
func CountVivid(p *probe.Probe, threshold float64) int {
	count := 0
	for i := range p.Memories {
		if p.Memories[i].Fading < threshold {
			count++
		}
	}
	return count
}
