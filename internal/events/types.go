// Package events implements the six per-tick Bernoulli event trials,
// hazard effects, and alien civilization generation,
// ported from original_source/sim/src/events.h and events.c.
package events

import "github.com/vitadek/universe/pkg/types"

type EventType int

const (
	EvtDiscovery EventType = iota
	EvtAnomaly
	EvtHazard
	EvtEncounter
	EvtCrisis
	EvtWonder
	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EvtDiscovery: "discovery",
	EvtAnomaly:   "anomaly",
	EvtHazard:    "hazard",
	EvtEncounter: "encounter",
	EvtCrisis:    "crisis",
	EvtWonder:    "wonder",
}

func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "unknown"
	}
	return eventTypeNames[t]
}

// EventTypeFromName resolves the lower-snake wire name
// back to an EventType. Returns false if unrecognized.
func EventTypeFromName(name string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

const (
	FreqDiscovery = 0.005
	FreqAnomaly   = 0.001
	FreqHazard    = 0.002
	FreqEncounter = 0.0002
	FreqCrisis    = 0.00005
	FreqWonder    = 0.0003
)

const (
	MaxEventsPerTick = 8
	MaxEventLog      = 512
	MaxAnomalies     = 256
	MaxCivilizations = 128
	MaxArtifacts     = 64
)

type DiscoverySubtype int

const (
	DiscMineralDeposit DiscoverySubtype = iota
	DiscGeologicalFormation
	DiscImpactCrater
	DiscUndergroundWater
	discSubtypeCount
)

type HazardSubtype int

const (
	HazSolarFlare HazardSubtype = iota
	HazAsteroidCollision
	HazRadiationBurst
	hazSubtypeCount
)

type AnomalySubtype int

const (
	AnomUnexplainedSignal AnomalySubtype = iota
	AnomEnergyReading
	AnomArtificialArtifact
	anomSubtypeCount
)

type WonderSubtype int

const (
	WonderBinarySunset WonderSubtype = iota
	WonderSupernova
	WonderPulsar
	WonderNebula
	wonderSubtypeCount
)

type CrisisSubtype int

const (
	CrisisSystemFailure CrisisSubtype = iota
	CrisisResourceContamination
	CrisisExistentialThreat
	crisisSubtypeCount
)

// CivType enumerates the progression of civilization development
// observed on a discovered world.
type CivType int

const (
	CivMicrobial CivType = iota
	CivMulticellular
	CivComplexEcosystem
	CivPreTool
	CivToolUsing
	CivPreIndustrial
	CivExtinct
	CivIndustrial
	CivInformationAge
	CivSpacefaring
	CivAdvancedSpacefaring
	CivPostBiological
	CivTranscended
)

type CivDisposition int

const (
	DispUnaware CivDisposition = iota
	DispCurious
	DispCautious
	DispWelcoming
	DispHostile
	DispIndifferent
	dispCount
)

type BioBase int

const (
	BioCarbon BioBase = iota
	BioSilicon
	BioAmmonia
	BioExotic
)

type CivState int

const (
	CivThriving CivState = iota
	CivDeclining
	CivEndangered
	CivStateExtinct
	CivAscending
)

// Event is one logged occurrence in a probe's event history.
type Event struct {
	Type        EventType
	Subtype     int
	ProbeID     types.UID
	SystemID    types.UID
	Tick        uint64
	Severity    float64
	Description string
}

// Anomaly is a persistent marker left behind by an EvtAnomaly roll.
type Anomaly struct {
	ID             types.UID
	SystemID       types.UID
	PlanetID       types.UID
	Subtype        AnomalySubtype
	Description    string
	DiscoveredTick uint64
	Resolved       bool
}

// Civilization describes an alien species discovered on a planet.
type Civilization struct {
	ID              types.UID
	HomeworldID     types.UID
	Type            CivType
	Name            string
	Disposition     CivDisposition
	TechLevel       uint8
	BiologyBase     BioBase
	State           CivState
	Artifacts       []string
	CulturalTraits  []string
	DiscoveredTick  uint64
	DiscoveredBy    types.UID
}

// Log is the append-only, capacity-bounded event/anomaly/civ store a
// Core keeps for the whole simulation.
type Log struct {
	Events        []Event
	Anomalies     []Anomaly
	Civilizations []Civilization
}

func (l *Log) append(e Event) {
	if len(l.Events) >= MaxEventLog {
		return
	}
	l.Events = append(l.Events, e)
}

// ForProbe returns every logged event for the given probe.
func (l *Log) ForProbe(id types.UID) []Event {
	var out []Event
	for _, e := range l.Events {
		if e.ProbeID == id {
			out = append(out, e)
		}
	}
	return out
}

// UnresolvedAnomalies returns the unresolved anomalies for a system.
func (l *Log) UnresolvedAnomalies(systemID types.UID) []Anomaly {
	var out []Anomaly
	for _, a := range l.Anomalies {
		if a.SystemID == systemID && !a.Resolved {
			out = append(out, a)
		}
	}
	return out
}

// CivilizationOn returns the civilization whose homeworld is planetID, if any.
func (l *Log) CivilizationOn(planetID types.UID) *Civilization {
	for i := range l.Civilizations {
		if l.Civilizations[i].HomeworldID == planetID {
			return &l.Civilizations[i]
		}
	}
	return nil
}
