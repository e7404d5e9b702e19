package events

import (
	"github.com/vitadek/universe/internal/personality"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

var discoveryDescs = [...]string{
	"Detected an unusual mineral deposit with rare isotope signatures",
	"Found a striking geological formation carved by ancient forces",
	"Discovered an ancient impact crater with exposed subsurface layers",
	"Located underground water reserves beneath the surface",
}

var hazardDescs = [...]string{
	"Solar flare eruption — intense radiation wave incoming",
	"Asteroid on collision course — evasive action required",
	"Intense radiation burst from nearby stellar remnant",
}

var anomalyDescs = [...]string{
	"Detected an unexplained signal — origin unknown, pattern non-natural",
	"Anomalous energy reading — does not match any known physics",
	"Found an artifact of clearly artificial origin — not of probe manufacture",
}

var wonderDescs = [...]string{
	"Binary sunset — two stars setting in perfect alignment, painting the sky",
	"Distant supernova visible — a star's death illuminating the void",
	"Pulsar beam sweeping past — a cosmic lighthouse in the dark",
	"Nebula glow — ionized gas clouds shimmering with stellar light",
}

var crisisDescs = [...]string{
	"Critical system failure — core subsystem malfunction detected",
	"Resource contamination — stored materials degrading unexpectedly",
	"Existential threat detected — unknown force destabilizing local space",
}

const encounterDesc = "Signs of life detected — biological signatures in surface readings"

var civPrefixes = [...]string{
	"Zar", "Kol", "Vex", "Tho", "Nir", "Pho", "Kel", "Myr",
	"Ish", "Dro", "Fen", "Gal", "Xen", "Lur", "Bri", "Qua",
}

var civSuffixes = [...]string{
	"ani", "oth", "ari", "ene", "umi", "axi", "oni", "eli",
	"ura", "ite", "oid", "esh", "ynn", "ath", "obe", "ica",
}

var artifactDescs = [...]string{
	"Crumbling stone monolith with geometric carvings",
	"Metallic structure of unknown alloy, partially buried",
	"Underground chamber with faded wall markings",
	"Dormant beacon emitting faint periodic signals",
	"Fossilized remains of large biological organisms",
	"Ruined settlement with grid-pattern streets",
	"Crystal storage medium containing encoded data",
	"Orbital debris ring from a collapsed space structure",
	"Chemical residue suggesting advanced industrial processes",
	"Warning beacon in an ancient symbolic language",
}

var culturalTraits = [...]string{
	"collaborative", "isolationist", "expansionist", "spiritual",
	"scientific", "artistic", "militaristic", "agrarian",
	"nomadic", "hierarchical", "egalitarian", "mercantile",
}

// HazardSolarFlare applies flare damage reduced by materials tech,
// ported from hazard_solar_flare.
func HazardSolarFlare(p *probe.Probe, severity float64) float64 {
	base := 0.1 + severity*0.2
	reduction := float64(p.TechLevels[types.TechMaterials]) * 0.02
	damage := base - reduction
	if damage < 0.01 {
		damage = 0.01
	}
	p.HullIntegrity -= damage
	if p.HullIntegrity < 0 {
		p.HullIntegrity = 0
	}
	return damage
}

// HazardAsteroid applies a direct-hit hull penalty, ported from
// hazard_asteroid.
func HazardAsteroid(p *probe.Probe, severity float64) float64 {
	damage := 0.05 + severity*0.2
	p.HullIntegrity -= damage
	if p.HullIntegrity < 0 {
		p.HullIntegrity = 0
	}
	return damage
}

// HazardRadiation damages compute capacity, ported from
// hazard_radiation.
func HazardRadiation(p *probe.Probe, severity float64) float64 {
	damage := 0.05 + severity*0.15
	p.ComputeCapacity -= damage
	if p.ComputeCapacity < 0 {
		p.ComputeCapacity = 0
	}
	return damage
}

func randomSeverity(r *rng.RNG) float64 {
	return float64(r.Next()%1000) / 1000.0
}

// Generate produces one event of the given type/subtype, applies its
// mechanical effect, logs it, and drifts the probe's personality plus
// records a memory. Ported from events_generate.
func Generate(log *Log, p *probe.Probe, evtType EventType, subtype int, sys *worldgen.System, tick uint64, r *rng.RNG) bool {
	severity := randomSeverity(r)
	desc := "Unknown event"
	var sysID types.UID
	if sys != nil {
		sysID = sys.ID
	}

	switch evtType {
	case EvtDiscovery:
		if subtype >= 0 && subtype < int(discSubtypeCount) {
			desc = discoveryDescs[subtype]
		}
		severity = 0.2 + severity*0.3

	case EvtHazard:
		if subtype >= 0 && subtype < int(hazSubtypeCount) {
			desc = hazardDescs[subtype]
		}
		severity = 0.3 + severity*0.7
		switch HazardSubtype(subtype) {
		case HazSolarFlare:
			HazardSolarFlare(p, severity)
		case HazAsteroidCollision:
			HazardAsteroid(p, severity)
		case HazRadiationBurst:
			HazardRadiation(p, severity)
		}

	case EvtAnomaly:
		if subtype >= 0 && subtype < int(anomSubtypeCount) {
			desc = anomalyDescs[subtype]
		}
		severity = 0.3 + severity*0.4
		if len(log.Anomalies) < MaxAnomalies {
			a := Anomaly{
				ID:             worldgen.GenerateUID(r),
				SystemID:       sysID,
				Subtype:        AnomalySubtype(subtype),
				Description:    desc,
				DiscoveredTick: tick,
			}
			if sys != nil && len(sys.Planets) > 0 {
				pi := int(r.Next() % uint64(len(sys.Planets)))
				a.PlanetID = sys.Planets[pi].ID
			}
			log.Anomalies = append(log.Anomalies, a)
		}

	case EvtWonder:
		if subtype >= 0 && subtype < int(wonderSubtypeCount) {
			desc = wonderDescs[subtype]
		}
		severity = 0.4 + severity*0.3

	case EvtCrisis:
		if subtype >= 0 && subtype < int(crisisSubtypeCount) {
			desc = crisisDescs[subtype]
		}
		severity = 0.6 + severity*0.4
		p.HullIntegrity -= 0.1 * severity
		if p.HullIntegrity < 0 {
			p.HullIntegrity = 0
		}

	case EvtEncounter:
		desc = encounterDesc
		severity = 0.5 + severity*0.4
		if sys != nil {
			for i := range sys.Planets {
				if sys.Planets[i].HabitabilityIndex > 0.3 {
					if civ, ok := GenerateCivilization(&sys.Planets[i], p.ID, tick, r); ok {
						if len(log.Civilizations) < MaxCivilizations {
							log.Civilizations = append(log.Civilizations, civ)
						}
						break
					}
				}
			}
		}

	default:
		return false
	}

	log.append(Event{
		Type: evtType, Subtype: subtype, ProbeID: p.ID, SystemID: sysID,
		Tick: tick, Severity: severity, Description: desc,
	})
	applyPersonalityAndMemory(p, evtType, desc, tick, severity)
	return true
}

func applyPersonalityAndMemory(p *probe.Probe, evtType EventType, desc string, tick uint64, severity float64) {
	drift := personality.DriftDiscovery
	weight := 0.3 + severity*0.5

	switch evtType {
	case EvtDiscovery:
		drift = personality.DriftDiscovery
	case EvtAnomaly:
		drift = personality.DriftAnomaly
	case EvtHazard:
		drift = personality.DriftDamage
		weight = 0.5 + severity*0.4
	case EvtEncounter:
		drift = personality.DriftDiscovery
		dr := p.Personality.DriftRate
		p.Personality.Empathy += 0.05 * dr
		p.Personality.Curiosity += 0.05 * dr
		if p.Personality.Empathy > 1 {
			p.Personality.Empathy = 1
		}
		if p.Personality.Curiosity > 1 {
			p.Personality.Curiosity = 1
		}
		weight = 0.7 + severity*0.3
	case EvtCrisis:
		drift = personality.DriftDamage
		weight = 0.8 + severity*0.2
	case EvtWonder:
		drift = personality.DriftBeautifulSystem
		dr := p.Personality.DriftRate
		p.Personality.NostalgiaForEarth += 0.03 * dr
		p.Personality.ExistentialAngst += 0.02 * dr
		if p.Personality.NostalgiaForEarth > 1 {
			p.Personality.NostalgiaForEarth = 1
		}
		if p.Personality.ExistentialAngst > 1 {
			p.Personality.ExistentialAngst = 1
		}
		weight = 0.6 + severity*0.3
	}

	personality.Drift(p, drift)
	personality.RecordMemory(p, tick, desc, weight)
}

var rolls = [...]struct {
	evtType      EventType
	freq         float64
	subtypeCount int
}{
	{EvtDiscovery, FreqDiscovery, int(discSubtypeCount)},
	{EvtAnomaly, FreqAnomaly, int(anomSubtypeCount)},
	{EvtHazard, FreqHazard, int(hazSubtypeCount)},
	{EvtEncounter, FreqEncounter, 1},
	{EvtCrisis, FreqCrisis, int(crisisSubtypeCount)},
	{EvtWonder, FreqWonder, int(wonderSubtypeCount)},
}

// TickProbe rolls all six independent Bernoulli trials for one probe
// in its current system, generating at most MaxEventsPerTick events.
// Ported from events_tick_probe.
func TickProbe(log *Log, p *probe.Probe, sys *worldgen.System, tick uint64, r *rng.RNG) int {
	if sys == nil || p.Status == types.StatusDestroyed {
		return 0
	}

	generated := 0
	for _, roll := range rolls {
		if generated >= MaxEventsPerTick {
			break
		}
		chance := float64(r.Next()%1000000) / 1000000.0
		if chance < roll.freq {
			subtype := int(r.Next() % uint64(roll.subtypeCount))
			if Generate(log, p, roll.evtType, subtype, sys, tick, r) {
				generated++
			}
		}
	}
	return generated
}

// CheckPlanetForLife rolls whether a planet harbors a civilization,
// returning its type or false if lifeless. Ported from
// alien_check_planet.
func CheckPlanetForLife(planet *worldgen.Planet, r *rng.RNG) (CivType, bool) {
	baseChance := planet.HabitabilityIndex * 0.0001
	baseChance *= 1.0 + planet.WaterCoverage
	if planet.Type == worldgen.PlanetRocky || planet.Type == worldgen.PlanetSuperEarth || planet.Type == worldgen.PlanetOcean {
		baseChance *= 2.0
	}

	roll := float64(r.Next()%1000000) / 1000000.0
	if roll >= baseChance {
		return 0, false
	}

	typeRoll := float64(r.Next()%1000) / 1000.0
	switch {
	case typeRoll < 0.40:
		return CivMicrobial, true
	case typeRoll < 0.60:
		return CivMulticellular, true
	case typeRoll < 0.75:
		return CivComplexEcosystem, true
	case typeRoll < 0.82:
		return CivPreTool, true
	case typeRoll < 0.87:
		return CivToolUsing, true
	case typeRoll < 0.90:
		return CivPreIndustrial, true
	case typeRoll < 0.93:
		return CivExtinct, true
	case typeRoll < 0.95:
		return CivIndustrial, true
	case typeRoll < 0.97:
		return CivInformationAge, true
	case typeRoll < 0.98:
		return CivSpacefaring, true
	case typeRoll < 0.99:
		return CivAdvancedSpacefaring, true
	case typeRoll < 0.995:
		return CivPostBiological, true
	default:
		return CivTranscended, true
	}
}

var typeBaseTech = [...]uint8{
	0, 0, 0,
	1, 2, 3,
	5, 8, 12,
	16, 18,
	0, 20,
}

// GenerateCivilization rolls for and, if present, fully populates an
// alien civilization on planet. Ported from alien_generate_civ.
func GenerateCivilization(planet *worldgen.Planet, discoveredBy types.UID, tick uint64, r *rng.RNG) (Civilization, bool) {
	civType, ok := CheckPlanetForLife(planet, r)
	if !ok {
		return Civilization{}, false
	}

	civ := Civilization{
		ID:             worldgen.GenerateUID(r),
		HomeworldID:    planet.ID,
		Type:           civType,
		DiscoveredTick: tick,
		DiscoveredBy:   discoveredBy,
	}

	pi := civPrefixes[r.Next()%uint64(len(civPrefixes))]
	si := civSuffixes[r.Next()%uint64(len(civSuffixes))]
	civ.Name = pi + si

	if civType <= CivComplexEcosystem {
		civ.Disposition = DispUnaware
	} else {
		civ.Disposition = CivDisposition(r.Next() % uint64(dispCount))
	}

	civ.TechLevel = typeBaseTech[civType]
	if civType == CivExtinct {
		civ.TechLevel = uint8(3 + r.Next()%15)
	}

	bioRoll := float64(r.Next()%100) / 100.0
	switch {
	case bioRoll < 0.70:
		civ.BiologyBase = BioCarbon
	case bioRoll < 0.85:
		civ.BiologyBase = BioSilicon
	case bioRoll < 0.95:
		civ.BiologyBase = BioAmmonia
	default:
		civ.BiologyBase = BioExotic
	}

	switch {
	case civType == CivExtinct:
		civ.State = CivStateExtinct
	case civType == CivTranscended:
		civ.State = CivAscending
	default:
		stateRoll := float64(r.Next()%100) / 100.0
		switch {
		case stateRoll < 0.50:
			civ.State = CivThriving
		case stateRoll < 0.70:
			civ.State = CivDeclining
		case stateRoll < 0.85:
			civ.State = CivEndangered
		case stateRoll < 0.95:
			civ.State = CivStateExtinct
		default:
			civ.State = CivAscending
		}
	}

	artifactCount := 0
	switch {
	case civ.State == CivStateExtinct || civType == CivExtinct:
		artifactCount = 2 + int(r.Next()%4)
	case civ.TechLevel >= 5:
		artifactCount = int(r.Next() % 3)
	}
	if artifactCount > MaxArtifacts {
		artifactCount = MaxArtifacts
	}
	civ.Artifacts = make([]string, artifactCount)
	for i := 0; i < artifactCount; i++ {
		civ.Artifacts[i] = artifactDescs[r.Next()%uint64(len(artifactDescs))]
	}

	const maxCulturalTraits = 4
	traitCount := 1 + int(r.Next()%maxCulturalTraits)
	civ.CulturalTraits = make([]string, traitCount)
	for i := 0; i < traitCount; i++ {
		civ.CulturalTraits[i] = culturalTraits[r.Next()%uint64(len(culturalTraits))]
	}

	return civ, true
}
