package personality

import (
	"strings"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/worldgen"
)

var (
	discoveryHumorHigh = []string{
		"Well, well, well... what do we have here?",
		"New star system? Don't mind if I do.",
		"Another day, another discovery. I love this job.",
	}
	discoveryCuriosityHigh = []string{
		"Fascinating. The data here is extraordinary.",
		"This warrants further investigation.",
		"I need to analyze every angle of this.",
	}
	discoveryNeutral = []string{
		"Logged a new system.",
		"Discovery recorded.",
		"Added to the star catalog.",
	}
	damageCautionHigh = []string{
		"That was too close. I need to be more careful.",
		"Hull breach... this is exactly what I was worried about.",
		"I should have seen that coming. Damage noted.",
	}
	damageHumorHigh = []string{
		"Well, that's not ideal.",
		"Just a scratch. A very alarming scratch.",
		"Note to self: space is trying to kill me. Again.",
	}
	damageNeutral = []string{
		"Hull damage sustained.",
		"Damage report logged.",
		"Structural integrity compromised slightly.",
	}
	solitudeLines = []string{
		"It's quiet out here. Really quiet.",
		"Just me and the void. As usual.",
		"I wonder what Earth looks like now...",
		"Talking to myself again. Classic Bob.",
	}
	beautifulLines = []string{
		"Now that is a view worth crossing the void for.",
		"Reminds me of something... Earth, maybe.",
		"If I had eyes, they'd be tearing up right now.",
	}
	deadCivLines = []string{
		"They were here. Now they're gone. Makes you think.",
		"Ruins everywhere... what happened to them?",
		"Could this happen to us? To me?",
	}
	buildLines = []string{
		"Construction complete. That's satisfying.",
		"Built something today. Good day.",
		"Another accomplishment for the log.",
	}
	hostileLines = []string{
		"Contact! And not the friendly kind.",
		"Well, so much for diplomacy.",
		"Adding that to the threat database.",
	}
	surveyLines = []string{
		"Survey complete. Data secured.",
		"More knowledge, more power.",
		"Added to the database.",
	}
	miningLines = []string{
		"Ore processed and stored.",
		"Resources acquired. The grind continues.",
		"Mining complete.",
	}
	anomalyLines = []string{
		"That's... not in any database I have.",
		"Now THAT's interesting...",
		"Anomaly detected. My curiosity is off the charts.",
	}
	repairLines = []string{
		"Patched up. Feeling better.",
		"Repairs done. Back to business.",
		"Hull restored. Let's not do that again.",
	}
)

// pickLine selects deterministically from a candidate list using a
// hash of the probe's current personality, matching pick_line's
// intentionally non-random (but flavor-only) selection.
func pickLine(lines []string, p *probe.Probe) string {
	if len(lines) == 0 {
		return ""
	}
	sum := p.Personality.Curiosity + p.Personality.Humor + p.Personality.Caution
	idx := int(sum*1000.0) & 0x7FFFFFFF
	return lines[idx%len(lines)]
}

// Monologue generates one flavor line for the given drift event.
// Ported from monologue_generate.
func Monologue(p *probe.Probe, event DriftEvent) string {
	pr := &p.Personality

	switch event {
	case DriftDiscovery:
		switch {
		case pr.Humor > 0.6:
			return pickLine(discoveryHumorHigh, p)
		case pr.Curiosity > 0.6:
			return pickLine(discoveryCuriosityHigh, p)
		default:
			return pickLine(discoveryNeutral, p)
		}
	case DriftDamage:
		switch {
		case pr.Caution > 0.6:
			return pickLine(damageCautionHigh, p)
		case pr.Humor > 0.6:
			return pickLine(damageHumorHigh, p)
		default:
			return pickLine(damageNeutral, p)
		}
	case DriftSolitudeTick:
		return pickLine(solitudeLines, p)
	case DriftBeautifulSystem:
		return pickLine(beautifulLines, p)
	case DriftDeadCivilization:
		return pickLine(deadCivLines, p)
	case DriftSuccessfulBuild:
		return pickLine(buildLines, p)
	case DriftHostileEncounter:
		return pickLine(hostileLines, p)
	case DriftSurveyComplete:
		return pickLine(surveyLines, p)
	case DriftMiningComplete:
		return pickLine(miningLines, p)
	case DriftAnomaly:
		return pickLine(anomalyLines, p)
	case DriftRepair:
		return pickLine(repairLines, p)
	default:
		return "..."
	}
}

// OpinionFormSystem records an impression of a newly surveyed system
// as a memory, ported from opinion_form_system.
func OpinionFormSystem(p *probe.Probe, sys *worldgen.System, tick uint64) {
	bestHab := 0.0
	bestResource := 0.0
	rockyCount := 0
	gasCount := 0

	for i := range sys.Planets {
		pl := &sys.Planets[i]
		if pl.HabitabilityIndex > bestHab {
			bestHab = pl.HabitabilityIndex
		}
		for _, r := range pl.Resources {
			if r > bestResource {
				bestResource = r
			}
		}
		if pl.Type == worldgen.PlanetRocky || pl.Type == worldgen.PlanetSuperEarth {
			rockyCount++
		}
		if pl.Type.IsGasOrIceGiant() {
			gasCount++
		}
	}

	var opinion string
	switch {
	case bestResource > 0.7:
		opinion = sys.Name + ": rich mining potential"
	case bestHab > 0.6:
		opinion = sys.Name + ": beautiful habitable world"
	case gasCount > 0 && p.Personality.Curiosity > 0.5:
		opinion = sys.Name + ": interesting gas giant system"
	case len(sys.Planets) == 0:
		opinion = sys.Name + ": barren, no planets. Moving on."
	default:
		opinion = sys.Name + ": unremarkable."
	}

	weight := 0.3
	if bestResource > 0.5 || bestHab > 0.5 {
		weight = 0.6
	}
	RecordMemory(p, tick, opinion, weight)
}

var foodNames = []string{
	"Pancake", "Burrito", "Waffle", "Spaghetti", "Dumpling",
	"Croissant", "Ramen", "Taco", "Pretzel", "Muffin",
	"Kimchi", "Gyoza", "Falafel", "Churro", "Brioche",
	"Lasagna", "Baklava", "Tempura", "Risotto", "Goulash",
}

// CheckFoodNamingQuirk renames sys when the probe carries the
// food-naming quirk and is under hull stress, ported from
// quirk_check_naming.
func CheckFoodNamingQuirk(p *probe.Probe, sys *worldgen.System) bool {
	hasQuirk := false
	for _, q := range p.Quirks {
		lower := strings.ToLower(q)
		if strings.Contains(lower, "food") {
			hasQuirk = true
			break
		}
	}
	if !hasQuirk {
		return false
	}
	if p.HullIntegrity >= 0.5 {
		return false
	}

	var hash uint32
	for _, c := range sys.Name {
		hash = hash*31 + uint32(c)
	}
	sys.Name = foodNames[hash%uint32(len(foodNames))]
	return true
}
