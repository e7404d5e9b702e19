package worldgen

import (
	"fmt"
	"math"

	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/pkg/types"
)

const sectorSizeLY = 100.0

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GenerateUID draws a fresh 128-bit identifier via two PRNG draws.
func GenerateUID(r *rng.RNG) types.UID {
	return types.UID{Hi: r.Next(), Lo: r.Next()}
}

func generateName(r *rng.RNG) string {
	pre := namePrefix[r.Range(uint64(len(namePrefix)))]
	suf := nameSuffix[r.Range(uint64(len(nameSuffix)))]
	if r.Double() < 0.6 {
		mid := nameMiddle[r.Range(uint64(len(nameMiddle)))]
		return pre + mid + suf
	}
	return pre + suf
}

// spiralArmDensity evaluates the 4-arm logarithmic spiral model at a
// galactic (x,y) position in light-years, ported verbatim from
// spiral_arm_density in original_source/src/generate.c.
func spiralArmDensity(gx, gy float64) float64 {
	r := math.Sqrt(gx*gx + gy*gy)
	if r < 100.0 {
		return 1.0
	}

	theta := math.Atan2(gy, gx)
	best := 0.0

	const pitch = 0.22
	const armWidth = 0.4
	for arm := 0; arm < 4; arm++ {
		armOffset := float64(arm) * (math.Pi / 2.0)
		armTheta := pitch*math.Log(r/1000.0) + armOffset

		diff := theta - armTheta
		diff = math.Mod(diff+3.0*math.Pi, 2.0*math.Pi) - math.Pi

		density := math.Exp(-(diff * diff) / (2.0 * armWidth * armWidth))
		if density > best {
			best = density
		}
	}

	const base = 0.15
	radialFalloff := math.Exp(-r / 40000.0)
	return (base + (1.0-base)*best) * radialFalloff
}

// HabitableZone returns the inner/outer AU boundary for a star of the
// given solar luminosity.
func HabitableZone(luminositySolar float64) (innerAU, outerAU float64) {
	sqrtL := math.Sqrt(luminositySolar)
	return sqrtL * 0.95, sqrtL * 1.37
}

func generateStar(r *rng.RNG, pos types.Vec3) Star {
	var s Star
	s.ID = GenerateUID(r)
	s.Name = generateName(r)
	s.Position = pos

	roll := r.Double()
	for _, row := range starTable {
		if roll <= row.cumulative {
			s.Class = row.class
			t := r.Double()
			s.TemperatureK = lerp(row.tempLo, row.tempHi, t)
			s.MassSolar = lerp(row.massLo, row.massHi, t)
			s.LuminositySolar = lerp(row.lumLo, row.lumHi, t)
			break
		}
	}

	s.AgeGyr = lerp(0.1, 13.0, r.Double())
	s.Metallicity = r.Gaussian() * 0.3
	return s
}

func pickPlanetType(r *rng.RNG, orbitalAU, hzInner, hzOuter float64) PlanetType {
	v := r.Double()

	switch {
	case orbitalAU < hzInner*0.5:
		switch {
		case v < 0.3:
			return PlanetLava
		case v < 0.6:
			return PlanetIron
		case v < 0.8:
			return PlanetRocky
		default:
			return PlanetDesert
		}
	case orbitalAU >= hzInner && orbitalAU <= hzOuter:
		switch {
		case v < 0.25:
			return PlanetRocky
		case v < 0.45:
			return PlanetOcean
		case v < 0.60:
			return PlanetSuperEarth
		case v < 0.75:
			return PlanetDesert
		case v < 0.85:
			return PlanetCarbon
		default:
			return PlanetIce
		}
	case orbitalAU < hzInner:
		switch {
		case v < 0.35:
			return PlanetRocky
		case v < 0.55:
			return PlanetDesert
		case v < 0.70:
			return PlanetSuperEarth
		case v < 0.85:
			return PlanetLava
		default:
			return PlanetIron
		}
	case orbitalAU < hzOuter*5.0:
		switch {
		case v < 0.35:
			return PlanetGasGiant
		case v < 0.55:
			return PlanetIceGiant
		case v < 0.70:
			return PlanetIce
		case v < 0.85:
			return PlanetRocky
		default:
			return PlanetSuperEarth
		}
	default:
		switch {
		case v < 0.40:
			return PlanetIceGiant
		case v < 0.65:
			return PlanetGasGiant
		case v < 0.80:
			return PlanetIce
		case v < 0.95:
			return PlanetRogue
		default:
			return PlanetCarbon
		}
	}
}

func planetMassRange(t PlanetType) (lo, hi float64) {
	switch t {
	case PlanetGasGiant:
		return 10.0, 4000.0
	case PlanetIceGiant:
		return 5.0, 50.0
	case PlanetRocky:
		return 0.01, 2.0
	case PlanetSuperEarth:
		return 1.5, 10.0
	case PlanetOcean:
		return 0.5, 8.0
	case PlanetLava:
		return 0.1, 3.0
	case PlanetDesert:
		return 0.1, 5.0
	case PlanetIce:
		return 0.01, 5.0
	case PlanetCarbon:
		return 0.5, 8.0
	case PlanetIron:
		return 0.1, 4.0
	case PlanetRogue:
		return 0.001, 15.0
	default:
		return 0.1, 2.0
	}
}

func planetRadius(t PlanetType, massEarth float64) float64 {
	if t.IsGasOrIceGiant() {
		base := 4.0
		if t == PlanetGasGiant {
			base = 11.0
		}
		return math.Pow(massEarth, 0.06) * base
	}
	return math.Pow(massEarth, 0.27)
}

func generateResources(r *rng.RNG, t PlanetType) [types.ResourceCount]float64 {
	var res [types.ResourceCount]float64
	d := r.Double

	switch t {
	case PlanetRocky, PlanetDesert:
		res[types.ResIron] = 0.3 + 0.5*d()
		res[types.ResSilicon] = 0.3 + 0.5*d()
		res[types.ResRareEarth] = 0.05 + 0.15*d()
		res[types.ResCarbon] = 0.05 + 0.1*d()
		res[types.ResUranium] = 0.01 + 0.05*d()
	case PlanetIron:
		res[types.ResIron] = 0.6 + 0.4*d()
		res[types.ResSilicon] = 0.1 + 0.2*d()
		res[types.ResRareEarth] = 0.1 + 0.3*d()
		res[types.ResUranium] = 0.03 + 0.1*d()
	case PlanetOcean:
		res[types.ResWater] = 0.7 + 0.3*d()
		res[types.ResSilicon] = 0.1 + 0.2*d()
		res[types.ResIron] = 0.05 + 0.15*d()
	case PlanetIce:
		res[types.ResWater] = 0.5 + 0.5*d()
		res[types.ResHydrogen] = 0.1 + 0.2*d()
		res[types.ResHelium3] = 0.01 + 0.05*d()
	case PlanetGasGiant:
		res[types.ResHydrogen] = 0.7 + 0.3*d()
		res[types.ResHelium3] = 0.1 + 0.3*d()
	case PlanetIceGiant:
		res[types.ResHydrogen] = 0.3 + 0.3*d()
		res[types.ResWater] = 0.3 + 0.3*d()
		res[types.ResHelium3] = 0.05 + 0.15*d()
	case PlanetCarbon:
		res[types.ResCarbon] = 0.6 + 0.4*d()
		res[types.ResSilicon] = 0.1 + 0.2*d()
		res[types.ResRareEarth] = 0.05 + 0.1*d()
	case PlanetLava:
		res[types.ResIron] = 0.4 + 0.4*d()
		res[types.ResSilicon] = 0.2 + 0.3*d()
		res[types.ResRareEarth] = 0.1 + 0.2*d()
	case PlanetSuperEarth:
		res[types.ResIron] = 0.2 + 0.4*d()
		res[types.ResSilicon] = 0.2 + 0.4*d()
		res[types.ResWater] = 0.1 + 0.3*d()
		res[types.ResRareEarth] = 0.05 + 0.15*d()
		res[types.ResCarbon] = 0.05 + 0.15*d()
	case PlanetRogue:
		res[types.ResWater] = 0.1 + 0.3*d()
		res[types.ResIron] = 0.1 + 0.2*d()
	}

	if d() < 0.005 {
		res[types.ResExotic] = 0.01 + 0.05*d()
	}
	return res
}

func generatePlanet(r *rng.RNG, index int, star *Star) Planet {
	var p Planet
	p.ID = GenerateUID(r)
	p.Index = index
	p.Name = fmt.Sprintf("%s %c", star.Name, byte('b'+index))

	var baseAU float64
	if index == 0 {
		baseAU = 0.1 + 0.3*r.Double()
	} else {
		baseAU = (0.2 + 0.2*r.Double()) * math.Pow(1.4+0.8*r.Double(), float64(index))
	}
	lum := star.LuminositySolar
	if lum < 0.01 {
		lum = 0.01
	}
	p.OrbitalRadiusAU = baseAU * math.Sqrt(lum)

	hzInner, hzOuter := HabitableZone(star.LuminositySolar)
	p.Type = pickPlanetType(r, p.OrbitalRadiusAU, hzInner, hzOuter)

	mLo, mHi := planetMassRange(p.Type)
	p.MassEarth = lerp(mLo, mHi, r.Double())
	p.RadiusEarth = planetRadius(p.Type, p.MassEarth)

	starMass := star.MassSolar
	if starMass < 0.01 {
		starMass = 0.01
	}
	a3 := p.OrbitalRadiusAU * p.OrbitalRadiusAU * p.OrbitalRadiusAU
	periodYears := math.Sqrt(a3 / starMass)
	p.OrbitalPeriodDays = periodYears * 365.25

	p.Eccentricity = r.Double() * 0.3
	if r.Double() < 0.05 {
		p.Eccentricity = 0.3 + r.Double()*0.5
	}
	p.AxialTiltDeg = r.Double() * 45.0
	if r.Double() < 0.1 {
		p.AxialTiltDeg = 45.0 + r.Double()*135.0
	}
	p.RotationPeriodHours = 5.0 + r.Double()*200.0
	if p.Type.IsGasOrIceGiant() {
		p.RotationPeriodHours = 8.0 + r.Double()*20.0
	}

	flux := star.LuminositySolar / (p.OrbitalRadiusAU * p.OrbitalRadiusAU)
	tEff := 278.0 * math.Pow(flux, 0.25)
	p.SurfaceTempK = tEff

	switch p.Type {
	case PlanetGasGiant, PlanetIceGiant:
		p.AtmospherePressureAtm = 100.0 + r.Double()*900.0
	case PlanetRocky, PlanetDesert, PlanetIron:
		p.AtmospherePressureAtm = r.Double() * 2.0
	case PlanetSuperEarth, PlanetOcean:
		p.AtmospherePressureAtm = 0.5 + r.Double()*5.0
	case PlanetLava:
		p.AtmospherePressureAtm = 0.1 + r.Double()*10.0
	case PlanetIce, PlanetRogue:
		p.AtmospherePressureAtm = r.Double() * 0.5
	case PlanetCarbon:
		p.AtmospherePressureAtm = 0.5 + r.Double()*3.0
	default:
		p.AtmospherePressureAtm = r.Double() * 1.0
	}

	if p.AtmospherePressureAtm > 0.1 && !p.Type.IsGasOrIceGiant() {
		greenhouse := 1.0 + 0.1*math.Log(1.0+p.AtmospherePressureAtm)
		p.SurfaceTempK *= greenhouse
	}

	p.WaterCoverage = 0.0
	switch {
	case p.Type == PlanetOcean:
		p.WaterCoverage = 0.6 + r.Double()*0.4
	case p.Type == PlanetSuperEarth || p.Type == PlanetRocky:
		if p.SurfaceTempK > 200 && p.SurfaceTempK < 400 && p.AtmospherePressureAtm > 0.01 {
			p.WaterCoverage = r.Double() * 0.8
		}
	}

	switch {
	case p.Type == PlanetGasGiant:
		p.MagneticField = 5.0 + r.Double()*15.0
	case p.MassEarth > 0.5 && p.RotationPeriodHours < 48.0:
		p.MagneticField = 0.1 + r.Double()*2.0
	default:
		p.MagneticField = r.Double() * 0.1
	}

	p.HabitabilityIndex = 0.0
	if p.SurfaceTempK > 200 && p.SurfaceTempK < 340 {
		tempScore := 1.0 - math.Abs(p.SurfaceTempK-288.0)/100.0
		if tempScore < 0 {
			tempScore = 0
		}
		atmScore := 0.2
		if p.AtmospherePressureAtm > 0.1 && p.AtmospherePressureAtm < 5.0 {
			atmScore = 1.0
		}
		waterScore := p.WaterCoverage
		magScore := 0.3
		if p.MagneticField > 0.1 {
			magScore = 1.0
		}
		massScore := 0.2
		if p.MassEarth > 0.3 && p.MassEarth < 5.0 {
			massScore = 1.0
		}
		p.HabitabilityIndex = clampF(tempScore*0.3+atmScore*0.2+waterScore*0.2+magScore*0.15+massScore*0.15, 0, 1)
	}

	p.Rings = false
	if p.Type == PlanetGasGiant && r.Double() < 0.4 {
		p.Rings = true
	}
	if p.Type == PlanetIceGiant && r.Double() < 0.2 {
		p.Rings = true
	}

	switch {
	case p.Type == PlanetGasGiant:
		p.MoonCount = uint8(r.Range(8)) + 2
	case p.Type == PlanetIceGiant:
		p.MoonCount = uint8(r.Range(5)) + 1
	case p.MassEarth > 0.1:
		p.MoonCount = uint8(r.Range(3))
	default:
		p.MoonCount = 0
	}

	p.Resources = generateResources(r, p.Type)

	// Small per-planet chance of a latent alien artifact, discovered
	// only by a level-4 survey.
	if r.Double() < 0.01 {
		magnitude := 0.2 + r.Double()*0.8
		artType := ArtifactType(r.Range(4))
		p.Artifact = &Artifact{
			Type:        artType,
			Magnitude:   magnitude,
			Description: artifactDescription(artType),
		}
	}

	return p
}

func artifactDescription(t ArtifactType) string {
	switch t {
	case ArtifactTechBoost:
		return "a derelict device humming with unfamiliar technology"
	case ArtifactResourceCache:
		return "a sealed cache of refined material, untouched for eons"
	case ArtifactStarMap:
		return "a crystalline star chart of unknown origin"
	case ArtifactCommAmplifier:
		return "an alien comm relay, still faintly powered"
	default:
		return "an unidentified artifact"
	}
}

func generateSystem(r *rng.RNG, pos types.Vec3) System {
	var sys System
	sys.ID = GenerateUID(r)
	sys.Position = pos

	roll := r.Double()
	starCount := 1
	switch {
	case roll < 0.70:
		starCount = 1
	case roll < 0.95:
		starCount = 2
	default:
		starCount = 3
	}

	sys.Stars = make([]Star, starCount)
	for i := 0; i < starCount; i++ {
		starPos := pos
		if i > 0 {
			starPos.X += (r.Double() - 0.5) * 0.001
			starPos.Y += (r.Double() - 0.5) * 0.001
		}
		sys.Stars[i] = generateStar(r, starPos)
	}

	sys.Name = sys.Stars[0].Name

	primary := &sys.Stars[0]
	var basePlanets int
	switch {
	case primary.Class == StarNeutron || primary.Class == StarBlackHole:
		basePlanets = int(r.Range(3))
	case primary.Class == StarO || primary.Class == StarB:
		basePlanets = 1 + int(r.Range(4))
	default:
		basePlanets = 2 + int(r.Range(10))
	}
	if primary.Metallicity > 0.1 {
		basePlanets += 1 + int(r.Range(2))
	}
	if starCount > 1 {
		basePlanets = basePlanets * 2 / 3
	}

	planetCount := clampInt(basePlanets, 0, MaxPlanets)
	sys.Planets = make([]Planet, planetCount)
	for i := 0; i < planetCount; i++ {
		sys.Planets[i] = generatePlanet(r, i, primary)
	}

	return sys
}

// SectorStarCount computes how many systems a sector contains, ported
// from sector_star_count in original_source/src/generate.c.
func SectorStarCount(r *rng.RNG, coord types.SectorCoord) int {
	gx := float64(coord.X) * sectorSizeLY
	gy := float64(coord.Y) * sectorSizeLY
	gz := float64(coord.Z) * sectorSizeLY

	zDensity := math.Exp(-(gz * gz) / (2.0 * 500.0 * 500.0))
	armDensity := spiralArmDensity(gx, gy)

	density := armDensity * zDensity
	base := int(density * 12.0)
	jitter := int(r.Range(uint64(base/2 + 1)))
	count := base + jitter

	return clampInt(count, 0, 30)
}

const MaxSystemsPerSector = 30

// GenerateSector deterministically produces up to MaxSystemsPerSector
// systems for (seed, coord). Calling it twice for the same inputs
// yields byte-identical results.
func GenerateSector(seed uint64, coord types.SectorCoord) []System {
	r := rng.Derive(seed, coord.X, coord.Y, coord.Z)

	count := SectorStarCount(r, coord)
	if count > MaxSystemsPerSector {
		count = MaxSystemsPerSector
	}

	baseX := float64(coord.X) * sectorSizeLY
	baseY := float64(coord.Y) * sectorSizeLY
	baseZ := float64(coord.Z) * sectorSizeLY

	out := make([]System, count)
	for i := 0; i < count; i++ {
		pos := types.Vec3{
			X: baseX + r.Double()*sectorSizeLY,
			Y: baseY + r.Double()*sectorSizeLY,
			Z: baseZ + r.Double()*sectorSizeLY,
		}
		out[i].Sector = coord
		out[i] = generateSystem(r, pos)
		out[i].Sector = coord
	}

	return out
}
