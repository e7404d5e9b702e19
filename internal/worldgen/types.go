// Package worldgen implements procedural galaxy generation, ported from original_source/src/generate.c. Given (seed,
// sector) it derives an independent RNG stream and produces a
// deterministic set of star systems; nothing here is owned by the
// universe long-term, it is computed on demand and optionally cached
// by the caller (internal/sim keeps an LRU).
package worldgen

import "github.com/vitadek/universe/pkg/types"

type StarClass int

const (
	StarM StarClass = iota
	StarK
	StarG
	StarF
	StarA
	StarB
	StarO
	StarWhiteDwarf
	StarNeutron
	StarBlackHole
)

func (c StarClass) String() string {
	names := [...]string{"M", "K", "G", "F", "A", "B", "O", "white_dwarf", "neutron", "black_hole"}
	if int(c) < 0 || int(c) >= len(names) {
		return "unknown"
	}
	return names[c]
}

type PlanetType int

const (
	PlanetRocky PlanetType = iota
	PlanetDesert
	PlanetOcean
	PlanetIce
	PlanetGasGiant
	PlanetIceGiant
	PlanetCarbon
	PlanetLava
	PlanetIron
	PlanetSuperEarth
	PlanetRogue
)

func (t PlanetType) String() string {
	names := [...]string{
		"rocky", "desert", "ocean", "ice", "gas_giant", "ice_giant",
		"carbon", "lava", "iron", "super_earth", "rogue",
	}
	if int(t) < 0 || int(t) >= len(names) {
		return "unknown"
	}
	return names[t]
}

func (t PlanetType) IsGasOrIceGiant() bool {
	return t == PlanetGasGiant || t == PlanetIceGiant
}

// ArtifactType is the alien-artifact payload a level-4 survey may
// discover.
type ArtifactType int

const (
	ArtifactTechBoost ArtifactType = iota
	ArtifactResourceCache
	ArtifactStarMap
	ArtifactCommAmplifier
)

type Artifact struct {
	Type        ArtifactType
	Magnitude   float64
	Description string
	Discovered  bool
}

const MaxSurveyLevels = 5

type Planet struct {
	ID     types.UID
	Name   string
	Type   PlanetType
	Index  int

	OrbitalRadiusAU     float64
	OrbitalPeriodDays   float64
	MassEarth           float64
	RadiusEarth         float64
	Eccentricity        float64
	AxialTiltDeg        float64
	RotationPeriodHours float64
	SurfaceTempK        float64
	AtmospherePressureAtm float64
	WaterCoverage       float64
	MagneticField       float64
	HabitabilityIndex   float64
	Rings               bool
	MoonCount           uint8

	Resources [types.ResourceCount]float64

	Surveyed      [MaxSurveyLevels]bool
	DiscoveredBy  types.UID
	DiscoveryTick uint64

	Artifact *Artifact
}

type Star struct {
	ID               types.UID
	Name             string
	Class            StarClass
	Position         types.Vec3
	TemperatureK     float64
	MassSolar        float64
	LuminositySolar  float64
	AgeGyr           float64
	Metallicity      float64
}

const MaxPlanets = 16

type System struct {
	ID       types.UID
	Sector   types.SectorCoord
	Position types.Vec3
	Name     string
	Stars    []Star
	Planets  []Planet
}

// Primary returns the system's primary (first-generated) star.
func (s *System) Primary() *Star {
	if len(s.Stars) == 0 {
		return nil
	}
	return &s.Stars[0]
}

// FindPlanet returns the planet with the given ID, or nil.
func (s *System) FindPlanet(id types.UID) *Planet {
	for i := range s.Planets {
		if s.Planets[i].ID == id {
			return &s.Planets[i]
		}
	}
	return nil
}
