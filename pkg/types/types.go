// Package types holds the value types shared across every simulation
// package: identifiers, coordinates, resource and tech enums. Keeping
// them here (mirroring a pkg/types layering pattern) lets internal
// packages depend on a common vocabulary without import cycles.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// UID is a 128-bit identifier produced by two successive PRNG draws.
// The zero value is the reserved "absent" reference.
type UID struct {
	Hi uint64
	Lo uint64
}

// NullUID is the reserved "absent" reference.
var NullUID = UID{}

func (u UID) IsNull() bool { return u.Hi == 0 && u.Lo == 0 }

func (u UID) String() string {
	return fmt.Sprintf("%d-%d", u.Hi, u.Lo)
}

// Hex renders the UID as 32 hex chars, high word first, matching the
// persisted-state key format.
func (u UID) Hex() string {
	return fmt.Sprintf("%016x%016x", u.Hi, u.Lo)
}

// ParseUID parses the "hi-lo" decimal wire format required
// for pipe-protocol UIDs, the inverse of String.
func ParseUID(s string) (UID, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return UID{}, fmt.Errorf("types: malformed uid %q", s)
	}
	hi, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return UID{}, fmt.Errorf("types: malformed uid %q: %w", s, err)
	}
	lo, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return UID{}, fmt.Errorf("types: malformed uid %q: %w", s, err)
	}
	return UID{Hi: hi, Lo: lo}, nil
}

// SectorCoord is a signed 32-bit triple indexing a 100-light-year cube.
type SectorCoord struct {
	X, Y, Z int32
}

// Vec3 is a double-precision galactic position in light-years.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Resource enumerates the nine typed resource pools a probe carries,
// in kilograms. Order is fixed and load-bearing: it is used as the
// array index for resource pools and cost vectors everywhere.
type Resource int

const (
	ResIron Resource = iota
	ResSilicon
	ResRareEarth
	ResCarbon
	ResUranium
	ResWater
	ResHydrogen
	ResHelium3
	ResExotic
	ResourceCount
)

var resourceNames = [ResourceCount]string{
	"iron", "silicon", "rare_earth", "carbon", "uranium",
	"water", "hydrogen", "helium3", "exotic",
}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return "unknown"
	}
	return resourceNames[r]
}

// ResourceFromName resolves the lower-snake wire name
// back to a Resource. Returns false if unrecognized.
func ResourceFromName(name string) (Resource, bool) {
	for i, n := range resourceNames {
		if n == name {
			return Resource(i), true
		}
	}
	return 0, false
}

// TechDomain enumerates the ten tech levels (0..255) a probe tracks.
type TechDomain int

const (
	TechPropulsion TechDomain = iota
	TechSensors
	TechMining
	TechConstruction
	TechComputing
	TechEnergy
	TechMaterials
	TechCommunication
	TechWeapons
	TechBiotech
	TechDomainCount
)

var techNames = [TechDomainCount]string{
	"propulsion", "sensors", "mining", "construction", "computing",
	"energy", "materials", "communication", "weapons", "biotech",
}

func (t TechDomain) String() string {
	if t < 0 || int(t) >= len(techNames) {
		return "unknown"
	}
	return techNames[t]
}

// TechDomainFromName resolves the lower-snake wire name back to a
// TechDomain. Returns false if unrecognized.
func TechDomainFromName(name string) (TechDomain, bool) {
	for i, n := range techNames {
		if n == name {
			return TechDomain(i), true
		}
	}
	return 0, false
}

// ProbeStatus is the top-level probe state machine.
type ProbeStatus int

const (
	StatusActive ProbeStatus = iota
	StatusTraveling
	StatusDormant
	StatusReplicating
	StatusMining
	StatusDestroyed
)

var statusNames = [...]string{
	"active", "traveling", "dormant", "replicating", "mining", "destroyed",
}

func (s ProbeStatus) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// LocationType tracks where a probe sits relative to a star system.
type LocationType int

const (
	LocInterstellar LocationType = iota
	LocInSystem
	LocOrbiting
	LocLanded
)

var locationNames = [...]string{
	"interstellar", "in_system", "orbiting", "landed",
}

func (l LocationType) String() string {
	if int(l) < 0 || int(l) >= len(locationNames) {
		return "unknown"
	}
	return locationNames[l]
}
