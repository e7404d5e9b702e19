// Package rng implements the xoshiro256** generator that threads
// through every random decision in the simulation. It is ported from
// original_source/src/rng.c; the reduction from u64 draws to doubles
// and the splitmix64 seed expansion are reproduced bit-for-bit so two
// hosts agree on the same sequence for the same seed.
package rng

import "math"

// RNG is a 256-bit xoshiro256** generator. The zero value is not
// seeded; call Seed or Derive before drawing.
type RNG struct {
	s [4]uint64
}

// splitmix64 expands a single uint64 into a well-mixed stream, used
// only to seed the four xoshiro words from one seed value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Seed initializes all four state words from a single 64-bit seed.
func (r *RNG) Seed(seed uint64) {
	sm := seed
	r.s[0] = splitmix64(&sm)
	r.s[1] = splitmix64(&sm)
	r.s[2] = splitmix64(&sm)
	r.s[3] = splitmix64(&sm)
}

func rotl(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// Next advances the generator and returns a uniform 64-bit value.
func (r *RNG) Next() uint64 {
	result := rotl(r.s[1]*5, 7) * 9
	t := r.s[1] << 17

	r.s[2] ^= r.s[0]
	r.s[3] ^= r.s[1]
	r.s[1] ^= r.s[2]
	r.s[0] ^= r.s[3]
	r.s[2] ^= t
	r.s[3] = rotl(r.s[3], 45)

	return result
}

// Double returns a uniform value in [0,1) built from the top 53 bits
// of a single Next draw.
func (r *RNG) Double() float64 {
	return float64(r.Next()>>11) * 0x1p-53
}

// Range returns a uniform value in [0, max) via unbiased rejection
// sampling. Range(0) returns 0.
func (r *RNG) Range(max uint64) uint64 {
	if max == 0 {
		return 0
	}
	threshold := -max % max
	for {
		v := r.Next()
		if v >= threshold {
			return v % max
		}
	}
}

// Gaussian draws from a standard normal distribution via Box-Muller
// on two successive Double draws, re-rolling both to avoid log(0).
func (r *RNG) Gaussian() float64 {
	u1 := r.Double()
	u2 := r.Double()
	for u1 == 0.0 {
		u1 = r.Double()
		u2 = r.Double()
	}
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}

// GaussianMeanStd draws from N(mean, std^2).
func (r *RNG) GaussianMeanStd(mean, std float64) float64 {
	return mean + r.Gaussian()*std
}

// Derive re-keys rng off (seed, x, y, z) so sector-keyed generation is
// independent of the master PRNG's sequence position. The mixing
// constants are the odd 64-bit multipliers from rng_derive in
// original_source/src/rng.c.
func Derive(seed uint64, x, y, z int32) *RNG {
	combined := seed
	combined ^= uint64(uint32(x)) * 0x517cc1b727220a95
	combined ^= uint64(uint32(y)) * 0x6c62272e07bb0142
	combined ^= uint64(uint32(z)) * 0x9e3779b97f4a7c15
	r := &RNG{}
	r.Seed(combined)
	return r
}

// State returns a copy of the internal words; SetState is its inverse.
func (r *RNG) State() [4]uint64 { return r.s }

// SetState overwrites the internal words directly.
func (r *RNG) SetState(s [4]uint64) { r.s = s }
