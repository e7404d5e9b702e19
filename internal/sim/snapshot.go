package sim

import (
	"encoding/binary"
	"fmt"
	"sort"

	"lukechampine.com/blake3"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/pkg/types"
)

// Snapshot is a buffered copy of the universe's tick, seed, and probe
// table, the "snapshot(tag)" form. It does not capture event log,
// comm, society, lineage, or scenario state; Restore leaves those as
// they are in the Core it is applied to.
type Snapshot struct {
	Tag    string
	Tick   uint64
	Seed   uint64
	Probes map[types.UID]*probe.Probe
}

// Checksum hashes tag, tick, seed, and the sorted set of probe UIDs
// into a blake3 digest, the cheap tamper-detection value that
// autosave and the pipe "checkpoint" command store (and sign, when an
// identity is present) in the --db store's meta record and that
// --resume checks.
func (s Snapshot) Checksum() string {
	ids := make([]types.UID, 0, len(s.Probes))
	for id := range s.Probes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Hi != ids[j].Hi {
			return ids[i].Hi < ids[j].Hi
		}
		return ids[i].Lo < ids[j].Lo
	})

	buf := make([]byte, 0, len(s.Tag)+16+16*len(ids))
	buf = append(buf, s.Tag...)
	buf = binary.BigEndian.AppendUint64(buf, s.Tick)
	buf = binary.BigEndian.AppendUint64(buf, s.Seed)
	for _, id := range ids {
		buf = binary.BigEndian.AppendUint64(buf, id.Hi)
		buf = binary.BigEndian.AppendUint64(buf, id.Lo)
	}
	sum := blake3.Sum256(buf)
	return fmt.Sprintf("%x", sum)
}

// Snapshot copies the current tick, seed, and probe table into a
// buffered record tagged for later restore or fork.
func (c *Core) Snapshot(tag string) Snapshot {
	probes := make(map[types.UID]*probe.Probe, len(c.Probes))
	for id, p := range c.Probes {
		probes[id] = p.Clone()
	}
	snap := Snapshot{Tag: tag, Tick: c.TickNum, Seed: c.Seed, Probes: probes}
	c.LastSnapshot = snap
	return snap
}

// Restore overwrites the universe with snap's probe table, re-seeds
// the master PRNG to the snapshot's original seed, then fast-forwards
// it by Tick draws to resynchronize the stream with where the
// original run would be: the "restore(snap)" form.
func (c *Core) Restore(snap Snapshot) {
	c.Seed = snap.Seed
	c.TickNum = snap.Tick
	c.RNG.Seed(snap.Seed)
	for i := uint64(0); i < snap.Tick; i++ {
		c.RNG.Next()
	}

	c.Probes = make(map[types.UID]*probe.Probe, len(snap.Probes))
	for id, p := range snap.Probes {
		c.Probes[id] = p.Clone()
	}
}

// Fork copies snap into a brand new universe seeded with newSeed,
// enabling A/B experiments from a shared starting point: the
// "fork(snap, new_seed)" form. The forked universe's own PRNG starts
// fresh at newSeed rather than resynchronizing to snap's tick, since
// it is meant to diverge from that point on.
func Fork(snap Snapshot, newSeed uint64) *Core {
	c := New(newSeed)
	c.TickNum = snap.Tick

	c.Probes = make(map[types.UID]*probe.Probe, len(snap.Probes))
	for id, p := range snap.Probes {
		c.Probes[id] = p.Clone()
	}
	return c
}
