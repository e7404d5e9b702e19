package sim

import (
	"container/list"

	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

// maxCachedSectors bounds the generated-sector cache; procedural
// sectors are cheap to regenerate from (seed, coord), so eviction only
// costs a recompute rather than data loss.
const maxCachedSectors = 64

type sysRef struct {
	sector types.SectorCoord
	index  int
}

type sectorEntry struct {
	coord   types.SectorCoord
	systems []worldgen.System
}

// sectorCache is the LRU of generated sectors worldgen's package
// comment promises the caller will keep, backed by a doubly linked
// list for O(1) touch/evict alongside the UID-to-slot index.
type sectorCache struct {
	seed  uint64
	order *list.List
	elems map[types.SectorCoord]*list.Element
	index map[types.UID]sysRef
}

func newSectorCache(seed uint64) *sectorCache {
	return &sectorCache{
		seed:  seed,
		order: list.New(),
		elems: make(map[types.SectorCoord]*list.Element),
		index: make(map[types.UID]sysRef),
	}
}

func (c *sectorCache) ensure(coord types.SectorCoord) []worldgen.System {
	if el, ok := c.elems[coord]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*sectorEntry).systems
	}

	systems := worldgen.GenerateSector(c.seed, coord)
	entry := &sectorEntry{coord: coord, systems: systems}
	el := c.order.PushFront(entry)
	c.elems[coord] = el
	for i := range systems {
		c.index[systems[i].ID] = sysRef{sector: coord, index: i}
	}

	if c.order.Len() > maxCachedSectors {
		c.evictOldest()
	}
	return systems
}

func (c *sectorCache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*sectorEntry)
	c.order.Remove(el)
	delete(c.elems, entry.coord)
	for i := range entry.systems {
		delete(c.index, entry.systems[i].ID)
	}
}

// systemByID returns a pointer into the cached sector slice, or nil
// if that sector has been evicted or the UID is unknown. Callers that
// need to hold a system across calls that might evict other sectors
// should re-resolve it rather than cache the pointer.
func (c *sectorCache) systemByID(id types.UID) *worldgen.System {
	ref, ok := c.index[id]
	if !ok {
		return nil
	}
	el, ok := c.elems[ref.sector]
	if !ok {
		return nil
	}
	c.order.MoveToFront(el)
	entry := el.Value.(*sectorEntry)
	if ref.index >= len(entry.systems) {
		return nil
	}
	return &entry.systems[ref.index]
}

// systemAt resolves the system a probe currently occupies, generating
// its sector on demand.
func (c *sectorCache) systemAt(sector types.SectorCoord, systemID types.UID) *worldgen.System {
	c.ensure(sector)
	return c.systemByID(systemID)
}
