package sim

import (
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/travel"
)

// ScanFrom runs a long-range sensor sweep from p's current sector,
// generating that sector on demand, then delegates to travel.Scan for
// the actual range filter and sort. Used by the "scan" pipe command.
func (c *Core) ScanFrom(p *probe.Probe, maxResults int) []travel.ScanResult {
	systems := c.sectors.ensure(p.Sector)
	return travel.Scan(p, systems, maxResults)
}
