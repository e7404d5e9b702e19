// Package sim implements the Core aggregate and the 17-step canonical
// tick scheduler, grounded on a tick-loop shape of a single ownerless
// struct mutated in a fixed step order each call — generalized from
// colony/federation ticks to this deterministic probe pipeline.
package sim

import (
	"sort"

	"github.com/vitadek/universe/internal/comm"
	"github.com/vitadek/universe/internal/events"
	"github.com/vitadek/universe/internal/metrics"
	"github.com/vitadek/universe/internal/personality"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/replicate"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/internal/scenario"
	"github.com/vitadek/universe/internal/society"
	"github.com/vitadek/universe/internal/travel"
	"github.com/vitadek/universe/internal/worldgen"
	"github.com/vitadek/universe/pkg/types"
)

// GenerationVersion tags the in-memory Core schema for persistence
// forward-compatibility.
const GenerationVersion = 1

// TicksPerSimYear mirrors travel's ticksPerCycle: one tick is one
// simulated day, so --sim-years converts to a tick budget by this
// factor.
const TicksPerSimYear = 365

// pendingHazard is a scheduled damage window that step 12 fires once
// StrikeTick arrives. Nothing in this package appends to
// Core.pendingHazards: hazards from the step-13 event roll take effect
// in the tick they are rolled.
type pendingHazard struct {
	ProbeID   types.UID
	EvtType   events.EventType
	Subtype   int
	StrikeTick uint64
}

// Core is the full mutable simulation state: probe table, caches,
// subsystem registries, and scheduling counters. It is the unit a
// snapshot copies and a restore overwrites.
type Core struct {
	Seed    uint64
	TickNum uint64
	RNG     rng.RNG

	Probes map[types.UID]*probe.Probe

	sectors *sectorCache

	Events   *events.Log
	Comm     *comm.System
	Society  *society.System
	Lineage  *replicate.LineageTree
	Scenario *scenario.Queue
	Metrics  *metrics.Accumulator

	replicating    map[types.UID]*replicate.State
	pendingHazards []pendingHazard
	promotedRelay  map[int]bool

	LastSnapshot Snapshot
}

// New builds a fresh universe from seed, spawning the canonical first
// probe in the first system of sector (0,0,0).
func New(seed uint64) *Core {
	c := &Core{
		Seed:          seed,
		Probes:        make(map[types.UID]*probe.Probe),
		sectors:       newSectorCache(seed),
		Events:        &events.Log{},
		Comm:          &comm.System{},
		Society:       &society.System{},
		Lineage:       &replicate.LineageTree{},
		Scenario:      &scenario.Queue{},
		Metrics:       metrics.NewAccumulator(),
		replicating:   make(map[types.UID]*replicate.State),
		promotedRelay: make(map[int]bool),
	}
	c.RNG.Seed(seed)

	origin := types.SectorCoord{}
	systems := c.sectors.ensure(origin)
	bob := probe.InitBob()
	if len(systems) > 0 {
		bob.Sector = origin
		bob.SystemID = systems[0].ID
		bob.Position = systems[0].Position
	}
	c.Probes[bob.ID] = bob
	return c
}

// SortedProbeIDs returns every probe UID in ascending (Hi, then Lo)
// order, the iteration order both action execution and observation
// ordering require.
func (c *Core) SortedProbeIDs() []types.UID {
	ids := make([]types.UID, 0, len(c.Probes))
	for id := range c.Probes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Hi != ids[j].Hi {
			return ids[i].Hi < ids[j].Hi
		}
		return ids[i].Lo < ids[j].Lo
	})
	return ids
}

// SystemFor resolves the worldgen.System a probe currently occupies,
// generating its sector on demand.
func (c *Core) SystemFor(p *probe.Probe) *worldgen.System {
	return c.sectors.systemAt(p.Sector, p.SystemID)
}

// Observation is the per-probe, per-tick summary handed to the
// external transport layer.
type Observation struct {
	ProbeID  types.UID
	Status   types.ProbeStatus
	Position types.Vec3
	SystemID types.UID
	Events   []events.Event
}

// Tick advances the universe by exactly one tick, applying queued
// actions and running every scheduled step in its fixed order.
// actions maps a probe UID to the single action it has queued for
// this tick; a probe with no entry is idle.
func (c *Core) Tick(actions map[types.UID]probe.Action) []Observation {
	ids := c.SortedProbeIDs()

	// Step 2: action execute.
	for _, id := range ids {
		p := c.Probes[id]
		if p.Status == types.StatusDestroyed {
			continue
		}
		if a, ok := actions[id]; ok {
			c.ExecuteAction(p, a)
		}
	}

	// Step 3: advance scalar.
	c.TickNum++
	c.RNG.Next()

	// Step 4: travel.
	for _, id := range ids {
		p := c.Probes[id]
		if p.Status != types.StatusTraveling {
			continue
		}
		res := travel.Tick(p, &c.RNG)
		if res.Arrived {
			p.Status = types.StatusActive
			p.LocationType = types.LocInSystem
		}
	}

	// Step 5: replication.
	for _, id := range ids {
		state, active := c.replicating[id]
		if !active {
			continue
		}
		p := c.Probes[id]
		result, err := replicate.Tick(p, state)
		if err != nil {
			continue
		}
		if !result.Complete {
			continue
		}
		child, ferr := replicate.Finalize(p, state, &c.RNG, c.TickNum)
		if ferr == nil {
			c.Probes[child.ID] = child
			c.Lineage.Record(p.ID, child.ID, c.TickNum, child.Generation)
		}
		delete(c.replicating, id)
	}

	// Step 6: energy/fuel housekeeping.
	for _, id := range ids {
		p := c.Probes[id]
		if p.Status != types.StatusDestroyed {
			p.TickEnergy()
		}
	}

	// Step 7: message/trade delivery.
	comm.TickDeliver(c.Comm, c.Probes, c.TickNum)
	society.TradeTick(c.Society, c.probeSlice(ids), c.TickNum)

	// Step 8: construction.
	society.BuildTick(c.Society, c.TickNum)
	c.promoteCompletedRelays()

	// Step 9: vote resolution.
	society.ResolveVotes(c.Society, c.TickNum)

	// Step 10: research.
	for _, id := range ids {
		c.Probes[id].TickResearch()
	}

	// Step 11: trespass check.
	for _, id := range ids {
		p := c.Probes[id]
		if p.Status == types.StatusDestroyed || p.LocationType == types.LocInterstellar {
			continue
		}
		claimant := society.GetClaim(c.Society, p.SystemID)
		if claimant.IsNull() || claimant == p.ID {
			continue
		}
		if owner, ok := c.Probes[claimant]; ok {
			society.UpdateTrust(p, owner, society.TrustClaimViolation)
		}
	}

	// Step 12: pending hazards strike.
	c.strikePendingHazards()

	// Step 13: event roll, alongside personality upkeep (memory fade
	// and solitude drift).
	for _, id := range ids {
		p := c.Probes[id]
		if p.Status == types.StatusDestroyed {
			continue
		}
		personality.FadeMemories(p)
		personality.TickSolitude(p)

		sys := c.SystemFor(p)
		before := len(c.Events.ForProbe(id))
		events.TickProbe(c.Events, p, sys, c.TickNum, &c.RNG)
		c.recordEventMetrics(id, before)
	}

	// Step 14: scenario injection.
	for _, e := range c.Scenario.FireDue(c.TickNum) {
		c.fireScenarioEntry(e)
	}

	// Step 15: external injection flush.
	for _, e := range c.Scenario.FlushInjected() {
		c.fireScenarioEntry(e)
	}

	// Destroyed check: a hull reaching 0 at any point this tick
	// (pending hazards, event roll, or scenario injection) transitions
	// the probe out of active play. Destroyed probes can no longer be
	// the target of subsequent actions except queries.
	for _, id := range ids {
		p := c.Probes[id]
		if p.Status != types.StatusDestroyed && p.HullIntegrity <= 0 {
			p.Status = types.StatusDestroyed
		}
	}

	// Step 16: metrics record.
	c.Metrics.Sample(c.TickNum, c.probeSlice(ids))

	// Step 17: observation emit.
	return c.buildObservations(ids)
}

func (c *Core) probeSlice(ids []types.UID) []*probe.Probe {
	out := make([]*probe.Probe, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Probes[id])
	}
	return out
}

func (c *Core) recordEventMetrics(id types.UID, before int) {
	after := c.Events.ForProbe(id)
	if len(after) <= before {
		return
	}
	for _, e := range after[before:] {
		switch e.Type {
		case events.EvtDiscovery:
			c.Metrics.RecordDiscovery()
		case events.EvtHazard:
			if p, ok := c.Probes[id]; ok && p.Status != types.StatusDestroyed && p.HullIntegrity > 0 {
				c.Metrics.RecordHazardSurvived()
			}
		}
	}
	if p, ok := c.Probes[id]; ok {
		c.Metrics.RecordSystemExplored(p.SystemID)
	}
}

func (c *Core) fireScenarioEntry(e scenario.Entry) {
	p, ok := c.Probes[e.ProbeID]
	if !ok {
		return
	}
	sys := c.SystemFor(p)
	events.Generate(c.Events, p, e.Type, e.Subtype, sys, c.TickNum, &c.RNG)
}

func (c *Core) strikePendingHazards() {
	var remaining []pendingHazard
	for _, h := range c.pendingHazards {
		if h.StrikeTick > c.TickNum {
			remaining = append(remaining, h)
			continue
		}
		p, ok := c.Probes[h.ProbeID]
		if !ok || p.Status == types.StatusDestroyed {
			continue
		}
		sys := c.SystemFor(p)
		events.Generate(c.Events, p, h.EvtType, h.Subtype, sys, c.TickNum, &c.RNG)
	}
	c.pendingHazards = remaining
}

// promoteCompletedRelays registers each freshly completed
// RELAY_SATELLITE structure as a communication relay: a
// "completed RELAY_SATELLITE structure is automatically promoted into
// the communication relay table".
func (c *Core) promoteCompletedRelays() {
	for i := range c.Society.Structures {
		st := &c.Society.Structures[i]
		if !st.Complete || st.Type != society.StructRelaySatellite || c.promotedRelay[i] {
			continue
		}
		c.promotedRelay[i] = true
		if len(st.BuilderIDs) == 0 {
			continue
		}
		owner, ok := c.Probes[st.BuilderIDs[0]]
		if !ok {
			continue
		}
		sys := c.sectors.systemByID(st.SystemID)
		pos := owner.Position
		if sys != nil {
			pos = sys.Position
		}
		c.Comm.Relays = append(c.Comm.Relays, comm.Relay{
			OwnerID:  owner.ID,
			SystemID: st.SystemID,
			Position: pos,
			BuiltTick: c.TickNum,
			Active:   true,
			RangeLY:  comm.RelayRangeLY,
		})
	}
}

func (c *Core) buildObservations(ids []types.UID) []Observation {
	out := make([]Observation, 0, len(ids))
	for _, id := range ids {
		p := c.Probes[id]
		out = append(out, Observation{
			ProbeID:  id,
			Status:   p.Status,
			Position: p.Position,
			SystemID: p.SystemID,
			Events:   c.Events.ForProbe(id),
		})
	}
	return out
}
