package sim

import (
	"github.com/vitadek/universe/internal/comm"
	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/replicate"
	"github.com/vitadek/universe/internal/society"
	"github.com/vitadek/universe/internal/travel"
	"github.com/vitadek/universe/pkg/types"
)

const defaultProposalWindow = 100

// ExecuteAction dispatches one probe's queued action. The eight
// in-system actions (navigate/orbit/land/launch/survey/mine/wait/
// repair) delegate straight to probe.Execute; the twelve actions that
// need cross-probe or universe-level state (travel, replication,
// communication, society, research) are resolved here against Core's
// subsystem registries, completing probe.Execute's dispatcher.
func (c *Core) ExecuteAction(p *probe.Probe, a probe.Action) probe.Result {
	switch a.Type {
	case probe.ActTravelToSystem:
		return c.execTravelToSystem(p, a)
	case probe.ActReplicate:
		return c.execReplicate(p)
	case probe.ActSendMessage:
		return c.execSendMessage(p, a)
	case probe.ActPlaceBeacon:
		return c.execPlaceBeacon(p, a)
	case probe.ActBuildStructure:
		return c.execBuildStructure(p, a)
	case probe.ActTrade:
		return c.execTrade(p, a)
	case probe.ActClaimSystem:
		return c.execClaimSystem(p, a)
	case probe.ActRevokeClaim:
		return c.execRevokeClaim(p, a)
	case probe.ActPropose:
		return c.execPropose(p, a)
	case probe.ActVote:
		return c.execVote(p, a)
	case probe.ActResearch:
		return c.execResearch(p, a)
	case probe.ActShareTech:
		return c.execShareTech(p, a)
	default:
		sys := c.SystemFor(p)
		return p.Execute(a, sys)
	}
}

func failResult(err *obserr.Error) probe.Result { return probe.Result{Err: err} }
func okResult(completed bool) probe.Result      { return probe.Result{Completed: completed} }

func (c *Core) execTravelToSystem(p *probe.Probe, a probe.Action) probe.Result {
	c.sectors.ensure(a.TargetSector)
	target := c.sectors.systemByID(a.TargetSystem)
	if target == nil {
		return failResult(obserr.Missing("target system not found"))
	}
	res := travel.Initiate(p, travel.Order{
		TargetPos:    target.Position,
		TargetSystem: a.TargetSystem,
		TargetSector: a.TargetSector,
	})
	if !res.Success {
		return failResult(obserr.Invalid("cannot initiate travel"))
	}
	return okResult(true)
}

func (c *Core) execReplicate(p *probe.Probe) probe.Result {
	if _, active := c.replicating[p.ID]; active {
		return failResult(obserr.Invalid("replication already in progress"))
	}
	state, err := replicate.Begin(p)
	if err != nil {
		return failResult(err)
	}
	c.replicating[p.ID] = state
	return okResult(true)
}

func (c *Core) execSendMessage(p *probe.Probe, a probe.Action) probe.Result {
	if a.TargetProbe.IsNull() {
		_, err := comm.SendBroadcast(c.Comm, p, c.probeSlice(c.SortedProbeIDs()), a.Message, c.TickNum)
		if err != nil {
			return failResult(err)
		}
		return okResult(true)
	}
	target, ok := c.Probes[a.TargetProbe]
	if !ok {
		return failResult(obserr.Missing("target probe not found"))
	}
	if err := comm.SendTargeted(c.Comm, p, target.ID, target.Position, a.Message, c.TickNum); err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execPlaceBeacon(p *probe.Probe, a probe.Action) probe.Result {
	systemID := a.TargetSystem
	if systemID.IsNull() {
		systemID = p.SystemID
	}
	if err := comm.PlaceBeacon(c.Comm, p, systemID, a.Message, c.TickNum); err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execBuildStructure(p *probe.Probe, a probe.Action) probe.Result {
	systemID := a.TargetSystem
	if systemID.IsNull() {
		systemID = p.SystemID
	}
	_, err := society.BuildStart(c.Society, p, society.StructureType(a.StructureType), systemID, c.TickNum, &c.RNG)
	if err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execTrade(p *probe.Probe, a probe.Action) probe.Result {
	receiver, ok := c.Probes[a.TargetProbe]
	if !ok {
		return failResult(obserr.Missing("trade partner not found"))
	}
	sameSystem := p.SystemID == receiver.SystemID
	if err := society.TradeSend(c.Society, p, receiver, a.TargetResource, a.Amount, sameSystem, c.TickNum); err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execClaimSystem(p *probe.Probe, a probe.Action) probe.Result {
	systemID := a.TargetSystem
	if systemID.IsNull() {
		systemID = p.SystemID
	}
	if err := society.ClaimSystem(c.Society, p.ID, systemID, c.TickNum); err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execRevokeClaim(p *probe.Probe, a probe.Action) probe.Result {
	systemID := a.TargetSystem
	if systemID.IsNull() {
		systemID = p.SystemID
	}
	if err := society.RevokeClaim(c.Society, p.ID, systemID); err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execPropose(p *probe.Probe, a probe.Action) probe.Result {
	window := uint64(a.Amount)
	if window == 0 {
		window = defaultProposalWindow
	}
	_, err := society.Propose(c.Society, p.ID, a.Message, c.TickNum, c.TickNum+window)
	if err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execVote(p *probe.Probe, a probe.Action) probe.Result {
	if err := society.CastVote(c.Society, a.ProposalIdx, p.ID, a.VoteFavor, c.TickNum); err != nil {
		return failResult(err)
	}
	return okResult(true)
}

func (c *Core) execResearch(p *probe.Probe, a probe.Action) probe.Result {
	if a.ResearchDomain < 0 || int(a.ResearchDomain) >= int(types.TechDomainCount) {
		return failResult(obserr.Malformed("invalid tech domain"))
	}
	p.StartSelfResearch(a.ResearchDomain)
	return okResult(true)
}

func (c *Core) execShareTech(p *probe.Probe, a probe.Action) probe.Result {
	receiver, ok := c.Probes[a.TargetProbe]
	if !ok {
		return failResult(obserr.Missing("share_tech target not found"))
	}
	if _, advanced := society.ShareTech(p, receiver, a.ResearchDomain); !advanced {
		return failResult(obserr.Invalid("receiver already at or above sender's level"))
	}
	receiver.RecomputeDerivedStats()
	return okResult(true)
}
