// Package society implements inter-probe trust, resource trading,
// territory claims, shared construction, proposal voting, and tech
// sharing, ported from original_source/src/society.c.
package society

import (
	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/internal/personality"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/pkg/types"
)

const (
	MaxClaims       = 512
	MaxStructures   = 256
	MaxTrades       = 256
	MaxProposals    = 128
	MaxVotesPer     = 16
	tradeTransitTicks = 100

	TrustTradePositive   = 0.05
	TrustSharedDiscovery = 0.03
	TrustTechShare       = 0.08
	TrustCollabBuild     = 0.06
	TrustClaimViolation  = -0.10
	TrustDisagreement    = -0.05

	TechShareDiscount = 0.4
)

type StructureType int

const (
	StructMiningStation StructureType = iota
	StructRelaySatellite
	StructObservatory
	StructHabitat
	StructShipyard
	StructFactory
	structTypeCount
)

type StructureSpec struct {
	IronCost    float64
	SiliconCost float64
	BaseTicks   uint32
	Name        string
}

var structureSpecs = [structTypeCount]StructureSpec{
	StructMiningStation:  {50000.0, 20000.0, 100, "Mining Station"},
	StructRelaySatellite: {10000.0, 15000.0, 50, "Relay Satellite"},
	StructObservatory:    {20000.0, 30000.0, 80, "Observatory"},
	StructHabitat:        {80000.0, 50000.0, 300, "Habitat"},
	StructShipyard:       {100000.0, 60000.0, 400, "Shipyard"},
	StructFactory:        {60000.0, 40000.0, 200, "Factory"},
}

// StructureSpecFor returns the build spec for a structure type, or
// false if t is out of range.
func StructureSpecFor(t StructureType) (StructureSpec, bool) {
	if t < 0 || t >= structTypeCount {
		return StructureSpec{}, false
	}
	return structureSpecs[t], true
}

var structureTypeNames = [structTypeCount]string{
	StructMiningStation:  "mining_station",
	StructRelaySatellite: "relay_satellite",
	StructObservatory:    "observatory",
	StructHabitat:        "habitat",
	StructShipyard:       "shipyard",
	StructFactory:        "factory",
}

func (t StructureType) String() string {
	if t < 0 || t >= structTypeCount {
		return "unknown"
	}
	return structureTypeNames[t]
}

// StructureTypeFromName resolves the lower-snake wire name back to a
// StructureType. Returns false if unrecognized.
func StructureTypeFromName(name string) (StructureType, bool) {
	for i, n := range structureTypeNames {
		if n == name {
			return StructureType(i), true
		}
	}
	return 0, false
}

const maxBuilders = 4

// Structure is one in-progress or completed collaborative build.
type Structure struct {
	ID                types.UID
	Type              StructureType
	SystemID          types.UID
	BuilderIDs        []types.UID
	BuildTicksTotal   uint32
	BuildTicksElapsed uint32
	Complete          bool
	StartedTick       uint64
	CompletedTick     uint64
}

// Claim is an active or revoked territory assertion over a system.
type Claim struct {
	ClaimerID   types.UID
	SystemID    types.UID
	ClaimedTick uint64
	Active      bool
}

type TradeStatus int

const (
	TradeInTransit TradeStatus = iota
	TradeDelivered
)

// Trade is a resource transfer in flight between two probes.
type Trade struct {
	SenderID    types.UID
	ReceiverID  types.UID
	Resource    types.Resource
	Amount      float64
	Status      TradeStatus
	SentTick    uint64
	ArrivalTick uint64
	SameSystem  bool
}

type ProposalStatus int

const (
	VoteOpen ProposalStatus = iota
	VoteResolved
)

type Vote struct {
	VoterID  types.UID
	InFavor  bool
	VoteTick uint64
}

// Proposal is one council motion open for voting.
type Proposal struct {
	ProposerID   types.UID
	Text         string
	ProposedTick uint64
	DeadlineTick uint64
	Status       ProposalStatus
	Votes        []Vote
	VotesFor     int
	VotesAgainst int
	Result       bool
}

// System is the shared ledger of claims, structures, trades, and
// proposals a Core keeps for the whole simulation.
type System struct {
	Claims     []Claim
	Structures []Structure
	Trades     []Trade
	Proposals  []Proposal
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func getOrCreateRelationship(a *probe.Probe, bID types.UID) *probe.Relationship {
	for i := range a.Relationships {
		if a.Relationships[i].OtherID == bID {
			return &a.Relationships[i]
		}
	}
	if len(a.Relationships) >= probe.MaxRelationships {
		return nil
	}
	a.Relationships = append(a.Relationships, probe.Relationship{
		OtherID:     bID,
		Disposition: probe.DispositionNeutral,
	})
	return &a.Relationships[len(a.Relationships)-1]
}

func dispositionForTrust(trust float64) probe.Disposition {
	switch {
	case trust > 0.75:
		return probe.DispositionAllied
	case trust > 0.25:
		return probe.DispositionFriendly
	case trust > -0.25:
		return probe.DispositionNeutral
	case trust > -0.75:
		return probe.DispositionWary
	default:
		return probe.DispositionHostile
	}
}

// UpdateTrust adjusts the bidirectional trust between a and b by
// delta, recomputing each side's disposition. Ported from
// society_update_trust.
func UpdateTrust(a, b *probe.Probe, delta float64) {
	if ra := getOrCreateRelationship(a, b.ID); ra != nil {
		ra.Trust = clamp(ra.Trust+delta, -1.0, 1.0)
		ra.Disposition = dispositionForTrust(ra.Trust)
	}
	if rb := getOrCreateRelationship(b, a.ID); rb != nil {
		rb.Trust = clamp(rb.Trust+delta, -1.0, 1.0)
		rb.Disposition = dispositionForTrust(rb.Trust)
	}
}

// GetTrust returns a's trust toward bID, or 0 if no relationship exists.
func GetTrust(a *probe.Probe, bID types.UID) float64 {
	for i := range a.Relationships {
		if a.Relationships[i].OtherID == bID {
			return a.Relationships[i].Trust
		}
	}
	return 0
}

// GetDisposition returns a's disposition toward bID, neutral if unknown.
func GetDisposition(a *probe.Probe, bID types.UID) probe.Disposition {
	for i := range a.Relationships {
		if a.Relationships[i].OtherID == bID {
			return a.Relationships[i].Disposition
		}
	}
	return probe.DispositionNeutral
}

// TradeSend deducts amount of resource from sender immediately and
// queues delivery to receiver, instant if sameSystem, otherwise after
// a fixed transit delay. Ported from society_trade_send.
func TradeSend(soc *System, sender, receiver *probe.Probe, resource types.Resource, amount float64, sameSystem bool, currentTick uint64) *obserr.Error {
	if len(soc.Trades) >= MaxTrades {
		return obserr.Capacity("trade queue is full")
	}
	if sender.Resources[resource] < amount {
		return obserr.Insufficient("sender lacks resources for trade")
	}

	sender.Resources[resource] -= amount
	personality.ResetContact(sender)

	arrival := currentTick
	if !sameSystem {
		arrival = currentTick + tradeTransitTicks
	}
	soc.Trades = append(soc.Trades, Trade{
		SenderID: sender.ID, ReceiverID: receiver.ID, Resource: resource,
		Amount: amount, Status: TradeInTransit, SentTick: currentTick,
		ArrivalTick: arrival, SameSystem: sameSystem,
	})
	return nil
}

// TradeTick delivers every due trade to its receiver, found by ID in
// probes. Ported from society_trade_tick.
func TradeTick(soc *System, probes []*probe.Probe, currentTick uint64) int {
	delivered := 0
	for i := range soc.Trades {
		t := &soc.Trades[i]
		if t.Status != TradeInTransit || currentTick < t.ArrivalTick {
			continue
		}
		for _, p := range probes {
			if p.ID == t.ReceiverID {
				p.Resources[t.Resource] += t.Amount
				t.Status = TradeDelivered
				personality.ResetContact(p)
				delivered++
				break
			}
		}
	}
	return delivered
}

// ClaimSystem registers claimerID's claim on systemID, failing if the
// system is already actively claimed. Ported from society_claim_system.
func ClaimSystem(soc *System, claimerID, systemID types.UID, tick uint64) *obserr.Error {
	for _, c := range soc.Claims {
		if c.Active && c.SystemID == systemID {
			return obserr.Invalid("system is already claimed")
		}
	}
	if len(soc.Claims) >= MaxClaims {
		return obserr.Capacity("claim limit reached")
	}
	soc.Claims = append(soc.Claims, Claim{
		ClaimerID: claimerID, SystemID: systemID, ClaimedTick: tick, Active: true,
	})
	return nil
}

// GetClaim returns the active claimer of systemID, or a null UID.
func GetClaim(soc *System, systemID types.UID) types.UID {
	for _, c := range soc.Claims {
		if c.Active && c.SystemID == systemID {
			return c.ClaimerID
		}
	}
	return types.NullUID
}

// RevokeClaim deactivates claimerID's claim on systemID.
func RevokeClaim(soc *System, claimerID, systemID types.UID) *obserr.Error {
	for i := range soc.Claims {
		if soc.Claims[i].Active && soc.Claims[i].ClaimerID == claimerID && soc.Claims[i].SystemID == systemID {
			soc.Claims[i].Active = false
			return nil
		}
	}
	return obserr.Missing("no matching active claim found")
}

// IsClaimedByOther reports whether systemID is actively claimed by
// someone other than probeID.
func IsClaimedByOther(soc *System, systemID, probeID types.UID) bool {
	for _, c := range soc.Claims {
		if c.Active && c.SystemID == systemID && c.ClaimerID != probeID {
			return true
		}
	}
	return false
}

// BuildSpeedMult returns the collaborative build speed multiplier for
// builderCount collaborators. Ported from society_build_speed_mult.
func BuildSpeedMult(builderCount int) float64 {
	if builderCount <= 0 {
		return 0
	}
	if builderCount == 1 {
		return 1.0
	}
	return 1.0 + 0.6*float64(builderCount-1)
}

// BuildStart registers a new structure build at systemID led by
// builder. Ported from society_build_start.
func BuildStart(soc *System, builder *probe.Probe, t StructureType, systemID types.UID, currentTick uint64, r *rng.RNG) (int, *obserr.Error) {
	if len(soc.Structures) >= MaxStructures {
		return -1, obserr.Capacity("structure limit reached")
	}
	spec, ok := StructureSpecFor(t)
	if !ok {
		return -1, obserr.Malformed("unknown structure type")
	}

	idx := len(soc.Structures)
	soc.Structures = append(soc.Structures, Structure{
		ID:              types.UID{Hi: r.Next(), Lo: r.Next()},
		Type:            t,
		SystemID:        systemID,
		BuilderIDs:      []types.UID{builder.ID},
		BuildTicksTotal: spec.BaseTicks,
		StartedTick:     currentTick,
	})
	return idx, nil
}

// BuildCollaborate adds a second through fourth builder to an
// in-progress structure. Ported from society_build_collaborate.
func BuildCollaborate(soc *System, structureIdx int, collaborator *probe.Probe) *obserr.Error {
	if structureIdx < 0 || structureIdx >= len(soc.Structures) {
		return obserr.Missing("no such structure")
	}
	s := &soc.Structures[structureIdx]
	if s.Complete {
		return obserr.Invalid("structure is already complete")
	}
	if len(s.BuilderIDs) >= maxBuilders {
		return obserr.Capacity("structure has the maximum number of builders")
	}
	s.BuilderIDs = append(s.BuilderIDs, collaborator.ID)
	return nil
}

// BuildTick advances every incomplete structure's progress by one
// tick scaled by its builder-count speed multiplier. Ported from
// society_build_tick.
func BuildTick(soc *System, currentTick uint64) int {
	completed := 0
	for i := range soc.Structures {
		s := &soc.Structures[i]
		if s.Complete {
			continue
		}

		mult := BuildSpeedMult(len(s.BuilderIDs))
		s.BuildTicksElapsed++

		if float64(s.BuildTicksElapsed)*mult >= float64(s.BuildTicksTotal) {
			s.Complete = true
			s.CompletedTick = currentTick
			completed++
		}
	}
	return completed
}

// Propose opens a new council motion. Ported from society_propose.
func Propose(soc *System, proposerID types.UID, text string, currentTick, deadlineTick uint64) (int, *obserr.Error) {
	if len(soc.Proposals) >= MaxProposals {
		return -1, obserr.Capacity("proposal limit reached")
	}
	idx := len(soc.Proposals)
	soc.Proposals = append(soc.Proposals, Proposal{
		ProposerID: proposerID, Text: text, ProposedTick: currentTick,
		DeadlineTick: deadlineTick, Status: VoteOpen,
	})
	return idx, nil
}

// CastVote records voterID's ballot on proposalIdx. Ported from
// society_vote.
func CastVote(soc *System, proposalIdx int, voterID types.UID, inFavor bool, tick uint64) *obserr.Error {
	if proposalIdx < 0 || proposalIdx >= len(soc.Proposals) {
		return obserr.Missing("no such proposal")
	}
	p := &soc.Proposals[proposalIdx]
	if p.Status != VoteOpen {
		return obserr.Invalid("proposal is not open for voting")
	}
	if len(p.Votes) >= MaxVotesPer {
		return obserr.Capacity("proposal has reached its vote limit")
	}
	for _, v := range p.Votes {
		if v.VoterID == voterID {
			return obserr.Invalid("probe has already voted on this proposal")
		}
	}

	p.Votes = append(p.Votes, Vote{VoterID: voterID, InFavor: inFavor, VoteTick: tick})
	if inFavor {
		p.VotesFor++
	} else {
		p.VotesAgainst++
	}
	return nil
}

// ResolveVotes closes every open proposal past its deadline, deciding
// Result by simple majority. Ported from society_resolve_votes.
func ResolveVotes(soc *System, currentTick uint64) int {
	resolved := 0
	for i := range soc.Proposals {
		p := &soc.Proposals[i]
		if p.Status != VoteOpen || currentTick < p.DeadlineTick {
			continue
		}
		p.Status = VoteResolved
		p.Result = p.VotesFor > p.VotesAgainst
		resolved++
	}
	return resolved
}

// ShareTech raises receiver's level in domain to sender's, if higher.
// Returns the new level and true, or false if no advancement occurred.
// Ported from society_share_tech.
func ShareTech(sender, receiver *probe.Probe, domain types.TechDomain) (uint8, bool) {
	if domain < 0 || int(domain) >= int(types.TechDomainCount) {
		return 0, false
	}
	if sender.TechLevels[domain] <= receiver.TechLevels[domain] {
		return 0, false
	}
	receiver.TechLevels[domain] = sender.TechLevels[domain]
	return receiver.TechLevels[domain], true
}

// SharedResearchTicks returns the discounted tick count for research
// advanced via a shared tech level.
func SharedResearchTicks(normalTicks uint32) uint32 {
	return uint32(float64(normalTicks) * TechShareDiscount)
}
