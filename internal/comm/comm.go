// Package comm implements light-delay inter-probe messaging, beacons,
// and relay satellites, ported from
// original_source/src/communicate.c. Every distance uses
// probe.Probe.Position, the unified galactic-coordinate field.
package comm

import (
	"math"

	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/internal/personality"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/pkg/types"
)

const (
	MaxMessages = 4096
	MaxBeacons  = 256
	MaxRelays   = 256

	ticksPerLightYear = 365.0

	CommBaseRangeLY   = 5.0
	CommRangePerLevel = 5.0
	RelayRangeLY      = 20.0

	EnergyCostTargeted  = 1000.0
	EnergyCostBroadcast = 10000.0
)

type MsgMode int

const (
	ModeTargeted MsgMode = iota
	ModeBroadcast
)

type MsgStatus int

const (
	MsgInTransit MsgStatus = iota
	MsgDelivered
	MsgExpired
)

// Message is one queued light-delayed transmission.
type Message struct {
	SenderID    types.UID
	TargetID    types.UID
	Mode        MsgMode
	Content     string
	SentTick    uint64
	ArrivalTick uint64
	Status      MsgStatus
	DistanceLY  float64
}

// Beacon is a persistent marker a probe leaves in a system.
type Beacon struct {
	OwnerID    types.UID
	SystemID   types.UID
	Position   types.Vec3
	Message    string
	PlacedTick uint64
	Active     bool
}

// Relay is a built satellite that extends communication range.
type Relay struct {
	OwnerID   types.UID
	SystemID  types.UID
	Position  types.Vec3
	BuiltTick uint64
	Active    bool
	RangeLY   float64
}

// System is the in-memory queue of messages, beacons, and relays a
// Core keeps for the whole simulation.
type System struct {
	Messages []Message
	Beacons  []Beacon
	Relays   []Relay
}

func dist(a, b types.Vec3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Range returns a probe's communication range based on its
// communication tech level. Ported from comm_range.
func Range(p *probe.Probe) float64 {
	return CommBaseRangeLY + CommRangePerLevel*float64(p.TechLevels[types.TechCommunication])
}

// LightDelay returns the number of ticks a signal takes to cross the
// distance between two positions, at one light-year per year (one
// tick == one day). Ported from comm_light_delay.
func LightDelay(from, to types.Vec3) uint64 {
	d := dist(from, to)
	return uint64(d*ticksPerLightYear + 0.5)
}

// RelayPathDistance finds the shortest relay-assisted path from
// `from` to `to`, falling back to the direct distance when it's
// within directRange, or -1 when nothing reaches. Ported from
// comm_relay_path_distance (Dijkstra-like relaxation over active
// relays).
func RelayPathDistance(cs *System, from, to types.Vec3, directRange float64) float64 {
	direct := dist(from, to)
	if direct <= directRange {
		return direct
	}

	n := len(cs.Relays)
	if n == 0 {
		return -1
	}

	distTo := make([]float64, n)
	visited := make([]bool, n)
	for i := range cs.Relays {
		distTo[i] = -1
		if !cs.Relays[i].Active {
			continue
		}
		d := dist(from, cs.Relays[i].Position)
		if d <= directRange {
			distTo[i] = d
		}
	}

	for iter := 0; iter < n; iter++ {
		best := -1
		bestDist := math.MaxFloat64
		for i := 0; i < n; i++ {
			if !visited[i] && distTo[i] > 0 && distTo[i] < bestDist {
				best = i
				bestDist = distTo[i]
			}
		}
		if best < 0 {
			break
		}
		visited[best] = true

		toTarget := dist(cs.Relays[best].Position, to)
		if toTarget <= cs.Relays[best].RangeLY {
			return distTo[best] + toTarget
		}

		for j := 0; j < n; j++ {
			if visited[j] || !cs.Relays[j].Active {
				continue
			}
			d := dist(cs.Relays[best].Position, cs.Relays[j].Position)
			if d <= cs.Relays[best].RangeLY {
				newDist := distTo[best] + d
				if distTo[j] < 0 || newDist < distTo[j] {
					distTo[j] = newDist
				}
			}
		}
	}

	return -1
}

// CheckReachable returns the effective send distance from sender to
// targetPos (direct or relay-assisted), or -1 if unreachable.
func CheckReachable(cs *System, sender *probe.Probe, targetPos types.Vec3) float64 {
	r := Range(sender)
	direct := dist(sender.Position, targetPos)
	if direct <= r {
		return direct
	}
	return RelayPathDistance(cs, sender.Position, targetPos, r)
}

// SendTargeted queues a point-to-point message, charging energy and
// computing its light-delay arrival tick. Ported from
// comm_send_targeted.
func SendTargeted(cs *System, sender *probe.Probe, targetID types.UID, targetPos types.Vec3, content string, currentTick uint64) *obserr.Error {
	if len(cs.Messages) >= MaxMessages {
		return obserr.Capacity("message queue is full")
	}
	if sender.EnergyJoules < EnergyCostTargeted {
		return obserr.Insufficient("insufficient energy to send message")
	}
	if CheckReachable(cs, sender, targetPos) < 0 {
		return obserr.Invalid("target is out of communication range")
	}

	actualDist := dist(sender.Position, targetPos)
	delay := LightDelay(sender.Position, targetPos)

	sender.EnergyJoules -= EnergyCostTargeted
	personality.ResetContact(sender)
	cs.Messages = append(cs.Messages, Message{
		SenderID: sender.ID, TargetID: targetID, Mode: ModeTargeted,
		Content: content, SentTick: currentTick, ArrivalTick: currentTick + delay,
		Status: MsgInTransit, DistanceLY: actualDist,
	})
	return nil
}

// SendBroadcast queues one message per in-range probe (direct-only,
// no relay assist). Ported from comm_send_broadcast.
func SendBroadcast(cs *System, sender *probe.Probe, allProbes []*probe.Probe, content string, currentTick uint64) (int, *obserr.Error) {
	if sender.EnergyJoules < EnergyCostBroadcast {
		return 0, obserr.Insufficient("insufficient energy to broadcast")
	}

	r := Range(sender)
	sender.EnergyJoules -= EnergyCostBroadcast
	personality.ResetContact(sender)
	queued := 0

	for _, other := range allProbes {
		if other.ID == sender.ID {
			continue
		}
		d := dist(sender.Position, other.Position)
		if d > r {
			continue
		}
		if len(cs.Messages) >= MaxMessages {
			break
		}

		delay := LightDelay(sender.Position, other.Position)
		cs.Messages = append(cs.Messages, Message{
			SenderID: sender.ID, TargetID: other.ID, Mode: ModeBroadcast,
			Content: content, SentTick: currentTick, ArrivalTick: currentTick + delay,
			Status: MsgInTransit, DistanceLY: d,
		})
		queued++
	}

	return queued, nil
}

// TickDeliver marks every message whose arrival tick has passed as
// delivered, resetting the recipient's isolation counter if it is
// known in probes, and returns how many were delivered this tick.
func TickDeliver(cs *System, probes map[types.UID]*probe.Probe, currentTick uint64) int {
	delivered := 0
	for i := range cs.Messages {
		if cs.Messages[i].Status == MsgInTransit && cs.Messages[i].ArrivalTick <= currentTick {
			cs.Messages[i].Status = MsgDelivered
			delivered++
			if target, ok := probes[cs.Messages[i].TargetID]; ok {
				personality.ResetContact(target)
			}
		}
	}
	return delivered
}

// Inbox returns every delivered message addressed to probeID.
func Inbox(cs *System, probeID types.UID) []Message {
	var out []Message
	for _, m := range cs.Messages {
		if m.Status == MsgDelivered && m.TargetID == probeID {
			out = append(out, m)
		}
	}
	return out
}

// PlaceBeacon drops a beacon at owner's current position. Ported from
// comm_place_beacon.
func PlaceBeacon(cs *System, owner *probe.Probe, systemID types.UID, message string, currentTick uint64) *obserr.Error {
	if len(cs.Beacons) >= MaxBeacons {
		return obserr.Capacity("beacon limit reached")
	}
	cs.Beacons = append(cs.Beacons, Beacon{
		OwnerID: owner.ID, SystemID: systemID, Position: owner.Position,
		Message: message, PlacedTick: currentTick, Active: true,
	})
	return nil
}

// DetectBeacons returns every active beacon in systemID.
func DetectBeacons(cs *System, systemID types.UID) []Beacon {
	var out []Beacon
	for _, b := range cs.Beacons {
		if b.Active && b.SystemID == systemID {
			out = append(out, b)
		}
	}
	return out
}

// DeactivateBeacon retires ownerID's beacon in systemID.
func DeactivateBeacon(cs *System, ownerID, systemID types.UID) *obserr.Error {
	for i := range cs.Beacons {
		if cs.Beacons[i].Active && cs.Beacons[i].OwnerID == ownerID && cs.Beacons[i].SystemID == systemID {
			cs.Beacons[i].Active = false
			return nil
		}
	}
	return obserr.Missing("no active beacon found for owner in system")
}

// BuildRelay constructs a relay satellite at owner's current
// position. Ported from comm_build_relay.
func BuildRelay(cs *System, owner *probe.Probe, systemID types.UID, currentTick uint64) *obserr.Error {
	if len(cs.Relays) >= MaxRelays {
		return obserr.Capacity("relay limit reached")
	}
	cs.Relays = append(cs.Relays, Relay{
		OwnerID: owner.ID, SystemID: systemID, Position: owner.Position,
		BuiltTick: currentTick, Active: true, RangeLY: RelayRangeLY,
	})
	return nil
}
