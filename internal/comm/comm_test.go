package comm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/pkg/types"
)

func probeAt(id uint64, pos types.Vec3) *probe.Probe {
	p := probe.InitBob()
	p.ID = types.UID{Hi: id, Lo: id}
	p.Position = pos
	p.EnergyJoules = 1e12
	return p
}

func TestRangeScalesWithCommTechLevel(t *testing.T) {
	p := probeAt(1, types.Vec3{})
	p.TechLevels[types.TechCommunication] = 0
	base := Range(p)
	p.TechLevels[types.TechCommunication] = 3
	assert.Greater(t, Range(p), base)
}

func TestLightDelayScalesWithDistance(t *testing.T) {
	near := LightDelay(types.Vec3{}, types.Vec3{X: 1})
	far := LightDelay(types.Vec3{}, types.Vec3{X: 10})
	assert.Less(t, near, far)
}

func TestSendTargetedFailsOutOfRange(t *testing.T) {
	cs := &System{}
	sender := probeAt(1, types.Vec3{})
	err := SendTargeted(cs, sender, types.UID{Hi: 2}, types.Vec3{X: 1000}, "hello", 0)
	require.NotNil(t, err)
}

func TestSendTargetedSucceedsWithinRangeAndChargesEnergy(t *testing.T) {
	cs := &System{}
	sender := probeAt(1, types.Vec3{})
	before := sender.EnergyJoules
	target := types.Vec3{X: 3}

	err := SendTargeted(cs, sender, types.UID{Hi: 2}, target, "hello", 0)
	require.Nil(t, err)
	assert.Less(t, sender.EnergyJoules, before)
	require.Len(t, cs.Messages, 1)
	assert.Equal(t, MsgInTransit, cs.Messages[0].Status)
}

func TestSendTargetedInsufficientEnergy(t *testing.T) {
	cs := &System{}
	sender := probeAt(1, types.Vec3{})
	sender.EnergyJoules = 1.0
	err := SendTargeted(cs, sender, types.UID{Hi: 2}, types.Vec3{X: 1}, "hi", 0)
	require.NotNil(t, err)
	assert.Equal(t, "insufficient_resource", string(err.Kind))
}

func TestRelayExtendsReach(t *testing.T) {
	cs := &System{
		Relays: []Relay{
			{Position: types.Vec3{X: 5}, Active: true, RangeLY: RelayRangeLY},
		},
	}
	sender := probeAt(1, types.Vec3{})
	far := types.Vec3{X: 20}

	direct := Range(sender)
	assert.Less(t, direct, dist(types.Vec3{}, far))

	effective := CheckReachable(cs, sender, far)
	assert.Greater(t, effective, 0.0)
}

func TestCheckReachableReturnsNegativeWhenUnreachable(t *testing.T) {
	cs := &System{}
	sender := probeAt(1, types.Vec3{})
	eff := CheckReachable(cs, sender, types.Vec3{X: 10000})
	assert.Less(t, eff, 0.0)
}

func TestSendBroadcastSkipsSelfAndOutOfRange(t *testing.T) {
	cs := &System{}
	sender := probeAt(1, types.Vec3{})
	near := probeAt(2, types.Vec3{X: 3})
	far := probeAt(3, types.Vec3{X: 1000})

	queued, err := SendBroadcast(cs, sender, []*probe.Probe{sender, near, far}, "hi all", 0)
	require.Nil(t, err)
	assert.Equal(t, 1, queued)
	require.Len(t, cs.Messages, 1)
	assert.Equal(t, near.ID, cs.Messages[0].TargetID)
}

func TestTickDeliverDeliversDueMessages(t *testing.T) {
	cs := &System{
		Messages: []Message{
			{Status: MsgInTransit, ArrivalTick: 10},
			{Status: MsgInTransit, ArrivalTick: 100},
		},
	}
	delivered := TickDeliver(cs, nil, 50)
	assert.Equal(t, 1, delivered)
	assert.Equal(t, MsgDelivered, cs.Messages[0].Status)
	assert.Equal(t, MsgInTransit, cs.Messages[1].Status)
}

func TestInboxFiltersByTargetAndStatus(t *testing.T) {
	target := types.UID{Hi: 1}
	cs := &System{
		Messages: []Message{
			{TargetID: target, Status: MsgDelivered, Content: "a"},
			{TargetID: target, Status: MsgInTransit, Content: "b"},
			{TargetID: types.UID{Hi: 2}, Status: MsgDelivered, Content: "c"},
		},
	}
	inbox := Inbox(cs, target)
	require.Len(t, inbox, 1)
	assert.Equal(t, "a", inbox[0].Content)
}

func TestBeaconLifecycle(t *testing.T) {
	cs := &System{}
	owner := probeAt(1, types.Vec3{X: 1, Y: 2, Z: 3})
	sysID := types.UID{Hi: 9}

	err := PlaceBeacon(cs, owner, sysID, "hi", 5)
	require.Nil(t, err)
	require.Len(t, DetectBeacons(cs, sysID), 1)

	derr := DeactivateBeacon(cs, owner.ID, sysID)
	require.Nil(t, derr)
	assert.Empty(t, DetectBeacons(cs, sysID))

	derr2 := DeactivateBeacon(cs, owner.ID, sysID)
	require.NotNil(t, derr2)
}

func TestBuildRelayRespectsCapacity(t *testing.T) {
	cs := &System{}
	owner := probeAt(1, types.Vec3{})
	for i := 0; i < MaxRelays; i++ {
		require.Nil(t, BuildRelay(cs, owner, types.UID{Hi: 1}, 0))
	}
	err := BuildRelay(cs, owner, types.UID{Hi: 1}, 0)
	require.NotNil(t, err)
}
