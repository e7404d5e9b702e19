package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/pkg/types"
)

func TestNewSpawnsBobInFirstSystem(t *testing.T) {
	c := New(7)
	require.Len(t, c.Probes, 1)
	bob, ok := c.Probes[types.UID{Hi: 1, Lo: 1}]
	require.True(t, ok)
	assert.Equal(t, "Bob", bob.Name)
	assert.False(t, bob.SystemID.IsNull())
}

func TestTickAdvancesCounterAndEmitsObservations(t *testing.T) {
	c := New(7)
	obs := c.Tick(nil)
	assert.Equal(t, uint64(1), c.TickNum)
	assert.Len(t, obs, 1)
}

func TestTickIsDeterministicAcrossIndependentRuns(t *testing.T) {
	a := New(99)
	b := New(99)

	for i := 0; i < 500; i++ {
		a.Tick(nil)
		b.Tick(nil)
	}

	assert.Equal(t, a.TickNum, b.TickNum)
	for id, pa := range a.Probes {
		pb, ok := b.Probes[id]
		require.True(t, ok)
		assert.Equal(t, pa.HullIntegrity, pb.HullIntegrity)
		assert.Equal(t, pa.Position, pb.Position)
	}
}

func TestExecuteActionResearchStartsCounter(t *testing.T) {
	c := New(1)
	bob := c.Probes[types.UID{Hi: 1, Lo: 1}]

	res := c.ExecuteAction(bob, probe.Action{Type: probe.ActResearch, ResearchDomain: types.TechSensors})
	assert.Nil(t, res.Err)
	assert.True(t, bob.Research.Active)
}

func TestExecuteActionClaimSystemThenTrespassPenalizesTrust(t *testing.T) {
	c := New(1)
	bob := c.Probes[types.UID{Hi: 1, Lo: 1}]
	intruder := probe.InitBob()
	intruder.ID = types.UID{Hi: 2, Lo: 2}
	intruder.SystemID = bob.SystemID
	intruder.Sector = bob.Sector
	intruder.LocationType = types.LocInSystem
	c.Probes[intruder.ID] = intruder

	res := c.ExecuteAction(bob, probe.Action{Type: probe.ActClaimSystem})
	require.Nil(t, res.Err)

	c.Tick(nil)

	found := false
	for _, rel := range intruder.Relationships {
		if rel.OtherID == bob.ID {
			found = true
			assert.Less(t, rel.Trust, 0.0)
		}
	}
	assert.True(t, found)
}

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	c := New(3)
	for i := 0; i < 10; i++ {
		c.Tick(nil)
	}
	snap := c.Snapshot("mid")

	for i := 0; i < 10; i++ {
		c.Tick(nil)
	}
	c.Restore(snap)

	assert.Equal(t, snap.Tick, c.TickNum)
	for id, p := range snap.Probes {
		live, ok := c.Probes[id]
		require.True(t, ok)
		assert.Equal(t, p.HullIntegrity, live.HullIntegrity)
	}
}

func TestForkProducesIndependentUniverse(t *testing.T) {
	c := New(3)
	for i := 0; i < 5; i++ {
		c.Tick(nil)
	}
	snap := c.Snapshot("fork-point")

	forked := Fork(snap, 999)
	assert.Equal(t, snap.Tick, forked.TickNum)
	assert.NotEqual(t, c.Seed, forked.Seed)
	assert.Len(t, forked.Probes, len(snap.Probes))
}
