package replicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/rng"
	"github.com/vitadek/universe/pkg/types"
)

func wellStockedProbe() *probe.Probe {
	p := probe.InitBob()
	for r := 0; r < int(types.ResourceCount); r++ {
		p.Resources[r] = Costs[r] * 2
	}
	return p
}

func TestCheckResourcesFailsWhenShort(t *testing.T) {
	p := probe.InitBob()
	assert.False(t, CheckResources(p))
}

func TestBeginRequiresResources(t *testing.T) {
	p := probe.InitBob()
	_, err := Begin(p)
	require.NotNil(t, err)
	assert.Equal(t, obserr.InsufficientResource, err.Kind)
}

func TestBeginSucceedsAndSetsStatus(t *testing.T) {
	p := wellStockedProbe()
	state, err := Begin(p)
	require.Nil(t, err)
	require.NotNil(t, state)
	assert.Equal(t, types.StatusReplicating, p.Status)
	assert.True(t, state.Active)
}

func TestBeginRejectsAlreadyReplicating(t *testing.T) {
	p := wellStockedProbe()
	_, err := Begin(p)
	require.Nil(t, err)
	_, err2 := Begin(p)
	require.NotNil(t, err2)
}

func TestTickConsumesResourcesAndCompletesAtBaseTicks(t *testing.T) {
	p := wellStockedProbe()
	state, err := Begin(p)
	require.Nil(t, err)

	var result TickResult
	for i := 0; i < BaseTicks; i++ {
		result, err = Tick(p, state)
		require.Nil(t, err)
	}

	assert.True(t, result.Complete)
	assert.InDelta(t, 1.0, state.Progress, 1e-9)
}

func TestTickFiresConsciousnessForkAt80Percent(t *testing.T) {
	p := wellStockedProbe()
	state, err := Begin(p)
	require.Nil(t, err)

	forkTick := -1
	for i := 0; i < BaseTicks; i++ {
		result, terr := Tick(p, state)
		require.Nil(t, terr)
		if result.ConsciousnessForked {
			forkTick = i
			break
		}
	}

	require.NotEqual(t, -1, forkTick)
	assert.GreaterOrEqual(t, state.Progress, ConsciousnessForkPct)
}

func TestFinalizeRequiresCompletion(t *testing.T) {
	p := wellStockedProbe()
	state, err := Begin(p)
	require.Nil(t, err)
	r := rng.Derive(1, 0, 0, 0)

	_, ferr := Finalize(p, state, r, 1)
	require.NotNil(t, ferr)
}

func TestFinalizeProducesChildAndRestoresParent(t *testing.T) {
	p := wellStockedProbe()
	state, err := Begin(p)
	require.Nil(t, err)
	for i := 0; i < BaseTicks; i++ {
		_, terr := Tick(p, state)
		require.Nil(t, terr)
	}

	r := rng.Derive(1, 0, 0, 0)
	child, ferr := Finalize(p, state, r, 500)
	require.Nil(t, ferr)
	require.NotNil(t, child)

	assert.Equal(t, types.StatusActive, p.Status)
	assert.False(t, state.Active)
	assert.Equal(t, p.ID, child.ParentID)
	assert.Equal(t, p.Generation+1, child.Generation)
	assert.NotEmpty(t, child.Name)
	assert.Equal(t, 1.0, child.HullIntegrity)
	assert.InDelta(t, p.EnergyJoules*childEnergyFraction, child.EnergyJoules, 1e-6)
}

func TestMutatePersonalityStaysWithinBounds(t *testing.T) {
	parent := probe.InitBob().Personality
	r := rng.Derive(1, 0, 0, 0)
	for i := 0; i < 1000; i++ {
		child := MutatePersonality(parent, r)
		assert.LessOrEqual(t, child.Curiosity, 1.0)
		assert.GreaterOrEqual(t, child.Curiosity, -1.0)
		assert.GreaterOrEqual(t, child.DriftRate, minDriftRateAfterMutate)
	}
}

func TestDegradeEarthMemoriesShrinksFidelityEachGeneration(t *testing.T) {
	p := probe.InitBob()
	before := p.EarthMemoryFidelity
	DegradeEarthMemories(p)
	assert.Less(t, p.EarthMemoryFidelity, before)
}

func TestDegradeEarthMemoriesTruncatesAtLowFidelity(t *testing.T) {
	p := probe.InitBob()
	p.EarthMemoryFidelity = 0.3
	original := p.EarthMemories[0]
	DegradeEarthMemories(p)
	assert.NotEqual(t, original, p.EarthMemories[0])
}

func TestInheritQuirksNeverExceedsMax(t *testing.T) {
	parent := probe.InitBob()
	for i := 0; i < probe.MaxQuirks; i++ {
		parent.Quirks = append(parent.Quirks, "extra quirk")
	}
	child := &probe.Probe{}
	r := rng.Derive(2, 0, 0, 0)
	InheritQuirks(parent, child, r)
	assert.LessOrEqual(t, len(child.Quirks), probe.MaxQuirks)
}

func TestLineageTreeRecordsAndQueriesChildren(t *testing.T) {
	tree := &LineageTree{}
	parentID := types.UID{Hi: 1, Lo: 1}
	childA := types.UID{Hi: 2, Lo: 2}
	childB := types.UID{Hi: 3, Lo: 3}

	tree.Record(parentID, childA, 10, 1)
	tree.Record(parentID, childB, 20, 1)

	children := tree.Children(parentID)
	assert.ElementsMatch(t, []types.UID{childA, childB}, children)
}

func TestLineageTreeRespectsCapacity(t *testing.T) {
	tree := &LineageTree{}
	parentID := types.UID{Hi: 1, Lo: 1}
	for i := 0; i < MaxLineage+10; i++ {
		tree.Record(parentID, types.UID{Hi: uint64(i), Lo: 1}, uint64(i), 1)
	}
	assert.LessOrEqual(t, len(tree.Entries), MaxLineage)
}
