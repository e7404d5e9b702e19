package personality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/worldgen"
)

func TestDriftDiscoveryIncreasesCuriosityAndAmbition(t *testing.T) {
	p := probe.InitBob()
	curiosityBefore := p.Personality.Curiosity
	ambitionBefore := p.Personality.Ambition

	Drift(p, DriftDiscovery)

	assert.Greater(t, p.Personality.Curiosity, curiosityBefore)
	assert.Greater(t, p.Personality.Ambition, ambitionBefore)
}

func TestDriftClampsAtBounds(t *testing.T) {
	p := probe.InitBob()
	p.Personality.Curiosity = 0.999
	p.Personality.DriftRate = 1.0

	for i := 0; i < 50; i++ {
		Drift(p, DriftAnomaly)
	}
	assert.LessOrEqual(t, p.Personality.Curiosity, 1.0)
}

func TestSolitudeFiresEveryHundredTicks(t *testing.T) {
	p := probe.InitBob()
	p.TicksSinceContact = 99
	before := p.Personality.NostalgiaForEarth
	TickSolitude(p)
	assert.Greater(t, p.Personality.NostalgiaForEarth, before)

	before2 := p.Personality.NostalgiaForEarth
	TickSolitude(p)
	assert.Equal(t, before2, p.Personality.NostalgiaForEarth)
}

func TestResetContactClearsCounter(t *testing.T) {
	p := probe.InitBob()
	p.TicksSinceContact = 42
	ResetContact(p)
	assert.Equal(t, uint64(0), p.TicksSinceContact)
}

func TestMemoryRecordEvictsMostFadedWhenFull(t *testing.T) {
	p := probe.InitBob()
	for i := 0; i < probe.MaxMemories; i++ {
		RecordMemory(p, uint64(i), "filler", 0.1)
	}
	require.Len(t, p.Memories, probe.MaxMemories)

	p.Memories[5].Fading = 0.9
	RecordMemory(p, 9999, "new memory", 0.5)

	assert.Equal(t, "new memory", p.Memories[5].Event)
	assert.Len(t, p.Memories, probe.MaxMemories)
}

func TestFadeMemoriesSlowsForHighWeight(t *testing.T) {
	p := probe.InitBob()
	RecordMemory(p, 0, "low weight", 0.0)
	RecordMemory(p, 0, "high weight", 1.0)

	FadeMemories(p)

	assert.Greater(t, p.Memories[0].Fading, p.Memories[1].Fading)
}

func TestMostVividReturnsLowestFading(t *testing.T) {
	p := probe.InitBob()
	RecordMemory(p, 0, "a", 0.5)
	RecordMemory(p, 0, "b", 0.5)
	p.Memories[0].Fading = 0.5
	p.Memories[1].Fading = 0.1

	vivid := MostVivid(p)
	require.NotNil(t, vivid)
	assert.Equal(t, "b", vivid.Event)
}

func TestFoodNamingQuirkFiresOnlyWhenStressedAndQuirked(t *testing.T) {
	p := probe.InitBob()
	sys := &worldgen.System{Name: "Original"}

	p.HullIntegrity = 1.0
	assert.False(t, CheckFoodNamingQuirk(p, sys))

	p.HullIntegrity = 0.2
	fired := CheckFoodNamingQuirk(p, sys)
	assert.True(t, fired)
	assert.NotEqual(t, "Original", sys.Name)
}

func TestMonologueReturnsNonEmptyLine(t *testing.T) {
	p := probe.InitBob()
	line := Monologue(p, DriftDiscovery)
	assert.NotEmpty(t, line)
}
