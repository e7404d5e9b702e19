package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitadek/universe/pkg/types"
)

func TestStartSelfResearchUsesNormalRate(t *testing.T) {
	p := InitBob()
	p.StartSelfResearch(types.TechPropulsion)
	assert.Equal(t, uint32(50*(1+3)), p.Research.TicksTotal)
}

func TestTickResearchCompletesAndRecomputes(t *testing.T) {
	p := InitBob()
	before := p.MaxSpeedC
	p.StartResearch(types.TechPropulsion, 3)

	assert.False(t, p.TickResearch())
	assert.False(t, p.TickResearch())
	assert.True(t, p.TickResearch())

	assert.Equal(t, uint8(4), p.TechLevels[types.TechPropulsion])
	assert.Greater(t, p.MaxSpeedC, before)
	assert.False(t, p.Research.Active)
}

func TestTickResearchNoOpWhenInactive(t *testing.T) {
	p := InitBob()
	assert.False(t, p.TickResearch())
}

func TestStartResearchDiscardsPriorCounter(t *testing.T) {
	p := InitBob()
	p.StartResearch(types.TechSensors, 100)
	p.StartResearch(types.TechMining, 5)
	assert.Equal(t, types.TechMining, p.Research.Domain)
	assert.Equal(t, uint32(5), p.Research.TicksRemaining)
}
