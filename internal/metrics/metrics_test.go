package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/society"
	"github.com/vitadek/universe/pkg/types"
)

func TestSampleEmptyProbeTable(t *testing.T) {
	acc := NewAccumulator()
	snap := acc.Sample(10, nil)
	assert.Equal(t, uint64(10), snap.Tick)
	assert.Equal(t, 0, snap.ProbesSpawned)
	assert.Equal(t, 0.0, snap.AvgTech)
}

func TestSampleAveragesTechAndTrust(t *testing.T) {
	acc := NewAccumulator()
	a := probe.InitBob()
	a.ID = types.UID{Hi: 1}
	b := probe.InitBob()
	b.ID = types.UID{Hi: 2}
	society.UpdateTrust(a, b, 0.4)

	acc.RecordDiscovery()
	acc.RecordHazardSurvived()
	acc.RecordSystemExplored(types.UID{Hi: 100})
	acc.RecordSystemExplored(types.UID{Hi: 100})

	snap := acc.Sample(5, []*probe.Probe{a, b})
	assert.Equal(t, 2, snap.ProbesSpawned)
	assert.Equal(t, 1, snap.SystemsExplored)
	assert.Equal(t, 1, snap.TotalDiscoveries)
	assert.Equal(t, 1, snap.TotalHazardsSurvived)
	assert.InDelta(t, 0.4, snap.AvgTrust, 1e-9)
	assert.Greater(t, snap.AvgTech, 0.0)
}
