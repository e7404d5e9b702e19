package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitadek/universe/internal/events"
)

func TestLoadReplacesScheduledList(t *testing.T) {
	q := &Queue{}
	n := q.Load([]Entry{{AtTick: 10, Type: events.EvtHazard}})
	assert.Equal(t, 1, n)
	assert.Len(t, q.Scheduled, 1)
}

func TestFireDueFiresOnceOnly(t *testing.T) {
	q := &Queue{}
	q.Load([]Entry{{AtTick: 5, Type: events.EvtWonder}})

	assert.Empty(t, q.FireDue(4))
	due := q.FireDue(5)
	assert.Len(t, due, 1)
	assert.Empty(t, q.FireDue(6))
}

func TestPendingExcludesFired(t *testing.T) {
	q := &Queue{}
	q.Load([]Entry{{AtTick: 1}, {AtTick: 2}})
	q.FireDue(1)
	assert.Len(t, q.Pending(), 1)
}

func TestInjectAndFlush(t *testing.T) {
	q := &Queue{}
	n := q.Inject(Entry{Type: events.EvtCrisis, Description: "test"})
	assert.Equal(t, 1, n)

	flushed := q.FlushInjected()
	assert.Len(t, flushed, 1)
	assert.Empty(t, q.Injected)
	assert.Empty(t, q.FlushInjected())
}
