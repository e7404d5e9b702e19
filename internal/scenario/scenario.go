// Package scenario manages the scheduled and ad-hoc event injection
// queue ("inject"/"scenario" commands), grounded on internal/events'
// EventType/subtype vocabulary and a plain append-only slice rather
// than a priority queue, since entries are scanned once per tick
// against a small bound.
package scenario

import (
	"github.com/vitadek/universe/internal/events"
	"github.com/vitadek/universe/pkg/types"
)

// Entry is one scheduled or ad-hoc injected event. Scheduled entries
// carry AtTick; ad-hoc ones (from the "inject" command) fire on the
// very next tick processed.
type Entry struct {
	AtTick      uint64         `json:"at_tick"`
	Type        events.EventType `json:"type"`
	Subtype     int            `json:"subtype"`
	Description string         `json:"description"`
	Severity    float64        `json:"severity"`
	ProbeID     types.UID      `json:"probe,omitempty"`
	Fired       bool           `json:"fired"`
}

// Queue holds the scheduled list plus the ad-hoc injected queue: a
// "scheduled list of events" and a "queued external event injections"
// list respectively.
type Queue struct {
	Scheduled []Entry
	Injected  []Entry
}

// Load replaces the scheduled list wholesale, as the "scenario"
// command's events:[...] form does.
func (q *Queue) Load(entries []Entry) int {
	q.Scheduled = append([]Entry(nil), entries...)
	return len(q.Scheduled)
}

// Inject appends one ad-hoc event to the external queue, as the
// "inject" command does; it fires on the next FlushInjected call
// regardless of AtTick.
func (q *Queue) Inject(e Entry) int {
	q.Injected = append(q.Injected, e)
	return len(q.Injected)
}

// FireDue returns every scheduled, not-yet-fired entry whose AtTick
// has arrived, marking each fired so it never repeats (tick step 14,
// "fire any scheduled injected events").
func (q *Queue) FireDue(tick uint64) []Entry {
	var due []Entry
	for i := range q.Scheduled {
		e := &q.Scheduled[i]
		if e.Fired || e.AtTick > tick {
			continue
		}
		e.Fired = true
		due = append(due, *e)
	}
	return due
}

// FlushInjected drains and returns the entire ad-hoc queue (tick step
// 15, "apply queued external event injections").
func (q *Queue) FlushInjected() []Entry {
	flushed := q.Injected
	q.Injected = nil
	return flushed
}

// Pending returns scheduled entries that have not yet fired, for the
// "scenario" query form.
func (q *Queue) Pending() []Entry {
	var pending []Entry
	for _, e := range q.Scheduled {
		if !e.Fired {
			pending = append(pending, e)
		}
	}
	return pending
}
