// Package report turns raw punch events into monthly attendance reports.
//
// The pipeline is Reconcile → Aggregate → BuildDocument → Encode*. Every
// encoder consumes the same Document, so status labels and totals are
// derived exactly once.
package report

import (
	"sort"
	"time"
)

type PunchKind string

const (
	PunchEntry PunchKind = "entry"
	PunchExit  PunchKind = "exit"
)

// PunchEvent is one immutable entry or exit punch.
type PunchEvent struct {
	ID         uint
	EmployeeID uint
	Kind       PunchKind
	Timestamp  time.Time
	Location   string
	Latitude   *float64
	Longitude  *float64
}

// Employee is the identity summary used for display and grouping.
type Employee struct {
	ID          uint
	DisplayName string
	Email       string
}

type Status string

const (
	StatusComplete         Status = "complete"
	StatusEntryWithoutExit Status = "entry-without-exit"
	StatusExitWithoutEntry Status = "exit-without-entry"
)

// ShiftPair is one reconstructed entry/exit association for an employee-day.
type ShiftPair struct {
	Employee Employee
	Date     time.Time // UTC midnight
	Index    int       // position of the pair within its day
	Entry    *PunchEvent
	Exit     *PunchEvent
	Worked   *time.Duration // set iff Entry and Exit are both present
	Status   Status
	// Anomalous marks a complete pair whose exit precedes its entry.
	Anomalous bool
}

type bucketKey struct {
	employeeID uint
	date       time.Time
}

type bucket struct {
	entries []PunchEvent
	exits   []PunchEvent
}

// Reconcile pairs the i-th entry with the i-th exit of every (employee, UTC day)
// bucket. Events of an employee missing from directory fail the whole call.
// Events with an unknown kind are ignored.
func Reconcile(events []PunchEvent, directory map[uint]Employee) ([]ShiftPair, error) {
	buckets := make(map[bucketKey]*bucket)
	var keys []bucketKey

	for _, ev := range events {
		if _, ok := directory[ev.EmployeeID]; !ok {
			return nil, &UnknownEmployeeError{EmployeeID: ev.EmployeeID}
		}
		if ev.Kind != PunchEntry && ev.Kind != PunchExit {
			continue
		}

		key := bucketKey{employeeID: ev.EmployeeID, date: dayOf(ev.Timestamp)}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			keys = append(keys, key)
		}
		if ev.Kind == PunchEntry {
			b.entries = append(b.entries, ev)
		} else {
			b.exits = append(b.exits, ev)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].employeeID != keys[j].employeeID {
			return keys[i].employeeID < keys[j].employeeID
		}
		return keys[i].date.Before(keys[j].date)
	})

	var pairs []ShiftPair
	for _, key := range keys {
		b := buckets[key]
		sortChronologically(b.entries)
		sortChronologically(b.exits)

		n := max(len(b.entries), len(b.exits))
		for i := 0; i < n; i++ {
			pair := ShiftPair{
				Employee: directory[key.employeeID],
				Date:     key.date,
				Index:    i,
			}
			if i < len(b.entries) {
				pair.Entry = &b.entries[i]
			}
			if i < len(b.exits) {
				pair.Exit = &b.exits[i]
			}
			classify(&pair)
			pairs = append(pairs, pair)
		}
	}
	return pairs, nil
}

func classify(p *ShiftPair) {
	switch {
	case p.Entry != nil && p.Exit != nil:
		worked := p.Exit.Timestamp.Sub(p.Entry.Timestamp)
		p.Worked = &worked
		p.Status = StatusComplete
		p.Anomalous = worked < 0
	case p.Entry != nil:
		p.Status = StatusEntryWithoutExit
	default:
		p.Status = StatusExitWithoutEntry
	}
}

func sortChronologically(events []PunchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
}

// dayOf truncates t to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
