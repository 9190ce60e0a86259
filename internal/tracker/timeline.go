package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/medtrack/medtrack/internal/timekey"
)

// Timeline derives the dose timeline for the local day of `day`, classified
// as of `now`. Slots come from the current registry, so doses of deleted
// medications never appear even if their logs survive.
//
// A taken log settles a slot. Everything else is time-classified: slots on a
// past day are late, on a future day future, and on today depend on the
// clock: already passed is late, within the reminder horizon is pending,
// beyond it future.
func (t *Tracker) Timeline(now, day time.Time) DayView {
	dateKey := timekey.DateKey(day)
	today := timekey.DateKey(now)
	nowMinutes := now.Hour()*60 + now.Minute()

	t.mu.Lock()
	defer t.mu.Unlock()

	var slots []Slot
	for _, m := range t.meds {
		for _, st := range m.Times {
			slots = append(slots, Slot{
				MedicationID:  m.ID,
				Name:          m.Name,
				ScheduledTime: st,
				DosageLabel:   dosageLabel(m),
				Instructions:  m.Instructions,
				Status:        t.classifyLocked(m.ID, dateKey, today, st, nowMinutes),
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].ScheduledTime < slots[j].ScheduledTime
	})

	view := DayView{
		DateKey:  dateKey,
		Slots:    slots,
		Progress: t.progressLocked(dateKey),
	}

	for i := range slots {
		if slots[i].Status == SlotPending {
			view.NextDose = &slots[i]
			break
		}
	}
	if view.NextDose == nil {
		for i := range slots {
			if slots[i].Status == SlotFuture {
				view.NextDose = &slots[i]
				break
			}
		}
	}
	view.AllDone = len(slots) > 0 && view.NextDose == nil

	return view
}

func (t *Tracker) classifyLocked(medicationID, dateKey, today, scheduledTime string, nowMinutes int) SlotStatus {
	// Only a taken log settles a slot; a skipped one falls through to the
	// time classification like an unlogged slot.
	if i := t.findLogLocked(medicationID, dateKey, scheduledTime); i >= 0 && t.logs[i].Status == StatusTaken {
		return SlotTaken
	}

	switch {
	case dateKey < today:
		return SlotLate
	case dateKey > today:
		return SlotFuture
	}

	slotMinutes, err := timekey.ToMinutes(scheduledTime)
	if err != nil {
		return SlotFuture
	}

	switch {
	case slotMinutes < nowMinutes:
		return SlotLate
	case slotMinutes <= nowMinutes+t.horizon:
		return SlotPending
	default:
		return SlotFuture
	}
}

func dosageLabel(m Medication) string {
	return fmt.Sprintf("%g %s", m.Dosage, m.Unit)
}
