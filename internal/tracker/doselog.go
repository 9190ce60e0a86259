package tracker

import (
	"sort"
	"time"

	"github.com/medtrack/medtrack/internal/timekey"
)

// findLogLocked returns the index of the log for (medication, day, slot),
// or -1. At most one such log ever exists.
func (t *Tracker) findLogLocked(medicationID, dateKey, scheduledTime string) int {
	for i := range t.logs {
		l := &t.logs[i]
		if l.MedicationID == medicationID && l.DateKey == dateKey && l.ScheduledTime == scheduledTime {
			return i
		}
	}
	return -1
}

// upsertLogLocked replaces the existing log for the slot or appends a new one.
func (t *Tracker) upsertLogLocked(log DoseLog) {
	if i := t.findLogLocked(log.MedicationID, log.DateKey, log.ScheduledTime); i >= 0 {
		t.logs[i] = log
		return
	}
	t.logs = append(t.logs, log)
}

// DoseHistory returns every log for the medication, newest first. It answers
// for deleted medications too, since logs outlive their medication.
func (t *Tracker) DoseHistory(medicationID string) []DoseLog {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []DoseLog
	for _, l := range t.logs {
		if l.MedicationID == medicationID {
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// LogForSlot returns the first log recorded for the medication on the local
// day of date, regardless of which slot it covers.
func (t *Tracker) LogForSlot(medicationID string, date time.Time) (DoseLog, bool) {
	dateKey := timekey.DateKey(date)

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, l := range t.logs {
		if l.MedicationID == medicationID && l.DateKey == dateKey {
			return l, true
		}
	}
	return DoseLog{}, false
}

// LogsForDay returns all logs recorded on the given local day, including
// orphans whose medication has been deleted.
func (t *Tracker) LogsForDay(date time.Time) []DoseLog {
	dateKey := timekey.DateKey(date)

	t.mu.Lock()
	defer t.mu.Unlock()

	var out []DoseLog
	for _, l := range t.logs {
		if l.DateKey == dateKey {
			out = append(out, l)
		}
	}
	return out
}

// countTakenOnLocked counts taken logs on the day, orphans included.
func (t *Tracker) countTakenOnLocked(dateKey string) int {
	n := 0
	for _, l := range t.logs {
		if l.DateKey == dateKey && l.Status == StatusTaken {
			n++
		}
	}
	return n
}
