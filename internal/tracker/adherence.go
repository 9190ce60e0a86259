package tracker

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/medtrack/medtrack/internal/errors"
	"github.com/medtrack/medtrack/internal/timekey"
	"go.uber.org/zap"
)

// LogDose records the outcome of one dose slot. Re-logging the same slot
// replaces the previous entry, and the inventory delta is computed from the
// transition so repeated or corrected logs never double-count:
//
//	not taken -> taken    consumes one dose (floored at zero)
//	taken     -> skipped  returns one dose
//	anything else         leaves inventory unchanged
//
// A zero `at` means now. The inventory update and the log upsert commit
// together under the engine mutex.
func (t *Tracker) LogDose(medicationID, scheduledTime string, status DoseStatus, at time.Time) (DoseLog, error) {
	if !status.valid() {
		return DoseLog{}, errors.ErrInvalidDoseStatus
	}
	if _, err := timekey.ToMinutes(scheduledTime); err != nil {
		return DoseLog{}, err
	}
	if at.IsZero() {
		at = t.now()
	}
	dateKey := timekey.DateKey(at)

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOfLocked(medicationID)
	if i < 0 {
		return DoseLog{}, errors.ErrMedicationNotFound
	}
	med := &t.meds[i]

	wasTaken := false
	if j := t.findLogLocked(medicationID, dateKey, scheduledTime); j >= 0 {
		wasTaken = t.logs[j].Status == StatusTaken
	}

	switch {
	case !wasTaken && status == StatusTaken:
		if med.Inventory > 0 {
			med.Inventory--
		}
	case wasTaken && status == StatusSkipped:
		med.Inventory++
	}

	log := DoseLog{
		ID:            uuid.NewString(),
		MedicationID:  medicationID,
		Timestamp:     t.now(),
		Status:        status,
		ScheduledTime: scheduledTime,
		DateKey:       dateKey,
	}
	t.upsertLogLocked(log)

	t.persistMedications()
	t.persistLogs()

	t.logger.Info("Dose logged",
		zap.String("medication_id", medicationID),
		zap.String("date_key", dateKey),
		zap.String("scheduled_time", scheduledTime),
		zap.String("status", string(status)),
		zap.Int("inventory", med.Inventory),
	)
	return log, nil
}

// DailyProgress returns the percentage of the day's scheduled slots that were
// taken, rounded to the nearest integer. A day with no scheduled slots is 0.
// Taken logs are counted even when their medication no longer exists, so the
// figure can briefly exceed what the surviving schedule implies.
func (t *Tracker) DailyProgress(date time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progressLocked(timekey.DateKey(date))
}

func (t *Tracker) progressLocked(dateKey string) int {
	total := 0
	for _, m := range t.meds {
		total += len(m.Times)
	}
	if total == 0 {
		return 0
	}

	taken := t.countTakenOnLocked(dateKey)
	return int(math.Round(100 * float64(taken) / float64(total)))
}
