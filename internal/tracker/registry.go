package tracker

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/medtrack/medtrack/internal/errors"
	"github.com/medtrack/medtrack/internal/timekey"
	"go.uber.org/zap"
)

// AddMedication validates fields, assigns a fresh id and registers the
// medication. Times are deduplicated and sorted chronologically.
func (t *Tracker) AddMedication(med Medication) (Medication, error) {
	if err := validateDosage(med.Dosage); err != nil {
		return Medication{}, err
	}
	if med.Inventory < 0 {
		return Medication{}, errors.ErrInvalidInventory
	}

	times, err := normalizeTimes(med.Times)
	if err != nil {
		return Medication{}, err
	}

	med.ID = uuid.NewString()
	med.Times = times

	t.mu.Lock()
	defer t.mu.Unlock()

	t.meds = append(t.meds, med)
	t.persistMedications()

	t.logger.Info("Medication added",
		zap.String("medication_id", med.ID),
		zap.String("name", med.Name),
		zap.Int("slots", len(med.Times)),
	)
	return med, nil
}

// UpdateMedication merges the non-nil patch fields into the medication.
func (t *Tracker) UpdateMedication(id string, patch MedicationPatch) (Medication, error) {
	if patch.Dosage != nil {
		if err := validateDosage(*patch.Dosage); err != nil {
			return Medication{}, err
		}
	}
	if patch.Inventory != nil && *patch.Inventory < 0 {
		return Medication{}, errors.ErrInvalidInventory
	}

	var times []string
	if patch.Times != nil {
		normalized, err := normalizeTimes(patch.Times)
		if err != nil {
			return Medication{}, err
		}
		times = normalized
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOfLocked(id)
	if i < 0 {
		return Medication{}, errors.ErrMedicationNotFound
	}

	med := &t.meds[i]
	if patch.Name != nil {
		med.Name = *patch.Name
	}
	if patch.Dosage != nil {
		med.Dosage = *patch.Dosage
	}
	if patch.Unit != nil {
		med.Unit = *patch.Unit
	}
	if patch.Form != nil {
		med.Form = *patch.Form
	}
	if patch.Inventory != nil {
		med.Inventory = *patch.Inventory
	}
	if times != nil {
		med.Times = times
	}
	if patch.Instructions != nil {
		med.Instructions = *patch.Instructions
	}
	if patch.Notes != nil {
		med.Notes = *patch.Notes
	}
	if patch.Color != nil {
		med.Color = *patch.Color
	}

	t.persistMedications()
	return *med, nil
}

// DeleteMedication removes the medication. Its dose logs are left in place
// as orphaned references; readers filter them out.
func (t *Tracker) DeleteMedication(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOfLocked(id)
	if i < 0 {
		return errors.ErrMedicationNotFound
	}

	t.meds = append(t.meds[:i], t.meds[i+1:]...)
	t.persistMedications()

	t.logger.Info("Medication deleted", zap.String("medication_id", id))
	return nil
}

// GetMedication returns the medication with the given id.
func (t *Tracker) GetMedication(id string) (Medication, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOfLocked(id)
	if i < 0 {
		return Medication{}, false
	}
	return copyMedication(t.meds[i]), true
}

// ListMedications returns all medications in registration order.
func (t *Tracker) ListMedications() []Medication {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Medication, len(t.meds))
	for i, m := range t.meds {
		out[i] = copyMedication(m)
	}
	return out
}

func (t *Tracker) indexOfLocked(id string) int {
	for i := range t.meds {
		if t.meds[i].ID == id {
			return i
		}
	}
	return -1
}

func copyMedication(m Medication) Medication {
	m.Times = append([]string(nil), m.Times...)
	return m
}

func validateDosage(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return errors.ErrInvalidDosage
	}
	return nil
}

// normalizeTimes validates every HH:MM entry, drops duplicates and sorts.
// Zero-padded clock strings sort lexicographically in time order.
func normalizeTimes(times []string) ([]string, error) {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))

	for _, s := range times {
		if _, err := timekey.ToMinutes(s); err != nil {
			return nil, err
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}

	sort.Strings(out)
	return out, nil
}
