package tracker

import (
	"time"
)

// DosageUnit is the unit a dose is measured in.
type DosageUnit string

const (
	UnitMg       DosageUnit = "mg"
	UnitMl       DosageUnit = "ml"
	UnitG        DosageUnit = "g"
	UnitPastilla DosageUnit = "pastilla"
)

// MedForm is the presentation form of a medication.
type MedForm string

const (
	FormPastilla  MedForm = "Pastilla"
	FormLiquido   MedForm = "Líquido"
	FormInyeccion MedForm = "Inyección"
	FormInhalador MedForm = "Inhalador"
)

// DoseStatus is the persisted outcome of a dose slot. "late" is a derived
// display state and is never stored.
type DoseStatus string

const (
	StatusTaken   DoseStatus = "taken"
	StatusSkipped DoseStatus = "skipped"
)

// SlotStatus is the derived state of a dose slot at read time.
type SlotStatus string

const (
	SlotTaken   SlotStatus = "taken"
	SlotPending SlotStatus = "pending"
	SlotLate    SlotStatus = "late"
	SlotFuture  SlotStatus = "future"
)

// Medication is a registered medication with its daily schedule and the
// count of doses remaining.
type Medication struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Dosage    float64    `json:"dosage"`
	Unit      DosageUnit `json:"unit"`
	Form      MedForm    `json:"type"`
	Inventory int        `json:"inventory"`
	Times     []string   `json:"times"` // sorted unique "HH:MM" slots

	Instructions string `json:"instructions,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Color        string `json:"color,omitempty"`
}

// MedicationPatch carries the fields of a partial medication update. Nil
// pointers (and a nil Times slice) leave the current value untouched.
type MedicationPatch struct {
	Name         *string     `json:"name,omitempty"`
	Dosage       *float64    `json:"dosage,omitempty"`
	Unit         *DosageUnit `json:"unit,omitempty"`
	Form         *MedForm    `json:"type,omitempty"`
	Inventory    *int        `json:"inventory,omitempty"`
	Times        []string    `json:"times,omitempty"`
	Instructions *string     `json:"instructions,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	Color        *string     `json:"color,omitempty"`
}

// DoseLog records the outcome of one dose slot on one day. MedicationID is a
// weak reference: the medication may have been deleted since, and readers
// must tolerate that.
type DoseLog struct {
	ID            string     `json:"id"`
	MedicationID  string     `json:"medication_id"`
	Timestamp     time.Time  `json:"timestamp"`
	Status        DoseStatus `json:"status"`
	ScheduledTime string     `json:"scheduled_time"`
	DateKey       string     `json:"date_key"`
}

// GoogleAccount is the mocked linked account. The token is an opaque fake;
// no real OAuth flow backs it.
type GoogleAccount struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Token  string `json:"token,omitempty"`
}

// CalendarPreferences configures the mocked calendar sync.
type CalendarPreferences struct {
	Enabled         bool   `json:"enabled"`
	CalendarID      string `json:"calendar_id"`
	AutoSync        bool   `json:"auto_sync"`
	Reminders       bool   `json:"reminders"`
	ReminderMethod  string `json:"reminder_method"` // popup, email
	ReminderMinutes int    `json:"reminder_minutes"`
}

// Settings is the single user-preferences record.
type Settings struct {
	PatientName          string              `json:"patient_name"`
	GoogleAccount        *GoogleAccount      `json:"google_account,omitempty"`
	CalendarPreferences  CalendarPreferences `json:"calendar_preferences"`
	NotificationsEnabled bool                `json:"notifications_enabled"`
	Sound                string              `json:"sound"`
	ReminderMinutes      int                 `json:"reminder_minutes"`
	Theme                string              `json:"theme"` // system, light, dark
	DefaultUnit          string              `json:"default_unit"`
	LastSync             *time.Time          `json:"last_sync,omitempty"`
}

// SettingsPatch carries a partial settings update; nil fields are left as-is.
type SettingsPatch struct {
	PatientName          *string              `json:"patient_name,omitempty"`
	GoogleAccount        *GoogleAccount       `json:"google_account,omitempty"`
	CalendarPreferences  *CalendarPreferences `json:"calendar_preferences,omitempty"`
	NotificationsEnabled *bool                `json:"notifications_enabled,omitempty"`
	Sound                *string              `json:"sound,omitempty"`
	ReminderMinutes      *int                 `json:"reminder_minutes,omitempty"`
	Theme                *string              `json:"theme,omitempty"`
	DefaultUnit          *string              `json:"default_unit,omitempty"`
}

// DefaultSettings returns the preferences a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		PatientName: "Carlos",
		CalendarPreferences: CalendarPreferences{
			Enabled:         false,
			CalendarID:      "primary",
			AutoSync:        true,
			Reminders:       true,
			ReminderMethod:  "popup",
			ReminderMinutes: 10,
		},
		NotificationsEnabled: true,
		Sound:                "Campana",
		ReminderMinutes:      15,
		Theme:                "system",
		DefaultUnit:          string(UnitMg),
	}
}

// Slot is one scheduled occurrence of one medication on the requested day,
// with its derived status.
type Slot struct {
	MedicationID  string     `json:"medication_id"`
	Name          string     `json:"name"`
	ScheduledTime string     `json:"scheduled_time"`
	DosageLabel   string     `json:"dosage_label"`
	Instructions  string     `json:"instructions,omitempty"`
	Status        SlotStatus `json:"status"`
}

// DayView is the derived timeline for one day.
type DayView struct {
	DateKey  string `json:"date_key"`
	Slots    []Slot `json:"slots"`
	NextDose *Slot  `json:"next_dose,omitempty"`
	AllDone  bool   `json:"all_done"`
	Progress int    `json:"progress"` // 0-100
}

func (s DoseStatus) valid() bool {
	return s == StatusTaken || s == StatusSkipped
}
