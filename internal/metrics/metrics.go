package metrics

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Metrics struct {
	startTime time.Time

	requestsTotal   atomic.Int64
	requestsSuccess atomic.Int64
	requestsFailed  atomic.Int64

	dosesTaken   atomic.Int64
	dosesSkipped atomic.Int64

	medicationsCreated atomic.Int64
	medicationsDeleted atomic.Int64

	syncTotal  atomic.Int64
	syncFailed atomic.Int64
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

func New() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) RecordRequest(success bool) {
	m.requestsTotal.Add(1)
	if success {
		m.requestsSuccess.Add(1)
	} else {
		m.requestsFailed.Add(1)
	}
}

func (m *Metrics) RecordDose(taken bool) {
	if taken {
		m.dosesTaken.Add(1)
	} else {
		m.dosesSkipped.Add(1)
	}
}

func (m *Metrics) RecordMedicationCreated() {
	m.medicationsCreated.Add(1)
}

func (m *Metrics) RecordMedicationDeleted() {
	m.medicationsDeleted.Add(1)
}

func (m *Metrics) RecordSync(success bool) {
	m.syncTotal.Add(1)
	if !success {
		m.syncFailed.Add(1)
	}
}

type Snapshot struct {
	Uptime             time.Duration `json:"uptime"`
	RequestsTotal      int64         `json:"requests_total"`
	RequestsSuccess    int64         `json:"requests_success"`
	RequestsFailed     int64         `json:"requests_failed"`
	DosesTaken         int64         `json:"doses_taken"`
	DosesSkipped       int64         `json:"doses_skipped"`
	MedicationsCreated int64         `json:"medications_created"`
	MedicationsDeleted int64         `json:"medications_deleted"`
	SyncTotal          int64         `json:"sync_total"`
	SyncFailed         int64         `json:"sync_failed"`
	SuccessRate        float64       `json:"success_rate"`
}

func (m *Metrics) Snapshot() *Snapshot {
	s := &Snapshot{
		Uptime:             time.Since(m.startTime),
		RequestsTotal:      m.requestsTotal.Load(),
		RequestsSuccess:    m.requestsSuccess.Load(),
		RequestsFailed:     m.requestsFailed.Load(),
		DosesTaken:         m.dosesTaken.Load(),
		DosesSkipped:       m.dosesSkipped.Load(),
		MedicationsCreated: m.medicationsCreated.Load(),
		MedicationsDeleted: m.medicationsDeleted.Load(),
		SyncTotal:          m.syncTotal.Load(),
		SyncFailed:         m.syncFailed.Load(),
	}

	if s.RequestsTotal > 0 {
		s.SuccessRate = float64(s.RequestsSuccess) / float64(s.RequestsTotal) * 100
	}

	return s
}

func (m *Metrics) Prometheus() string {
	var sb strings.Builder

	writeMetric := func(name, help, kind string, value int64) {
		sb.WriteString("# HELP " + name + " " + help + "\n")
		sb.WriteString("# TYPE " + name + " " + kind + "\n")
		sb.WriteString(name + " " + strconv.FormatInt(value, 10) + "\n\n")
	}

	writeMetric("medtrack_uptime_seconds", "Time since server start", "gauge",
		int64(time.Since(m.startTime).Seconds()))
	writeMetric("medtrack_requests_total", "Total number of requests", "counter",
		m.requestsTotal.Load())
	writeMetric("medtrack_requests_success", "Successful requests", "counter",
		m.requestsSuccess.Load())
	writeMetric("medtrack_requests_failed", "Failed requests", "counter",
		m.requestsFailed.Load())
	writeMetric("medtrack_doses_taken_total", "Doses logged as taken", "counter",
		m.dosesTaken.Load())
	writeMetric("medtrack_doses_skipped_total", "Doses logged as skipped", "counter",
		m.dosesSkipped.Load())
	writeMetric("medtrack_medications_created_total", "Medications registered", "counter",
		m.medicationsCreated.Load())
	writeMetric("medtrack_medications_deleted_total", "Medications removed", "counter",
		m.medicationsDeleted.Load())
	writeMetric("medtrack_calendar_sync_total", "Calendar sync attempts", "counter",
		m.syncTotal.Load())
	writeMetric("medtrack_calendar_sync_failed_total", "Failed calendar syncs", "counter",
		m.syncFailed.Load())

	return sb.String()
}

func RecordRequest(success bool) {
	Default().RecordRequest(success)
}

func RecordDose(taken bool) {
	Default().RecordDose(taken)
}

func RecordMedicationCreated() {
	Default().RecordMedicationCreated()
}

func RecordMedicationDeleted() {
	Default().RecordMedicationDeleted()
}

func RecordSync(success bool) {
	Default().RecordSync(success)
}

func GetSnapshot() *Snapshot {
	return Default().Snapshot()
}

func Prometheus() string {
	return Default().Prometheus()
}
