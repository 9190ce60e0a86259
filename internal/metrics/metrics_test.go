package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := New()

	m.RecordRequest(true)
	m.RecordRequest(true)
	m.RecordRequest(false)
	m.RecordDose(true)
	m.RecordDose(false)
	m.RecordMedicationCreated()
	m.RecordSync(true)
	m.RecordSync(false)

	s := m.Snapshot()

	assert.Equal(t, int64(3), s.RequestsTotal)
	assert.Equal(t, int64(2), s.RequestsSuccess)
	assert.Equal(t, int64(1), s.RequestsFailed)
	assert.Equal(t, int64(1), s.DosesTaken)
	assert.Equal(t, int64(1), s.DosesSkipped)
	assert.Equal(t, int64(1), s.MedicationsCreated)
	assert.Equal(t, int64(2), s.SyncTotal)
	assert.Equal(t, int64(1), s.SyncFailed)
	assert.InDelta(t, 66.6, s.SuccessRate, 0.1)
}

func TestMetrics_SnapshotEmpty(t *testing.T) {
	s := New().Snapshot()

	assert.Zero(t, s.RequestsTotal)
	assert.Zero(t, s.SuccessRate)
}

func TestMetrics_Prometheus(t *testing.T) {
	m := New()
	m.RecordDose(true)
	m.RecordDose(true)

	out := m.Prometheus()

	assert.Contains(t, out, "# TYPE medtrack_doses_taken_total counter")
	assert.Contains(t, out, "medtrack_doses_taken_total 2")
	assert.Contains(t, out, "medtrack_uptime_seconds")

	for _, line := range strings.Split(out, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "medtrack_"), "unexpected metric line: %s", line)
	}
}
