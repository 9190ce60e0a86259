package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/tracker"
)

type instantSyncer struct{}

func (instantSyncer) SyncNow(ctx context.Context) error { return nil }

func setupTestServer(t *testing.T) (*Server, *tracker.Tracker) {
	cfg := &config.Config{
		Server: config.ServerConfig{Address: "127.0.0.1", Port: 0, ReadTimeout: 5, WriteTimeout: 5},
	}
	tr := tracker.New(nil, zap.NewNop(), tracker.Options{})
	s := New(cfg, tr, instantSyncer{}, zap.NewNop())
	return s, tr
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createMedication(t *testing.T, s *Server) tracker.Medication {
	resp := doJSON(t, s, "POST", "/api/medications", fiber.Map{
		"name": "Ibuprofeno", "dosage": 400, "unit": "mg", "type": "Pastilla",
		"inventory": 12, "times": []string{"08:00", "20:00"},
	})
	require.Equal(t, 201, resp.StatusCode)

	var med tracker.Medication
	decode(t, resp, &med)
	return med
}

func TestHandleHealth(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "GET", "/api/health", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestCreateAndListMedications(t *testing.T) {
	s, _ := setupTestServer(t)

	med := createMedication(t, s)
	assert.NotEmpty(t, med.ID)
	assert.Equal(t, []string{"08:00", "20:00"}, med.Times)

	resp := doJSON(t, s, "GET", "/api/medications", nil)
	require.Equal(t, 200, resp.StatusCode)

	var listed []tracker.Medication
	decode(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, med.ID, listed[0].ID)
}

func TestCreateMedication_Invalid(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "POST", "/api/medications", fiber.Map{
		"name": "x", "dosage": -1, "inventory": 1,
	})
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "MED_002", body["code"])
}

func TestGetMedication_NotFound(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "GET", "/api/medications/missing", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestUpdateMedication(t *testing.T) {
	s, _ := setupTestServer(t)
	med := createMedication(t, s)

	resp := doJSON(t, s, "PATCH", "/api/medications/"+med.ID, fiber.Map{
		"inventory": 30,
	})
	require.Equal(t, 200, resp.StatusCode)

	var updated tracker.Medication
	decode(t, resp, &updated)
	assert.Equal(t, 30, updated.Inventory)
	assert.Equal(t, "Ibuprofeno", updated.Name)
}

func TestDeleteMedication(t *testing.T) {
	s, _ := setupTestServer(t)
	med := createMedication(t, s)

	resp := doJSON(t, s, "DELETE", "/api/medications/"+med.ID, nil)
	assert.Equal(t, 204, resp.StatusCode)

	resp = doJSON(t, s, "GET", "/api/medications/"+med.ID, nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestLogDose(t *testing.T) {
	s, tr := setupTestServer(t)
	med := createMedication(t, s)

	resp := doJSON(t, s, "POST", "/api/doses", fiber.Map{
		"medication_id": med.ID, "scheduled_time": "08:00", "status": "taken",
	})
	require.Equal(t, 201, resp.StatusCode)

	var log tracker.DoseLog
	decode(t, resp, &log)
	assert.Equal(t, tracker.StatusTaken, log.Status)

	got, _ := tr.GetMedication(med.ID)
	assert.Equal(t, 11, got.Inventory)
}

func TestLogDose_UnknownMedication(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "POST", "/api/doses", fiber.Map{
		"medication_id": "missing", "scheduled_time": "08:00", "status": "taken",
	})
	assert.Equal(t, 404, resp.StatusCode)
}

func TestLogDose_InvalidStatus(t *testing.T) {
	s, _ := setupTestServer(t)
	med := createMedication(t, s)

	resp := doJSON(t, s, "POST", "/api/doses", fiber.Map{
		"medication_id": med.ID, "scheduled_time": "08:00", "status": "late",
	})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDoseHistory(t *testing.T) {
	s, _ := setupTestServer(t)
	med := createMedication(t, s)

	resp := doJSON(t, s, "POST", "/api/doses", fiber.Map{
		"medication_id": med.ID, "scheduled_time": "08:00", "status": "taken",
	})
	require.Equal(t, 201, resp.StatusCode)

	resp = doJSON(t, s, "GET", "/api/medications/"+med.ID+"/history", nil)
	require.Equal(t, 200, resp.StatusCode)

	var history []tracker.DoseLog
	decode(t, resp, &history)
	assert.Len(t, history, 1)
}

func TestDoseHistory_EmptyIsArray(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "GET", "/api/medications/missing/history", nil)
	require.Equal(t, 200, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestTimelineAndProgress(t *testing.T) {
	s, _ := setupTestServer(t)
	med := createMedication(t, s)

	resp := doJSON(t, s, "POST", "/api/doses", fiber.Map{
		"medication_id": med.ID, "scheduled_time": "08:00", "status": "taken",
	})
	require.Equal(t, 201, resp.StatusCode)

	today := time.Now().Format("2006-01-02")

	resp = doJSON(t, s, "GET", "/api/timeline?date="+today, nil)
	require.Equal(t, 200, resp.StatusCode)

	var view tracker.DayView
	decode(t, resp, &view)
	assert.Equal(t, today, view.DateKey)
	assert.Len(t, view.Slots, 2)

	resp = doJSON(t, s, "GET", "/api/progress?date="+today, nil)
	require.Equal(t, 200, resp.StatusCode)

	var progress map[string]interface{}
	decode(t, resp, &progress)
	assert.Equal(t, float64(50), progress["progress"])
}

func TestTimeline_BadDate(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "GET", "/api/timeline?date=10-03-2026", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSettingsRoundTrip(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "GET", "/api/settings", nil)
	require.Equal(t, 200, resp.StatusCode)

	var settings tracker.Settings
	decode(t, resp, &settings)
	assert.Equal(t, "Carlos", settings.PatientName)

	resp = doJSON(t, s, "PATCH", "/api/settings", fiber.Map{
		"patient_name": "María", "theme": "dark",
	})
	require.Equal(t, 200, resp.StatusCode)

	decode(t, resp, &settings)
	assert.Equal(t, "María", settings.PatientName)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, "Campana", settings.Sound)
}

func TestSync_RequiresEnabledIntegration(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "POST", "/api/sync", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGoogleConnectSyncDisconnect(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "POST", "/api/settings/google", fiber.Map{
		"name": "Carlos", "email": "carlos@example.com",
	})
	require.Equal(t, 200, resp.StatusCode)

	var settings tracker.Settings
	decode(t, resp, &settings)
	require.NotNil(t, settings.GoogleAccount)
	assert.True(t, settings.CalendarPreferences.Enabled)

	resp = doJSON(t, s, "POST", "/api/sync", nil)
	require.Equal(t, 200, resp.StatusCode)

	var sync map[string]interface{}
	decode(t, resp, &sync)
	assert.NotEmpty(t, sync["synced_at"])

	resp = doJSON(t, s, "DELETE", "/api/settings/google", nil)
	require.Equal(t, 200, resp.StatusCode)

	decode(t, resp, &settings)
	assert.Nil(t, settings.GoogleAccount)
	assert.False(t, settings.CalendarPreferences.Enabled)
	assert.NotNil(t, settings.LastSync)
}

func TestConnectGoogle_RequiresEmail(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "POST", "/api/settings/google", fiber.Map{"name": "Carlos"})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMetricsEndpoints(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := doJSON(t, s, "GET", "/metrics", nil)
	require.Equal(t, 200, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "medtrack_requests_total")

	resp = doJSON(t, s, "GET", "/api/metrics", nil)
	assert.Equal(t, 200, resp.StatusCode)
}
