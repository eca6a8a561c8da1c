package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"competition_backend/internals/databases/dbtest"
	"competition_backend/internals/features/attendance/service"
	helper "competition_backend/internals/helpers"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := dbtest.New(t)
	dbtest.Seed(t, db, dbtest.Event42())

	ctrl := NewAttendanceSyncController(service.NewSyncService(service.NewGormStore(db)))
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/events/:event_id/attendance/sync", ctrl.Sync)
	app.Get("/events/:event_id/attendance/sync-runs", ctrl.ListRuns)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSyncEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/events/42/attendance/sync")
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "Attendance sync completed")

	res := body["syncResults"].(map[string]any)
	assert.EqualValues(t, 1, res["newContingents"])
	assert.EqualValues(t, 1, res["newTeams"])
	assert.EqualValues(t, 2, res["newContestants"])
	assert.EqualValues(t, 1, res["newManagers"])
	assert.EqualValues(t, 0, res["errorCount"])

	status, body = call(t, app, http.MethodPost, "/events/42/attendance/sync")
	require.Equal(t, fiber.StatusOK, status)
	res = body["syncResults"].(map[string]any)
	assert.EqualValues(t, 0, res["newContestants"])
	assert.EqualValues(t, 2, res["updatedContestants"])
}

func TestSyncEndpoint_DryRun(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/events/42/attendance/sync?dry_run=true")
	require.Equal(t, fiber.StatusOK, status)
	res := body["syncResults"].(map[string]any)
	assert.Equal(t, true, res["dryRun"])
	assert.EqualValues(t, 2, res["newContestants"])

	// nothing was written, so a real run still creates everything
	_, body = call(t, app, http.MethodPost, "/events/42/attendance/sync")
	res = body["syncResults"].(map[string]any)
	assert.EqualValues(t, 2, res["newContestants"])
}

func TestSyncEndpoint_Errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/events/abc/attendance/sync", fiber.StatusBadRequest, "BAD_REQUEST"},
		{"/events/0/attendance/sync", fiber.StatusBadRequest, "BAD_REQUEST"},
		{"/events/-3/attendance/sync", fiber.StatusBadRequest, "BAD_REQUEST"},
		{"/events/99/attendance/sync", fiber.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			status, body := call(t, app, http.MethodPost, tc.path)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.code, body["error_code"])
		})
	}
}

func TestListRunsEndpoint(t *testing.T) {
	app := newTestApp(t)
	call(t, app, http.MethodPost, "/events/42/attendance/sync")
	call(t, app, http.MethodPost, "/events/42/attendance/sync?dry_run=true")

	status, body := call(t, app, http.MethodGet, "/events/42/attendance/sync-runs?limit=5")
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 2)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["total"])
	assert.EqualValues(t, 5, meta["per_page"])
	assert.Equal(t, false, meta["has_next"])
	statuses := []any{data[0].(map[string]any)["status"], data[1].(map[string]any)["status"]}
	assert.ElementsMatch(t, []any{"success", "dry_run"}, statuses)
	assert.Equal(t, "http", data[0].(map[string]any)["trigger"])

	status, _ = call(t, app, http.MethodGet, "/events/x/attendance/sync-runs")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListRunsEndpoint_Paging(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 3; i++ {
		call(t, app, http.MethodPost, "/events/42/attendance/sync?dry_run=true")
	}

	status, body := call(t, app, http.MethodGet, "/events/42/attendance/sync-runs?page=2&per_page=2")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 3, meta["total"])
	assert.EqualValues(t, 2, meta["total_pages"])
	assert.Equal(t, true, meta["has_prev"])
	assert.EqualValues(t, 1, meta["prev_page"])
}
