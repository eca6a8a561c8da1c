package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	model "competition_backend/internals/features/attendance/model"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

var fixedNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

// event 42: contingent 7 in Selangor, team 100 with two members and manager 55
func scenarioStore() *fakeStore {
	f := newFakeStore()
	f.events[42] = true
	f.rows = []TeamRow{{
		TeamID: 100, TeamName: "Alpha",
		ContestID: 5, ContestName: "Coding Sprint", ContestCode: "CS", SchoolLevel: "Secondary",
		ContingentID: 7, ContingentName: "SMK Seri Kembangan", ContingentType: "SCHOOL",
		StateID: intPtr(10), StateName: "Selangor", ZoneID: intPtr(3),
		ManagerID: intPtr(55), ManagerName: strPtr("Cikgu Aida"), ManagerIC: strPtr("800101-10-1111"), ManagerEmail: strPtr("aida@example.com"),
	}}
	f.members[100] = []Member{
		{ContestantID: 1001, Name: "Adam", IC: "090101-10-0001", ContingentID: 7},
		{ContestantID: 1002, Name: "Siti", IC: "090202-10-0002", ContingentID: 7},
	}
	return f
}

func newTestService(store Store) *SyncService {
	return NewSyncService(store, WithClock(func() time.Time { return fixedNow }), WithTimeout(time.Minute))
}

func TestSync_ScenarioIsIdempotent(t *testing.T) {
	store := scenarioStore()
	svc := newTestService(store)

	first, err := svc.Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.NewContingents)
	assert.Equal(t, 1, first.NewTeams)
	assert.Equal(t, 2, first.NewContestants)
	assert.Equal(t, 1, first.NewManagers)
	assert.Equal(t, 0, first.ErrorCount)
	assert.Empty(t, first.Errors)

	second, err := svc.Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.NewContingents)
	assert.Equal(t, 0, second.NewTeams)
	assert.Equal(t, 0, second.NewContestants)
	assert.Equal(t, 0, second.NewManagers)
	assert.Equal(t, 1, second.UpdatedContingents)
	assert.Equal(t, 1, second.UpdatedTeams)
	assert.Equal(t, 2, second.UpdatedContestants)
	assert.Equal(t, 1, second.UpdatedManagers)
	assert.Equal(t, first.Total(), second.Total())

	assert.Len(t, store.contingents, 1)
	assert.Len(t, store.teams, 1)
	assert.Len(t, store.contestants, 2)
	assert.Len(t, store.managers, 1)
}

func TestSync_WritesDenormalizedFields(t *testing.T) {
	store := scenarioStore()
	_, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)

	for _, c := range store.contingents {
		assert.Equal(t, "7-42-2026-03-01T08:00:00Z", c.Hashcode)
		assert.Equal(t, "Selangor", c.State)
		assert.Equal(t, 3, *c.ZoneID)
		assert.Equal(t, model.StatusNotPresent, c.Status)
	}
	for _, tm := range store.teams {
		assert.Equal(t, "100-42-2026-03-01T08:00:00Z", tm.Hashcode)
		assert.Equal(t, 7, tm.ContingentID)
	}
	hashes := map[string]struct{}{}
	for _, c := range store.contestants {
		assert.Equal(t, 5, *c.ContestID)
		assert.Equal(t, "Coding Sprint", c.ContestName)
		assert.Equal(t, "Teens", c.ContestGroup)
		assert.Len(t, c.Hashcode, 64)
		hashes[c.Hashcode] = struct{}{}
	}
	assert.Len(t, hashes, 2)
	for _, m := range store.managers {
		assert.Equal(t, 55, m.ManagerID)
		assert.Equal(t, 100, m.TeamID)
		assert.Equal(t, "aida@example.com", m.Email)
	}
}

func TestSync_ManagerSharedByTeamsIsWrittenOnce(t *testing.T) {
	store := scenarioStore()
	second := store.rows[0]
	second.TeamID, second.TeamName = 101, "Beta"
	store.rows = append(store.rows, second)
	store.members[101] = []Member{{ContestantID: 1003, Name: "Chong", ContingentID: 7}}

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewTeams)
	assert.Equal(t, 3, res.NewContestants)
	assert.Equal(t, 1, res.NewManagers)
	assert.Equal(t, 0, res.UpdatedManagers)
	assert.Equal(t, 1, store.managerWrites)
}

func TestSync_FailedManagerWriteIsRetriedByNextTeam(t *testing.T) {
	store := scenarioStore()
	second := store.rows[0]
	second.TeamID, second.TeamName = 101, "Beta"
	store.rows = append(store.rows, second)
	store.members[101] = []Member{{ContestantID: 1003, Name: "Chong", ContingentID: 7}}
	store.createManagerHook = func(*model.AttendanceManagerModel) error {
		store.createManagerHook = nil
		return errors.New("deadlock detected")
	}

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewManagers)
	assert.Equal(t, 0, res.UpdatedManagers)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "manager 55 (team 100)")

	require.Len(t, store.managers, 1)
	for _, m := range store.managers {
		assert.Equal(t, 55, m.ManagerID)
		assert.Equal(t, 101, m.TeamID)
	}
	assert.Equal(t, 1, store.managerWrites)
}

func TestSync_TeamsWithoutMembersAreSkipped(t *testing.T) {
	store := scenarioStore()
	empty := store.rows[0]
	empty.TeamID, empty.ContingentID, empty.ManagerID = 200, 8, intPtr(56)
	store.rows = append(store.rows, empty)

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SkippedTeams)
	assert.Equal(t, 1, res.NewContingents)
	assert.Equal(t, 1, res.NewTeams)
	assert.Equal(t, 1, res.NewManagers)
	for _, tm := range store.teams {
		assert.NotEqual(t, 200, tm.TeamID)
	}
}

func TestSync_RequestLevelErrors(t *testing.T) {
	store := scenarioStore()
	svc := newTestService(store)

	_, err := svc.Sync(context.Background(), 0, SyncOptions{})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.Sync(context.Background(), 99, SyncOptions{})
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Empty(t, store.runs)

	store.rowsErr = errors.New("connection reset")
	_, err = svc.Sync(context.Background(), 42, SyncOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.Len(t, store.runs, 1)
	assert.Equal(t, model.RunStatusFailed, store.runs[0].Status)
}

func TestSync_EntityFailureIsRecordedAndSyncContinues(t *testing.T) {
	store := scenarioStore()
	store.createContestantHook = func(rec *model.AttendanceContestantModel) error {
		if rec.ContestantID == 1002 {
			return errors.New("value too long")
		}
		return nil
	}

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewContestants)
	assert.Equal(t, 1, res.NewManagers)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "contestant 1002 (team 100)")
	assert.Contains(t, res.Errors[0], "value too long")

	require.Len(t, store.runs, 1)
	assert.Equal(t, model.RunStatusPartial, store.runs[0].Status)
	assert.Equal(t, 1, store.runs[0].ErrorCount)
}

func TestSync_InsertRaceFallsBackToUpdate(t *testing.T) {
	store := scenarioStore()
	// another writer inserts the team between our check and our insert
	store.createTeamHook = func(rec *model.AttendanceTeamModel) error {
		store.createTeamHook = nil
		store.mu.Lock()
		rival := *rec
		rival.ID = store.id()
		rival.Hashcode = "rival"
		store.teams[rival.ID] = &rival
		store.mu.Unlock()
		return gorm.ErrDuplicatedKey
	}

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewTeams)
	assert.Equal(t, 1, res.UpdatedTeams)
	assert.Equal(t, 0, res.ErrorCount)
	assert.Len(t, store.teams, 1)
}

func TestSync_ManagerRaceFallsBackToKeyedUpdate(t *testing.T) {
	store := scenarioStore()
	store.createManagerHook = func(rec *model.AttendanceManagerModel) error {
		store.createManagerHook = nil
		store.mu.Lock()
		rival := *rec
		rival.ID = store.id()
		rival.Hashcode = "rival"
		store.managers[rival.ID] = &rival
		store.mu.Unlock()
		return errors.New(`ERROR: duplicate key value violates unique constraint "uq_att_manager_event" (SQLSTATE 23505)`)
	}

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewManagers)
	assert.Equal(t, 1, res.UpdatedManagers)
	assert.Equal(t, 0, res.ErrorCount)
	assert.Len(t, store.managers, 1)
}

func TestSync_NonConflictInsertErrorIsNotRecovered(t *testing.T) {
	store := scenarioStore()
	store.createManagerHook = func(*model.AttendanceManagerModel) error {
		return errors.New("permission denied")
	}

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewManagers+res.UpdatedManagers)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "manager 55 (team 100)")
}

func TestSync_DryRunWritesNothing(t *testing.T) {
	store := scenarioStore()

	res, err := newTestService(store).Sync(context.Background(), 42, SyncOptions{DryRun: true, Trigger: model.TriggerCLI})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, 1, res.NewContingents)
	assert.Equal(t, 2, res.NewContestants)
	assert.Empty(t, store.contingents)
	assert.Empty(t, store.teams)
	assert.Empty(t, store.contestants)
	assert.Empty(t, store.managers)

	require.Len(t, store.runs, 1)
	assert.Equal(t, model.RunStatusDryRun, store.runs[0].Status)
	assert.Equal(t, model.TriggerCLI, store.runs[0].Trigger)
}

func TestSync_RecordsAuditRun(t *testing.T) {
	store := scenarioStore()
	svc := newTestService(store)

	_, err := svc.Sync(context.Background(), 42, SyncOptions{Trigger: model.TriggerHTTP, TriggeredBy: "user-1"})
	require.NoError(t, err)

	runs, total, err := svc.ListRuns(context.Background(), 42, 0, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, model.RunStatusSuccess, runs[0].Status)
	assert.Equal(t, "user-1", runs[0].TriggeredBy)

	var body map[string]any
	require.NoError(t, json.Unmarshal(runs[0].Result, &body))
	assert.EqualValues(t, 2, body["newContestants"])

	_, _, err = svc.ListRuns(context.Background(), -1, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestSync_ActiveEvent(t *testing.T) {
	store := scenarioStore()
	svc := newTestService(store)

	_, err := svc.SyncActiveEvent(context.Background(), SyncOptions{Trigger: model.TriggerCron})
	assert.ErrorIs(t, err, ErrNoActiveEvent)

	store.activeID = 42
	res, err := svc.SyncActiveEvent(context.Background(), SyncOptions{Trigger: model.TriggerCron})
	require.NoError(t, err)
	assert.Equal(t, 42, res.EventID)
}

func TestSync_CancelledContextAborts(t *testing.T) {
	store := scenarioStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(store).Sync(ctx, 42, SyncOptions{})
	require.Error(t, err)
	assert.Empty(t, store.contingents)
}
