package service

import (
	"context"
	"sort"
	"sync"

	model "competition_backend/internals/features/attendance/model"
)

// fakeStore keeps attendance rows in maps. Hooks let tests inject failures
// or races per call.
type fakeStore struct {
	mu sync.Mutex

	events   map[int]bool
	activeID int
	rows     []TeamRow
	members  map[int][]Member
	rowsErr  error

	contingents map[int]*model.AttendanceContingentModel
	teams       map[int]*model.AttendanceTeamModel
	contestants map[int]*model.AttendanceContestantModel
	managers    map[int]*model.AttendanceManagerModel
	runs        []model.AttendanceSyncRunModel
	nextID      int

	createContestantHook func(rec *model.AttendanceContestantModel) error
	createTeamHook       func(rec *model.AttendanceTeamModel) error
	createManagerHook    func(rec *model.AttendanceManagerModel) error

	managerWrites int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:      map[int]bool{},
		members:     map[int][]Member{},
		contingents: map[int]*model.AttendanceContingentModel{},
		teams:       map[int]*model.AttendanceTeamModel{},
		contestants: map[int]*model.AttendanceContestantModel{},
		managers:    map[int]*model.AttendanceManagerModel{},
	}
}

func (f *fakeStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) EventExists(_ context.Context, eventID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[eventID], nil
}

func (f *fakeStore) ActiveEventID(_ context.Context) (int, error) {
	if f.activeID == 0 {
		return 0, ErrNoActiveEvent
	}
	return f.activeID, nil
}

func (f *fakeStore) FetchTeamRows(_ context.Context, _ int, _ []string) ([]TeamRow, error) {
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	return append([]TeamRow(nil), f.rows...), nil
}

func (f *fakeStore) FetchMembers(_ context.Context, teamID int) ([]Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Member(nil), f.members[teamID]...), nil
}

func (f *fakeStore) FindContingentAttendance(_ context.Context, contingentID, eventID int) (*model.AttendanceContingentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.contingents {
		if r.ContingentID == contingentID && r.EventID == eventID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateContingentAttendance(_ context.Context, rec *model.AttendanceContingentModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = f.id()
	cp := *rec
	f.contingents[rec.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateContingentAttendance(_ context.Context, id int, rec *model.AttendanceContingentModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.contingents[id]
	r.StateID, r.ZoneID, r.State, r.UpdatedAt = rec.StateID, rec.ZoneID, rec.State, rec.UpdatedAt
	return nil
}

func (f *fakeStore) FindTeamAttendance(_ context.Context, teamID, eventID int) (*model.AttendanceTeamModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.teams {
		if r.TeamID == teamID && r.EventID == eventID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateTeamAttendance(_ context.Context, rec *model.AttendanceTeamModel) error {
	if f.createTeamHook != nil {
		if err := f.createTeamHook(rec); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = f.id()
	cp := *rec
	f.teams[rec.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateTeamAttendance(_ context.Context, id int, rec *model.AttendanceTeamModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.teams[id]
	r.ContingentID, r.StateID, r.ZoneID, r.State, r.UpdatedAt = rec.ContingentID, rec.StateID, rec.ZoneID, rec.State, rec.UpdatedAt
	return nil
}

func (f *fakeStore) FindContestantAttendance(_ context.Context, contestantID, teamID, eventID int) (*model.AttendanceContestantModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.contestants {
		if r.ContestantID == contestantID && r.TeamID == teamID && r.EventID == eventID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateContestantAttendance(_ context.Context, rec *model.AttendanceContestantModel) error {
	if f.createContestantHook != nil {
		if err := f.createContestantHook(rec); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = f.id()
	cp := *rec
	f.contestants[rec.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateContestantAttendance(_ context.Context, id int, rec *model.AttendanceContestantModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.contestants[id]
	r.IC, r.ContestantName, r.ContestID, r.ContestName, r.ContestGroup = rec.IC, rec.ContestantName, rec.ContestID, rec.ContestName, rec.ContestGroup
	r.StateID, r.ZoneID, r.State, r.UpdatedAt = rec.StateID, rec.ZoneID, rec.State, rec.UpdatedAt
	return nil
}

func (f *fakeStore) FindManagerAttendance(_ context.Context, managerID, eventID int, hashcode string) (*model.AttendanceManagerModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.managers {
		if (r.ManagerID == managerID && r.EventID == eventID) || r.Hashcode == hashcode {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateManagerAttendance(_ context.Context, rec *model.AttendanceManagerModel) error {
	if f.createManagerHook != nil {
		if err := f.createManagerHook(rec); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.managerWrites++
	rec.ID = f.id()
	cp := *rec
	f.managers[rec.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateManagerAttendance(_ context.Context, id int, rec *model.AttendanceManagerModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.managerWrites++
	r := f.managers[id]
	r.TeamID, r.Name, r.IC, r.Email, r.UpdatedAt = rec.TeamID, rec.Name, rec.IC, rec.Email, rec.UpdatedAt
	return nil
}

func (f *fakeStore) UpdateManagerAttendanceByHashcode(_ context.Context, hashcode string, rec *model.AttendanceManagerModel) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.managers {
		if r.Hashcode == hashcode {
			f.managerWrites++
			r.Name, r.UpdatedAt = rec.Name, rec.UpdatedAt
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeStore) RecordSyncRun(_ context.Context, run *model.AttendanceSyncRunModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run.ID = f.id()
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeStore) ListSyncRuns(_ context.Context, eventID, limit, offset int) ([]model.AttendanceSyncRunModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceSyncRunModel
	for _, r := range f.runs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}
