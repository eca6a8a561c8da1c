package service

import (
	"context"

	model "competition_backend/internals/features/attendance/model"
)

// TeamRow is one row of the team join: one per (team, contest, manager).
type TeamRow struct {
	TeamID      int    `gorm:"column:team_id"`
	TeamName    string `gorm:"column:team_name"`
	ContestID   int    `gorm:"column:contest_id"`
	ContestName string `gorm:"column:contest_name"`
	ContestCode string `gorm:"column:contest_code"`
	SchoolLevel string `gorm:"column:school_level"`

	ContingentID   int    `gorm:"column:contingent_id"`
	ContingentName string `gorm:"column:contingent_name"`
	ContingentType string `gorm:"column:contingent_type"`
	StateID        *int   `gorm:"column:state_id"`
	StateName      string `gorm:"column:state_name"`
	ZoneID         *int   `gorm:"column:zone_id"`

	ManagerID    *int    `gorm:"column:manager_id"`
	ManagerName  *string `gorm:"column:manager_name"`
	ManagerIC    *string `gorm:"column:manager_ic"`
	ManagerEmail *string `gorm:"column:manager_email"`
}

// Member is a contestant on a team.
type Member struct {
	ContestantID int    `gorm:"column:contestant_id"`
	Name         string `gorm:"column:name"`
	IC           string `gorm:"column:ic"`
	Age          *int   `gorm:"column:age"`
	ContingentID int    `gorm:"column:contingent_id"`
}

// Store is what the sync needs from persistence. Find* return (nil, nil)
// when no row matches.
type Store interface {
	EventExists(ctx context.Context, eventID int) (bool, error)
	ActiveEventID(ctx context.Context) (int, error)
	FetchTeamRows(ctx context.Context, eventID int, statuses []string) ([]TeamRow, error)
	FetchMembers(ctx context.Context, teamID int) ([]Member, error)

	FindContingentAttendance(ctx context.Context, contingentID, eventID int) (*model.AttendanceContingentModel, error)
	CreateContingentAttendance(ctx context.Context, rec *model.AttendanceContingentModel) error
	UpdateContingentAttendance(ctx context.Context, id int, rec *model.AttendanceContingentModel) error

	FindTeamAttendance(ctx context.Context, teamID, eventID int) (*model.AttendanceTeamModel, error)
	CreateTeamAttendance(ctx context.Context, rec *model.AttendanceTeamModel) error
	UpdateTeamAttendance(ctx context.Context, id int, rec *model.AttendanceTeamModel) error

	FindContestantAttendance(ctx context.Context, contestantID, teamID, eventID int) (*model.AttendanceContestantModel, error)
	CreateContestantAttendance(ctx context.Context, rec *model.AttendanceContestantModel) error
	UpdateContestantAttendance(ctx context.Context, id int, rec *model.AttendanceContestantModel) error

	// FindManagerAttendance matches (managerID, eventID) or hashcode.
	FindManagerAttendance(ctx context.Context, managerID, eventID int, hashcode string) (*model.AttendanceManagerModel, error)
	CreateManagerAttendance(ctx context.Context, rec *model.AttendanceManagerModel) error
	UpdateManagerAttendance(ctx context.Context, id int, rec *model.AttendanceManagerModel) error
	// UpdateManagerAttendanceByHashcode returns the number of rows touched.
	UpdateManagerAttendanceByHashcode(ctx context.Context, hashcode string, rec *model.AttendanceManagerModel) (int64, error)

	RecordSyncRun(ctx context.Context, run *model.AttendanceSyncRunModel) error
	ListSyncRuns(ctx context.Context, eventID, limit, offset int) ([]model.AttendanceSyncRunModel, int64, error)
}
