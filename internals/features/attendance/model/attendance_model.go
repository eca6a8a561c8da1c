package model

import (
	"time"

	"gorm.io/datatypes"
)

// StatusNotPresent is the status every attendance row starts with.
const StatusNotPresent = "Not Present"

// Sync run triggers and outcomes
const (
	TriggerHTTP = "http"
	TriggerCron = "cron"
	TriggerCLI  = "cli"

	RunStatusSuccess = "success"
	RunStatusPartial = "partial"
	RunStatusFailed  = "failed"
	RunStatusDryRun  = "dry_run"
)

type AttendanceContingentModel struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Hashcode     string    `gorm:"column:hashcode;type:varchar(255);not null;uniqueIndex" json:"hashcode"`
	ContingentID int       `gorm:"column:contingent_id;not null;uniqueIndex:uq_att_contingent_event" json:"contingent_id"`
	EventID      int       `gorm:"column:event_id;not null;uniqueIndex:uq_att_contingent_event;index" json:"event_id"`
	StateID      *int      `gorm:"column:state_id" json:"state_id,omitempty"`
	ZoneID       *int      `gorm:"column:zone_id" json:"zone_id,omitempty"`
	State        string    `gorm:"column:state;type:varchar(255)" json:"state"`
	Status       string    `gorm:"column:status;type:varchar(30);not null;default:'Not Present'" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (AttendanceContingentModel) TableName() string { return "attendance_contingents" }

type AttendanceTeamModel struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Hashcode     string    `gorm:"column:hashcode;type:varchar(255);not null;uniqueIndex" json:"hashcode"`
	TeamID       int       `gorm:"column:team_id;not null;uniqueIndex:uq_att_team_event" json:"team_id"`
	ContingentID int       `gorm:"column:contingent_id;not null;index" json:"contingent_id"`
	EventID      int       `gorm:"column:event_id;not null;uniqueIndex:uq_att_team_event;index" json:"event_id"`
	StateID      *int      `gorm:"column:state_id" json:"state_id,omitempty"`
	ZoneID       *int      `gorm:"column:zone_id" json:"zone_id,omitempty"`
	State        string    `gorm:"column:state;type:varchar(255)" json:"state"`
	Status       string    `gorm:"column:status;type:varchar(30);not null;default:'Not Present'" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (AttendanceTeamModel) TableName() string { return "attendance_teams" }

type AttendanceContestantModel struct {
	ID             int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Hashcode       string    `gorm:"column:hashcode;type:varchar(255);not null;uniqueIndex" json:"hashcode"`
	ContestantID   int       `gorm:"column:contestant_id;not null;uniqueIndex:uq_att_contestant_team_event" json:"contestant_id"`
	TeamID         int       `gorm:"column:team_id;not null;uniqueIndex:uq_att_contestant_team_event" json:"team_id"`
	EventID        int       `gorm:"column:event_id;not null;uniqueIndex:uq_att_contestant_team_event;index" json:"event_id"`
	ContingentID   int       `gorm:"column:contingent_id;not null;index" json:"contingent_id"`
	IC             string    `gorm:"column:ic;type:varchar(30)" json:"ic"`
	ContestantName string    `gorm:"column:contestant_name;type:varchar(255)" json:"contestant_name"`
	ContestID      *int      `gorm:"column:contest_id" json:"contest_id,omitempty"`
	ContestName    string    `gorm:"column:contest_name;type:varchar(255)" json:"contest_name"`
	ContestGroup   string    `gorm:"column:contest_group;type:varchar(100)" json:"contest_group"`
	StateID        *int      `gorm:"column:state_id" json:"state_id,omitempty"`
	ZoneID         *int      `gorm:"column:zone_id" json:"zone_id,omitempty"`
	State          string    `gorm:"column:state;type:varchar(255)" json:"state"`
	Status         string    `gorm:"column:status;type:varchar(30);not null;default:'Not Present'" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (AttendanceContestantModel) TableName() string { return "attendance_contestants" }

type AttendanceManagerModel struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Hashcode     string    `gorm:"column:hashcode;type:varchar(255);not null;uniqueIndex" json:"hashcode"`
	ManagerID    int       `gorm:"column:manager_id;not null;uniqueIndex:uq_att_manager_event" json:"manager_id"`
	EventID      int       `gorm:"column:event_id;not null;uniqueIndex:uq_att_manager_event;index" json:"event_id"`
	TeamID       int       `gorm:"column:team_id;not null" json:"team_id"`
	ContingentID int       `gorm:"column:contingent_id;not null;index" json:"contingent_id"`
	Name         string    `gorm:"column:name;type:varchar(255)" json:"name"`
	IC           string    `gorm:"column:ic;type:varchar(30)" json:"ic"`
	Email        string    `gorm:"column:email;type:varchar(255)" json:"email"`
	StateID      *int      `gorm:"column:state_id" json:"state_id,omitempty"`
	ZoneID       *int      `gorm:"column:zone_id" json:"zone_id,omitempty"`
	State        string    `gorm:"column:state;type:varchar(255)" json:"state"`
	Status       string    `gorm:"column:status;type:varchar(30);not null;default:'Not Present'" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (AttendanceManagerModel) TableName() string { return "attendance_managers" }

// AttendanceSyncRunModel is the audit trail of sync invocations.
type AttendanceSyncRunModel struct {
	ID          int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventID     int            `gorm:"column:event_id;not null;index" json:"event_id"`
	Trigger     string         `gorm:"column:trigger_source;type:varchar(20);not null" json:"trigger"`
	TriggeredBy string         `gorm:"column:triggered_by;type:varchar(255)" json:"triggered_by,omitempty"`
	Status      string         `gorm:"column:status;type:varchar(20);not null" json:"status"`
	ErrorCount  int            `gorm:"column:error_count;not null;default:0" json:"error_count"`
	Result      datatypes.JSON `gorm:"column:result" json:"result,omitempty"`
	StartedAt   time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt  time.Time      `gorm:"column:finished_at;not null" json:"finished_at"`
}

func (AttendanceSyncRunModel) TableName() string { return "attendance_sync_runs" }

// All lists every attendance model for migrations.
func All() []interface{} {
	return []interface{}{
		&AttendanceContingentModel{},
		&AttendanceTeamModel{},
		&AttendanceContestantModel{},
		&AttendanceManagerModel{},
		&AttendanceSyncRunModel{},
	}
}
