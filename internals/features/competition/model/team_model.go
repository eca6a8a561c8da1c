package model

// Event contest team statuses
const (
	TeamStatusPending         = "PENDING"
	TeamStatusApproved        = "APPROVED"
	TeamStatusAccepted        = "ACCEPTED"
	TeamStatusApprovedSpecial = "APPROVED_SPECIAL"
	TeamStatusRejected        = "REJECTED"
)

// AttendableTeamStatuses are the registration statuses that get attendance rows.
var AttendableTeamStatuses = []string{
	TeamStatusApproved,
	TeamStatusAccepted,
	TeamStatusApprovedSpecial,
}

type TeamModel struct {
	TeamID           int    `gorm:"column:id;primaryKey;autoIncrement" json:"team_id"`
	TeamName         string `gorm:"column:name;type:varchar(255);not null" json:"team_name"`
	TeamContestID    int    `gorm:"column:contest_id;not null;index" json:"team_contest_id"`
	TeamContingentID int    `gorm:"column:contingent_id;not null;index" json:"team_contingent_id"`
}

func (TeamModel) TableName() string { return "teams" }

type EventContestTeamModel struct {
	EventContestTeamID             int    `gorm:"column:id;primaryKey;autoIncrement" json:"event_contest_team_id"`
	EventContestTeamEventContestID int    `gorm:"column:event_contest_id;not null;index" json:"event_contest_team_event_contest_id"`
	EventContestTeamTeamID         int    `gorm:"column:team_id;not null;index" json:"event_contest_team_team_id"`
	EventContestTeamStatus         string `gorm:"column:status;type:varchar(30);not null;default:'PENDING'" json:"event_contest_team_status"`
}

func (EventContestTeamModel) TableName() string { return "event_contest_teams" }

type ContestantModel struct {
	ContestantID           int    `gorm:"column:id;primaryKey;autoIncrement" json:"contestant_id"`
	ContestantName         string `gorm:"column:name;type:varchar(255);not null" json:"contestant_name"`
	ContestantIC           string `gorm:"column:ic;type:varchar(30)" json:"contestant_ic"`
	ContestantAge          *int   `gorm:"column:age" json:"contestant_age,omitempty"`
	ContestantContingentID int    `gorm:"column:contingent_id;not null;index" json:"contestant_contingent_id"`
}

func (ContestantModel) TableName() string { return "contestants" }

type TeamMemberModel struct {
	TeamMemberID           int `gorm:"column:id;primaryKey;autoIncrement" json:"team_member_id"`
	TeamMemberTeamID       int `gorm:"column:team_id;not null;index" json:"team_member_team_id"`
	TeamMemberContestantID int `gorm:"column:contestant_id;not null;index" json:"team_member_contestant_id"`
}

func (TeamMemberModel) TableName() string { return "team_members" }

type ManagerModel struct {
	ManagerID    int    `gorm:"column:id;primaryKey;autoIncrement" json:"manager_id"`
	ManagerName  string `gorm:"column:name;type:varchar(255);not null" json:"manager_name"`
	ManagerIC    string `gorm:"column:ic;type:varchar(30)" json:"manager_ic"`
	ManagerEmail string `gorm:"column:email;type:varchar(255)" json:"manager_email"`
	ManagerPhone string `gorm:"column:phone;type:varchar(50)" json:"manager_phone"`
}

func (ManagerModel) TableName() string { return "managers" }

type TeamManagerModel struct {
	TeamManagerID        int `gorm:"column:id;primaryKey;autoIncrement" json:"team_manager_id"`
	TeamManagerTeamID    int `gorm:"column:team_id;not null;index" json:"team_manager_team_id"`
	TeamManagerManagerID int `gorm:"column:manager_id;not null;index" json:"team_manager_manager_id"`
}

func (TeamManagerModel) TableName() string { return "team_managers" }

// All lists every source-graph model for migrations.
func All() []interface{} {
	return []interface{}{
		&ZoneModel{}, &StateModel{},
		&SchoolModel{}, &HigherInstitutionModel{}, &IndependentModel{}, &ContingentModel{},
		&EventModel{}, &TargetGroupModel{}, &ContestModel{}, &ContestTargetGroupModel{}, &EventContestModel{},
		&TeamModel{}, &EventContestTeamModel{},
		&ContestantModel{}, &TeamMemberModel{},
		&ManagerModel{}, &TeamManagerModel{},
	}
}
