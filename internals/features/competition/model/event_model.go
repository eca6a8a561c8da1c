package model

import "time"

type EventModel struct {
	EventID        int        `gorm:"column:id;primaryKey;autoIncrement" json:"event_id"`
	EventName      string     `gorm:"column:name;type:varchar(255);not null" json:"event_name"`
	EventIsActive  bool       `gorm:"column:is_active;not null;default:false;index" json:"event_is_active"`
	EventStartDate *time.Time `gorm:"column:start_date" json:"event_start_date,omitempty"`
	EventEndDate   *time.Time `gorm:"column:end_date" json:"event_end_date,omitempty"`
}

func (EventModel) TableName() string { return "events" }

type TargetGroupModel struct {
	TargetGroupID          int    `gorm:"column:id;primaryKey;autoIncrement" json:"target_group_id"`
	TargetGroupCode        string `gorm:"column:code;type:varchar(50);not null" json:"target_group_code"`
	TargetGroupName        string `gorm:"column:name;type:varchar(255);not null" json:"target_group_name"`
	TargetGroupSchoolLevel string `gorm:"column:school_level;type:varchar(100)" json:"target_group_school_level"`
}

func (TargetGroupModel) TableName() string { return "target_groups" }

type ContestModel struct {
	ContestID   int    `gorm:"column:id;primaryKey;autoIncrement" json:"contest_id"`
	ContestName string `gorm:"column:name;type:varchar(255);not null" json:"contest_name"`
	ContestCode string `gorm:"column:code;type:varchar(50)" json:"contest_code"`
}

func (ContestModel) TableName() string { return "contests" }

type ContestTargetGroupModel struct {
	ContestID     int `gorm:"column:contest_id;primaryKey" json:"contest_id"`
	TargetGroupID int `gorm:"column:target_group_id;primaryKey" json:"target_group_id"`
}

func (ContestTargetGroupModel) TableName() string { return "contest_target_groups" }

type EventContestModel struct {
	EventContestID        int `gorm:"column:id;primaryKey;autoIncrement" json:"event_contest_id"`
	EventContestEventID   int `gorm:"column:event_id;not null;index" json:"event_contest_event_id"`
	EventContestContestID int `gorm:"column:contest_id;not null;index" json:"event_contest_contest_id"`
}

func (EventContestModel) TableName() string { return "event_contests" }
