package service

import (
	"context"

	"competition_backend/internals/features/statistics/dto"
)

// StatRow is one (registration, contest) row of a zone. A team entered in
// two contests yields two rows.
type StatRow struct {
	TeamID          int    `gorm:"column:team_id"`
	TeamName        string `gorm:"column:team_name"`
	NumberOfMembers int    `gorm:"column:number_of_members"`
	ContestID       int    `gorm:"column:contest_id"`
	ContestName     string `gorm:"column:contest_name"`
	ContestCode     string `gorm:"column:contest_code"`
	SchoolLevel     string `gorm:"column:school_level"`
	ContingentID    int    `gorm:"column:contingent_id"`
	ContingentName  string `gorm:"column:contingent_name"`
	DisplayName     string `gorm:"column:display_name"`
	ContingentType  string `gorm:"column:contingent_type"`
	StateID         int    `gorm:"column:state_id"`
	StateName       string `gorm:"column:state_name"`
}

// Source reads what the aggregation needs.
type Source interface {
	// FindZone returns ErrZoneNotFound when the zone does not exist.
	FindZone(ctx context.Context, zoneID int) (dto.Zone, error)
	// ActiveEventID returns ErrNoActiveEvent when no event is active.
	ActiveEventID(ctx context.Context) (int, error)
	FetchZoneRows(ctx context.Context, eventID, zoneID int) ([]StatRow, error)
}
