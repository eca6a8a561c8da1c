// Package dbtest opens throwaway SQLite databases for package tests.
package dbtest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"competition_backend/internals/configs"
	database "competition_backend/internals/databases"
	cm "competition_backend/internals/features/competition/model"
	seed "competition_backend/internals/seeds/competition"
)

// New returns a migrated in-memory database private to t.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectDB(configs.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close(db) })

	require.NoError(t, database.Migrate(db))
	return db
}

// Seed loads ds into db.
func Seed(t *testing.T, db *gorm.DB, ds seed.Dataset) {
	t.Helper()
	require.NoError(t, seed.SeedCompetition(db, ds))
}

// Event42 is event 42 with contingent 7 (Selangor, zone 3) fielding team
// 100 (two members, manager 55) in contest 5. Team 101 is approved but
// has no members; team 102 has a member but is still pending.
func Event42() seed.Dataset {
	school := 1
	age := 15
	return seed.Dataset{
		Zones:   []cm.ZoneModel{{ZoneID: 3, ZoneName: "Central"}},
		States:  []cm.StateModel{{StateID: 10, StateName: "Selangor", StateZoneID: 3}},
		Schools: []cm.SchoolModel{{SchoolID: 1, SchoolName: "SMK Seri Kembangan", SchoolStateID: 10, SchoolLevel: "Secondary"}},
		Contingents: []cm.ContingentModel{
			{ContingentID: 7, ContingentName: "Seri Kembangan", ContingentType: cm.ContingentTypeSchool, ContingentSchoolID: &school},
		},
		Events:              []cm.EventModel{{EventID: 42, EventName: "Finals", EventIsActive: true}},
		TargetGroups:        []cm.TargetGroupModel{{TargetGroupID: 2, TargetGroupCode: "SEC", TargetGroupName: "Secondary", TargetGroupSchoolLevel: "Secondary"}},
		Contests:            []cm.ContestModel{{ContestID: 5, ContestName: "Coding Sprint", ContestCode: "CS"}},
		ContestTargetGroups: []cm.ContestTargetGroupModel{{ContestID: 5, TargetGroupID: 2}},
		EventContests:       []cm.EventContestModel{{EventContestID: 1, EventContestEventID: 42, EventContestContestID: 5}},
		Teams: []cm.TeamModel{
			{TeamID: 100, TeamName: "Alpha", TeamContestID: 5, TeamContingentID: 7},
			{TeamID: 101, TeamName: "Ghost", TeamContestID: 5, TeamContingentID: 7},
			{TeamID: 102, TeamName: "Pending", TeamContestID: 5, TeamContingentID: 7},
		},
		EventContestTeams: []cm.EventContestTeamModel{
			{EventContestTeamID: 1, EventContestTeamEventContestID: 1, EventContestTeamTeamID: 100, EventContestTeamStatus: cm.TeamStatusApproved},
			{EventContestTeamID: 2, EventContestTeamEventContestID: 1, EventContestTeamTeamID: 101, EventContestTeamStatus: cm.TeamStatusApproved},
			{EventContestTeamID: 3, EventContestTeamEventContestID: 1, EventContestTeamTeamID: 102, EventContestTeamStatus: cm.TeamStatusPending},
		},
		Contestants: []cm.ContestantModel{
			{ContestantID: 1002, ContestantName: "Siti", ContestantIC: "090202-10-0002", ContestantAge: &age, ContestantContingentID: 7},
			{ContestantID: 1001, ContestantName: "Adam", ContestantIC: "090101-10-0001", ContestantAge: &age, ContestantContingentID: 7},
			{ContestantID: 1003, ContestantName: "Zul", ContestantContingentID: 7},
		},
		TeamMembers: []cm.TeamMemberModel{
			{TeamMemberID: 1, TeamMemberTeamID: 100, TeamMemberContestantID: 1002},
			{TeamMemberID: 2, TeamMemberTeamID: 100, TeamMemberContestantID: 1001},
			{TeamMemberID: 3, TeamMemberTeamID: 102, TeamMemberContestantID: 1003},
		},
		Managers:     []cm.ManagerModel{{ManagerID: 55, ManagerName: "Cikgu Aida", ManagerIC: "800101-10-1111", ManagerEmail: "aida@example.com"}},
		TeamManagers: []cm.TeamManagerModel{{TeamManagerID: 1, TeamManagerTeamID: 100, TeamManagerManagerID: 55}},
	}
}
