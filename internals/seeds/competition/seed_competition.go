package competition

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"competition_backend/internals/features/competition/model"
	"competition_backend/internals/logger"
)

// Dataset is a full source graph. IDs are kept as given so fixtures can
// reference each other.
type Dataset struct {
	Zones               []model.ZoneModel               `json:"zones"`
	States              []model.StateModel              `json:"states"`
	Schools             []model.SchoolModel             `json:"schools"`
	HigherInstitutions  []model.HigherInstitutionModel  `json:"higher_institutions"`
	Independents        []model.IndependentModel        `json:"independents"`
	Contingents         []model.ContingentModel         `json:"contingents"`
	Events              []model.EventModel              `json:"events"`
	TargetGroups        []model.TargetGroupModel        `json:"target_groups"`
	Contests            []model.ContestModel            `json:"contests"`
	ContestTargetGroups []model.ContestTargetGroupModel `json:"contest_target_groups"`
	EventContests       []model.EventContestModel       `json:"event_contests"`
	Teams               []model.TeamModel               `json:"teams"`
	EventContestTeams   []model.EventContestTeamModel   `json:"event_contest_teams"`
	Contestants         []model.ContestantModel         `json:"contestants"`
	TeamMembers         []model.TeamMemberModel         `json:"team_members"`
	Managers            []model.ManagerModel            `json:"managers"`
	TeamManagers        []model.TeamManagerModel        `json:"team_managers"`
}

func SeedCompetitionFromJSON(db *gorm.DB, filePath string) error {
	logger.L().Infof("[SEED] reading %s", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(file, &ds); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}
	return SeedCompetition(db, ds)
}

// SeedCompetition inserts ds in dependency order inside one transaction.
// Rows whose primary key already exists are left alone.
func SeedCompetition(db *gorm.DB, ds Dataset) error {
	return db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name string
			rows any
			n    int
		}{
			{"zones", &ds.Zones, len(ds.Zones)},
			{"states", &ds.States, len(ds.States)},
			{"schools", &ds.Schools, len(ds.Schools)},
			{"higher_institutions", &ds.HigherInstitutions, len(ds.HigherInstitutions)},
			{"independents", &ds.Independents, len(ds.Independents)},
			{"contingents", &ds.Contingents, len(ds.Contingents)},
			{"events", &ds.Events, len(ds.Events)},
			{"target_groups", &ds.TargetGroups, len(ds.TargetGroups)},
			{"contests", &ds.Contests, len(ds.Contests)},
			{"contest_target_groups", &ds.ContestTargetGroups, len(ds.ContestTargetGroups)},
			{"event_contests", &ds.EventContests, len(ds.EventContests)},
			{"teams", &ds.Teams, len(ds.Teams)},
			{"event_contest_teams", &ds.EventContestTeams, len(ds.EventContestTeams)},
			{"contestants", &ds.Contestants, len(ds.Contestants)},
			{"team_members", &ds.TeamMembers, len(ds.TeamMembers)},
			{"managers", &ds.Managers, len(ds.Managers)},
			{"team_managers", &ds.TeamManagers, len(ds.TeamManagers)},
		}

		for _, s := range steps {
			if s.n == 0 {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(s.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", s.name, err)
			}
			logger.L().Debugf("[SEED] %s: %d rows", s.name, s.n)
		}
		return nil
	})
}
