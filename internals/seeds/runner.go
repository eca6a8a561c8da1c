package seeds

import (
	"gorm.io/gorm"

	competition "competition_backend/internals/seeds/competition"
)

const competitionSeedFile = "internals/seeds/competition/data_competition.json"

// RunAllSeeds loads the demo competition graph.
func RunAllSeeds(db *gorm.DB) error {
	return competition.SeedCompetitionFromJSON(db, competitionSeedFile)
}
