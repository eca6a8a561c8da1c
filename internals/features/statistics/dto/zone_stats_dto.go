package dto

import "time"

// StatsParams is bound from the statistics endpoint.
type StatsParams struct {
	ZoneID  int  `params:"zone_id" validate:"required,gt=0"`
	Refresh bool `query:"refresh"`
}

type Zone struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ContingentStat struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	DisplayName      string `json:"displayName"`
	Type             string `json:"type"`
	TeamsCount       int    `json:"teamsCount"`
	ContestantsCount int    `json:"contestantsCount"`
}

type StateGroup struct {
	StateID     int              `json:"stateId"`
	StateName   string           `json:"stateName"`
	Contingents []ContingentStat `json:"contingents"`
}

type ContestGroup struct {
	ContestID   int          `json:"contestId"`
	ContestName string       `json:"contestName"`
	ContestCode string       `json:"contestCode"`
	States      []StateGroup `json:"states"`
}

type SchoolLevelGroup struct {
	SchoolLevel  string         `json:"schoolLevel"`
	ContestLevel string         `json:"contestLevel"`
	Contests     []ContestGroup `json:"contests"`
}

type ContingentSummaryItem struct {
	ID               int    `json:"id"`
	DisplayName      string `json:"displayName"`
	Type             string `json:"type"`
	TotalTeams       int    `json:"totalTeams"`
	TotalContestants int    `json:"totalContestants"`
}

type StateContingentSummary struct {
	StateID     int                     `json:"stateId"`
	StateName   string                  `json:"stateName"`
	Contingents []ContingentSummaryItem `json:"contingents"`
}

type Summary struct {
	SchoolCount      int `json:"schoolCount"`
	TeamCount        int `json:"teamCount"`
	ContestantCount  int `json:"contestantCount"`
	ContingentCount  int `json:"contingentCount"`
	IndependentCount int `json:"independentCount"`
}

// ZoneStatsResult is the zone breakdown for the active event.
type ZoneStatsResult struct {
	Zone              Zone                     `json:"zone"`
	EventID           int                      `json:"eventId"`
	GroupedData       []SchoolLevelGroup       `json:"groupedData"`
	Summary           Summary                  `json:"summary"`
	ContingentSummary []StateContingentSummary `json:"contingentSummary"`
	GeneratedAt       time.Time                `json:"generatedAt"`
}
