package service

import (
	"fmt"
	"sort"
	"strings"

	"competition_backend/internals/features/competition"
	cm "competition_backend/internals/features/competition/model"
	"competition_backend/internals/features/statistics/dto"
)

type contingentInfo struct {
	id          int
	name        string
	displayName string
	typ         string
	stateID     int
	stateName   string
}

type stateAcc struct {
	name        string
	contingents map[int]struct{}
}

type contestAcc struct {
	id     int
	name   string
	code   string
	states map[int]*stateAcc
}

type levelAcc struct {
	contests map[int]*contestAcc
}

// counter holds the de-duplicating sets. Counts are always set sizes,
// never running sums, because one team can appear in several rows.
type counter struct {
	contingentTeams   map[int]map[int]struct{}
	contingentMembers map[int]map[string]struct{}
	contestTeams      map[string]map[int]struct{}
	contestMembers    map[string]map[string]struct{}
}

func newCounter() *counter {
	return &counter{
		contingentTeams:   map[int]map[int]struct{}{},
		contingentMembers: map[int]map[string]struct{}{},
		contestTeams:      map[string]map[int]struct{}{},
		contestMembers:    map[string]map[string]struct{}{},
	}
}

func contestKey(contestID, contingentID int) string {
	return fmt.Sprintf("%d_%d", contestID, contingentID)
}

// memberKey is a counting device only; the join carries member counts, not ids.
func memberKey(teamID, i int) string {
	return fmt.Sprintf("team_%d_member_%d", teamID, i)
}

func (c *counter) add(r StatRow) {
	key := contestKey(r.ContestID, r.ContingentID)
	addInt(c.contingentTeams, r.ContingentID, r.TeamID)
	addInt(c.contestTeams, key, r.TeamID)
	for i := 0; i < r.NumberOfMembers; i++ {
		m := memberKey(r.TeamID, i)
		addStr(c.contingentMembers, r.ContingentID, m)
		addStr(c.contestMembers, key, m)
	}
}

func addInt[K comparable](m map[K]map[int]struct{}, k K, v int) {
	s, ok := m[k]
	if !ok {
		s = map[int]struct{}{}
		m[k] = s
	}
	s[v] = struct{}{}
}

func addStr[K comparable](m map[K]map[string]struct{}, k K, v string) {
	s, ok := m[k]
	if !ok {
		s = map[string]struct{}{}
		m[k] = s
	}
	s[v] = struct{}{}
}

// Aggregate builds the zone breakdown from raw rows. Teams without members
// are ignored. The summary is summed from contingentSummary so the two
// always agree.
func Aggregate(zone dto.Zone, eventID int, rows []StatRow) *dto.ZoneStatsResult {
	cnt := newCounter()
	contingents := map[int]*contingentInfo{}
	levels := map[string]*levelAcc{}

	for _, r := range rows {
		if r.NumberOfMembers <= 0 {
			continue
		}
		cnt.add(r)

		if _, ok := contingents[r.ContingentID]; !ok {
			display := strings.TrimSpace(r.DisplayName)
			if display == "" {
				display = r.ContingentName
			}
			contingents[r.ContingentID] = &contingentInfo{
				id:          r.ContingentID,
				name:        r.ContingentName,
				displayName: display,
				typ:         r.ContingentType,
				stateID:     r.StateID,
				stateName:   r.StateName,
			}
		}

		level := competition.NormalizeSchoolLevel(r.SchoolLevel)
		la, ok := levels[level]
		if !ok {
			la = &levelAcc{contests: map[int]*contestAcc{}}
			levels[level] = la
		}
		ca, ok := la.contests[r.ContestID]
		if !ok {
			ca = &contestAcc{id: r.ContestID, name: r.ContestName, code: r.ContestCode, states: map[int]*stateAcc{}}
			la.contests[r.ContestID] = ca
		}
		sa, ok := ca.states[r.StateID]
		if !ok {
			sa = &stateAcc{name: r.StateName, contingents: map[int]struct{}{}}
			ca.states[r.StateID] = sa
		}
		sa.contingents[r.ContingentID] = struct{}{}
	}

	out := &dto.ZoneStatsResult{
		Zone:              zone,
		EventID:           eventID,
		GroupedData:       buildGroupedData(levels, contingents, cnt),
		ContingentSummary: buildContingentSummary(contingents, cnt),
	}
	out.Summary = summarize(out.ContingentSummary)
	return out
}

func buildGroupedData(levels map[string]*levelAcc, contingents map[int]*contingentInfo, cnt *counter) []dto.SchoolLevelGroup {
	names := make([]string, 0, len(levels))
	for l := range levels {
		names = append(names, l)
	}
	competition.SortSchoolLevels(names)

	groups := make([]dto.SchoolLevelGroup, 0, len(names))
	for _, level := range names {
		la := levels[level]
		contests := make([]dto.ContestGroup, 0, len(la.contests))
		for _, ca := range la.contests {
			states := make([]dto.StateGroup, 0, len(ca.states))
			for stateID, sa := range ca.states {
				stats := make([]dto.ContingentStat, 0, len(sa.contingents))
				for cid := range sa.contingents {
					info := contingents[cid]
					key := contestKey(ca.id, cid)
					stats = append(stats, dto.ContingentStat{
						ID:               cid,
						Name:             info.name,
						DisplayName:      info.displayName,
						Type:             info.typ,
						TeamsCount:       len(cnt.contestTeams[key]),
						ContestantsCount: len(cnt.contestMembers[key]),
					})
				}
				sort.Slice(stats, func(i, j int) bool {
					return byName(stats[i].Name, stats[j].Name, stats[i].ID, stats[j].ID)
				})
				states = append(states, dto.StateGroup{StateID: stateID, StateName: sa.name, Contingents: stats})
			}
			sort.Slice(states, func(i, j int) bool {
				return byName(states[i].StateName, states[j].StateName, states[i].StateID, states[j].StateID)
			})
			contests = append(contests, dto.ContestGroup{ContestID: ca.id, ContestName: ca.name, ContestCode: ca.code, States: states})
		}
		sort.Slice(contests, func(i, j int) bool {
			return byName(contests[i].ContestName, contests[j].ContestName, contests[i].ContestID, contests[j].ContestID)
		})
		groups = append(groups, dto.SchoolLevelGroup{
			SchoolLevel:  level,
			ContestLevel: competition.ContestLevel(level),
			Contests:     contests,
		})
	}
	return groups
}

// Zone-wide counts per contingent, grouped by state.
func buildContingentSummary(contingents map[int]*contingentInfo, cnt *counter) []dto.StateContingentSummary {
	byState := map[int]*dto.StateContingentSummary{}
	for _, info := range contingents {
		s, ok := byState[info.stateID]
		if !ok {
			s = &dto.StateContingentSummary{StateID: info.stateID, StateName: info.stateName}
			byState[info.stateID] = s
		}
		s.Contingents = append(s.Contingents, dto.ContingentSummaryItem{
			ID:               info.id,
			DisplayName:      info.displayName,
			Type:             info.typ,
			TotalTeams:       len(cnt.contingentTeams[info.id]),
			TotalContestants: len(cnt.contingentMembers[info.id]),
		})
	}

	out := make([]dto.StateContingentSummary, 0, len(byState))
	for _, s := range byState {
		sort.Slice(s.Contingents, func(i, j int) bool {
			return byName(s.Contingents[i].DisplayName, s.Contingents[j].DisplayName, s.Contingents[i].ID, s.Contingents[j].ID)
		})
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return byName(out[i].StateName, out[j].StateName, out[i].StateID, out[j].StateID)
	})
	return out
}

func summarize(states []dto.StateContingentSummary) dto.Summary {
	var sum dto.Summary
	for _, s := range states {
		for _, c := range s.Contingents {
			sum.ContingentCount++
			sum.TeamCount += c.TotalTeams
			sum.ContestantCount += c.TotalContestants
			switch c.Type {
			case cm.ContingentTypeSchool:
				sum.SchoolCount++
			case cm.ContingentTypeIndependent:
				sum.IndependentCount++
			}
		}
	}
	return sum
}

// byName orders case-insensitively by name, then by id.
func byName(a, b string, idA, idB int) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return idA < idB
}
