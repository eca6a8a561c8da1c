package service

import "competition_backend/internals/features/competition"

type ManagerInfo struct {
	ID    int
	Name  string
	IC    string
	Email string
}

type TeamNode struct {
	TeamID       int
	TeamName     string
	ContestID    int
	ContestName  string
	ContestCode  string
	ContestGroup string

	ContingentID   int
	ContingentName string
	ContingentType string
	StateID        *int
	StateName      string
	ZoneID         *int

	Contestants []Member
	Managers    []ManagerInfo
}

type ContingentNode struct {
	ContingentID int
	Name         string
	Type         string
	StateID      *int
	StateName    string
	ZoneID       *int
	Teams        []*TeamNode
}

// groupTeamRows folds join rows into teams, in order of first appearance.
// A team linked to several contests keeps the first contest; managers are
// deduplicated per team.
func groupTeamRows(rows []TeamRow) []*TeamNode {
	byID := make(map[int]*TeamNode, len(rows))
	seenManager := make(map[int]map[int]struct{}, len(rows))
	teams := make([]*TeamNode, 0, len(rows))

	for _, r := range rows {
		t, ok := byID[r.TeamID]
		if !ok {
			t = &TeamNode{
				TeamID:         r.TeamID,
				TeamName:       r.TeamName,
				ContestID:      r.ContestID,
				ContestName:    r.ContestName,
				ContestCode:    r.ContestCode,
				ContestGroup:   competition.ContestLevel(r.SchoolLevel),
				ContingentID:   r.ContingentID,
				ContingentName: r.ContingentName,
				ContingentType: r.ContingentType,
				StateID:        r.StateID,
				StateName:      r.StateName,
				ZoneID:         r.ZoneID,
			}
			byID[r.TeamID] = t
			seenManager[r.TeamID] = map[int]struct{}{}
			teams = append(teams, t)
		}

		if r.ManagerID == nil {
			continue
		}
		if _, dup := seenManager[r.TeamID][*r.ManagerID]; dup {
			continue
		}
		seenManager[r.TeamID][*r.ManagerID] = struct{}{}
		t.Managers = append(t.Managers, ManagerInfo{
			ID:    *r.ManagerID,
			Name:  deref(r.ManagerName),
			IC:    deref(r.ManagerIC),
			Email: deref(r.ManagerEmail),
		})
	}
	return teams
}

// buildContingentTree groups teams by contingent in order of first appearance.
// Teams without members are left out and returned separately. Geographic
// fields come from the first team seen for each contingent.
func buildContingentTree(teams []*TeamNode) (tree []*ContingentNode, skipped []*TeamNode) {
	byID := map[int]*ContingentNode{}
	for _, t := range teams {
		if len(t.Contestants) == 0 {
			skipped = append(skipped, t)
			continue
		}
		c, ok := byID[t.ContingentID]
		if !ok {
			c = &ContingentNode{
				ContingentID: t.ContingentID,
				Name:         t.ContingentName,
				Type:         t.ContingentType,
				StateID:      t.StateID,
				StateName:    t.StateName,
				ZoneID:       t.ZoneID,
			}
			byID[t.ContingentID] = c
			tree = append(tree, c)
		}
		c.Teams = append(c.Teams, t)
	}
	return tree, skipped
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
