package service

import (
	"context"
	"strconv"
	"time"

	model "competition_backend/internals/features/attendance/model"
	helper "competition_backend/internals/helpers"
	"competition_backend/internals/metrics"
)

const (
	levelContingent = "contingent"
	levelTeam       = "team"
	levelContestant = "contestant"
	levelManager    = "manager"
)

// upsertOps are the primitives of one check-then-write. find reports
// (id, found). recover runs after an insert hit a unique constraint and
// reports whether it updated the row that won the race.
type upsertOps struct {
	find    func(ctx context.Context) (int, bool, error)
	create  func(ctx context.Context) error
	update  func(ctx context.Context, id int) error
	recover func(ctx context.Context) (bool, error)
}

// runUpsert returns created=true when a new row was (or, in dry run,
// would be) inserted. A lost insert race counts as an update.
func runUpsert(ctx context.Context, level string, ops upsertOps, dryRun bool) (created bool, err error) {
	id, found, err := ops.find(ctx)
	if err != nil {
		return false, err
	}
	if found {
		if dryRun {
			return false, nil
		}
		if err := ops.update(ctx, id); err != nil {
			return false, err
		}
		metrics.AttendanceRecordsTotal.WithLabelValues(level, "update").Inc()
		return false, nil
	}
	if dryRun {
		return true, nil
	}

	if err := ops.create(ctx); err != nil {
		if !helper.IsUniqueViolation(err) {
			return false, err
		}
		ok, rerr := ops.recover(ctx)
		if rerr != nil {
			return false, rerr
		}
		if !ok {
			return false, err
		}
		metrics.AttendanceRecordsTotal.WithLabelValues(level, "update").Inc()
		return false, nil
	}
	metrics.AttendanceRecordsTotal.WithLabelValues(level, "insert").Inc()
	return true, nil
}

// recoverByKey re-reads the row by its entity key and updates it.
func recoverByKey(find func(ctx context.Context) (int, bool, error), update func(ctx context.Context, id int) error) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		id, found, err := find(ctx)
		if err != nil || !found {
			return false, err
		}
		return true, update(ctx, id)
	}
}

/* ============================================================
   Per-level record builders
   ============================================================ */

func contingentRecord(c *ContingentNode, eventID int, now time.Time) *model.AttendanceContingentModel {
	return &model.AttendanceContingentModel{
		Hashcode:     helper.PlainHashcode(c.ContingentID, eventID, now),
		ContingentID: c.ContingentID,
		EventID:      eventID,
		StateID:      c.StateID,
		ZoneID:       c.ZoneID,
		State:        c.StateName,
		Status:       model.StatusNotPresent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func teamRecord(t *TeamNode, c *ContingentNode, eventID int, now time.Time) *model.AttendanceTeamModel {
	return &model.AttendanceTeamModel{
		Hashcode:     helper.PlainHashcode(t.TeamID, eventID, now),
		TeamID:       t.TeamID,
		ContingentID: c.ContingentID,
		EventID:      eventID,
		StateID:      c.StateID,
		ZoneID:       c.ZoneID,
		State:        c.StateName,
		Status:       model.StatusNotPresent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Contest fields come from the team; contestants carry none of their own.
func contestantRecord(m Member, t *TeamNode, c *ContingentNode, eventID int, now time.Time) *model.AttendanceContestantModel {
	contestID := t.ContestID
	return &model.AttendanceContestantModel{
		Hashcode: helper.SaltedHashcode(now,
			icOrID(m.IC, m.ContestantID),
			strconv.Itoa(eventID),
			strconv.Itoa(c.ContingentID),
			strconv.Itoa(m.ContestantID),
			levelContestant,
		),
		ContestantID:   m.ContestantID,
		TeamID:         t.TeamID,
		EventID:        eventID,
		ContingentID:   c.ContingentID,
		IC:             m.IC,
		ContestantName: m.Name,
		ContestID:      &contestID,
		ContestName:    t.ContestName,
		ContestGroup:   t.ContestGroup,
		StateID:        c.StateID,
		ZoneID:         c.ZoneID,
		State:          c.StateName,
		Status:         model.StatusNotPresent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func managerRecord(m ManagerInfo, t *TeamNode, c *ContingentNode, eventID int, now time.Time) *model.AttendanceManagerModel {
	return &model.AttendanceManagerModel{
		Hashcode: helper.SaltedHashcode(now,
			icOrID(m.IC, m.ID),
			strconv.Itoa(eventID),
			strconv.Itoa(c.ContingentID),
			strconv.Itoa(m.ID),
			levelManager,
		),
		ManagerID:    m.ID,
		EventID:      eventID,
		TeamID:       t.TeamID,
		ContingentID: c.ContingentID,
		Name:         m.Name,
		IC:           m.IC,
		Email:        m.Email,
		StateID:      c.StateID,
		ZoneID:       c.ZoneID,
		State:        c.StateName,
		Status:       model.StatusNotPresent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func icOrID(ic string, id int) string {
	if ic != "" {
		return ic
	}
	return strconv.Itoa(id)
}
