package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	model "competition_backend/internals/features/attendance/model"
	competitionModel "competition_backend/internals/features/competition/model"
)

// GormStore is the Store backed by the service database.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

var _ Store = (*GormStore)(nil)

// One row per (team, contest, manager). State and display name follow the
// contingent type; the contest's school level is its lowest target group.
const teamRowsSQL = `
SELECT
	t.id   AS team_id,
	t.name AS team_name,
	c.id   AS contest_id,
	c.name AS contest_name,
	COALESCE(c.code, '') AS contest_code,
	COALESCE((
		SELECT tg.school_level
		FROM contest_target_groups ctg
		JOIN target_groups tg ON tg.id = ctg.target_group_id
		WHERE ctg.contest_id = c.id
		ORDER BY tg.id
		LIMIT 1
	), '') AS school_level,
	cg.id AS contingent_id,
	CASE cg.contingent_type
		WHEN 'SCHOOL' THEN COALESCE(sch.name, cg.name)
		WHEN 'HIGHER_INSTITUTION' THEN COALESCE(hi.name, cg.name)
		WHEN 'INDEPENDENT' THEN COALESCE(ind.name, cg.name)
		ELSE cg.name
	END AS contingent_name,
	cg.contingent_type AS contingent_type,
	st.id AS state_id,
	COALESCE(st.name, '') AS state_name,
	st.zone_id AS zone_id,
	m.id    AS manager_id,
	m.name  AS manager_name,
	m.ic    AS manager_ic,
	m.email AS manager_email
FROM event_contest_teams ect
JOIN event_contests ec ON ec.id = ect.event_contest_id
JOIN contests c        ON c.id = ec.contest_id
JOIN teams t           ON t.id = ect.team_id
JOIN contingents cg    ON cg.id = t.contingent_id
LEFT JOIN schools sch             ON sch.id = cg.school_id
LEFT JOIN higher_institutions hi  ON hi.id = cg.higher_institution_id
LEFT JOIN independents ind        ON ind.id = cg.independent_id
LEFT JOIN states st ON st.id = CASE cg.contingent_type
		WHEN 'SCHOOL' THEN sch.state_id
		WHEN 'HIGHER_INSTITUTION' THEN hi.state_id
		ELSE ind.state_id
	END
LEFT JOIN team_managers tm ON tm.team_id = t.id
LEFT JOIN managers m       ON m.id = tm.manager_id
WHERE ec.event_id = ?
  AND ect.status IN ?
ORDER BY cg.id, t.id, ec.id, m.id`

func (s *GormStore) EventExists(ctx context.Context, eventID int) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&competitionModel.EventModel{}).
		Where("id = ?", eventID).
		Count(&n).Error
	return n > 0, err
}

func (s *GormStore) ActiveEventID(ctx context.Context) (int, error) {
	var ev competitionModel.EventModel
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Take(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNoActiveEvent
	}
	if err != nil {
		return 0, err
	}
	return ev.EventID, nil
}

func (s *GormStore) FetchTeamRows(ctx context.Context, eventID int, statuses []string) ([]TeamRow, error) {
	var rows []TeamRow
	if err := s.DB.WithContext(ctx).Raw(teamRowsSQL, eventID, statuses).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) FetchMembers(ctx context.Context, teamID int) ([]Member, error) {
	var out []Member
	err := s.DB.WithContext(ctx).
		Table("team_members AS tm").
		Select("ct.id AS contestant_id, ct.name AS name, COALESCE(ct.ic, '') AS ic, ct.age AS age, ct.contingent_id AS contingent_id").
		Joins("JOIN contestants ct ON ct.id = tm.contestant_id").
		Where("tm.team_id = ?", teamID).
		Order("ct.name ASC, ct.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ============================================================
   Attendance rows
   ============================================================ */

// first returns (nil, nil) when q matches nothing.
func first[T any](q *gorm.DB) (*T, error) {
	var row T
	err := q.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// geoUpdates are the columns refreshed on every re-sync.
func geoUpdates(stateID, zoneID *int, state string, at time.Time) map[string]any {
	return map[string]any{
		"state_id":   stateID,
		"zone_id":    zoneID,
		"state":      state,
		"updated_at": at,
	}
}

func (s *GormStore) FindContingentAttendance(ctx context.Context, contingentID, eventID int) (*model.AttendanceContingentModel, error) {
	return first[model.AttendanceContingentModel](s.DB.WithContext(ctx).
		Where("contingent_id = ? AND event_id = ?", contingentID, eventID))
}

func (s *GormStore) CreateContingentAttendance(ctx context.Context, rec *model.AttendanceContingentModel) error {
	return s.DB.WithContext(ctx).Create(rec).Error
}

func (s *GormStore) UpdateContingentAttendance(ctx context.Context, id int, rec *model.AttendanceContingentModel) error {
	return s.DB.WithContext(ctx).
		Model(&model.AttendanceContingentModel{}).
		Where("id = ?", id).
		Updates(geoUpdates(rec.StateID, rec.ZoneID, rec.State, rec.UpdatedAt)).Error
}

func (s *GormStore) FindTeamAttendance(ctx context.Context, teamID, eventID int) (*model.AttendanceTeamModel, error) {
	return first[model.AttendanceTeamModel](s.DB.WithContext(ctx).
		Where("team_id = ? AND event_id = ?", teamID, eventID))
}

func (s *GormStore) CreateTeamAttendance(ctx context.Context, rec *model.AttendanceTeamModel) error {
	return s.DB.WithContext(ctx).Create(rec).Error
}

func (s *GormStore) UpdateTeamAttendance(ctx context.Context, id int, rec *model.AttendanceTeamModel) error {
	fields := geoUpdates(rec.StateID, rec.ZoneID, rec.State, rec.UpdatedAt)
	fields["contingent_id"] = rec.ContingentID
	return s.DB.WithContext(ctx).
		Model(&model.AttendanceTeamModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *GormStore) FindContestantAttendance(ctx context.Context, contestantID, teamID, eventID int) (*model.AttendanceContestantModel, error) {
	return first[model.AttendanceContestantModel](s.DB.WithContext(ctx).
		Where("contestant_id = ? AND team_id = ? AND event_id = ?", contestantID, teamID, eventID))
}

func (s *GormStore) CreateContestantAttendance(ctx context.Context, rec *model.AttendanceContestantModel) error {
	return s.DB.WithContext(ctx).Create(rec).Error
}

func (s *GormStore) UpdateContestantAttendance(ctx context.Context, id int, rec *model.AttendanceContestantModel) error {
	fields := geoUpdates(rec.StateID, rec.ZoneID, rec.State, rec.UpdatedAt)
	fields["contingent_id"] = rec.ContingentID
	fields["ic"] = rec.IC
	fields["contestant_name"] = rec.ContestantName
	fields["contest_id"] = rec.ContestID
	fields["contest_name"] = rec.ContestName
	fields["contest_group"] = rec.ContestGroup
	return s.DB.WithContext(ctx).
		Model(&model.AttendanceContestantModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *GormStore) FindManagerAttendance(ctx context.Context, managerID, eventID int, hashcode string) (*model.AttendanceManagerModel, error) {
	return first[model.AttendanceManagerModel](s.DB.WithContext(ctx).
		Where("(manager_id = ? AND event_id = ?) OR hashcode = ?", managerID, eventID, hashcode).
		Order("id ASC"))
}

func (s *GormStore) CreateManagerAttendance(ctx context.Context, rec *model.AttendanceManagerModel) error {
	return s.DB.WithContext(ctx).Create(rec).Error
}

func managerUpdates(rec *model.AttendanceManagerModel) map[string]any {
	fields := geoUpdates(rec.StateID, rec.ZoneID, rec.State, rec.UpdatedAt)
	fields["team_id"] = rec.TeamID
	fields["contingent_id"] = rec.ContingentID
	fields["name"] = rec.Name
	fields["ic"] = rec.IC
	fields["email"] = rec.Email
	return fields
}

func (s *GormStore) UpdateManagerAttendance(ctx context.Context, id int, rec *model.AttendanceManagerModel) error {
	return s.DB.WithContext(ctx).
		Model(&model.AttendanceManagerModel{}).
		Where("id = ?", id).
		Updates(managerUpdates(rec)).Error
}

func (s *GormStore) UpdateManagerAttendanceByHashcode(ctx context.Context, hashcode string, rec *model.AttendanceManagerModel) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.AttendanceManagerModel{}).
		Where("hashcode = ?", hashcode).
		Updates(managerUpdates(rec))
	return res.RowsAffected, res.Error
}

/* ============================================================
   Sync runs
   ============================================================ */

func (s *GormStore) RecordSyncRun(ctx context.Context, run *model.AttendanceSyncRunModel) error {
	return s.DB.WithContext(ctx).Create(run).Error
}

func (s *GormStore) ListSyncRuns(ctx context.Context, eventID, limit, offset int) ([]model.AttendanceSyncRunModel, int64, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.AttendanceSyncRunModel{}).
		Where("event_id = ?", eventID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceSyncRunModel
	err := q.Order("started_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
