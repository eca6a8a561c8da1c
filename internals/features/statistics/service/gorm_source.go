package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	cm "competition_backend/internals/features/competition/model"
	"competition_backend/internals/features/statistics/dto"
)

type GormSource struct {
	DB *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{DB: db}
}

var _ Source = (*GormSource)(nil)

// Every registration of the event whose contingent resolves to a state in
// the zone, with the team's member count.
const zoneRowsSQL = `
SELECT
	t.id   AS team_id,
	t.name AS team_name,
	(SELECT COUNT(*) FROM team_members tm WHERE tm.team_id = t.id) AS number_of_members,
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
	cg.id   AS contingent_id,
	cg.name AS contingent_name,
	CASE cg.contingent_type
		WHEN 'SCHOOL' THEN COALESCE(sch.name, cg.name)
		WHEN 'HIGHER_INSTITUTION' THEN COALESCE(hi.name, cg.name)
		WHEN 'INDEPENDENT' THEN COALESCE(ind.name, cg.name)
		ELSE cg.name
	END AS display_name,
	cg.contingent_type AS contingent_type,
	st.id   AS state_id,
	st.name AS state_name
FROM event_contest_teams ect
JOIN event_contests ec ON ec.id = ect.event_contest_id
JOIN contests c        ON c.id = ec.contest_id
JOIN teams t           ON t.id = ect.team_id
JOIN contingents cg    ON cg.id = t.contingent_id
LEFT JOIN schools sch            ON sch.id = cg.school_id
LEFT JOIN higher_institutions hi ON hi.id = cg.higher_institution_id
LEFT JOIN independents ind       ON ind.id = cg.independent_id
JOIN states st ON st.id = CASE cg.contingent_type
		WHEN 'SCHOOL' THEN sch.state_id
		WHEN 'HIGHER_INSTITUTION' THEN hi.state_id
		ELSE ind.state_id
	END
WHERE ec.event_id = ?
  AND st.zone_id = ?
ORDER BY ect.id`

func (s *GormSource) FindZone(ctx context.Context, zoneID int) (dto.Zone, error) {
	var z cm.ZoneModel
	err := s.DB.WithContext(ctx).Where("id = ?", zoneID).Take(&z).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.Zone{}, ErrZoneNotFound
	}
	if err != nil {
		return dto.Zone{}, err
	}
	return dto.Zone{ID: z.ZoneID, Name: z.ZoneName}, nil
}

func (s *GormSource) ActiveEventID(ctx context.Context) (int, error) {
	var ev cm.EventModel
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

func (s *GormSource) FetchZoneRows(ctx context.Context, eventID, zoneID int) ([]StatRow, error) {
	var rows []StatRow
	if err := s.DB.WithContext(ctx).Raw(zoneRowsSQL, eventID, zoneID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
