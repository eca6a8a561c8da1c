package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"competition_backend/internals/features/attendance/dto"
	model "competition_backend/internals/features/attendance/model"
	competitionModel "competition_backend/internals/features/competition/model"
	"competition_backend/internals/logger"
	"competition_backend/internals/metrics"
)

const (
	defaultFetchConcurrency = 8
	defaultSyncRunsLimit    = 20
	maxSyncRunsLimit        = 100
	auditWriteTimeout       = 5 * time.Second
)

type SyncOptions struct {
	DryRun      bool
	Trigger     string
	TriggeredBy string
}

type SyncService struct {
	store       Store
	timeout     time.Duration
	concurrency int
	locks       *eventLocks
	now         func() time.Time
	log         *logrus.Logger
}

type Option func(*SyncService)

// WithTimeout bounds a whole sync run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *SyncService) { s.timeout = d }
}

// WithFetchConcurrency caps parallel member fetches.
func WithFetchConcurrency(n int) Option {
	return func(s *SyncService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *SyncService) { s.now = now }
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *SyncService) { s.log = l }
}

func NewSyncService(store Store, opts ...Option) *SyncService {
	s := &SyncService{
		store:       store,
		concurrency: defaultFetchConcurrency,
		locks:       newEventLocks(),
		now:         time.Now,
		log:         logger.L(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Sync rebuilds the attendance rows of one event from its approved teams.
// Per-entity failures end up in the result; only request-level failures
// are returned as errors.
func (s *SyncService) Sync(ctx context.Context, eventID int, opts SyncOptions) (*dto.SyncResult, error) {
	if eventID <= 0 {
		return nil, ErrInvalidEvent
	}
	if opts.Trigger == "" {
		opts.Trigger = model.TriggerHTTP
	}

	release := s.locks.lock(eventID)
	defer release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := s.now()
	log := s.log.WithFields(logrus.Fields{"event_id": eventID, "trigger": opts.Trigger, "dry_run": opts.DryRun})
	log.Info("[SYNC] attendance sync started")

	result := dto.NewSyncResult(eventID, opts.DryRun)
	err := s.run(ctx, eventID, opts, result, log)

	finished := s.now()
	metrics.SyncDuration.Observe(finished.Sub(started).Seconds())
	status := runStatus(result, opts.DryRun, err)
	metrics.SyncRunsTotal.WithLabelValues(status).Inc()

	if !errors.Is(err, ErrInvalidEvent) && !errors.Is(err, ErrEventNotFound) {
		s.recordRun(ctx, eventID, opts, status, result, started, finished, log)
	}

	if err != nil {
		log.WithError(err).Error("[SYNC] attendance sync failed")
		return result, err
	}
	log.WithFields(logrus.Fields{
		"new_contingents":     result.NewContingents,
		"updated_contingents": result.UpdatedContingents,
		"new_teams":           result.NewTeams,
		"updated_teams":       result.UpdatedTeams,
		"new_contestants":     result.NewContestants,
		"updated_contestants": result.UpdatedContestants,
		"new_managers":        result.NewManagers,
		"updated_managers":    result.UpdatedManagers,
		"skipped_teams":       result.SkippedTeams,
		"errors":              result.ErrorCount,
	}).Info("[SYNC] attendance sync finished")
	return result, nil
}

// SyncActiveEvent syncs whichever event is flagged active.
func (s *SyncService) SyncActiveEvent(ctx context.Context, opts SyncOptions) (*dto.SyncResult, error) {
	eventID, err := s.store.ActiveEventID(ctx)
	if err != nil {
		return nil, err
	}
	return s.Sync(ctx, eventID, opts)
}

// ListRuns returns one page of audit rows for eventID, newest first, and
// the total row count.
func (s *SyncService) ListRuns(ctx context.Context, eventID, limit, offset int) ([]model.AttendanceSyncRunModel, int64, error) {
	if eventID <= 0 {
		return nil, 0, ErrInvalidEvent
	}
	if limit <= 0 || limit > maxSyncRunsLimit {
		limit = defaultSyncRunsLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListSyncRuns(ctx, eventID, limit, offset)
}

func (s *SyncService) run(ctx context.Context, eventID int, opts SyncOptions, result *dto.SyncResult, log *logrus.Entry) error {
	ok, err := s.store.EventExists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}
	if !ok {
		return ErrEventNotFound
	}

	rows, err := s.store.FetchTeamRows(ctx, eventID, competitionModel.AttendableTeamStatuses)
	if err != nil {
		return fmt.Errorf("fetch teams: %w", err)
	}
	teams := groupTeamRows(rows)
	if err := s.fetchMembers(ctx, teams); err != nil {
		return fmt.Errorf("fetch members: %w", err)
	}

	tree, skipped := buildContingentTree(teams)
	result.SkippedTeams = len(skipped)
	for _, t := range skipped {
		log.WithField("team_id", t.TeamID).Debug("[SYNC] team has no members, skipped")
	}
	log.WithFields(logrus.Fields{"teams": len(teams), "contingents": len(tree)}).Info("[SYNC] attendance tree built")

	now := s.now()
	// managers shared between teams are written once per run, on their
	// first successful upsert
	seenManagers := map[int]struct{}{}

	for _, c := range tree {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrSyncAborted, err)
		}
		s.syncContingent(ctx, eventID, c, now, opts.DryRun, seenManagers, result, log)
	}
	return nil
}

func (s *SyncService) fetchMembers(ctx context.Context, teams []*TeamNode) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, t := range teams {
		t := t
		g.Go(func() error {
			members, err := s.store.FetchMembers(gctx, t.TeamID)
			if err != nil {
				return fmt.Errorf("team %d: %w", t.TeamID, err)
			}
			t.Contestants = members
			return nil
		})
	}
	return g.Wait()
}

func (s *SyncService) syncContingent(
	ctx context.Context,
	eventID int,
	c *ContingentNode,
	now time.Time,
	dryRun bool,
	seenManagers map[int]struct{},
	result *dto.SyncResult,
	log *logrus.Entry,
) {
	created, err := s.upsertContingent(ctx, eventID, c, now, dryRun)
	switch {
	case err != nil:
		entityError(result, log, levelContingent, "contingent %d: %v", c.ContingentID, err)
	case created:
		result.NewContingents++
	default:
		result.UpdatedContingents++
	}

	for _, t := range c.Teams {
		created, err := s.upsertTeam(ctx, eventID, t, c, now, dryRun)
		switch {
		case err != nil:
			entityError(result, log, levelTeam, "team %d: %v", t.TeamID, err)
		case created:
			result.NewTeams++
		default:
			result.UpdatedTeams++
		}

		for _, m := range t.Contestants {
			created, err := s.upsertContestant(ctx, eventID, m, t, c, now, dryRun)
			switch {
			case err != nil:
				entityError(result, log, levelContestant, "contestant %d (team %d): %v", m.ContestantID, t.TeamID, err)
			case created:
				result.NewContestants++
			default:
				result.UpdatedContestants++
			}
		}

		for _, mg := range t.Managers {
			if _, done := seenManagers[mg.ID]; done {
				continue
			}

			created, err := s.upsertManager(ctx, eventID, mg, t, c, now, dryRun)
			if err != nil {
				// a later team referencing this manager retries the write
				entityError(result, log, levelManager, "manager %d (team %d): %v", mg.ID, t.TeamID, err)
				continue
			}
			seenManagers[mg.ID] = struct{}{}
			if created {
				result.NewManagers++
			} else {
				result.UpdatedManagers++
			}
		}
	}
}

func entityError(result *dto.SyncResult, log *logrus.Entry, level, format string, args ...any) {
	result.AddError(format, args...)
	metrics.SyncEntityErrorsTotal.WithLabelValues(level).Inc()
	log.WithField("level", level).Warnf("[SYNC] "+format, args...)
}

/* ============================================================
   Upserts per level
   ============================================================ */

func (s *SyncService) upsertContingent(ctx context.Context, eventID int, c *ContingentNode, now time.Time, dryRun bool) (bool, error) {
	rec := contingentRecord(c, eventID, now)
	find := func(ctx context.Context) (int, bool, error) {
		row, err := s.store.FindContingentAttendance(ctx, c.ContingentID, eventID)
		if err != nil || row == nil {
			return 0, false, err
		}
		return row.ID, true, nil
	}
	update := func(ctx context.Context, id int) error {
		return s.store.UpdateContingentAttendance(ctx, id, rec)
	}
	return runUpsert(ctx, levelContingent, upsertOps{
		find:    find,
		create:  func(ctx context.Context) error { return s.store.CreateContingentAttendance(ctx, rec) },
		update:  update,
		recover: recoverByKey(find, update),
	}, dryRun)
}

func (s *SyncService) upsertTeam(ctx context.Context, eventID int, t *TeamNode, c *ContingentNode, now time.Time, dryRun bool) (bool, error) {
	rec := teamRecord(t, c, eventID, now)
	find := func(ctx context.Context) (int, bool, error) {
		row, err := s.store.FindTeamAttendance(ctx, t.TeamID, eventID)
		if err != nil || row == nil {
			return 0, false, err
		}
		return row.ID, true, nil
	}
	update := func(ctx context.Context, id int) error {
		return s.store.UpdateTeamAttendance(ctx, id, rec)
	}
	return runUpsert(ctx, levelTeam, upsertOps{
		find:    find,
		create:  func(ctx context.Context) error { return s.store.CreateTeamAttendance(ctx, rec) },
		update:  update,
		recover: recoverByKey(find, update),
	}, dryRun)
}

func (s *SyncService) upsertContestant(ctx context.Context, eventID int, m Member, t *TeamNode, c *ContingentNode, now time.Time, dryRun bool) (bool, error) {
	rec := contestantRecord(m, t, c, eventID, now)
	find := func(ctx context.Context) (int, bool, error) {
		row, err := s.store.FindContestantAttendance(ctx, m.ContestantID, t.TeamID, eventID)
		if err != nil || row == nil {
			return 0, false, err
		}
		return row.ID, true, nil
	}
	update := func(ctx context.Context, id int) error {
		return s.store.UpdateContestantAttendance(ctx, id, rec)
	}
	return runUpsert(ctx, levelContestant, upsertOps{
		find:    find,
		create:  func(ctx context.Context) error { return s.store.CreateContestantAttendance(ctx, rec) },
		update:  update,
		recover: recoverByKey(find, update),
	}, dryRun)
}

// Managers match on (manager, event) or hashcode; a lost insert race is
// settled by updating the hashcode row first, then the keyed row.
func (s *SyncService) upsertManager(ctx context.Context, eventID int, mg ManagerInfo, t *TeamNode, c *ContingentNode, now time.Time, dryRun bool) (bool, error) {
	rec := managerRecord(mg, t, c, eventID, now)
	find := func(ctx context.Context) (int, bool, error) {
		row, err := s.store.FindManagerAttendance(ctx, mg.ID, eventID, rec.Hashcode)
		if err != nil || row == nil {
			return 0, false, err
		}
		return row.ID, true, nil
	}
	update := func(ctx context.Context, id int) error {
		return s.store.UpdateManagerAttendance(ctx, id, rec)
	}
	byKey := recoverByKey(find, update)
	return runUpsert(ctx, levelManager, upsertOps{
		find:   find,
		create: func(ctx context.Context) error { return s.store.CreateManagerAttendance(ctx, rec) },
		update: update,
		recover: func(ctx context.Context) (bool, error) {
			n, err := s.store.UpdateManagerAttendanceByHashcode(ctx, rec.Hashcode, rec)
			if err != nil {
				return false, err
			}
			if n > 0 {
				return true, nil
			}
			return byKey(ctx)
		},
	}, dryRun)
}

/* ============================================================
   Audit
   ============================================================ */

func runStatus(result *dto.SyncResult, dryRun bool, err error) string {
	switch {
	case err != nil:
		return model.RunStatusFailed
	case dryRun:
		return model.RunStatusDryRun
	case result.ErrorCount > 0:
		return model.RunStatusPartial
	default:
		return model.RunStatusSuccess
	}
}

func (s *SyncService) recordRun(
	ctx context.Context,
	eventID int,
	opts SyncOptions,
	status string,
	result *dto.SyncResult,
	started, finished time.Time,
	log *logrus.Entry,
) {
	body, err := json.Marshal(result)
	if err != nil {
		log.WithError(err).Warn("[SYNC] encode sync result failed")
		body = []byte("{}")
	}
	run := &model.AttendanceSyncRunModel{
		EventID:     eventID,
		Trigger:     opts.Trigger,
		TriggeredBy: opts.TriggeredBy,
		Status:      status,
		ErrorCount:  result.ErrorCount,
		Result:      datatypes.JSON(body),
		StartedAt:   started,
		FinishedAt:  finished,
	}

	// the run deadline may already be spent
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()
	if err := s.store.RecordSyncRun(actx, run); err != nil {
		log.WithError(err).Warn("[SYNC] record sync run failed")
	}
}
