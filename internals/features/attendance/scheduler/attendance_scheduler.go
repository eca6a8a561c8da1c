package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"competition_backend/internals/features/attendance/dto"
	model "competition_backend/internals/features/attendance/model"
	"competition_backend/internals/features/attendance/service"
	"competition_backend/internals/logger"
)

// Syncer is the slice of SyncService the scheduler drives.
type Syncer interface {
	SyncActiveEvent(ctx context.Context, opts service.SyncOptions) (*dto.SyncResult, error)
}

// AttendanceScheduler periodically syncs the active event.
type AttendanceScheduler struct {
	cron    *cron.Cron
	syncer  Syncer
	timeout time.Duration
	log     *logrus.Logger
}

func NewAttendanceScheduler(syncer Syncer, timeout time.Duration) *AttendanceScheduler {
	return &AttendanceScheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		syncer:  syncer,
		timeout: timeout,
		log:     logger.L(),
	}
}

// Start registers the job and starts the cron loop. An empty schedule
// leaves the scheduler off and returns false.
func (s *AttendanceScheduler) Start(schedule string) (bool, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		s.log.Info("[ATTENDANCE-CRON] disabled (ATTENDANCE_SYNC_CRON empty)")
		return false, nil
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return false, fmt.Errorf("add attendance cron %q: %w", schedule, err)
	}
	s.cron.Start()
	s.log.WithField("schedule", schedule).Info("[ATTENDANCE-CRON] started")
	return true, nil
}

// Stop waits for a running job up to ctx.
func (s *AttendanceScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("[ATTENDANCE-CRON] stop timed out, job still running")
	}
}

// RunOnce performs one scheduled sync. It never panics or returns an error;
// failures and recovered panics are logged.
func (s *AttendanceScheduler) RunOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", fmt.Sprint(r)).Error("[ATTENDANCE-CRON] sync panicked")
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.syncer.SyncActiveEvent(ctx, service.SyncOptions{Trigger: model.TriggerCron})
	switch {
	case errors.Is(err, service.ErrNoActiveEvent):
		s.log.Info("[ATTENDANCE-CRON] no active event, skipping")
	case err != nil:
		s.log.WithError(err).Error("[ATTENDANCE-CRON] sync failed")
	default:
		s.log.WithFields(logrus.Fields{
			"event_id": res.EventID,
			"written":  res.Total(),
			"errors":   res.ErrorCount,
		}).Info("[ATTENDANCE-CRON] sync done")
	}
}
