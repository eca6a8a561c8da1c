package service

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"competition_backend/internals/features/statistics/dto"
	"competition_backend/internals/logger"
	"competition_backend/internals/metrics"
)

type StatsOptions struct {
	Refresh bool // skip the cache
}

type ZoneStatsService struct {
	source Source
	cache  *gocache.Cache
	now    func() time.Time
	log    *logrus.Logger
}

// NewZoneStatsService caches results for ttl. ttl <= 0 disables the cache.
func NewZoneStatsService(source Source, ttl time.Duration) *ZoneStatsService {
	s := &ZoneStatsService{source: source, now: time.Now, log: logger.L()}
	if ttl > 0 {
		s.cache = gocache.New(ttl, 2*ttl)
	}
	return s
}

func cacheKey(eventID, zoneID int) string {
	return fmt.Sprintf("zone:%d:%d", eventID, zoneID)
}

// ComputeZoneStatistics returns the breakdown of zoneID for the active
// event. A missing zone or active event is an error, never a zeroed result.
func (s *ZoneStatsService) ComputeZoneStatistics(ctx context.Context, zoneID int, opts StatsOptions) (*dto.ZoneStatsResult, error) {
	if zoneID <= 0 {
		return nil, ErrInvalidZone
	}

	zone, err := s.source.FindZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	eventID, err := s.source.ActiveEventID(ctx)
	if err != nil {
		return nil, err
	}

	key := cacheKey(eventID, zoneID)
	if s.cache != nil && !opts.Refresh {
		if v, ok := s.cache.Get(key); ok {
			metrics.ZoneStatsCacheHitsTotal.Inc()
			return v.(*dto.ZoneStatsResult), nil
		}
	}

	start := time.Now()
	rows, err := s.source.FetchZoneRows(ctx, eventID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("fetch zone rows: %w", err)
	}
	res := Aggregate(zone, eventID, rows)
	res.GeneratedAt = s.now()
	metrics.ZoneStatsDuration.Observe(time.Since(start).Seconds())

	s.log.WithFields(logrus.Fields{
		"zone_id":     zoneID,
		"event_id":    eventID,
		"rows":        len(rows),
		"contingents": res.Summary.ContingentCount,
		"teams":       res.Summary.TeamCount,
	}).Debug("[STATS] zone statistics computed")

	if s.cache != nil {
		s.cache.SetDefault(key, res)
	}
	return res, nil
}
