// Package stats serves salary aggregates per company, cached in Redis and
// refreshed in the background on a cron schedule.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/claritycareer/claritycareer/internal/db"
)

// DefaultTTL bounds how stale a cached aggregate can get between refreshes.
const DefaultTTL = time.Hour

const keyPrefix = "claritycareer:stats:"

// Store is the subset of database methods the service needs.
type Store interface {
	GetSalaryStats(ctx context.Context, companyID uuid.UUID) (*db.SalaryStats, error)
	ListSalaryStats(ctx context.Context) ([]db.SalaryStats, error)
}

// Service computes and caches salary aggregates. A nil Redis client
// disables caching and every call goes to the database.
type Service struct {
	store Store
	rdb   *redis.Client
	ttl   time.Duration
	cron  *cron.Cron
}

// New creates a stats Service. rdb may be nil.
func New(store Store, rdb *redis.Client) *Service {
	return &Service{
		store: store,
		rdb:   rdb,
		ttl:   DefaultTTL,
		cron:  cron.New(),
	}
}

// CompanyStats returns salary aggregates for one company, or nil when the
// company has no submissions. Cache failures fall through to the database.
func (s *Service) CompanyStats(ctx context.Context, companyID uuid.UUID) (*db.SalaryStats, error) {
	key := companyKey(companyID)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var cached db.SalaryStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.store.GetSalaryStats(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		s.cacheSet(ctx, key, stats)
	}
	return stats, nil
}

// AllStats returns aggregates for every company with salary data, highest
// average first.
func (s *Service) AllStats(ctx context.Context) ([]db.SalaryStats, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, allKey()).Bytes(); err == nil {
			var cached []db.SalaryStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	stats, err := s.store.ListSalaryStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, allKey(), stats)
	return stats, nil
}

// StartRefresher registers a cron job that rebuilds the cache every
// interval, and warms it once immediately. No-op without Redis.
func (s *Service) StartRefresher(ctx context.Context, interval time.Duration) error {
	if s.rdb == nil {
		return nil
	}

	spec := fmt.Sprintf("@every %s", interval)
	_, err := s.cron.AddFunc(spec, func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[stats] Refresher started with interval %s", interval)

	go s.refresh(ctx)
	return nil
}

// Stop shuts down the background refresher.
func (s *Service) Stop() {
	s.cron.Stop()
}

// refresh recomputes every aggregate and rewrites the cache.
func (s *Service) refresh(ctx context.Context) {
	stats, err := s.store.ListSalaryStats(ctx)
	if err != nil {
		log.Printf("[stats] Refresh failed: %v", err)
		return
	}

	s.cacheSet(ctx, allKey(), stats)
	for i := range stats {
		s.cacheSet(ctx, companyKey(stats[i].CompanyID), &stats[i])
	}
	log.Printf("[stats] Refreshed aggregates for %d company(ies)", len(stats))
}

// cacheSet writes a value to Redis, logging rather than failing on error.
func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.Printf("[stats] Cache write failed for %s: %v", key, err)
	}
}

func companyKey(companyID uuid.UUID) string {
	return keyPrefix + "company:" + companyID.String()
}

func allKey() string {
	return keyPrefix + "all"
}
