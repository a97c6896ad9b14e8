package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/pkg/logger"
	"github.com/wonny/dayan/pkg/redis"
)

// Computer produces reports
type Computer interface {
	Compute(t time.Time) *contracts.DayanReport
}

// ReportCache stores warmed reports (*redis.Cache)
type ReportCache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CacheWarmJob precomputes the reports of the coming hour marks
type CacheWarmJob struct {
	engine Computer
	cache  ReportCache
	ttl    time.Duration
	hours  int
	now    func() time.Time
	logger *logger.Logger
}

// NewCacheWarmJob creates a job warming the next hours hour marks.
// ttl should be the API's report cache TTL so warmed and on-demand
// entries of one key expire alike; ttl <= 0 means redis.TTLReport.
func NewCacheWarmJob(engine Computer, cache ReportCache, ttl time.Duration, hours int, log *logger.Logger) *CacheWarmJob {
	if hours <= 0 {
		hours = 1
	}
	if ttl <= 0 {
		ttl = redis.TTLReport
	}
	return &CacheWarmJob{engine: engine, cache: cache, ttl: ttl, hours: hours, now: time.Now, logger: log}
}

// Name returns the job name
func (j *CacheWarmJob) Name() string {
	return "cache_warm"
}

// Schedule returns the cron schedule (10 minutes before each hour)
func (j *CacheWarmJob) Schedule() string {
	return "0 50 * * * *"
}

// Run computes and caches each upcoming hour mark
func (j *CacheWarmJob) Run(ctx context.Context) error {
	next := j.now().Truncate(time.Hour).Add(time.Hour)
	for i := 0; i < j.hours; i++ {
		report := j.engine.Compute(next.Add(time.Duration(i) * time.Hour))
		if err := j.cache.Set(ctx, redis.ReportKey(report.ID), report, j.ttl); err != nil {
			return fmt.Errorf("warm %s: %w", report.ID, err)
		}
	}
	j.logger.WithField("hours", j.hours).Debug("Report cache warmed")
	return nil
}
