package jobs

import (
	"context"
	"time"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/pkg/logger"
)

// Recorder is the journal side of the job
type Recorder interface {
	Record(ctx context.Context, at time.Time) (*contracts.DayanReport, error)
}

// JournalJob records the report of the tick instant
type JournalJob struct {
	recorder Recorder
	schedule string
	now      func() time.Time
	logger   *logger.Logger
}

// NewJournalJob creates the journal job
func NewJournalJob(recorder Recorder, schedule string, log *logger.Logger) *JournalJob {
	return &JournalJob{
		recorder: recorder,
		schedule: schedule,
		now:      time.Now,
		logger:   log,
	}
}

// Name returns the job name
func (j *JournalJob) Name() string {
	return "journal"
}

// Schedule returns the configured cron schedule (default: hourly)
func (j *JournalJob) Schedule() string {
	return j.schedule
}

// Run records one report, truncated to the whole second
func (j *JournalJob) Run(ctx context.Context) error {
	at := j.now().Truncate(time.Second)
	report, err := j.recorder.Record(ctx, at)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"id":   report.ID,
		"gua":  report.DailyGua.Hexagram.Name,
		"yao":  report.DailyGua.YaoName,
		"term": report.Calculation.CurrentTermName,
	}).Info("Journal entry recorded")
	return nil
}
