package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/pkg/logger"
)

// Recorder computes, stores and publishes reports
// ⭐ SSOT: 저널 기록은 여기서만
type Recorder struct {
	engine    Computer
	store     Store
	publisher Publisher
	logger    *logger.Logger
}

// NewRecorder creates a recorder. A nil publisher publishes nothing.
func NewRecorder(engine Computer, store Store, publisher Publisher, log *logger.Logger) *Recorder {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Recorder{
		engine:    engine,
		store:     store,
		publisher: publisher,
		logger:    log.WithComponent("journal"),
	}
}

// Record computes the report of at and persists it.
// Publishing is best effort: a failure is logged, the stored entry stands.
func (r *Recorder) Record(ctx context.Context, at time.Time) (*contracts.DayanReport, error) {
	report := r.engine.Compute(at)

	log := r.logger.WithFields(map[string]interface{}{
		"id":      report.ID,
		"instant": report.Instant.Format(time.RFC3339),
	})
	for _, d := range report.Degradations {
		log.WithField("degradation", d).Warn("Report degraded")
	}

	if err := r.store.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	if err := r.publisher.Publish(ctx, report); err != nil {
		log.WithError(err).Warn("Publish failed")
	}

	log.WithFields(map[string]interface{}{
		"term": report.Calculation.CurrentTermName,
		"gua":  report.DailyGua.Hexagram.Name,
		"yao":  report.DailyGua.YaoName,
	}).Debug("Report recorded")
	return report, nil
}
