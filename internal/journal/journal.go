// Package journal keeps the 太史监 log: reports recorded on a schedule,
// persisted to Postgres and optionally fanned out to Kafka.
package journal

import (
	"context"
	"time"

	"github.com/wonny/dayan/internal/contracts"
)

// Computer produces reports; *report.Engine satisfies it
type Computer interface {
	Compute(t time.Time) *contracts.DayanReport
}

// Store persists journal entries
// ⭐ SSOT: 저널 저장소 인터페이스
type Store interface {
	Save(ctx context.Context, r *contracts.DayanReport) error
	ByDate(ctx context.Context, day time.Time) ([]Entry, error)
}

// Entry is one recorded report with its summary columns
type Entry struct {
	ID         string                 `json:"id"`
	Instant    time.Time              `json:"instant"`
	Site       string                 `json:"site"`
	Term       string                 `json:"term"`
	Gua        string                 `json:"gua"`
	Yao        string                 `json:"yao"`
	Degraded   bool                   `json:"degraded"`
	Report     *contracts.DayanReport `json:"report"`
	RecordedAt time.Time              `json:"recorded_at"`
}

// EntryFor summarizes r
func EntryFor(r *contracts.DayanReport) Entry {
	return Entry{
		ID:       r.ID,
		Instant:  r.Instant,
		Site:     r.Site.Name,
		Term:     r.Calculation.CurrentTermName,
		Gua:      r.DailyGua.Hexagram.Name,
		Yao:      r.DailyGua.YaoName,
		Degraded: len(r.Degradations) > 0,
		Report:   r,
	}
}
