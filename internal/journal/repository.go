package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/dayan/internal/contracts"
)

// Schema is the DDL of the journal table
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS dayan_journal (
		id          UUID PRIMARY KEY,
		instant     TIMESTAMPTZ NOT NULL,
		site        TEXT NOT NULL,
		term        TEXT NOT NULL,
		gua         TEXT NOT NULL,
		yao         TEXT NOT NULL,
		degraded    BOOLEAN NOT NULL DEFAULT FALSE,
		report      JSONB NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS dayan_journal_instant_idx ON dayan_journal (instant)`,
}

// Repository is the Postgres journal store
type Repository struct {
	db  *pgxpool.Pool
	loc *time.Location
}

// NewRepository creates a repository; loc decides civil-day boundaries
func NewRepository(db *pgxpool.Pool, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Save upserts r. Reports are deterministic, so re-recording an instant
// overwrites the same row.
func (r *Repository) Save(ctx context.Context, report *contracts.DayanReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	e := EntryFor(report)

	query := `
		INSERT INTO dayan_journal (id, instant, site, term, gua, yao, degraded, report, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			term = EXCLUDED.term,
			gua = EXCLUDED.gua,
			yao = EXCLUDED.yao,
			degraded = EXCLUDED.degraded,
			report = EXCLUDED.report,
			recorded_at = NOW()
	`
	_, err = r.db.Exec(ctx, query, e.ID, e.Instant, e.Site, e.Term, e.Gua, e.Yao, e.Degraded, body)
	if err != nil {
		return fmt.Errorf("upsert journal entry: %w", err)
	}
	return nil
}

// ByDate returns the entries of one civil day, oldest first
func (r *Repository) ByDate(ctx context.Context, day time.Time) ([]Entry, error) {
	day = day.In(r.loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, r.loc)
	end := start.AddDate(0, 0, 1)

	query := `
		SELECT id::text, instant, site, term, gua, yao, degraded, report, recorded_at
		FROM dayan_journal
		WHERE instant >= $1 AND instant < $2
		ORDER BY instant
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e    Entry
			body []byte
		)
		if err := rows.Scan(&e.ID, &e.Instant, &e.Site, &e.Term, &e.Gua, &e.Yao, &e.Degraded, &body, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Report = &contracts.DayanReport{}
		if err := json.Unmarshal(body, e.Report); err != nil {
			return nil, fmt.Errorf("unmarshal report %s: %w", e.ID, err)
		}
		e.Instant = e.Instant.In(r.loc)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}
