package journal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/pkg/config"
	"github.com/wonny/dayan/pkg/database"
)

func TestRepository_Integration(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate(ctx, Schema...))

	repo := NewRepository(db.Pool, time.UTC)
	r := fakeEngine{}.Compute(time.Date(1999, 12, 22, 7, 0, 0, 0, time.UTC))
	r.ID = "00000000-0000-5000-8000-000000000001"

	require.NoError(t, repo.Save(ctx, r))
	require.NoError(t, repo.Save(ctx, r)) // upsert

	entries, err := repo.ByDate(ctx, r.Instant)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var found bool
	for _, e := range entries {
		if e.ID == r.ID {
			found = true
			assert.Equal(t, "中孚", e.Gua)
			assert.Equal(t, r.ID, e.Report.ID)
		}
	}
	assert.True(t, found)

	_, err = db.Pool.Exec(ctx, "DELETE FROM dayan_journal WHERE id = $1", r.ID)
	require.NoError(t, err)
}
