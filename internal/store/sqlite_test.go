package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{
		Function:  "flood",
		Hazard:    "Jakarta flood",
		Exposure:  "Population density",
		Evacuated: 2000,
		Summary:   "<table></table>",
		TableJSON: `{"rows":[]}`,
	}
	require.NoError(t, s.SaveRun(ctx, run))
	require.NotEmpty(t, run.ID, "ID assigned on insert")
	require.False(t, run.CreatedAt.IsZero())

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Function, got.Function)
	assert.Equal(t, run.Hazard, got.Hazard)
	assert.Equal(t, run.Evacuated, got.Evacuated)
	assert.Equal(t, run.TableJSON, got.TableJSON)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, fn := range []string{"flood", "volcano", "flood"} {
		require.NoError(t, s.SaveRun(ctx, &Run{
			Function: fn,
			Hazard:   "h",
			Exposure: "e",
		}))
	}

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	// Non-positive limit falls back to the default instead of returning nothing.
	all, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
