package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *RunsDB {
	t.Helper()
	db, err := NewRunsDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndListRuns(t *testing.T) {
	db := testDB(t)

	first := &Run{
		ID:         uuid.NewString(),
		EventName:  "Big Fight Night",
		Year:       2026,
		OutputPath: "/tmp/IP PPV Big Fight Night_0042.xlsx",
		StartedAt:  time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC),
		Duration:   42 * time.Second,
		Tiers: []TierSummary{
			{Tier: "HD", BillingID: "EVT100", Extracted: 3, Matched: 2, MediaGUID: "guid-1", TagsFound: 5},
			{Tier: "SD", BillingID: "EVT101", Extracted: 1, Matched: 1},
		},
	}
	require.NoError(t, db.SaveRun(first))

	second := &Run{
		ID:        uuid.NewString(),
		EventName: "Summer Slam",
		Year:      2026,
		StartedAt: time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC),
		Duration:  10 * time.Second,
	}
	require.NoError(t, db.SaveRun(second))

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	require.Equal(t, "Summer Slam", runs[0].EventName)
	require.Equal(t, "Big Fight Night", runs[1].EventName)

	require.Len(t, runs[1].Tiers, 2)
	require.Equal(t, "EVT100", runs[1].Tiers[0].BillingID)
	require.Equal(t, 3, runs[1].Tiers[0].Extracted)
	require.Equal(t, "guid-1", runs[1].Tiers[0].MediaGUID)
	require.Equal(t, 42*time.Second, runs[1].Duration)
}

func TestRecentRunsLimit(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.SaveRun(&Run{
			ID:        uuid.NewString(),
			EventName: "Event",
			Year:      2026,
			StartedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := db.RecentRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}
