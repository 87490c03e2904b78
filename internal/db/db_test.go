package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pointboard/internal/board"
)

// setupTestDB opens a migrated database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, database.MigrateUp("migrations"))
	return database
}

func TestPointLogRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	points := []board.Point{
		{X: 1.5, Y: 2.5, Label: "a"},
		{X: 3.5, Y: 4.5, Label: "b"},
		{X: 5.5, Y: 6.5, Label: "c"},
	}
	for _, p := range points {
		require.NoError(t, database.AppendPoint(p))
	}

	got, err := database.ListPoints()
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestRemoveLastPoint(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, database.AppendPoint(board.Point{X: 1, Y: 1, Label: "a"}))
	require.NoError(t, database.AppendPoint(board.Point{X: 2, Y: 2, Label: "b"}))

	require.NoError(t, database.RemoveLastPoint())

	got, err := database.ListPoints()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Label)
}

func TestRemoveLastPoint_Empty(t *testing.T) {
	database := setupTestDB(t)
	// Deleting from an empty table must not error.
	assert.NoError(t, database.RemoveLastPoint())
}

func TestListPoints_Empty(t *testing.T) {
	database := setupTestDB(t)
	got, err := database.ListPoints()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSequencePreservedAcrossRemoval(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, database.AppendPoint(board.Point{X: 1, Y: 1, Label: "a"}))
	require.NoError(t, database.AppendPoint(board.Point{X: 2, Y: 2, Label: "b"}))
	require.NoError(t, database.RemoveLastPoint())
	require.NoError(t, database.AppendPoint(board.Point{X: 3, Y: 3, Label: "b"}))

	got, err := database.ListPoints()
	require.NoError(t, err)
	want := []board.Point{
		{X: 1, Y: 1, Label: "a"},
		{X: 3, Y: 3, Label: "b"},
	}
	assert.Equal(t, want, got)
}
