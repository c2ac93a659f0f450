package daylog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate(t *testing.T) domain.Date {
	t.Helper()
	date, err := domain.ParseDate("2025-11-17")
	require.NoError(t, err)
	return date
}

func testEntry(label string, startHour, startMin, endHour, endMin int) domain.LogEntry {
	start := time.Date(2025, 11, 17, startHour, startMin, 0, 0, time.Local)
	end := time.Date(2025, 11, 17, endHour, endMin, 0, 0, time.Local)
	return domain.LogEntry{
		Start:           start,
		End:             end,
		Label:           label,
		DurationSeconds: int(end.Sub(start) / time.Second),
	}
}

func TestAppendReadAllRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	date := testDate(t)

	expected := []domain.LogEntry{
		testEntry("Support", 9, 0, 10, 30),
		testEntry("Meetings", 10, 30, 11, 15),
		testEntry("Support", 11, 15, 11, 30),
	}
	for _, entry := range expected {
		require.NoError(t, store.Append(context.Background(), date, entry))
	}

	entries, err := store.ReadAll(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, expected, entries)
}

func TestAppendWritesHeaderOnceAndExactRowFormat(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	date := testDate(t)

	require.NoError(t, store.Append(context.Background(), date, testEntry("Support", 9, 0, 10, 30)))
	require.NoError(t, store.Append(context.Background(), date, testEntry("Meetings", 10, 30, 11, 0)))

	data, err := os.ReadFile(filepath.Join(dir, "times-2025-11-17.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "start,end,label,duration_seconds", lines[0])
	assert.Equal(t, "2025-11-17T09:00:00,2025-11-17T10:30:00,Support,5400", lines[1])
	assert.Equal(t, "2025-11-17T10:30:00,2025-11-17T11:00:00,Meetings,1800", lines[2])
}

func TestReadAllMissingDayIsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())

	entries, err := store.ReadAll(context.Background(), testDate(t))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDaysAreSeparateFiles(t *testing.T) {
	store := NewStore(t.TempDir())
	monday := testDate(t)
	tuesday, err := domain.ParseDate("2025-11-18")
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), monday, testEntry("Support", 9, 0, 10, 0)))

	entries, err := store.ReadAll(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResetKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	date := testDate(t)

	require.NoError(t, store.Append(context.Background(), date, testEntry("Support", 9, 0, 10, 0)))
	require.NoError(t, store.Reset(context.Background(), date))

	entries, err := store.ReadAll(context.Background(), date)
	require.NoError(t, err)
	assert.Empty(t, entries)

	backup, err := os.ReadFile(filepath.Join(dir, "times-2025-11-17.csv.bak"))
	require.NoError(t, err)
	assert.Contains(t, string(backup), "Support")
}

func TestResetWithoutExistingLog(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	date := testDate(t)

	require.NoError(t, store.Reset(context.Background(), date))

	data, err := os.ReadFile(filepath.Join(dir, "times-2025-11-17.csv"))
	require.NoError(t, err)
	assert.Equal(t, "start,end,label,duration_seconds\n", string(data))
}

func TestAppendSurfacesUnwritableStorage(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// The log directory path runs through a regular file, so it can
	// never be created.
	store := NewStore(filepath.Join(blocker, "logs"))

	err := store.Append(context.Background(), testDate(t), testEntry("Support", 9, 0, 10, 0))
	assert.Error(t, err)
}

func TestLabelsWithCommasSurviveRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	date := testDate(t)

	entry := testEntry(`Support, "urgent"`, 9, 0, 9, 30)
	require.NoError(t, store.Append(context.Background(), date, entry))

	entries, err := store.ReadAll(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.Label, entries[0].Label)
}
