package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseSessionWholeSeconds(t *testing.T) {
	start := time.Date(2025, 11, 17, 9, 0, 0, 0, time.Local)
	end := time.Date(2025, 11, 17, 10, 30, 0, 500_000_000, time.Local)

	entry := CloseSession(Session{Label: "Support", Start: start}, end)

	assert.Equal(t, "Support", entry.Label)
	assert.Equal(t, 5400, entry.DurationSeconds)
	assert.Equal(t, start, entry.Start)
}

func TestCloseSessionClampsNonMonotonicEnd(t *testing.T) {
	start := time.Date(2025, 11, 17, 9, 0, 0, 0, time.Local)
	end := start.Add(-time.Minute)

	entry := CloseSession(Session{Label: "Support", Start: start}, end)

	assert.Equal(t, 0, entry.DurationSeconds)
	assert.Equal(t, start, entry.End)
}

func TestCloseSessionZeroDuration(t *testing.T) {
	start := time.Date(2025, 11, 17, 9, 0, 0, 0, time.Local)

	entry := CloseSession(Session{Label: "Support", Start: start}, start)

	assert.Equal(t, 0, entry.DurationSeconds)
}

func TestDateRoundTrip(t *testing.T) {
	date, err := ParseDate("2025-11-17")
	require.NoError(t, err)

	assert.Equal(t, "2025-11-17", date.String())
	assert.Equal(t, date, DateOf(time.Date(2025, 11, 17, 23, 59, 0, 0, time.Local)))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("17.11.2025")
	assert.Error(t, err)
}

func TestLayerToggle(t *testing.T) {
	assert.Equal(t, LayerShifted, LayerBase.Toggle())
	assert.Equal(t, LayerBase, LayerShifted.Toggle())
}
