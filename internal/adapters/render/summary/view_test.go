package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/keytrack/internal/application"
	"github.com/bnema/keytrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSummary(t *testing.T) application.Summary {
	t.Helper()

	date, err := domain.ParseDate("2025-11-17")
	require.NoError(t, err)

	entry := func(label string, startHour, startMin, seconds int) domain.LogEntry {
		start := time.Date(2025, 11, 17, startHour, startMin, 0, 0, time.Local)
		return domain.LogEntry{
			Start:           start,
			End:             start.Add(time.Duration(seconds) * time.Second),
			Label:           label,
			DurationSeconds: seconds,
		}
	}

	return application.Summarize(date, []domain.LogEntry{
		entry("Support", 9, 0, 5400),
		entry("Meeting", 10, 30, 2700),
		entry("Support", 11, 15, 900),
	})
}

func TestRenderListsEntriesAndTotals(t *testing.T) {
	text, err := Render(buildSummary(t))
	require.NoError(t, err)

	assert.Contains(t, text, "2025-11-17")
	assert.Contains(t, text, "entries: 3")
	assert.Contains(t, text, "09:00–10:30")
	assert.Contains(t, text, "Support")
	assert.Contains(t, text, "Meeting")
	assert.Contains(t, text, "1h45m") // Support total
	assert.Contains(t, text, "45m")   // Meeting total
	assert.Contains(t, text, "2h30m") // grand total
}

func TestRenderTotalsKeepFirstAppearanceOrder(t *testing.T) {
	text, err := Render(buildSummary(t))
	require.NoError(t, err)

	// Totals follow the entry listing after a blank line.
	parts := strings.SplitN(text, "\n\n", 2)
	require.Len(t, parts, 2)
	totals := parts[1]

	assert.Less(t, strings.Index(totals, "Support"), strings.Index(totals, "Meeting"))
}

func TestRenderEmptyDay(t *testing.T) {
	date, err := domain.ParseDate("2025-11-17")
	require.NoError(t, err)

	text, err := Render(application.Summarize(date, nil))
	require.NoError(t, err)

	assert.Contains(t, text, "entries: 0")
	assert.Contains(t, text, "No sessions recorded.")
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0s", formatSeconds(0))
	assert.Equal(t, "45s", formatSeconds(45))
	assert.Equal(t, "5m", formatSeconds(300))
	assert.Equal(t, "1h30m", formatSeconds(5400))
	assert.Equal(t, "2h05m", formatSeconds(7500))
}
