package application

import "github.com/bnema/keytrack/internal/domain"

// LabelTotal is the aggregated time for one label.
type LabelTotal struct {
	Label   string
	Seconds int
}

// Summary is one day's entries plus per-label totals, in first-appearance
// order.
type Summary struct {
	Date    domain.Date
	Entries []domain.LogEntry
	Totals  []LabelTotal
}

// Summarize aggregates duration per label. Entries without an end
// timestamp should not exist in persisted data; they are skipped rather
// than counted.
func Summarize(date domain.Date, entries []domain.LogEntry) Summary {
	summary := Summary{Date: date}
	index := map[string]int{}

	for _, entry := range entries {
		if entry.End.IsZero() {
			continue
		}
		summary.Entries = append(summary.Entries, entry)

		i, ok := index[entry.Label]
		if !ok {
			i = len(summary.Totals)
			index[entry.Label] = i
			summary.Totals = append(summary.Totals, LabelTotal{Label: entry.Label})
		}
		summary.Totals[i].Seconds += entry.DurationSeconds
	}

	return summary
}

// TotalSeconds is the grand total across all labels.
func (s Summary) TotalSeconds() int {
	total := 0
	for _, t := range s.Totals {
		total += t.Seconds
	}
	return total
}
