package domain

import "time"

// Session is one continuous interval of time attributed to a single label.
// It stays open (no end) until the tracker closes it.
type Session struct {
	Label string
	Start time.Time
}

// LogEntry is a closed session as persisted in a day log.
type LogEntry struct {
	Start           time.Time
	End             time.Time
	Label           string
	DurationSeconds int
}

// CloseSession converts an open session into a log entry ending at end.
// A non-monotonic clock can hand us an end before the start; the end is
// clamped so the duration never goes negative.
func CloseSession(s Session, end time.Time) LogEntry {
	if end.Before(s.Start) {
		end = s.Start
	}

	return LogEntry{
		Start:           s.Start,
		End:             end,
		Label:           s.Label,
		DurationSeconds: int(end.Sub(s.Start) / time.Second),
	}
}

// Date is a calendar day in local time, the key of one day log.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local).Format("2006-01-02")
}
