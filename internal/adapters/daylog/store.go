package daylog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/bnema/keytrack/internal/ports"
)

const (
	logDirMode  = 0o700
	logFileMode = 0o600
	timeLayout  = "2006-01-02T15:04:05"
)

var header = []string{"start", "end", "label", "duration_seconds"}

// Store keeps one append-only CSV file per calendar day under dir.
// Files are never rewritten in place; Reset moves the old file aside.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ ports.DayLogStore = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Append writes one entry to the day's log, creating it with a header
// row if absent, and syncs the file before returning so a completed
// session is never lost to a crash.
func (s *Store) Append(ctx context.Context, date domain.Date, entry domain.LogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, logDirMode); err != nil {
		return fmt.Errorf("create day log directory: %w", err)
	}

	path := s.pathFor(date)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return fmt.Errorf("open day log %s: %w", date, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat day log %s: %w", date, err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("write day log header: %w", err)
		}
	}

	record := []string{
		entry.Start.Format(timeLayout),
		entry.End.Format(timeLayout),
		entry.Label,
		strconv.Itoa(entry.DurationSeconds),
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("write day log entry: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush day log entry: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync day log %s: %w", date, err)
	}

	return nil
}

// ReadAll returns the day's entries in append order. A day without a
// log file yields an empty slice.
func (s *Store) ReadAll(ctx context.Context, date domain.Date) ([]domain.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.pathFor(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open day log %s: %w", date, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read day log %s: %w", date, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entries := make([]domain.LogEntry, 0, len(records)-1)
	for _, record := range records[1:] {
		entry, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("decode day log %s: %w", date, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Reset moves the day's log to a .bak file and writes a fresh header.
func (s *Store) Reset(ctx context.Context, date domain.Date) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(date)
	if err := os.Rename(path, path+".bak"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("back up day log %s: %w", date, err)
	}

	data := []byte("start,end,label,duration_seconds\n")
	if err := os.WriteFile(path, data, logFileMode); err != nil {
		return fmt.Errorf("reset day log %s: %w", date, err)
	}

	return nil
}

func (s *Store) pathFor(date domain.Date) string {
	return filepath.Join(s.dir, fmt.Sprintf("times-%s.csv", date))
}

func decodeRecord(record []string) (domain.LogEntry, error) {
	if len(record) != len(header) {
		return domain.LogEntry{}, fmt.Errorf("expected %d columns, got %d", len(header), len(record))
	}

	start, err := time.ParseInLocation(timeLayout, record[0], time.Local)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("parse start: %w", err)
	}
	end, err := time.ParseInLocation(timeLayout, record[1], time.Local)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("parse end: %w", err)
	}
	duration, err := strconv.Atoi(record[3])
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("parse duration: %w", err)
	}

	return domain.LogEntry{
		Start:           start,
		End:             end,
		Label:           record[2],
		DurationSeconds: duration,
	}, nil
}
