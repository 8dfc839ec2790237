// Package journal persists a JSON record of every install and revert run so
// past runs can be listed and inspected.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/conn-castle/slotswap/internal/fsutil"
	"github.com/conn-castle/slotswap/internal/messages"
)

const (
	schemaVersion = 1
	// MaxRetained is the number of records kept after each write.
	MaxRetained = 20
)

// Operation names the kind of run.
type Operation string

// Run operations.
const (
	OperationInstall Operation = "install"
	OperationRevert  Operation = "revert"
)

// Status is the overall result of a run.
type Status string

// Run statuses.
const (
	StatusSucceeded Status = "succeeded"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// Record is one persisted run.
type Record struct {
	SchemaVersion int             `json:"schema_version"`
	ID            string          `json:"id"`
	Operation     Operation       `json:"operation"`
	Source        string          `json:"source,omitempty"`
	Target        string          `json:"target"`
	StartedAtUTC  string          `json:"started_at_utc"`
	FinishedAtUTC string          `json:"finished_at_utc"`
	Status        Status          `json:"status"`
	Error         string          `json:"error,omitempty"`
	Log           []string        `json:"log"`
	Before        []Entry         `json:"before"`
	After         []Entry         `json:"after"`
	Report        json.RawMessage `json:"report,omitempty"`
}

// Metadata provides lightweight listing fields.
type Metadata struct {
	ID           string
	Operation    Operation
	Target       string
	StartedAtUTC string
	Status       Status
}

// Store reads and writes records in one directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created on first write.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New(messages.JournalDirRequired)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the records.
func (s *Store) Dir() string { return s.dir }

// NewID returns a sortable, unique run id for t.
func NewID(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s-%d", t.Format("20060102-150405"), t.UnixNano())
}

// Write validates rec, prunes old records, and stores rec atomically.
func (s *Store) Write(rec Record) error {
	if rec.SchemaVersion == 0 {
		rec.SchemaVersion = schemaVersion
	}
	if err := validateRecord(rec); err != nil {
		return fmt.Errorf("validate run record: %w", err)
	}
	if err := s.prune(MaxRetained - 1); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf(messages.JournalCreateDirFailedFmt, s.dir, err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}
	data = append(data, '\n')
	path := s.path(rec.ID)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.JournalWriteFailedFmt, path, err)
	}
	return nil
}

// Read returns the record with the given id.
func (s *Store) Read(id string) (Record, error) {
	if !validID(id) {
		return Record{}, fmt.Errorf(messages.JournalInvalidIDFmt, id)
	}
	rec, err := readRecord(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, fmt.Errorf(messages.JournalNotFoundFmt, id)
	}
	return rec, err
}

// List returns metadata for all readable records, newest first.
func (s *Store) List() ([]Metadata, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	out := make([]Metadata, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i].rec
		out = append(out, Metadata{
			ID:           rec.ID,
			Operation:    rec.Operation,
			Target:       rec.Target,
			StartedAtUTC: rec.StartedAtUTC,
			Status:       rec.Status,
		})
	}
	return out, nil
}

type recordFile struct {
	path      string
	startedAt time.Time
	rec       Record
}

// records returns valid records oldest first. Malformed files are skipped.
func (s *Store) records() ([]recordFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.JournalListFailedFmt, s.dir, err)
	}
	files := make([]recordFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		rec, err := readRecord(path)
		if err != nil {
			continue
		}
		startedAt, _ := time.Parse(time.RFC3339Nano, rec.StartedAtUTC)
		files = append(files, recordFile{path: path, startedAt: startedAt, rec: rec})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].startedAt.Equal(files[j].startedAt) {
			return files[i].rec.ID < files[j].rec.ID
		}
		return files[i].startedAt.Before(files[j].startedAt)
	})
	return files, nil
}

func (s *Store) prune(retain int) error {
	files, err := s.records()
	if err != nil {
		return err
	}
	for i := 0; i < len(files)-retain; i++ {
		if err := os.Remove(files[i].path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.JournalPruneFailedFmt, files[i].path, err)
		}
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func readRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf(messages.JournalReadFailedFmt, path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf(messages.JournalDecodeFailedFmt, path, err)
	}
	if err := validateRecord(rec); err != nil {
		return Record{}, fmt.Errorf("validate run record %s: %w", path, err)
	}
	return rec, nil
}

func validateRecord(rec Record) error {
	if rec.SchemaVersion != schemaVersion {
		return fmt.Errorf("unsupported schema_version %d", rec.SchemaVersion)
	}
	if !validID(rec.ID) {
		return fmt.Errorf("invalid id %q", rec.ID)
	}
	switch rec.Operation {
	case OperationInstall, OperationRevert:
	default:
		return fmt.Errorf("invalid operation %q", rec.Operation)
	}
	if _, err := time.Parse(time.RFC3339Nano, rec.StartedAtUTC); err != nil {
		return fmt.Errorf("invalid started_at_utc %q: %w", rec.StartedAtUTC, err)
	}
	switch rec.Status {
	case StatusSucceeded, StatusPartial, StatusFailed:
	default:
		return fmt.Errorf("invalid status %q", rec.Status)
	}
	return nil
}

// validID rejects ids that could escape the journal directory.
func validID(id string) bool {
	if strings.TrimSpace(id) == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
