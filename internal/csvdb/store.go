package csvdb

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Row is implemented by entity types held in a [Store]. Implementations use
// pointer receivers; the Store's type parameter is instantiated with the
// pointer type, so the zero value of T is nil.
type Row interface {
	RecordID() string
	SetRecordID(id string)
}

// Codec translates between an entity and one delimited record line.
type Codec[T Row] interface {
	// Encode renders the entity as one record line. Referenced entities are
	// written by id only, never inlined.
	Encode(row T) string
	// Decode rebuilds an entity from the unquoted columns of one line. An
	// error marks the whole line as malformed; per-column parse failures are
	// expected to degrade to defaults instead.
	Decode(cols []string) (T, error)
}

// Store is a file-backed repository for a single entity type.
//
// Every read re-parses the backing file and every mutation rewrites it in
// full, so the file is always a complete snapshot. Mutating calls are not
// mutually exclusive; see the package documentation.
type Store[T Row] struct {
	path  string
	codec Codec[T]
	log   *slog.Logger
}

// NewStore creates a store over path, creating the file and its parent
// directory when absent. A nil logger falls back to slog.Default.
func NewStore[T Row](path string, codec Codec[T], log *slog.Logger) (*Store[T], error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create store file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to create store file %s: %w", path, err)
	}
	return &Store[T]{path: path, codec: codec, log: log.With("store", filepath.Base(path))}, nil
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.path
}

// FindAll reads the backing file and decodes every non-blank line. A line
// that fails to decode is dropped with a warning; the rest still load.
func (s *Store[T]) FindAll() ([]T, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open store file %s: %w", s.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var rows []T
	scanner := bufio.NewScanner(f)
	// Free-text columns (biographies, descriptions) can push a line past the
	// default scanner limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := s.codec.Decode(SplitRecord(line))
		if err != nil {
			s.log.Warn("dropping malformed record", "err", err)
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store file %s: %w", s.path, err)
	}
	return rows, nil
}

// FindByID returns the first record with the given id, reporting whether one
// was found.
func (s *Store[T]) FindByID(id string) (T, bool, error) {
	var zero T
	rows, err := s.FindAll()
	if err != nil {
		return zero, false, err
	}
	for _, row := range rows {
		if row.RecordID() == id {
			return row, true, nil
		}
	}
	return zero, false, nil
}

// Find returns all records matching the predicate.
func (s *Store[T]) Find(pred func(T) bool) ([]T, error) {
	rows, err := s.FindAll()
	if err != nil {
		return nil, err
	}
	var out []T
	for _, row := range rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Save upserts one record and rewrites the snapshot.
//
// A record without an id gets a fresh one and is appended. A record whose id
// matches an existing record replaces it in place, position preserved. A
// record with an id that matches nothing is appended as-is, so Save is total.
// The possibly id-assigned record is returned.
func (s *Store[T]) Save(row T) (T, error) {
	var zero T
	rows, err := s.FindAll()
	if err != nil {
		return zero, err
	}
	if row.RecordID() == "" {
		row.SetRecordID(NewID().String())
		rows = append(rows, row)
		s.log.Debug("creating record", "id", row.RecordID())
	} else {
		replaced := false
		for i := range rows {
			if rows[i].RecordID() == row.RecordID() {
				rows[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			rows = append(rows, row)
		}
		s.log.Debug("saving record", "id", row.RecordID(), "replaced", replaced)
	}
	if err := s.writeAll(rows); err != nil {
		return zero, err
	}
	return row, nil
}

// DeleteByID removes every record with the given id, reporting whether
// anything was removed. When nothing matches, the file is left untouched.
func (s *Store[T]) DeleteByID(id string) (bool, error) {
	rows, err := s.FindAll()
	if err != nil {
		return false, err
	}
	kept := rows[:0]
	for _, row := range rows {
		if row.RecordID() != id {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(rows) {
		return false, nil
	}
	if err := s.writeAll(kept); err != nil {
		return false, err
	}
	s.log.Debug("deleted record", "id", id)
	return true, nil
}

// ExistsByID reports whether a record with the given id is stored.
func (s *Store[T]) ExistsByID(id string) (bool, error) {
	_, ok, err := s.FindByID(id)
	return ok, err
}

// Count returns the number of stored records.
func (s *Store[T]) Count() (int, error) {
	rows, err := s.FindAll()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// writeAll rewrites the backing file from the given record set. The rewrite
// goes through an atomic rename so readers never observe a torn file.
func (s *Store[T]) writeAll(rows []T) error {
	var buf bytes.Buffer
	for _, row := range rows {
		buf.WriteString(s.codec.Encode(row))
		buf.WriteByte('\n')
	}
	if err := atomic.WriteFile(s.path, &buf); err != nil {
		return fmt.Errorf("failed to rewrite store file %s: %w", s.path, err)
	}
	return nil
}
