// Package csvfile persists the question bank as a flat CSV file:
//
//	ID,Question,Topic,Difficulty
//	1,"What is Big-O notation?",Algorithms,Easy
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/qbank/internal/ports/secondary"
)

// Header is the fixed first row of every bank file.
var Header = []string{"ID", "Question", "Topic", "Difficulty"}

// ParseError reports a malformed bank file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Store implements secondary.QuestionFileStore on CSV files.
type Store struct{}

// NewStore creates a new CSV file store.
func NewStore() *Store {
	return &Store{}
}

// newFileMode is the permission of a bank file that did not exist before.
const newFileMode fs.FileMode = 0644

// Save writes records to path. The data goes to a temporary file in the same
// directory first and is renamed over path once complete, so a failed save
// leaves the previous file intact. An existing file keeps its permissions.
// The parent directory must already exist.
func (s *Store) Save(ctx context.Context, path string, records []*secondary.QuestionRecord) error {
	mode := newFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := write(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

func write(w io.Writer, records []*secondary.QuestionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{strconv.Itoa(r.ID), r.Text, r.Topic, r.Difficulty}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads every record from path. The header row is required but its
// content is not checked. Any malformed row fails the whole load.
func (s *Store) Load(ctx context.Context, path string) ([]*secondary.QuestionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	defer f.Close()

	return read(path, f)
}

func read(path string, r io.Reader) ([]*secondary.QuestionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: errors.New("missing header row")}
		}
		return nil, wrapReadErr(path, err)
	}

	var records []*secondary.QuestionRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapReadErr(path, err)
		}
		line, _ := cr.FieldPos(0)

		if len(row) != len(Header) {
			return nil, &ParseError{
				Path: path,
				Line: line,
				Err:  fmt.Errorf("expected %d fields, got %d", len(Header), len(row)),
			}
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Err: fmt.Errorf("invalid ID %q", row[0])}
		}

		records = append(records, &secondary.QuestionRecord{
			ID:         id,
			Text:       row[1],
			Topic:      row[2],
			Difficulty: row[3],
		})
	}

	return records, nil
}

// wrapReadErr turns csv syntax errors into ParseErrors and passes I/O
// errors through.
func wrapReadErr(path string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: path, Line: csvErr.StartLine, Err: csvErr.Err}
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// Ensure Store implements the interface
var _ secondary.QuestionFileStore = (*Store)(nil)
