// Package flatfile persists records as comma-delimited text files with a
// header row. Files are always rewritten whole, through a temp file that is
// renamed over the target.
package flatfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/flooring/internal/domain"
)

// Codec maps a record type to and from one row of text fields.
type Codec[V any] interface {
	Header() []string
	Encode(v V) []string
	Decode(fields []string) (V, error)
}

// ReadFile decodes every row of path. A missing file yields no rows and no
// error. Rows that fail to decode are logged and skipped.
func ReadFile[V any](path string, codec Codec[V], logger *slog.Logger) ([]V, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.PersistenceError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header := codec.Header()
	var out []V
	first := true
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Warn("skipping unreadable row",
					slog.String("file", path), slog.Int("line", perr.StartLine), slog.String("error", perr.Err.Error()))
				continue
			}
			return nil, &domain.PersistenceError{Op: "read", Path: path, Err: err}
		}
		line, _ := r.FieldPos(0)

		if first {
			first = false
			if isHeader(fields, header) {
				continue
			}
		}
		if isBlank(fields) {
			continue
		}

		v, err := decodeRow(codec, header, fields)
		if err != nil {
			logger.Warn("skipping malformed row",
				slog.String("file", path), slog.Int("line", line), slog.String("error", err.Error()))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteFile replaces path with a header row followed by one row per value.
func WriteFile[V any](path string, codec Codec[V], values []V) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.PersistenceError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &domain.PersistenceError{Op: "write", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return &domain.PersistenceError{Op: "write", Path: path, Err: err}
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(codec.Header()); err != nil {
		return fail(err)
	}
	for _, v := range values {
		if err := w.Write(codec.Encode(v)); err != nil {
			return fail(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &domain.PersistenceError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return &domain.PersistenceError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &domain.PersistenceError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// RemoveFile deletes path. A missing file is not an error.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &domain.PersistenceError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

func decodeRow[V any](codec Codec[V], header, fields []string) (V, error) {
	if len(fields) < len(header) {
		var zero V
		return zero, fmt.Errorf("expected %d fields, got %d", len(header), len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return codec.Decode(fields)
}

func isHeader(fields, header []string) bool {
	return len(fields) > 0 && len(header) > 0 &&
		strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(fields[0], "\ufeff")), header[0])
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
