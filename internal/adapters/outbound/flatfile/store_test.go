package flatfile_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/abdidvp/flooring/internal/adapters/outbound/flatfile"
	"github.com/abdidvp/flooring/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string
	Qty  int
}

type itemCodec struct{}

func (itemCodec) Header() []string { return []string{"Name", "Qty"} }

func (itemCodec) Encode(v item) []string { return []string{v.Name, strconv.Itoa(v.Qty)} }

func (itemCodec) Decode(f []string) (item, error) {
	n, err := strconv.Atoi(f[1])
	if err != nil {
		return item{}, fmt.Errorf("qty: %w", err)
	}
	return item{Name: f[0], Qty: n}, nil
}

func itemKey(v item) string { return v.Name }

func newStore(t *testing.T, path string, opts ...flatfile.Option) *flatfile.Store[string, item] {
	t.Helper()
	s := flatfile.NewStore(path, itemCodec{}, itemKey, opts...)
	require.NoError(t, s.Load())
	return s
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "items.txt"))
	assert.Empty(t, s.All())
	assert.Equal(t, 0, s.Len())
}

func TestStore_InsertPersistsWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "items.txt")
	s := newStore(t, path)

	require.NoError(t, s.Insert(item{Name: "b", Qty: 2}))
	require.NoError(t, s.Insert(item{Name: "a", Qty: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Qty\na,1\nb,2\n", string(data))
}

func TestStore_InsertDuplicate(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "items.txt"))
	require.NoError(t, s.Insert(item{Name: "a", Qty: 1}))

	err := s.Insert(item{Name: "a", Qty: 9})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got.Qty)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	s := newStore(t, path)
	require.NoError(t, s.Insert(item{Name: "a", Qty: 1}))

	ok, err := s.Update(item{Name: "a", Qty: 5})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Update(item{Name: "missing", Qty: 5})
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded := newStore(t, path)
	got, _ := reloaded.Get("a")
	assert.Equal(t, 5, got.Qty)

	ok, err = s.Delete("a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete("a")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Empty(t, newStore(t, path).All())
}

func TestStore_UpdateOfMissingKeyDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	s := newStore(t, path)

	_, err := s.Update(item{Name: "ghost"})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file should be written for a no-op update")
}

func TestStore_LoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	writeRaw(t, path, "Name,Qty\na,1\nb,not-a-number\nshort\n,,\nc,3\n")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s := newStore(t, path, flatfile.WithLogger(logger))

	assert.Equal(t, []item{{"a", 1}, {"c", 3}}, s.All())
	assert.Contains(t, logs.String(), "skipping malformed row")
	assert.Contains(t, logs.String(), "line=3")
	assert.Contains(t, logs.String(), "line=4")
}

func TestStore_LoadWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	writeRaw(t, path, "a,1\nb,2\n")

	s := newStore(t, path)
	assert.Len(t, s.All(), 2)
}

func TestStore_DuplicateRowsKeepLast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	writeRaw(t, path, "Name,Qty\na,1\na,7\n")

	s := newStore(t, path)
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 7, got.Qty)
}

func TestStore_QuotedFieldsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	s := newStore(t, path)
	require.NoError(t, s.Insert(item{Name: "Smith, Jr.", Qty: 4}))

	got, ok := newStore(t, path).Get("Smith, Jr.")
	require.True(t, ok)
	assert.Equal(t, 4, got.Qty)
}

func TestStore_WriteFailureRollsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := newStore(t, filepath.Join(dir, "items.txt"))
	require.NoError(t, s.Insert(item{Name: "a", Qty: 1}))

	// Replace the data directory with a plain file so the next write fails.
	require.NoError(t, os.RemoveAll(dir))
	writeRaw(t, dir, "not a directory")

	err := s.Insert(item{Name: "b", Qty: 2})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	_, ok := s.Get("b")
	assert.False(t, ok, "failed insert must not stay in memory")

	ok, err = s.Update(item{Name: "a", Qty: 9})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.False(t, ok)
	got, _ := s.Get("a")
	assert.Equal(t, 1, got.Qty, "failed update must restore the previous value")

	ok, err = s.Delete("a")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.False(t, ok)
	_, ok = s.Get("a")
	assert.True(t, ok, "failed delete must keep the record")
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.txt")
	require.NoError(t, flatfile.WriteFile(path, flatfile.Codec[item](itemCodec{}), []item{{"a", 1}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "items.txt", entries[0].Name())
}

func TestRemoveFile_MissingIsNotAnError(t *testing.T) {
	assert.NoError(t, flatfile.RemoveFile(filepath.Join(t.TempDir(), "nope.txt")))
}
