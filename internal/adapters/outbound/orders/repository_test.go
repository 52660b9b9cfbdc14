package orders_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abdidvp/flooring/internal/adapters/outbound/flatfile"
	"github.com/abdidvp/flooring/internal/adapters/outbound/orders"
	"github.com/abdidvp/flooring/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	june1 = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	june2 = time.Date(2030, 6, 2, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func draft(customer string, date time.Time) domain.Order {
	o := domain.Order{
		CustomerName:           customer,
		State:                  "TX",
		TaxRate:                dec("6.25"),
		ProductType:            "Tile",
		Area:                   dec("200"),
		CostPerSquareFoot:      dec("3.50"),
		LaborCostPerSquareFoot: dec("4.15"),
		Date:                   date,
	}
	o.Recalculate()
	return o
}

func newRepo(t *testing.T, dir string) *orders.Repository {
	t.Helper()
	repo, err := orders.New(dir)
	require.NoError(t, err)
	return repo
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Orders_06-01-2030.txt", orders.FileName(june1))
}

func TestRepository_MissingDirIsEmpty(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "orders"))
	assert.Empty(t, repo.GetAll())
}

func TestRepository_AddWritesPartition(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")
	repo := newRepo(t, dir)

	got, err := repo.Add(draft("Bob", june1))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Number)

	content := readFile(t, filepath.Join(dir, "Orders_06-01-2030.txt"))
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(orders.Columns, ","), lines[0])
	assert.Equal(t, "1,Bob,TX,6.25,Tile,200,3.5,4.15,700.00,830.00,95.63,1625.63,06-01-2030", lines[1])
}

func TestRepository_RoundTripThroughFreshInstance(t *testing.T) {
	dir := t.TempDir()
	repo := newRepo(t, dir)

	a, err := repo.Add(draft("Acme, Inc.", june1))
	require.NoError(t, err)
	b, err := repo.Add(draft("Bob", june2))
	require.NoError(t, err)

	fresh := newRepo(t, dir)
	all := fresh.GetAll()
	require.Len(t, all, 2)
	assert.True(t, all[0].Equal(a), "got %+v want %+v", all[0], a)
	assert.True(t, all[1].Equal(b), "got %+v want %+v", all[1], b)
}

func TestRepository_GetAllIsIdempotent(t *testing.T) {
	repo := newRepo(t, t.TempDir())
	_, err := repo.Add(draft("Bob", june1))
	require.NoError(t, err)

	first := repo.GetAll()
	second := repo.GetAll()
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]))
	}
}

func TestRepository_NumbersAreNeverReused(t *testing.T) {
	dir := t.TempDir()
	repo := newRepo(t, dir)

	for _, name := range []string{"A", "B", "C"} {
		_, err := repo.Add(draft(name, june1))
		require.NoError(t, err)
	}
	require.NoError(t, repo.Remove(3))

	d, err := repo.Add(draft("D", june1))
	require.NoError(t, err)
	assert.Equal(t, 4, d.Number)

	// A fresh load starts above the highest surviving number.
	fresh := newRepo(t, dir)
	e, err := fresh.Add(draft("E", june2))
	require.NoError(t, err)
	assert.Equal(t, 5, e.Number)
}

func TestRepository_GetByDate(t *testing.T) {
	repo := newRepo(t, t.TempDir())
	_, err := repo.Add(draft("A", june1))
	require.NoError(t, err)
	_, err = repo.Add(draft("B", june2))
	require.NoError(t, err)
	_, err = repo.Add(draft("C", june1))
	require.NoError(t, err)

	got := repo.GetByDate(june1.Add(15 * time.Hour))
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].CustomerName)
	assert.Equal(t, "C", got[1].CustomerName)
}

func TestRepository_EditUnknownWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")
	repo := newRepo(t, dir)

	o := draft("Ghost", june1)
	o.Number = 999
	err := repo.Edit(o)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "no orders directory should be created")
}

func TestRepository_EditMovesBetweenPartitions(t *testing.T) {
	dir := t.TempDir()
	repo := newRepo(t, dir)
	o, err := repo.Add(draft("Bob", june1))
	require.NoError(t, err)

	o.Date = june2
	o.CustomerName = "Robert"
	require.NoError(t, repo.Edit(o))

	_, err = os.Stat(filepath.Join(dir, "Orders_06-01-2030.txt"))
	assert.True(t, os.IsNotExist(err), "emptied partition is removed")
	assert.Contains(t, readFile(t, filepath.Join(dir, "Orders_06-02-2030.txt")), "Robert")

	got, ok := newRepo(t, dir).GetByID(o.Number)
	require.True(t, ok)
	assert.Equal(t, "Robert", got.CustomerName)
	assert.True(t, domain.SameDay(june2, got.Date))
}

func TestRepository_RemoveDropsRowFromFile(t *testing.T) {
	dir := t.TempDir()
	repo := newRepo(t, dir)
	keep, err := repo.Add(draft("Keep", june1))
	require.NoError(t, err)
	gone, err := repo.Add(draft("Gone", june1))
	require.NoError(t, err)

	require.NoError(t, repo.Remove(gone.Number))

	_, ok := repo.GetByID(gone.Number)
	assert.False(t, ok)
	content := readFile(t, filepath.Join(dir, orders.FileName(june1)))
	assert.NotContains(t, content, "Gone")
	assert.Contains(t, content, "Keep")

	_, ok = newRepo(t, dir).GetByID(keep.Number)
	assert.True(t, ok)

	assert.ErrorIs(t, repo.Remove(gone.Number), domain.ErrOrderNotFound)
}

func TestRepository_Searches(t *testing.T) {
	repo := newRepo(t, t.TempDir())
	a := draft("Alice", june1)
	b := draft("Bob", june2)
	b.State = "KY"
	b.ProductType = "Wood"
	_, err := repo.Add(a)
	require.NoError(t, err)
	_, err = repo.Add(b)
	require.NoError(t, err)

	assert.Len(t, repo.SearchByName("alice"), 1)
	assert.Len(t, repo.SearchByName("Ali"), 0)
	assert.Len(t, repo.SearchByState("ky"), 1)
	assert.Len(t, repo.SearchByProductType("TILE"), 1)
}

func TestRepository_LoadRepairsRows(t *testing.T) {
	dir := t.TempDir()
	header := strings.Join(orders.Columns, ",")
	content := header + "\n" +
		// Total is off by a cent.
		"7,Bob,TX,6.25,Tile,200,3.50,4.15,700.00,830.00,95.63,1625.64,06-01-2030\n" +
		// Date column disagrees with the file name.
		"8,Ann,TX,6.25,Tile,200,3.50,4.15,700.00,830.00,95.63,1625.63,07-04-2030\n" +
		"not-a-number,Bad,TX,6.25,Tile,200,3.50,4.15,700.00,830.00,95.63,1625.63,06-01-2030\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Orders_06-01-2030.txt"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	var logs bytes.Buffer
	repo, err := orders.New(dir, flatfile.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	all := repo.GetAll()
	require.Len(t, all, 2)

	bob, ok := repo.GetByID(7)
	require.True(t, ok)
	assert.Equal(t, "1625.63", bob.Total.StringFixed(2))

	ann, ok := repo.GetByID(8)
	require.True(t, ok)
	assert.True(t, domain.SameDay(june1, ann.Date))

	out := logs.String()
	assert.Contains(t, out, "recalculating inconsistent order totals")
	assert.Contains(t, out, "order date disagrees with file name")
	assert.Contains(t, out, "skipping malformed row")

	next, err := repo.Add(draft("Next", june1))
	require.NoError(t, err)
	assert.Equal(t, 9, next.Number)
}

func TestRepository_Export(t *testing.T) {
	root := t.TempDir()
	repo := newRepo(t, filepath.Join(root, "orders"))
	_, err := repo.Add(draft("Late", june2))
	require.NoError(t, err)
	_, err = repo.Add(draft("Early", june1))
	require.NoError(t, err)

	path := filepath.Join(root, "Backup", "DataExport.txt")
	n, err := repo.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(readFile(t, path)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2,Early,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,Late,"))
}

func TestRepository_WriteFailuresLeaveIndexUnchanged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")
	repo := newRepo(t, dir)
	_, err := repo.Add(draft("Bob", june1))
	require.NoError(t, err)

	// Turn the orders directory into a plain file so every write fails.
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0644))

	_, err = repo.Add(draft("Ann", june1))
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Len(t, repo.GetAll(), 1)

	moved := draft("Ann", june2)
	moved.Number = 1
	err = repo.Edit(moved)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	stored, ok := repo.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, "Bob", stored.CustomerName)
	assert.True(t, domain.SameDay(stored.Date, june1))

	err = repo.Remove(1)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	_, ok = repo.GetByID(1)
	assert.True(t, ok, "failed remove must keep the order")

	require.NoError(t, os.Remove(dir))
	require.NoError(t, os.MkdirAll(dir, 0755))

	next, err := repo.Add(draft("Cy", june1))
	require.NoError(t, err)
	assert.Equal(t, 2, next.Number, "a failed add must not consume a number")
	assert.Len(t, newRepo(t, dir).GetByDate(june1), 2)
}
