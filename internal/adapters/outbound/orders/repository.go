// Package orders stores orders in one flat file per order date, named
// Orders_MM-dd-yyyy.txt, and keeps every order indexed in memory.
package orders

import (
	"cmp"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/abdidvp/flooring/internal/adapters/outbound/flatfile"
	"github.com/abdidvp/flooring/internal/domain"
)

var codec flatfile.Codec[domain.Order] = orderCodec{}

// Repository owns the orders directory. The in-memory index is the source
// of truth; each mutation rewrites only the partitions it touched.
type Repository struct {
	mu     sync.RWMutex
	dir    string
	orders map[int]domain.Order
	next   int
	logger *slog.Logger
}

var _ domain.OrderRepository = (*Repository)(nil)

// New scans dir and indexes every order it finds. A missing directory is an
// empty order book; it is created on the first write.
func New(dir string, opts ...flatfile.Option) (*Repository, error) {
	r := &Repository{
		dir:    dir,
		orders: make(map[int]domain.Order),
		next:   1,
		logger: flatfile.Logger(opts...),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Dir returns the orders directory.
func (r *Repository) Dir() string { return r.dir }

// PartitionPath returns the file holding orders dated date.
func (r *Repository) PartitionPath(date time.Time) string {
	return filepath.Join(r.dir, FileName(date))
}

func (r *Repository) load() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &domain.PersistenceError{Op: "read", Path: r.dir, Err: err}
	}

	files := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		date, ok := parseFileName(e.Name())
		if !ok {
			continue
		}
		path := filepath.Join(r.dir, e.Name())
		rows, err := flatfile.ReadFile(path, codec, r.logger)
		if err != nil {
			return err
		}
		for _, o := range rows {
			r.index(path, date, o)
		}
		files++
	}

	for n := range r.orders {
		if n >= r.next {
			r.next = n + 1
		}
	}
	r.logger.Debug("loaded orders",
		slog.String("dir", r.dir), slog.Int("files", files), slog.Int("orders", len(r.orders)))
	return nil
}

func (r *Repository) index(path string, date time.Time, o domain.Order) {
	if !domain.SameDay(o.Date, date) {
		r.logger.Warn("order date disagrees with file name, using file date",
			slog.String("file", path), slog.Int("order", o.Number), slog.String("date", domain.FormatDate(o.Date)))
	}
	o.Date = date
	if !o.IsConsistent() {
		r.logger.Warn("recalculating inconsistent order totals",
			slog.String("file", path), slog.Int("order", o.Number))
		o.Recalculate()
	}
	if _, dup := r.orders[o.Number]; dup {
		r.logger.Warn("duplicate order number, keeping last row",
			slog.String("file", path), slog.Int("order", o.Number))
	}
	r.orders[o.Number] = o
}

// GetAll returns every order sorted by date, then number.
func (r *Repository) GetAll() []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filterLocked(func(domain.Order) bool { return true })
}

func (r *Repository) GetByID(number int) (domain.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[number]
	return o, ok
}

// GetByDate returns the orders dated date, sorted by number.
func (r *Repository) GetByDate(date time.Time) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filterLocked(func(o domain.Order) bool { return domain.SameDay(o.Date, date) })
}

// Add assigns the next order number to o and persists its date's file.
// Numbers are never reused, even after the highest one is removed.
func (r *Repository) Add(o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.Number = r.next
	o.Date = domain.DateOf(o.Date)
	o.Recalculate()

	r.orders[o.Number] = o
	if err := r.syncPartitionLocked(o.Date); err != nil {
		delete(r.orders, o.Number)
		return domain.Order{}, err
	}
	r.next++
	return o, nil
}

// Edit replaces the stored order with the same number. When the date
// changed, both the old and the new partition are rewritten.
func (r *Repository) Edit(o domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.orders[o.Number]
	if !ok {
		return &domain.OrderNotFoundError{Number: o.Number}
	}
	o.Date = domain.DateOf(o.Date)
	o.Recalculate()

	dates := []time.Time{o.Date}
	if !domain.SameDay(prev.Date, o.Date) {
		dates = append(dates, prev.Date)
	}

	r.orders[o.Number] = o
	for i, d := range dates {
		if err := r.syncPartitionLocked(d); err != nil {
			r.orders[o.Number] = prev
			r.restoreLocked(dates[:i])
			return err
		}
	}
	return nil
}

// Remove deletes the order and rewrites its partition. A partition left
// without orders is deleted.
func (r *Repository) Remove(number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.orders[number]
	if !ok {
		return &domain.OrderNotFoundError{Number: number}
	}
	delete(r.orders, number)
	if err := r.syncPartitionLocked(prev.Date); err != nil {
		r.orders[number] = prev
		return err
	}
	return nil
}

func (r *Repository) SearchByName(name string) []domain.Order {
	return r.search(func(o domain.Order) string { return o.CustomerName }, name)
}

func (r *Repository) SearchByProductType(productType string) []domain.Order {
	return r.search(func(o domain.Order) string { return o.ProductType }, productType)
}

func (r *Repository) SearchByState(state string) []domain.Order {
	return r.search(func(o domain.Order) string { return o.State }, state)
}

func (r *Repository) search(field func(domain.Order) string, value string) []domain.Order {
	value = strings.TrimSpace(value)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filterLocked(func(o domain.Order) bool {
		return strings.EqualFold(strings.TrimSpace(field(o)), value)
	})
}

// Export writes every order, sorted by date then number, to path.
func (r *Repository) Export(path string) (int, error) {
	all := r.GetAll()
	if err := flatfile.WriteFile(path, codec, all); err != nil {
		return 0, err
	}
	r.logger.Debug("exported orders", slog.String("file", path), slog.Int("orders", len(all)))
	return len(all), nil
}

func (r *Repository) filterLocked(keep func(domain.Order) bool) []domain.Order {
	out := make([]domain.Order, 0)
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b domain.Order) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})
	return out
}

// syncPartitionLocked makes the file for date match the index.
func (r *Repository) syncPartitionLocked(date time.Time) error {
	path := r.PartitionPath(date)
	rows := r.filterLocked(func(o domain.Order) bool { return domain.SameDay(o.Date, date) })
	if len(rows) == 0 {
		return flatfile.RemoveFile(path)
	}
	return flatfile.WriteFile(path, codec, rows)
}

// restoreLocked rewrites partitions already changed by a failed mutation.
func (r *Repository) restoreLocked(dates []time.Time) {
	for _, d := range dates {
		if err := r.syncPartitionLocked(d); err != nil {
			r.logger.Error("restoring partition after failed write",
				slog.String("file", r.PartitionPath(d)), slog.String("error", err.Error()))
		}
	}
}
