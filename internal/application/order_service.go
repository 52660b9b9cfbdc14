package application

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/abdidvp/flooring/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderService validates orders against the reference catalogs, snapshots
// unit costs and tax rates into them, and delegates persistence to the
// order repository.
type OrderService struct {
	mu         sync.Mutex
	orders     domain.OrderRepository
	products   domain.ProductRepository
	taxes      domain.TaxRepository
	cfg        domain.Config
	exportPath string
	revisions  domain.RevisionReader
	revisionOf string
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures an OrderService.
type Option func(*OrderService)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *OrderService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRevisionReader stamps exports with the revision of dir.
func WithRevisionReader(r domain.RevisionReader, dir string) Option {
	return func(s *OrderService) {
		s.revisions = r
		s.revisionOf = dir
	}
}

// NewOrderService creates an OrderService. exportPath is where ExportAll
// writes.
func NewOrderService(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	taxes domain.TaxRepository,
	cfg domain.Config,
	exportPath string,
	opts ...Option,
) *OrderService {
	s := &OrderService{
		orders: orders, products: products, taxes: taxes,
		cfg: cfg, exportPath: exportPath,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OrderPatch carries the editable fields of an order. Empty fields keep the
// stored value.
type OrderPatch struct {
	CustomerName string `json:"customer_name,omitempty"`
	State        string `json:"state,omitempty"`
	ProductType  string `json:"product_type,omitempty"`
	Area         string `json:"area,omitempty"`
}

// AddOrder validates o, snapshots the current product costs and tax rate,
// computes the derived fields and stores it under a new order number.
func (s *OrderService) AddOrder(o *domain.Order) (*domain.Order, error) {
	if o == nil {
		return nil, &domain.ValidationError{Field: "order", Reason: "must not be nil"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.prepare(*o, true)
	if err != nil {
		return nil, err
	}
	if err := s.checkDate(draft.Date); err != nil {
		return nil, err
	}

	saved, err := s.orders.Add(draft)
	if err != nil {
		return nil, fmt.Errorf("adding order: %w", err)
	}
	s.logger.Info("order added",
		slog.Int("order", saved.Number), slog.String("date", domain.FormatDate(saved.Date)),
		slog.String("total", saved.Total.StringFixed(domain.MoneyPlaces)))
	return &saved, nil
}

// EditOrder replaces the order with o's number. The order keeps its
// original date; costs and tax are re-snapshotted from the catalogs.
func (s *OrderService) EditOrder(o *domain.Order) (*domain.Order, error) {
	if o == nil {
		return nil, &domain.ValidationError{Field: "order", Reason: "must not be nil"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editLocked(*o)
}

// EditOrderFields applies patch to the stored order and saves it.
func (s *OrderService) EditOrderFields(number int, patch OrderPatch) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders.GetByID(number)
	if !ok {
		return nil, &domain.OrderNotFoundError{Number: number}
	}
	if v := strings.TrimSpace(patch.CustomerName); v != "" {
		o.CustomerName = v
	}
	if v := strings.TrimSpace(patch.State); v != "" {
		o.State = v
	}
	if v := strings.TrimSpace(patch.ProductType); v != "" {
		o.ProductType = v
	}
	if v := strings.TrimSpace(patch.Area); v != "" {
		area, err := domain.ParseDecimal("area", v)
		if err != nil {
			return nil, err
		}
		o.Area = area
	}
	return s.editLocked(o)
}

func (s *OrderService) editLocked(o domain.Order) (*domain.Order, error) {
	existing, ok := s.orders.GetByID(o.Number)
	if !ok {
		return nil, &domain.OrderNotFoundError{Number: o.Number}
	}
	// A stored name is only checked against the character set when it changes.
	changedName := strings.TrimSpace(o.CustomerName) != strings.TrimSpace(existing.CustomerName)
	draft, err := s.prepare(o, changedName)
	if err != nil {
		return nil, err
	}
	draft.Number = existing.Number
	draft.Date = existing.Date

	if err := s.orders.Edit(draft); err != nil {
		return nil, fmt.Errorf("editing order %d: %w", draft.Number, err)
	}
	s.logger.Info("order edited", slog.Int("order", draft.Number))
	return &draft, nil
}

// RemoveOrder deletes the order with the given number.
func (s *OrderService) RemoveOrder(number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.orders.Remove(number); err != nil {
		return fmt.Errorf("removing order: %w", err)
	}
	s.logger.Info("order removed", slog.Int("order", number))
	return nil
}

// ValidateOrderData reports the first missing required field of o.
func (s *OrderService) ValidateOrderData(o *domain.Order) error {
	switch {
	case o == nil:
		return &domain.ValidationError{Field: "order", Reason: "must not be nil"}
	case strings.TrimSpace(o.CustomerName) == "":
		return &domain.ValidationError{Field: "customer name", Reason: "must not be empty"}
	case strings.TrimSpace(o.ProductType) == "":
		return &domain.ValidationError{Field: "product type", Reason: "must not be empty"}
	case strings.TrimSpace(o.State) == "":
		return &domain.ValidationError{Field: "state", Reason: "must not be empty"}
	}
	return nil
}

// Quote returns o as AddOrder would store it, without storing it.
func (s *OrderService) Quote(o *domain.Order) (*domain.Order, error) {
	if o == nil {
		return nil, &domain.ValidationError{Field: "order", Reason: "must not be nil"}
	}
	draft, err := s.prepare(*o, true)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// CalculateTaxForOrder applies the current tax rate of o's state to o's
// material and labor costs.
func (s *OrderService) CalculateTaxForOrder(o *domain.Order) (decimal.Decimal, error) {
	if o == nil {
		return decimal.Zero, &domain.ValidationError{Field: "order", Reason: "must not be nil"}
	}
	tax, err := s.resolveTax(o.State)
	if err != nil {
		return decimal.Zero, err
	}
	base := o.CalculateMaterialCost().Add(o.CalculateLaborCost())
	return domain.CalculateTax(base, tax.TaxRate), nil
}

// CalculateCostForProductType prices o's area at the current material cost
// of its product type.
func (s *OrderService) CalculateCostForProductType(o *domain.Order) (decimal.Decimal, error) {
	if o == nil {
		return decimal.Zero, &domain.ValidationError{Field: "order", Reason: "must not be nil"}
	}
	p, err := s.lookupProduct(o.ProductType)
	if err != nil {
		return decimal.Zero, err
	}
	return o.Area.Mul(p.CostPerSquareFoot).Round(domain.MoneyPlaces), nil
}

// ListOrders returns the orders dated date.
func (s *OrderService) ListOrders(date time.Time) []domain.Order {
	return s.orders.GetByDate(date)
}

// ListAllOrders returns every order.
func (s *OrderService) ListAllOrders() []domain.Order {
	return s.orders.GetAll()
}

// GetOrder returns one order.
func (s *OrderService) GetOrder(number int) (*domain.Order, error) {
	o, ok := s.orders.GetByID(number)
	if !ok {
		return nil, &domain.OrderNotFoundError{Number: number}
	}
	return &o, nil
}

func (s *OrderService) SearchOrdersByName(name string) ([]domain.Order, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Field: "customer name", Reason: "must not be empty"}
	}
	return s.orders.SearchByName(name), nil
}

// SearchOrdersByState accepts an abbreviation or a state name.
func (s *OrderService) SearchOrdersByState(state string) ([]domain.Order, error) {
	if strings.TrimSpace(state) == "" {
		return nil, &domain.ValidationError{Field: "state", Reason: "must not be empty"}
	}
	return s.orders.SearchByState(s.stateAbbreviation(state)), nil
}

func (s *OrderService) SearchOrdersByProductType(productType string) ([]domain.Order, error) {
	if strings.TrimSpace(productType) == "" {
		return nil, &domain.ValidationError{Field: "product type", Reason: "must not be empty"}
	}
	return s.orders.SearchByProductType(productType), nil
}

// ExportAll writes every order to the export file.
func (s *OrderService) ExportAll() (*domain.ExportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.orders.Export(s.exportPath)
	if err != nil {
		return nil, fmt.Errorf("exporting orders: %w", err)
	}
	result := &domain.ExportResult{Path: s.exportPath, Orders: n}
	if s.revisions != nil {
		if rev, err := s.revisions.CommitHash(s.revisionOf); err == nil {
			result.Revision = rev
		} else {
			s.logger.Debug("no revision for export", slog.String("error", err.Error()))
		}
	}
	s.logger.Info("orders exported", slog.String("file", s.exportPath), slog.Int("orders", n))
	return result, nil
}

// prepare validates o and fills in the catalog snapshots and derived fields.
// checkName applies the customer-name character set.
func (s *OrderService) prepare(o domain.Order, checkName bool) (domain.Order, error) {
	o.CustomerName = strings.TrimSpace(o.CustomerName)
	if err := s.ValidateOrderData(&o); err != nil {
		return domain.Order{}, err
	}
	if checkName {
		if err := domain.ValidateCustomerName(o.CustomerName); err != nil {
			return domain.Order{}, err
		}
	}
	if err := domain.ValidateArea(o.Area, s.cfg.MinAreaValue()); err != nil {
		return domain.Order{}, err
	}

	product, err := s.lookupProduct(o.ProductType)
	if err != nil {
		return domain.Order{}, err
	}
	tax, err := s.resolveTax(o.State)
	if err != nil {
		return domain.Order{}, err
	}

	o.ApplyProduct(product)
	o.ApplyTax(tax)
	o.Date = domain.DateOf(o.Date)
	o.Recalculate()
	return o, nil
}

func (s *OrderService) checkDate(date time.Time) error {
	if date.IsZero() {
		return &domain.ValidationError{Field: "date", Reason: "must be set"}
	}
	if s.cfg.FutureDatesRequired() && domain.DateOf(date).Before(domain.DateOf(s.now())) {
		return &domain.ValidationError{Field: "date", Reason: domain.FormatDate(date) + " is in the past"}
	}
	return nil
}

func (s *OrderService) lookupProduct(productType string) (domain.Product, error) {
	p, ok := s.products.GetByKey(productType)
	if !ok {
		return domain.Product{}, fmt.Errorf("%q: %w", strings.TrimSpace(productType), domain.ErrInvalidProductType)
	}
	return p, nil
}

// resolveTax finds the tax entry for an abbreviation or a state name.
func (s *OrderService) resolveTax(state string) (domain.Tax, error) {
	t, ok := s.taxes.GetByKey(s.stateAbbreviation(state))
	if !ok {
		return domain.Tax{}, fmt.Errorf("%q: %w", strings.TrimSpace(state), domain.ErrInvalidState)
	}
	return t, nil
}

// stateAbbreviation maps a state name to its abbreviation, first through
// the configured table and then through the tax catalog. Two-letter input
// is taken as an abbreviation already.
func (s *OrderService) stateAbbreviation(state string) string {
	state = strings.TrimSpace(state)
	if len(state) <= 2 {
		return domain.StateKey(state)
	}
	if abbr, ok := s.cfg.StateAbbreviation(state); ok {
		return abbr
	}
	for _, t := range s.taxes.GetAll() {
		if strings.EqualFold(t.StateName, state) {
			return t.StateAbbreviation
		}
	}
	return domain.StateKey(state)
}
