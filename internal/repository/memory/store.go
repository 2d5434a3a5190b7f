// Package memory holds in-memory implementations of the repository ports. A unit of work
// snapshots the whole store and restores it when the unit fails.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/shopspring/decimal"
)

type Store struct {
	txMu sync.Mutex // serializes units of work
	mu   sync.Mutex

	products   map[uuid.UUID]domain.Product
	orders     map[uuid.UUID]domain.Order
	lines      map[uuid.UUID][]domain.CartLine
	keys       map[string]uuid.UUID
	nextLineID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		products: make(map[uuid.UUID]domain.Product),
		orders:   make(map[uuid.UUID]domain.Order),
		lines:    make(map[uuid.UUID][]domain.CartLine),
		keys:     make(map[string]uuid.UUID),
		now:      time.Now,
	}
}

// SetClock sets the clock stamping created orders and products.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Products() port.ProductRepository {
	return productRepository{s: s}
}

func (s *Store) Orders() port.OrderRepository {
	return orderRepository{s: s}
}

func (s *Store) Sales() port.SalesRepository {
	return salesRepository{s: s}
}

func (s *Store) UnitOfWork() port.UnitOfWork {
	return unitOfWork{s: s}
}

type snapshot struct {
	products   map[uuid.UUID]domain.Product
	orders     map[uuid.UUID]domain.Order
	lines      map[uuid.UUID][]domain.CartLine
	keys       map[string]uuid.UUID
	nextLineID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make(map[uuid.UUID][]domain.CartLine, len(s.lines))
	for k, v := range s.lines {
		lines[k] = slices.Clone(v)
	}

	return snapshot{
		products:   maps.Clone(s.products),
		orders:     maps.Clone(s.orders),
		lines:      lines,
		keys:       maps.Clone(s.keys),
		nextLineID: s.nextLineID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.orders = snap.orders
	s.lines = snap.lines
	s.keys = snap.keys
	s.nextLineID = snap.nextLineID
}

type unitOfWork struct {
	s *Store
}

func (u unitOfWork) Do(ctx context.Context, fn func(orders port.OrderRepository, products port.ProductRepository) error) error {
	u.s.txMu.Lock()
	defer u.s.txMu.Unlock()

	snap := u.s.snapshot()

	if err := fn(u.s.Orders(), u.s.Products()); err != nil {
		u.s.restore(snap)
		return err
	}

	return nil
}

type productRepository struct {
	s *Store
}

func (r productRepository) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[productID]
	if !ok {
		return p, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	return p, nil
}

func (r productRepository) GetProductForUpdate(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	return r.GetProduct(ctx, productID)
}

func (r productRepository) SearchProducts(_ context.Context, filter domain.ProductFilter) (domain.PageResult[domain.Product], error) {
	if err := filter.Page.Validate(); err != nil {
		return domain.PageResult[domain.Product]{}, err
	}

	r.s.mu.Lock()
	var matched []domain.Product
	for _, p := range r.s.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, p)
	}
	r.s.mu.Unlock()

	slices.SortFunc(matched, func(a, b domain.Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), strings.Compare(a.ID.String(), b.ID.String()))
	})

	return paginate(matched, filter.Page), nil
}

func (r productRepository) InsertProduct(_ context.Context, product domain.Product) (uuid.UUID, error) {
	if err := product.Validate(); err != nil {
		return uuid.Nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.ID = uuid.New()
	product.TotalQuantitySold = 0
	product.TotalSalesAmount = decimal.Zero
	product.CreatedAt = r.s.now()
	product.UpdatedAt = product.CreatedAt
	r.s.products[product.ID] = product

	return product.ID, nil
}

func (r productRepository) UpdateProduct(_ context.Context, productID uuid.UUID, update domain.ProductUpdate) (domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[productID]
	if !ok {
		return p, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	p = update.Apply(p)
	if err := p.Validate(); err != nil {
		return p, err
	}
	p.UpdatedAt = r.s.now()
	r.s.products[productID] = p

	return p, nil
}

func (r productRepository) UpdateProductTotals(_ context.Context, productID uuid.UUID, quantitySold int64, salesAmount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[productID]
	if !ok {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	p.TotalQuantitySold = quantitySold
	p.TotalSalesAmount = salesAmount
	r.s.products[productID] = p

	return nil
}

type orderRepository struct {
	s *Store
}

func (r orderRepository) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return o, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	o.Lines = slices.Clone(r.s.lines[orderID])
	return o, nil
}

func (r orderRepository) SearchOrders(_ context.Context, filter domain.OrderFilter) (domain.PageResult[domain.Order], error) {
	if err := filter.Validate(); err != nil {
		return domain.PageResult[domain.Order]{}, err
	}

	r.s.mu.Lock()
	var matched []domain.Order
	for _, o := range r.s.orders {
		if filter.CustomerName != "" && !strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(filter.CustomerName)) {
			continue
		}
		if filter.CreatedAt != nil && !inRange(o.CreatedAt, *filter.CreatedAt) {
			continue
		}
		matched = append(matched, o)
	}
	r.s.mu.Unlock()

	sortNewestFirst(matched)

	return paginate(matched, filter.Page), nil
}

func (r orderRepository) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order.ID = uuid.New()
	order.CreatedAt = r.s.now()

	for _, line := range order.Lines {
		line.OrderID = order.ID
		r.s.insertLineLocked(line)
	}

	order.Lines = nil
	r.s.orders[order.ID] = order

	return order.ID, nil
}

func (r orderRepository) InsertCartLine(_ context.Context, line domain.CartLine) (domain.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[line.OrderID]; !ok {
		return line, fmt.Errorf("order[%s]: %w", line.OrderID, domain.ErrNotFound)
	}
	if _, ok := r.s.products[line.ProductID]; !ok {
		return line, fmt.Errorf("product[%s]: %w", line.ProductID, domain.ErrNotFound)
	}

	return r.s.insertLineLocked(line), nil
}

func (s *Store) insertLineLocked(line domain.CartLine) domain.CartLine {
	s.nextLineID++
	line.ID = s.nextLineID
	line.CreatedAt = s.now()
	if p, ok := s.products[line.ProductID]; ok {
		line.ProductName = p.Name
	}
	s.lines[line.OrderID] = append(s.lines[line.OrderID], line)
	return line
}

func (r orderRepository) DeleteOrder(_ context.Context, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[orderID]; !ok {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	delete(r.s.orders, orderID)
	delete(r.s.lines, orderID)

	return nil
}

// LockIdempotencyKey is a no-op, units of work are already serialized.
func (r orderRepository) LockIdempotencyKey(context.Context, string) error {
	return nil
}

func (r orderRepository) GetIdempotencyKey(_ context.Context, key string) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	orderID, ok := r.s.keys[key]
	if !ok {
		return uuid.Nil, fmt.Errorf("key[%s]: %w", key, domain.ErrNotFound)
	}
	return orderID, nil
}

func (r orderRepository) InsertIdempotencyKey(_ context.Context, key string, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.keys[key]; ok {
		return fmt.Errorf("key[%s] already exists", key)
	}
	r.s.keys[key] = orderID

	return nil
}

type salesRepository struct {
	s *Store
}

func (r salesRepository) SalesTotals(_ context.Context, period *domain.TimeRange) (domain.SalesTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := domain.SalesTotal{Amount: decimal.Zero}
	for _, o := range r.s.orders {
		if period != nil && !inRange(o.CreatedAt, *period) {
			continue
		}
		total.Amount = total.Amount.Add(o.Paid)
		total.Count++
	}

	return total, nil
}

func (r salesRepository) DailySales(_ context.Context, period domain.TimeRange, loc *time.Location) ([]domain.DailySales, error) {
	if loc == nil {
		loc = time.UTC
	}

	r.s.mu.Lock()
	byDay := make(map[int]domain.SalesTotal)
	for _, o := range r.s.orders {
		if !inRange(o.CreatedAt, period) {
			continue
		}
		day := o.CreatedAt.In(loc).Day()
		t := byDay[day]
		t.Amount = t.Amount.Add(o.Paid)
		t.Count++
		byDay[day] = t
	}
	r.s.mu.Unlock()

	result := make([]domain.DailySales, 0, len(byDay))
	for _, day := range slices.Sorted(maps.Keys(byDay)) {
		result = append(result, domain.DailySales{Day: day, SalesTotal: byDay[day]})
	}

	return result, nil
}

func (r salesRepository) RecentOrders(_ context.Context, limit int) ([]domain.Order, error) {
	r.s.mu.Lock()
	all := slices.Collect(maps.Values(r.s.orders))
	r.s.mu.Unlock()

	sortNewestFirst(all)

	if len(all) > limit {
		all = all[:max(limit, 0)]
	}
	return all, nil
}

func inRange(t time.Time, r domain.TimeRange) bool {
	if r.After != nil && t.Before(*r.After) {
		return false
	}
	if r.Before != nil && !t.Before(*r.Before) {
		return false
	}
	return true
}

func sortNewestFirst(orders []domain.Order) {
	slices.SortFunc(orders, func(a, b domain.Order) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID.String(), b.ID.String()))
	})
}

func paginate[T any](items []T, page domain.Page) domain.PageResult[T] {
	page = page.Normalize()

	start := min(int(page.Offset()), len(items))
	end := min(start+page.Size, len(items))

	return domain.PageResult[T]{
		Items:    items[start:end],
		Total:    int64(len(items)),
		Page:     page.Number,
		PageSize: page.Size,
	}
}
