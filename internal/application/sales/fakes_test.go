package sales_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	items     map[string][]*entity.SaleItem // por sale ID
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		customers: map[string]*entity.Customer{},
		sales:     map[string]*entity.Sale{},
		items:     map[string][]*entity.SaleItem{},
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

// snapshot copia el estado mutable para poder simular rollback.
func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, c := range s.customers {
		cc := *c
		snap.customers[id] = &cc
	}
	for id, sale := range s.sales {
		sc := *sale
		snap.sales[id] = &sc
	}
	for id, items := range s.items {
		snap.items[id] = append([]*entity.SaleItem{}, items...)
	}
	snap.movements = append([]*entity.StockMovement{}, s.movements...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.customers = snap.customers
	s.sales = snap.sales
	s.items = snap.items
	s.movements = snap.movements
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if filter.OnlyActive && !p.Active {
			continue
		}
		if filter.AnimalType != "" && p.AnimalType != filter.AnimalType {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	existing, ok := r.store.products[p.ID]
	if !ok {
		return errors.New("producto inexistente")
	}
	stock := existing.Stock
	c := cloneProduct(p)
	c.Stock = stock
	r.store.products[p.ID] = c
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, productID string, stock int64) error {
	p, ok := r.store.products[productID]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Stock = stock
	return nil
}

func (r *memProductRepo) Deactivate(_ context.Context, id string) error {
	p, ok := r.store.products[id]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Active = false
	return nil
}

// ── CustomerRepository ────────────────────────────────────────────────────────

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	cc := *c
	r.store.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memCustomerRepo) GetByCPF(_ context.Context, cpf string) (*entity.Customer, error) {
	for _, c := range r.store.customers {
		if c.CPF == cpf {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(_ context.Context, onlyActive bool) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.store.customers {
		if onlyActive && !c.Active {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	cc := *c
	r.store.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) Deactivate(_ context.Context, id string) error {
	if c, ok := r.store.customers[id]; ok {
		c.Active = false
	}
	return nil
}

// ── SaleRepository ────────────────────────────────────────────────────────────

type memSaleRepo struct{ store *memStore }

func (r *memSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	sc := *s
	r.store.sales[s.ID] = &sc
	return nil
}

func (r *memSaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	ic := *item
	r.store.items[item.SaleID] = append(r.store.items[item.SaleID], &ic)
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	sc := *s
	return &sc, nil
}

func (r *memSaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *memSaleRepo) GetItemsBySaleID(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	return append([]*entity.SaleItem{}, r.store.items[saleID]...), nil
}

func (r *memSaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if filter.CustomerID != "" && s.CustomerID != filter.CustomerID {
			continue
		}
		if filter.DateFrom != nil && s.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && s.Date.After(*filter.DateTo) {
			continue
		}
		sc := *s
		out = append(out, &sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memSaleRepo) UpdateStatus(_ context.Context, id, status, notes string) error {
	s, ok := r.store.sales[id]
	if !ok {
		return errors.New("venta inexistente")
	}
	// Transición condicional, como el UPDATE ... AND status <> $2 real.
	if s.Status == status {
		return fmt.Errorf("%w: venta %s", domain.ErrAlreadyCancelled, id)
	}
	s.Status = status
	s.Notes = notes
	s.UpdatedAt = time.Now()
	return nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	mc := *m
	r.store.movements = append(r.store.movements, &mc)
	return nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		mc := *m
		out = append(out, &mc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── ReportRepository ──────────────────────────────────────────────────────────

// memReportRepo calcula las estadísticas sobre el estado en memoria,
// imitando las consultas SQL de solo lectura.
type memReportRepo struct{ store *memStore }

func (r *memReportRepo) SalesStatistics(_ context.Context, from, to *time.Time) (*repository.SalesStatistics, error) {
	stats := &repository.SalesStatistics{
		GrossRevenue:   decimal.Zero,
		TotalDiscounts: decimal.Zero,
		AverageTicket:  decimal.Zero,
	}
	byPayment := map[string]*repository.PaymentBreakdown{}
	for _, s := range r.store.sales {
		if s.Status != entity.SaleStatusCompleted {
			continue
		}
		if from != nil && s.Date.Before(*from) {
			continue
		}
		if to != nil && s.Date.After(*to) {
			continue
		}
		stats.TotalSales++
		stats.GrossRevenue = stats.GrossRevenue.Add(s.NetTotal)
		stats.TotalDiscounts = stats.TotalDiscounts.Add(s.Discount)
		b, ok := byPayment[s.PaymentMethod]
		if !ok {
			b = &repository.PaymentBreakdown{PaymentMethod: s.PaymentMethod}
			byPayment[s.PaymentMethod] = b
		}
		b.Count++
		b.Value = b.Value.Add(s.NetTotal)
	}
	if stats.TotalSales > 0 {
		stats.AverageTicket = stats.GrossRevenue.DivRound(decimal.NewFromInt(stats.TotalSales), 2)
	}
	for _, b := range byPayment {
		stats.ByPayment = append(stats.ByPayment, *b)
	}
	sort.Slice(stats.ByPayment, func(i, j int) bool {
		return stats.ByPayment[i].PaymentMethod < stats.ByPayment[j].PaymentMethod
	})
	return stats, nil
}

func (r *memReportRepo) InventoryValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.store.products {
		if !p.Active {
			continue
		}
		total = total.Add(p.StockValue())
	}
	return total, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner de test con rollback simulado
// ──────────────────────────────────────────────────────────────────────────────

// memTxRunner toma un snapshot antes de ejecutar fn y lo restaura si
// fn falla. Permite verificar atomicidad: una venta rechazada no deja
// escrituras parciales en el estado.
type memTxRunner struct{ store *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(&memProductRepo{t.store}, &memMovementRepo{t.store})
	if err != nil {
		t.store.restore(snap)
	}
	return err
}

func (t *memTxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(&memProductRepo{t.store}, &memMovementRepo{t.store}, &memSaleRepo{t.store})
	if err != nil {
		t.store.restore(snap)
	}
	return err
}
