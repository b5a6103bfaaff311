package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martesys/petshop-api/internal/application/catalog"
	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/application/stock"
	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type state struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	movements []*entity.StockMovement
}

type productRepo struct{ st *state }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	c := *p
	r.st.products[p.ID] = &c
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.st.products {
		if filter.OnlyActive && !p.Active {
			continue
		}
		if filter.AnimalType != "" && p.AnimalType != filter.AnimalType {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	existing, ok := r.st.products[p.ID]
	if !ok {
		return errors.New("producto inexistente")
	}
	stockQty := existing.Stock
	c := *p
	c.Stock = stockQty
	r.st.products[p.ID] = &c
	return nil
}

func (r *productRepo) UpdateStock(_ context.Context, productID string, stockQty int64) error {
	p, ok := r.st.products[productID]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Stock = stockQty
	return nil
}

func (r *productRepo) Deactivate(_ context.Context, id string) error {
	if p, ok := r.st.products[id]; ok {
		p.Active = false
	}
	return nil
}

type movementRepo struct{ st *state }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	c := *m
	r.st.movements = append(r.st.movements, &c)
	return nil
}

func (r *movementRepo) ListByProduct(context.Context, string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type customerRepo struct{ st *state }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	cc := *c
	r.st.customers[c.ID] = &cc
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.st.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *customerRepo) GetByCPF(_ context.Context, cpf string) (*entity.Customer, error) {
	for _, c := range r.st.customers {
		if c.CPF == cpf {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) List(_ context.Context, onlyActive bool) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.st.customers {
		if onlyActive && !c.Active {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	cc := *c
	r.st.customers[c.ID] = &cc
	return nil
}

func (r *customerRepo) Deactivate(_ context.Context, id string) error {
	if c, ok := r.st.customers[id]; ok {
		c.Active = false
	}
	return nil
}

type txRunner struct{ st *state }

func (t *txRunner) Run(ctx context.Context, fn func(
	pr repository.ProductRepository,
	mr repository.StockMovementRepository,
) error) error {
	snap := map[string]*entity.Product{}
	for id, p := range t.st.products {
		c := *p
		snap[id] = &c
	}
	snapMovs := append([]*entity.StockMovement{}, t.st.movements...)
	err := fn(&productRepo{t.st}, &movementRepo{t.st})
	if err != nil {
		t.st.products = snap
		t.st.movements = snapMovs
	}
	return err
}

func newProductUC(t *testing.T) (*catalog.ProductUseCase, *state) {
	t.Helper()
	st := &state{products: map[string]*entity.Product{}, customers: map[string]*entity.Customer{}}
	runner := &txRunner{st}
	uc := catalog.NewProductUseCase(&productRepo{st}, runner, stock.NewLedger(runner), 2, 5)
	return uc, st
}

func newCustomerUC(t *testing.T) (*catalog.CustomerUseCase, *state) {
	t.Helper()
	st := &state{products: map[string]*entity.Product{}, customers: map[string]*entity.Customer{}}
	return catalog.NewCustomerUseCase(&customerRepo{st}), st
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validProduct() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       "Ração Premium Gato 1kg",
		AnimalType: "gato",
		Brand:      "Whiskas",
		Weight:     dec("1.0"),
		CostPrice:  dec("25.00"),
		SalePrice:  dec("50.00"),
		Stock:      10,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ConEstoqueInicial(t *testing.T) {
	uc, st := newProductUC(t)

	resp, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Stock)
	assert.Equal(t, int64(5), resp.MinStock)
	assert.True(t, resp.Active)
	assert.Equal(t, entity.StockStatusOK, resp.StockStatus)

	require.Len(t, st.movements, 1)
	m := st.movements[0]
	assert.Equal(t, entity.MovementKindInbound, m.Kind)
	assert.Equal(t, int64(10), m.Quantity)
	assert.Equal(t, int64(0), m.StockBefore)
	assert.Equal(t, int64(10), m.StockAfter)
	assert.Equal(t, "Estoque inicial", m.Reason)
}

func TestCreateProduct_SinStockNoGeneraMovimiento(t *testing.T) {
	uc, st := newProductUC(t)
	in := validProduct()
	in.Stock = 0

	resp, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Stock)
	assert.Empty(t, st.movements)
}

func TestCreateProduct_NormalizaTipoAnimal(t *testing.T) {
	uc, _ := newProductUC(t)
	in := validProduct()
	in.AnimalType = "CAO" // sin tilde, mayúsculas

	resp, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.AnimalTypeDog, resp.AnimalType)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	uc, st := newProductUC(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
	}{
		{"nombre corto", func(r *dto.CreateProductRequest) { r.Name = "ab" }},
		{"tipo animal inválido", func(r *dto.CreateProductRequest) { r.AnimalType = "pássaro" }},
		{"marca corta", func(r *dto.CreateProductRequest) { r.Brand = "x" }},
		{"peso cero", func(r *dto.CreateProductRequest) { r.Weight = decimal.Zero }},
		{"peso excesivo", func(r *dto.CreateProductRequest) { r.Weight = dec("51") }},
		{"precio cero", func(r *dto.CreateProductRequest) { r.SalePrice = decimal.Zero }},
		{"precio excesivo", func(r *dto.CreateProductRequest) { r.SalePrice = dec("1000000") }},
		{"venta menor al costo", func(r *dto.CreateProductRequest) { r.SalePrice = dec("20.00") }},
		{"stock negativo", func(r *dto.CreateProductRequest) { r.Stock = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProduct()
			tt.mutate(&in)
			_, err := uc.Create(ctx, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, st.products)
}

func TestUpdateProduct_Parcial(t *testing.T) {
	uc, st := newProductUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validProduct())
	require.NoError(t, err)

	newPrice := dec("60.00")
	resp, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{SalePrice: &newPrice})
	require.NoError(t, err)
	assert.True(t, resp.SalePrice.Equal(newPrice))
	// Lo no enviado se conserva.
	assert.Equal(t, "Ração Premium Gato 1kg", resp.Name)
	assert.Equal(t, int64(10), resp.Stock)
	assert.Equal(t, int64(10), st.products[created.ID].Stock)
}

func TestUpdateProduct_VentaMenorAlCosto(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validProduct())
	require.NoError(t, err)

	low := dec("10.00") // costo es 25
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{SalePrice: &low})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeactivateProduct(t *testing.T) {
	uc, st := newProductUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validProduct())
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, created.ID))
	assert.False(t, st.products[created.ID].Active)

	err = uc.Deactivate(ctx, "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCustomer(t *testing.T) {
	uc, _ := newCustomerUC(t)

	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Maria Silva",
		CPF:   "529.982.247-25",
		Phone: "(11) 98765-4321",
		Email: "maria@example.com",
	})
	require.NoError(t, err)
	// CPF y teléfono se guardan normalizados.
	assert.Equal(t, "52998224725", resp.CPF)
	assert.Equal(t, "11987654321", resp.Phone)
	assert.True(t, resp.Active)
}

func TestGetCustomerByCPF(t *testing.T) {
	uc, _ := newCustomerUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "Maria Silva", CPF: "52998224725", Phone: "11987654321",
	})
	require.NoError(t, err)

	// La búsqueda acepta el formato con máscara.
	found, err := uc.GetByCPF(ctx, "529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = uc.GetByCPF(ctx, "111.444.777-35")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByCPF(ctx, "11111111111")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCustomer_CPFDuplicado(t *testing.T) {
	uc, _ := newCustomerUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "Maria Silva", CPF: "52998224725", Phone: "11987654321",
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "Outra Maria", CPF: "529.982.247-25", Phone: "11912345678",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateCustomer_Validaciones(t *testing.T) {
	uc, _ := newCustomerUC(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.CreateCustomerRequest
	}{
		{"sin teléfono", dto.CreateCustomerRequest{Name: "Maria Silva"}},
		{"CPF inválido", dto.CreateCustomerRequest{Name: "Maria Silva", Phone: "11987654321", CPF: "11111111111"}},
		{"DDD inválido", dto.CreateCustomerRequest{Name: "Maria Silva", Phone: "0587654321"}},
		{"email inválido", dto.CreateCustomerRequest{Name: "Maria Silva", Phone: "11987654321", Email: "no-es-email"}},
		{"nombre corto", dto.CreateCustomerRequest{Name: "ab", Phone: "11987654321"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateCustomer_CPFDeOtroCliente(t *testing.T) {
	uc, _ := newCustomerUC(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "Maria Silva", CPF: "52998224725", Phone: "11987654321",
	})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "João Souza", Phone: "11912345678",
	})
	require.NoError(t, err)

	cpf := first.CPF
	_, err = uc.Update(ctx, second.ID, dto.UpdateCustomerRequest{CPF: &cpf})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo cliente puede reenviar su propio CPF.
	_, err = uc.Update(ctx, first.ID, dto.UpdateCustomerRequest{CPF: &cpf})
	require.NoError(t, err)
}

func TestDeactivateCustomer(t *testing.T) {
	uc, st := newCustomerUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateCustomerRequest{
		Name: "Maria Silva", Phone: "11987654321",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, created.ID))
	assert.False(t, st.customers[created.ID].Active)
}
