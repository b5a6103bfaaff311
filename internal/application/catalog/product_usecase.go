package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/application/stock"
	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
	"github.com/martesys/petshop-api/pkg/validate"
)

// ProductUseCase altas, bajas lógicas y consultas del catálogo de
// productos. El stock inicial entra por el libro de inventario; las
// actualizaciones posteriores de stock nunca pasan por aquí.
type ProductUseCase struct {
	productRepo       repository.ProductRepository
	txRunner          stock.TxRunner
	ledger            *stock.Ledger
	criticalThreshold int64
	defaultMinStock   int64
}

// NewProductUseCase construye el caso de uso del catálogo.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	txRunner stock.TxRunner,
	ledger *stock.Ledger,
	criticalThreshold, defaultMinStock int64,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:       productRepo,
		txRunner:          txRunner,
		ledger:            ledger,
		criticalThreshold: criticalThreshold,
		defaultMinStock:   defaultMinStock,
	}
}

// Create da de alta un producto. Si trae stock inicial, el producto se
// crea con stock cero y el libro registra una ENTRADA "Estoque inicial"
// en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 3 {
		return nil, fmt.Errorf("%w: el nombre debe tener al menos 3 caracteres", domain.ErrInvalidInput)
	}
	animalType := validate.NormalizeAnimalType(in.AnimalType)
	if animalType == "" {
		return nil, fmt.Errorf("%w: tipo de animal '%s' no válido", domain.ErrInvalidInput, in.AnimalType)
	}
	brand := strings.TrimSpace(in.Brand)
	if len([]rune(brand)) < 2 {
		return nil, fmt.Errorf("%w: la marca debe tener al menos 2 caracteres", domain.ErrInvalidInput)
	}
	if err := validate.Weight(in.Weight); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := validate.Price(in.SalePrice); err != nil {
		return nil, fmt.Errorf("%w: precio de venta: %v", domain.ErrInvalidInput, err)
	}
	if in.CostPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio de costo no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.CostPrice.GreaterThan(decimal.Zero) && !in.SalePrice.GreaterThan(in.CostPrice) {
		return nil, fmt.Errorf("%w: el precio de venta debe ser mayor al costo", domain.ErrInvalidInput)
	}
	if err := validate.Stock(in.Stock); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	minStock := uc.defaultMinStock
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: el stock mínimo no puede ser negativo", domain.ErrInvalidInput)
		}
		minStock = *in.MinStock
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		AnimalType: animalType,
		Brand:      brand,
		Weight:     in.Weight,
		CostPrice:  in.CostPrice,
		SalePrice:  in.SalePrice,
		Stock:      0,
		MinStock:   minStock,
		Barcode:    strings.TrimSpace(in.Barcode),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if in.Stock > 0 {
			newStock, err := uc.ledger.AdjustInTx(ctx, productRepo, movRepo, stock.AdjustInput{
				ProductID: product.ID,
				Delta:     in.Stock,
				Kind:      entity.MovementKindInbound,
				Reason:    "Estoque inicial",
			})
			if err != nil {
				return err
			}
			product.Stock = newStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := uc.toResponse(product)
	return &resp, nil
}

// Get devuelve un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	resp := uc.toResponse(product)
	return &resp, nil
}

// List lista productos con filtros opcionales por tipo de animal y
// estado activo.
func (uc *ProductUseCase) List(ctx context.Context, animalType string, onlyActive bool) (*dto.ProductListResponse, error) {
	filter := repository.ProductFilter{OnlyActive: onlyActive}
	if animalType != "" {
		normalized := validate.NormalizeAnimalType(animalType)
		if normalized == "" {
			return nil, fmt.Errorf("%w: tipo de animal '%s' no válido", domain.ErrInvalidInput, animalType)
		}
		filter.AnimalType = normalized
	}
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Items = append(resp.Items, uc.toResponse(p))
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

// Update actualización parcial: aplica solo los campos presentes, con
// las mismas reglas del alta. El stock no se toca por aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len([]rune(name)) < 3 {
			return nil, fmt.Errorf("%w: el nombre debe tener al menos 3 caracteres", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.AnimalType != nil {
		animalType := validate.NormalizeAnimalType(*in.AnimalType)
		if animalType == "" {
			return nil, fmt.Errorf("%w: tipo de animal '%s' no válido", domain.ErrInvalidInput, *in.AnimalType)
		}
		product.AnimalType = animalType
	}
	if in.Brand != nil {
		brand := strings.TrimSpace(*in.Brand)
		if len([]rune(brand)) < 2 {
			return nil, fmt.Errorf("%w: la marca debe tener al menos 2 caracteres", domain.ErrInvalidInput)
		}
		product.Brand = brand
	}
	if in.Weight != nil {
		if err := validate.Weight(*in.Weight); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		product.Weight = *in.Weight
	}
	if in.CostPrice != nil {
		if in.CostPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el precio de costo no puede ser negativo", domain.ErrInvalidInput)
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		if err := validate.Price(*in.SalePrice); err != nil {
			return nil, fmt.Errorf("%w: precio de venta: %v", domain.ErrInvalidInput, err)
		}
		product.SalePrice = *in.SalePrice
	}
	if product.CostPrice.GreaterThan(decimal.Zero) && !product.SalePrice.GreaterThan(product.CostPrice) {
		return nil, fmt.Errorf("%w: el precio de venta debe ser mayor al costo", domain.ErrInvalidInput)
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: el stock mínimo no puede ser negativo", domain.ErrInvalidInput)
		}
		product.MinStock = *in.MinStock
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := uc.toResponse(product)
	return &resp, nil
}

// Deactivate baja lógica. El producto deja de venderse pero su
// historial de ventas y movimientos queda intacto.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return uc.productRepo.Deactivate(ctx, id)
}

func (uc *ProductUseCase) toResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		AnimalType:  p.AnimalType,
		Brand:       p.Brand,
		Weight:      p.Weight,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Barcode:     p.Barcode,
		Active:      p.Active,
		StockStatus: p.StockStatus(uc.criticalThreshold),
		CreatedAt:   p.CreatedAt,
	}
}
