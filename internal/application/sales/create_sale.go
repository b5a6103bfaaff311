package sales

import (
	"context"
	"fmt"
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

// UseCase crea, cancela y consulta ventas. Toda mutación de stock pasa
// por el Ledger dentro de la misma transacción que la venta.
type UseCase struct {
	txRunner     TxRunner
	ledger       Ledger
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	reportRepo   repository.ReportRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner TxRunner,
	ledger Ledger,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	reportRepo repository.ReportRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		reportRepo:   reportRepo,
	}
}

// CreateSale registra una venta: valida carrito, cliente, forma de
// pago y descuento; descuenta stock línea por línea con la fila del
// producto bloqueada; y graba cabecera, líneas y movimientos VENDA en
// una sola transacción. Cualquier falla revierte todo.
func (uc *UseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleDetailResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: forma de pago '%s' no válida", domain.ErrInvalidInput, in.PaymentMethod)
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: línea sin producto", domain.ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
		}
	}

	// Cliente opcional: si viene, debe existir.
	var customer *entity.Customer
	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		customer = c
	}

	saleID := uuid.New().String()
	now := time.Now()
	sale := &entity.Sale{
		ID:            saleID,
		CustomerID:    in.CustomerID,
		Date:          now,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleStatusCompleted,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var items []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Primera pasada: bloquear y validar cada línea. Ninguna
		// escritura ocurre hasta que todas las validaciones pasan.
		gross := decimal.Zero
		items = items[:0]
		for _, line := range in.Items {
			product, err := productRepo.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			if !product.Active {
				return fmt.Errorf("%w: '%s'", domain.ErrProductInactive, product.Name)
			}
			if product.Stock < line.Quantity {
				return fmt.Errorf("%w para '%s': disponible %d", domain.ErrInsufficientStock, product.Name, product.Stock)
			}
			// Snapshot del precio de venta vigente.
			subtotal := product.SalePrice.Mul(decimal.NewFromInt(line.Quantity))
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.SalePrice,
				Subtotal:    subtotal,
			})
			gross = gross.Add(subtotal)
		}

		if err := validate.Discount(in.Discount, gross); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDiscount, err)
		}
		sale.GrossTotal = gross
		sale.Discount = in.Discount
		sale.NetTotal = gross.Sub(in.Discount)

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
			if _, err := uc.ledger.AdjustInTx(ctx, productRepo, movRepo, stock.AdjustInput{
				ProductID: item.ProductID,
				Delta:     -item.Quantity,
				Kind:      entity.MovementKindSale,
				Reference: saleID,
				Reason:    fmt.Sprintf("Venda %s", saleID),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toDetail(sale, items, customer), nil
}
