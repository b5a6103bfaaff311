package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/inventory"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// UseCase operaciones de inventario expuestas a la capa HTTP: entradas,
// salidas, ajustes a valor, consulta de disponibilidad y el historial
// de movimientos. Todas las mutaciones pasan por el Ledger.
type UseCase struct {
	ledger      *Ledger
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

func NewUseCase(ledger *Ledger, productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{ledger: ledger, productRepo: productRepo, movRepo: movRepo}
}

// Entry registra una entrada de mercadería (reposición). Si la entrada
// trae costo unitario, el costo promedio del producto se recalcula en la
// misma transacción.
func (uc *UseCase) Entry(ctx context.Context, productID string, quantity int64, unitCost *decimal.Decimal, reason string) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if unitCost != nil && unitCost.LessThan(decimal.Zero) {
		return 0, fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	if reason == "" {
		reason = "Entrada de estoque"
	}

	var result int64
	err := uc.ledger.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		locked, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		// Promediar contra el stock previo a la entrada.
		if unitCost != nil {
			locked.CostPrice = inventory.WeightedAverageCost(locked.Stock, locked.CostPrice, quantity, *unitCost)
			locked.UpdatedAt = time.Now().UTC()
			if err := productRepo.Update(ctx, locked); err != nil {
				return err
			}
		}
		n, err := uc.ledger.AdjustInTx(ctx, productRepo, movRepo, AdjustInput{
			ProductID: productID,
			Delta:     quantity,
			Kind:      entity.MovementKindInbound,
			Reason:    reason,
		})
		if err != nil {
			return err
		}
		result = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// Exit registra una salida manual (merma, pérdida, uso interno).
func (uc *UseCase) Exit(ctx context.Context, productID string, quantity int64, reason string) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if reason == "" {
		reason = "Saída de estoque"
	}
	return uc.ledger.Adjust(ctx, AdjustInput{
		ProductID: productID,
		Delta:     -quantity,
		Kind:      entity.MovementKindOutbound,
		Reason:    reason,
	})
}

// SetStock ajusta el stock a un valor absoluto (conteo físico). El
// movimiento registra el delta firmado entre el valor actual y el nuevo.
func (uc *UseCase) SetStock(ctx context.Context, productID string, newStock int64, reason string) (int64, error) {
	if newStock < 0 {
		return 0, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if reason == "" {
		reason = "Ajuste de estoque"
	}
	// El delta se calcula dentro de la tx contra la fila bloqueada,
	// así un ajuste concurrente no deja el valor final distinto al
	// pedido.
	var result int64
	err := uc.ledger.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		locked, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		if locked.Stock == newStock {
			result = newStock
			return nil
		}
		n, err := uc.ledger.AdjustInTx(ctx, productRepo, movRepo, AdjustInput{
			ProductID: productID,
			Delta:     newStock - locked.Stock,
			Kind:      entity.MovementKindAdjustment,
			Reason:    reason,
		})
		if err != nil {
			return err
		}
		result = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// CheckAvailability indica si hay stock suficiente de un producto.
// Lectura puntual: no bloquea la fila, solo sirve para UI.
func (uc *UseCase) CheckAvailability(ctx context.Context, productID string, quantity int64) (bool, int64, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, 0, err
	}
	if product == nil {
		return false, 0, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return product.Stock >= quantity, product.Stock, nil
}

// ListMovements historial de movimientos de un producto, del más
// reciente al más antiguo.
func (uc *UseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByProduct(ctx, productID, from, to, limit, offset)
}
