package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// AdjustInput entrada para una mutación del libro de inventario.
// Delta lleva signo: negativo descuenta stock, positivo lo repone.
type AdjustInput struct {
	ProductID string
	Delta     int64
	Kind      string // ENTRADA | SAIDA | AJUSTE | VENDA | ESTORNO
	Reference string // ej. ID de la venta
	Reason    string
}

// Ledger es el único escritor de stock y de movimientos: cada mutación
// bloquea la fila del producto, verifica que el resultado no quede
// negativo y deja exactamente un renglón de auditoría con el stock
// antes y después.
type Ledger struct {
	txRunner TxRunner
}

// NewLedger construye el libro de inventario.
func NewLedger(txRunner TxRunner) *Ledger {
	return &Ledger{txRunner: txRunner}
}

// AdjustInTx aplica una mutación usando los repositorios del caller
// (misma transacción): no hace Commit por su cuenta. Devuelve el stock
// resultante. Si retorna error, el caller debe hacer rollback.
func (l *Ledger) AdjustInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	in AdjustInput,
) (int64, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE) para que dos
	// ventas concurrentes no puedan sobregirar el stock entre lectura
	// y escritura.
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	before := product.Stock
	after := before + in.Delta
	if after < 0 {
		return 0, fmt.Errorf("%w para '%s': disponible %d", domain.ErrInsufficientStock, product.Name, before)
	}

	if err := productRepo.UpdateStock(ctx, in.ProductID, after); err != nil {
		return 0, err
	}

	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Kind:        in.Kind,
		Quantity:    in.Delta,
		StockBefore: before,
		StockAfter:  after,
		Reference:   in.Reference,
		Reason:      in.Reason,
		CreatedAt:   time.Now(),
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return 0, err
	}
	return after, nil
}

// Adjust abre su propia transacción y aplica la mutación (Commit si
// todo ok, Rollback si algo falla).
func (l *Ledger) Adjust(ctx context.Context, in AdjustInput) (int64, error) {
	var newStock int64
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		n, err := l.AdjustInTx(ctx, productRepo, movRepo, in)
		if err != nil {
			return err
		}
		newStock = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}
