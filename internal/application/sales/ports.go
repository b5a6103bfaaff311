package sales

import (
	"context"

	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/application/stock"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye
// los repos de ventas y de inventario. La venta, sus líneas, el stock
// descontado y los movimientos de auditoría se confirman juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Ledger interfaz para integrar ventas con el libro de inventario.
// AdjustInTx aplica la mutación usando los repositorios del caller
// (misma transacción). Si retorna error (ej: ErrInsufficientStock),
// el caller debe hacer rollback.
type Ledger interface {
	AdjustInTx(
		ctx context.Context,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		in stock.AdjustInput,
	) (int64, error)
}

// ReceiptGenerator genera el comprobante de una venta (PDF).
type ReceiptGenerator interface {
	Generate(detail *dto.SaleDetailResponse) ([]byte, error)
}
