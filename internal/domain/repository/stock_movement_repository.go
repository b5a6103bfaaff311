package repository

import (
	"context"
	"time"

	"github.com/martesys/petshop-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el log
// de movimientos de inventario. Append-only: solo Create y lecturas.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
