package repository

import (
	"context"
	"time"

	"github.com/martesys/petshop-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// La cabecera y las líneas se crean juntas dentro de la transacción del
// caso de uso; las líneas nunca se modifican después.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate obtiene la cabecera bloqueando la fila dentro de la
	// transacción en curso. Serializa cancelaciones concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	// UpdateStatus marca la venta (ej. Cancelada) y reemplaza las notas.
	UpdateStatus(ctx context.Context, id, status, notes string) error
}

// SaleFilter filtros opcionales para listados de ventas (más reciente primero).
type SaleFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	CustomerID string
}
