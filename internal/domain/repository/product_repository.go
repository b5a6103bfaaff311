package repository

import (
	"context"

	"github.com/martesys/petshop-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock NUNCA se escribe por Update: solo vía UpdateStock dentro de
// una transacción del libro de inventario.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int64) error
	// Deactivate baja lógica: nunca se borra un producto referenciado
	// por ventas o movimientos históricos.
	Deactivate(ctx context.Context, id string) error
}

// ProductFilter filtros opcionales para listados de productos.
type ProductFilter struct {
	AnimalType string // vacío = todos
	OnlyActive bool
}
