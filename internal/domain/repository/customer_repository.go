package repository

import (
	"context"

	"github.com/martesys/petshop-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (*entity.Customer, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Deactivate(ctx context.Context, id string) error
}
