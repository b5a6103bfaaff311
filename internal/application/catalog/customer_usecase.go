package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
	"github.com/martesys/petshop-api/pkg/br"
	"github.com/martesys/petshop-api/pkg/validate"
)

// CustomerUseCase altas, actualizaciones y bajas lógicas de clientes.
// CPF y teléfono se validan con las reglas brasileñas; el CPF se
// guarda normalizado (solo dígitos) y debe ser único.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create da de alta un cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 3 {
		return nil, fmt.Errorf("%w: el nombre debe tener al menos 3 caracteres", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, fmt.Errorf("%w: el teléfono es obligatorio", domain.ErrInvalidInput)
	}
	if err := br.ValidatePhone(in.Phone); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	cpf := ""
	if strings.TrimSpace(in.CPF) != "" {
		if err := br.ValidateCPF(in.CPF); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cpf = br.CleanCPF(in.CPF)
		existing, err := uc.customerRepo.GetByCPF(ctx, cpf)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: CPF ya registrado", domain.ErrDuplicate)
		}
	}
	if in.Email != "" {
		if err := validate.Email(in.Email); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		CPF:       cpf,
		Phone:     br.CleanPhone(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	resp := toResponse(customer)
	return &resp, nil
}

// Get devuelve un cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	resp := toResponse(customer)
	return &resp, nil
}

// GetByCPF busca un cliente por CPF (acepta el formato con máscara).
func (uc *CustomerUseCase) GetByCPF(ctx context.Context, cpf string) (*dto.CustomerResponse, error) {
	if err := br.ValidateCPF(cpf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	customer, err := uc.customerRepo.GetByCPF(ctx, br.CleanCPF(cpf))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente con CPF %s", domain.ErrNotFound, br.CleanCPF(cpf))
	}
	resp := toResponse(customer)
	return &resp, nil
}

// List lista clientes; onlyActive filtra las bajas lógicas.
func (uc *CustomerUseCase) List(ctx context.Context, onlyActive bool) ([]dto.CustomerResponse, error) {
	customers, err := uc.customerRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toResponse(c))
	}
	return out, nil
}

// Update actualización parcial de cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len([]rune(name)) < 3 {
			return nil, fmt.Errorf("%w: el nombre debe tener al menos 3 caracteres", domain.ErrInvalidInput)
		}
		customer.Name = name
	}
	if in.Phone != nil {
		if err := br.ValidatePhone(*in.Phone); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		customer.Phone = br.CleanPhone(*in.Phone)
	}
	if in.CPF != nil {
		if strings.TrimSpace(*in.CPF) == "" {
			customer.CPF = ""
		} else {
			if err := br.ValidateCPF(*in.CPF); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
			cpf := br.CleanCPF(*in.CPF)
			existing, err := uc.customerRepo.GetByCPF(ctx, cpf)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, fmt.Errorf("%w: CPF ya registrado", domain.ErrDuplicate)
			}
			customer.CPF = cpf
		}
	}
	if in.Email != nil {
		if *in.Email != "" {
			if err := validate.Email(*in.Email); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
		}
		customer.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		customer.Address = strings.TrimSpace(*in.Address)
	}
	customer.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	resp := toResponse(customer)
	return &resp, nil
}

// Deactivate baja lógica: el historial de compras del cliente se
// conserva.
func (uc *CustomerUseCase) Deactivate(ctx context.Context, id string) error {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return uc.customerRepo.Deactivate(ctx, id)
}

func toResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		CPF:       c.CPF,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}
