package usecase

import (
	"context"

	"github.com/jhoicas/customers-api/internal/application/dto"
	"github.com/jhoicas/customers-api/internal/domain"
	"github.com/jhoicas/customers-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes. No guarda estado entre llamadas.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// List devuelve todos los clientes ordenados por ID. Nunca devuelve nil sin error.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCustomerResponse(c))
	}
	return out, nil
}

// GetByID obtiene un cliente; domain.ErrNotFound si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToCustomerResponse(customer), nil
}

// Create valida el cuerpo completo antes de persistir; devuelve *dto.ValidationError si falta algún campo.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := validateCreate(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return dto.ToCustomerResponse(customer), nil
}

// Update reemplaza solo los campos presentes. La validación va antes que la búsqueda,
// así un cuerpo inválido responde 400 aunque el ID no exista.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	patch, err := validateUpdate(in)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return dto.ToCustomerResponse(customer), nil
}

// Delete elimina el cliente de forma definitiva; domain.ErrNotFound si no existe.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
