package repository

import (
	"context"

	"github.com/jhoicas/customers-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Cada operación corresponde a una sola sentencia SQL.
type CustomerRepository interface {
	// List devuelve todos los clientes ordenados por ID.
	List(ctx context.Context) ([]*entity.Customer, error)
	// GetByID devuelve (nil, nil) si el cliente no existe.
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	// Create inserta el cliente y asigna customer.ID.
	Create(ctx context.Context, customer *entity.Customer) error
	// Update aplica el patch y devuelve la fila resultante; domain.ErrNotFound si no existe.
	Update(ctx context.Context, id int64, patch entity.CustomerPatch) (*entity.Customer, error)
	// Delete elimina la fila; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
