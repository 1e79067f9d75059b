package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/customers-api/internal/domain"
	"github.com/jhoicas/customers-api/internal/domain/entity"
	"github.com/jhoicas/customers-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, surname, phone, address, postal_code`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Surname, &c.Phone, &c.Address, &c.PostalCode); err != nil {
		return nil, err
	}
	return &c, nil
}

// List lista todos los clientes por ID ascendente.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return list, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Create persiste un nuevo cliente; el ID lo genera la secuencia de la tabla.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (name, surname, phone, address, postal_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		customer.Name, customer.Surname, customer.Phone, customer.Address, customer.PostalCode,
	).Scan(&customer.ID)
	if err != nil {
		if isInvalidData(err) {
			return fmt.Errorf("insert customer: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update reemplaza solo las columnas presentes en el patch (COALESCE con el valor actual)
// en una única sentencia. Concurrentemente gana la última escritura.
func (r *CustomerRepo) Update(ctx context.Context, id int64, patch entity.CustomerPatch) (*entity.Customer, error) {
	if patch.IsEmpty() {
		c, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		return c, nil
	}
	query := `
		UPDATE customers SET
			name        = COALESCE($2, name),
			surname     = COALESCE($3, surname),
			phone       = COALESCE($4, phone),
			address     = COALESCE($5, address),
			postal_code = COALESCE($6, postal_code)
		WHERE id = $1
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.q.QueryRow(ctx, query,
		id, patch.Name, patch.Surname, patch.Phone, patch.Address, patch.PostalCode,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isInvalidData(err) {
			return nil, fmt.Errorf("update customer: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
