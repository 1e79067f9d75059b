package dto

import "github.com/jhoicas/customers-api/internal/domain/entity"

// CreateCustomerRequest body para POST /customers. Todos los campos son obligatorios.
type CreateCustomerRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
}

// UpdateCustomerRequest body para PUT /customers/:id. Los campos ausentes no se modifican.
type UpdateCustomerRequest struct {
	Name       *string `json:"name,omitempty"`
	Surname    *string `json:"surname,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
}

// ToCustomerResponse mapea la entidad a su representación JSON.
func ToCustomerResponse(c *entity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Surname:    c.Surname,
		Phone:      c.Phone,
		Address:    c.Address,
		PostalCode: c.PostalCode,
	}
}
