package entity

// Longitudes máximas de los campos de Customer (coinciden con las columnas de la tabla customers).
const (
	MaxNameLen       = 80
	MaxSurnameLen    = 120
	MaxPhoneLen      = 20
	MaxAddressLen    = 200
	MaxPostalCodeLen = 10
)

// Customer representa un cliente. El ID lo asigna la base de datos y no cambia.
type Customer struct {
	ID         int64
	Name       string
	Surname    string
	Phone      string
	Address    string
	PostalCode string
}

// CustomerPatch campos a reemplazar en una actualización parcial; nil conserva el valor actual.
type CustomerPatch struct {
	Name       *string
	Surname    *string
	Phone      *string
	Address    *string
	PostalCode *string
}

// IsEmpty indica si el patch no modifica ningún campo.
func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Surname == nil && p.Phone == nil && p.Address == nil && p.PostalCode == nil
}

// Apply devuelve una copia de c con los campos presentes en el patch reemplazados.
func (p CustomerPatch) Apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Surname != nil {
		c.Surname = *p.Surname
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.PostalCode != nil {
		c.PostalCode = *p.PostalCode
	}
	return c
}
