package usecase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/customers-api/internal/application/dto"
	"github.com/jhoicas/customers-api/internal/domain/entity"
)

// customerField describe un campo de texto de Customer: nombre JSON y longitud máxima.
type customerField struct {
	json string
	max  int
}

var (
	fieldName       = customerField{json: "name", max: entity.MaxNameLen}
	fieldSurname    = customerField{json: "surname", max: entity.MaxSurnameLen}
	fieldPhone      = customerField{json: "phone", max: entity.MaxPhoneLen}
	fieldAddress    = customerField{json: "address", max: entity.MaxAddressLen}
	fieldPostalCode = customerField{json: "postal_code", max: entity.MaxPostalCodeLen}
)

// normalize recorta espacios y lleva el texto a NFC para que "João" compuesto y
// descompuesto se guarden igual y cuenten los mismos caracteres.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// hasInvalidChars detecta UTF-8 inválido o caracteres de control. PostgreSQL rechaza
// NUL en columnas de texto.
func hasInvalidChars(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// check normaliza value y registra en verr si está vacío, trae caracteres inválidos
// o excede la longitud.
func (f customerField) check(value string, verr *dto.ValidationError) string {
	v := normalize(value)
	switch {
	case v == "":
		verr.Add(f.json, "required")
	case hasInvalidChars(strings.TrimSpace(value)):
		verr.Add(f.json, "invalid characters")
	case utf8.RuneCountInString(v) > f.max:
		verr.Add(f.json, fmt.Sprintf("must be at most %d characters", f.max))
	}
	return v
}

// checkOptional igual que check pero ignora campos ausentes (nil).
func (f customerField) checkOptional(value *string, verr *dto.ValidationError) *string {
	if value == nil {
		return nil
	}
	v := f.check(*value, verr)
	return &v
}

func validateCreate(in dto.CreateCustomerRequest) (*entity.Customer, error) {
	verr := dto.NewValidationError()
	c := &entity.Customer{
		Name:       fieldName.check(in.Name, verr),
		Surname:    fieldSurname.check(in.Surname, verr),
		Phone:      fieldPhone.check(in.Phone, verr),
		Address:    fieldAddress.check(in.Address, verr),
		PostalCode: fieldPostalCode.check(in.PostalCode, verr),
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return c, nil
}

func validateUpdate(in dto.UpdateCustomerRequest) (entity.CustomerPatch, error) {
	verr := dto.NewValidationError()
	patch := entity.CustomerPatch{
		Name:       fieldName.checkOptional(in.Name, verr),
		Surname:    fieldSurname.checkOptional(in.Surname, verr),
		Phone:      fieldPhone.checkOptional(in.Phone, verr),
		Address:    fieldAddress.checkOptional(in.Address, verr),
		PostalCode: fieldPostalCode.checkOptional(in.PostalCode, verr),
	}
	if verr.HasErrors() {
		return entity.CustomerPatch{}, verr
	}
	return patch, nil
}
