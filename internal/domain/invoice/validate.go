package invoice

import (
	"fmt"
	"strings"
	"time"
)

// Identificadores de campo usados en FieldError.Field.
const (
	FieldCustomer        = "customer"
	FieldRUC             = "ruc"
	FieldEmail           = "email"
	FieldCondition       = "condition"
	FieldTransactionType = "transaction_type"
	FieldDocumentType    = "document_type"
	FieldDocumentNumber  = "document_number"
	FieldDate            = "date"
	FieldDetails         = "details"
)

// FieldError campo inválido con su motivo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult resultado de Validate. Valid es true solo si FieldErrors está vacío.
type ValidationResult struct {
	Valid       bool         `json:"valid"`
	FieldErrors []FieldError `json:"field_errors"`
}

// Has indica si el campo quedó marcado como inválido.
func (r ValidationResult) Has(field string) bool {
	for _, fe := range r.FieldErrors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// DetailField identificador de un campo de la línea i: "details[i].quantity".
func DetailField(index int, name string) string {
	return fmt.Sprintf("%s[%d].%s", FieldDetails, index, name)
}

// Validate revisa cabecera y detalle sin modificarlos.
// Obligatorios: cliente, condición, tipo, tipo de documento, número y fecha. Email y RUC son opcionales.
// Cada línea necesita cantidad > 0, precio unitario > 0 y una categoría de IVA.
func Validate(h Header, details []Detail) ValidationResult {
	errs := make([]FieldError, 0)
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(h.Customer) == "" {
		add(FieldCustomer, "el cliente es requerido")
	}
	switch {
	case h.Condition == "":
		add(FieldCondition, "la condición de venta es requerida")
	case !h.Condition.valid():
		add(FieldCondition, "condición de venta desconocida")
	}
	switch {
	case h.TransactionType == "":
		add(FieldTransactionType, "el tipo de transacción es requerido")
	case !h.TransactionType.valid():
		add(FieldTransactionType, "tipo de transacción desconocido")
	}
	switch {
	case h.DocumentType == "":
		add(FieldDocumentType, "el tipo de documento es requerido")
	case !h.DocumentType.valid():
		add(FieldDocumentType, "tipo de documento desconocido")
	}
	if strings.TrimSpace(h.DocumentNumber) == "" {
		add(FieldDocumentNumber, "el número de documento es requerido")
	}
	if strings.TrimSpace(h.Date) == "" {
		add(FieldDate, "la fecha es requerida")
	} else if _, err := time.Parse(DateLayout, strings.TrimSpace(h.Date)); err != nil {
		add(FieldDate, "la fecha debe tener formato AAAA-MM-DD")
	}
	if email := strings.TrimSpace(h.Email); email != "" && !strings.Contains(email, "@") {
		add(FieldEmail, "email inválido")
	}

	if len(details) == 0 {
		add(FieldDetails, "se requiere al menos una línea de detalle")
	}
	for i, d := range details {
		if !d.Quantity.IsPositive() {
			add(DetailField(i, "quantity"), "la cantidad debe ser mayor a cero")
		}
		if !d.UnitPrice.IsPositive() {
			add(DetailField(i, "unit_price"), "el precio unitario debe ser mayor a cero")
		}
		if !d.TaxCategory.Valid() {
			add(DetailField(i, "tax_category"), "seleccione Exento, IVA 5% o IVA 10%")
		}
	}

	return ValidationResult{Valid: len(errs) == 0, FieldErrors: errs}
}
