package invoice

import (
	"errors"

	"github.com/viajespy/agencia-api/pkg/guarani"
)

// ErrUnknownField campo de detalle inexistente en ParseDetailUpdate.
var ErrUnknownField = errors.New("campo de detalle desconocido")

// DetailUpdate modificación de un único campo de una línea.
// Es una interfaz cerrada: solo las variantes de este paquete la implementan.
type DetailUpdate interface {
	apply(d *Detail)
}

// QuantityText texto de cantidad tal como lo escribió el usuario ("1.234").
type QuantityText string

// UnitPriceText texto de precio unitario tal como lo escribió el usuario ("25.000").
type UnitPriceText string

// TaxCategoryValue categoría de IVA; se guarda tal cual y la validación rechaza las desconocidas.
type TaxCategoryValue TaxCategory

// DescriptionText descripción libre.
type DescriptionText string

func (v QuantityText) apply(d *Detail)     { d.Quantity = guarani.ParseDisplayNumber(string(v)) }
func (v UnitPriceText) apply(d *Detail)    { d.UnitPrice = guarani.ParseDisplayNumber(string(v)) }
func (v TaxCategoryValue) apply(d *Detail) { d.TaxCategory = TaxCategory(v) }
func (v DescriptionText) apply(d *Detail)  { d.Description = string(v) }

// ParseDetailUpdate construye la variante a partir del nombre de campo recibido por la API.
// Para la categoría acepta nombre interno, código de cable o etiqueta.
func ParseDetailUpdate(field, value string) (DetailUpdate, error) {
	switch field {
	case "quantity":
		return QuantityText(value), nil
	case "unit_price":
		return UnitPriceText(value), nil
	case "tax_category", "tax_type":
		if c, ok := ParseTaxCategory(value); ok {
			return TaxCategoryValue(c), nil
		}
		return TaxCategoryValue(value), nil
	case "description":
		return DescriptionText(value), nil
	}
	return nil, ErrUnknownField
}

// Draft borrador de factura: cabecera, detalle ordenado y totales siempre al día.
// No es seguro para uso concurrente; la persistencia serializa el acceso por borrador.
type Draft struct {
	Header  Header
	details []Detail
	totals  Totals
}

// NewDraft crea un borrador con una línea vacía, como el formulario de carga.
func NewDraft() *Draft {
	d := &Draft{details: []Detail{{}}}
	d.recompute()
	return d
}

// RestoreDraft reconstruye un borrador persistido.
func RestoreDraft(h Header, details []Detail) *Draft {
	d := &Draft{Header: h, details: append([]Detail(nil), details...)}
	d.recompute()
	return d
}

// Details devuelve una copia del detalle en orden de inserción.
func (d *Draft) Details() []Detail {
	return append([]Detail(nil), d.details...)
}

// Len cantidad de líneas.
func (d *Draft) Len() int { return len(d.details) }

// Totals totales del detalle actual.
func (d *Draft) Totals() Totals { return d.totals }

// AddDetail agrega una línea vacía al final y devuelve su índice.
func (d *Draft) AddDetail() int {
	d.details = append(d.details, Detail{})
	d.recompute()
	return len(d.details) - 1
}

// RemoveDetail quita la línea index sin reordenar las demás.
// Un índice fuera de rango no modifica nada y devuelve false.
func (d *Draft) RemoveDetail(index int) bool {
	if index < 0 || index >= len(d.details) {
		return false
	}
	d.details = append(d.details[:index:index], d.details[index+1:]...)
	d.recompute()
	return true
}

// UpdateDetail aplica u a la línea index y recalcula los totales.
// Un índice fuera de rango no modifica nada y devuelve false.
func (d *Draft) UpdateDetail(index int, u DetailUpdate) bool {
	if u == nil || index < 0 || index >= len(d.details) {
		return false
	}
	u.apply(&d.details[index])
	d.recompute()
	return true
}

// Validate valida cabecera y detalle actuales.
func (d *Draft) Validate() ValidationResult {
	return Validate(d.Header, d.details)
}

func (d *Draft) recompute() {
	d.totals = ComputeTotals(d.details)
}
