// Package invoice contiene el motor de totales de facturas de ingreso/egreso:
// categorías de IVA paraguayo, cálculo de bases imponibles, edición del detalle y validación.
// No depende de HTTP ni de persistencia.
package invoice

import "strings"

// TaxCategory categoría de IVA de una línea de detalle.
type TaxCategory string

// Categorías de IVA (Paraguay). El valor vacío significa "sin seleccionar".
const (
	TaxUnset  TaxCategory = ""
	TaxExempt TaxCategory = "exempt"
	Tax5      TaxCategory = "tax5"
	Tax10     TaxCategory = "tax10"
)

// Códigos que usa el Invoice Store en el cable.
const (
	WireExempt = "exenta"
	Wire5      = "iva5"
	Wire10     = "iva10"

	// wireExemptLegacy lo escribía el formulario anterior; solo se acepta al leer.
	wireExemptLegacy = "exento"
)

// Etiquetas que ve el usuario.
const (
	LabelExempt = "Exento"
	Label5      = "IVA 5%"
	Label10     = "IVA 10%"
)

// TaxCategories lista las categorías válidas en orden de presentación.
var TaxCategories = []TaxCategory{TaxExempt, Tax5, Tax10}

// Valid indica si la categoría es una de las tres conocidas.
func (c TaxCategory) Valid() bool {
	switch c {
	case TaxExempt, Tax5, Tax10:
		return true
	}
	return false
}

// WireCode devuelve el código del Invoice Store (exenta, iva5, iva10). Vacío si la categoría no es válida.
func (c TaxCategory) WireCode() string {
	switch c {
	case TaxExempt:
		return WireExempt
	case Tax5:
		return Wire5
	case Tax10:
		return Wire10
	}
	return ""
}

// Label devuelve la etiqueta visible (Exento, IVA 5%, IVA 10%).
func (c TaxCategory) Label() string {
	switch c {
	case TaxExempt:
		return LabelExempt
	case Tax5:
		return Label5
	case Tax10:
		return Label10
	}
	return ""
}

// TaxCategoryFromWire traduce un código del Invoice Store a categoría.
func TaxCategoryFromWire(code string) (TaxCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case WireExempt, wireExemptLegacy:
		return TaxExempt, true
	case Wire5:
		return Tax5, true
	case Wire10:
		return Tax10, true
	}
	return TaxUnset, false
}

// ParseTaxCategory acepta el nombre interno, el código de cable o la etiqueta visible.
func ParseTaxCategory(s string) (TaxCategory, bool) {
	v := strings.TrimSpace(s)
	switch v {
	case string(TaxExempt), LabelExempt:
		return TaxExempt, true
	case string(Tax5), Label5:
		return Tax5, true
	case string(Tax10), Label10:
		return Tax10, true
	}
	return TaxCategoryFromWire(v)
}
