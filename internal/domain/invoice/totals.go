package invoice

import "github.com/shopspring/decimal"

// Detail línea de detalle de la transacción.
type Detail struct {
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxCategory TaxCategory
	Description string
}

// Subtotal = cantidad × precio unitario (IVA incluido).
func (d Detail) Subtotal() decimal.Decimal {
	return d.Quantity.Mul(d.UnitPrice)
}

// Totals desglose derivado del detalle, en guaraníes enteros.
// Exempt es el ingreso exento; Tax5 y Tax10 son montos de IVA extraídos del subtotal.
// Total es la suma de todos los subtotales; los buckets informan sobre ese mismo total, no se suman a él.
type Totals struct {
	Exempt decimal.Decimal
	Tax5   decimal.Decimal
	Tax10  decimal.Decimal
	Total  decimal.Decimal
}

var (
	rate5   = decimal.RequireFromString("0.05")
	rate10  = decimal.RequireFromString("0.10")
	gross5  = decimal.RequireFromString("1.05")
	gross10 = decimal.RequireFromString("1.10")
)

// ComputeTotals calcula los buckets de IVA y el total a partir del detalle completo.
// Es una función pura: no guarda estado entre llamadas.
//
//	exempt += subtotal
//	tax5   += subtotal / 1.05 × 0.05
//	tax10  += subtotal / 1.10 × 0.10
//	total  += subtotal   (siempre, sin importar la categoría)
//
// Los cuatro valores se redondean al entero más cercano al final.
func ComputeTotals(details []Detail) Totals {
	exempt, tax5, tax10, total := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, d := range details {
		subtotal := d.Subtotal()
		total = total.Add(subtotal)
		switch d.TaxCategory {
		case TaxExempt:
			exempt = exempt.Add(subtotal)
		case Tax5:
			tax5 = tax5.Add(subtotal.Mul(rate5).Div(gross5))
		case Tax10:
			tax10 = tax10.Add(subtotal.Mul(rate10).Div(gross10))
		}
	}
	return Totals{
		Exempt: exempt.Round(0),
		Tax5:   tax5.Round(0),
		Tax10:  tax10.Round(0),
		Total:  total.Round(0),
	}
}
