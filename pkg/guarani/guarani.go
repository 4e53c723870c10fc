// Package guarani convierte montos entre el formato que escribe el usuario
// (convención es-PY: "." separa miles y "," separa decimales) y el valor numérico almacenado.
//
// El guaraní no tiene subunidad, pero cantidades y precios unitarios pueden llevar
// decimales mientras se editan; por eso se trabaja con decimal.Decimal.
package guarani

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousandsSep = '.'
	decimalSep   = ','
)

// ParseDisplayNumber interpreta un texto con separadores es-PY ("1.234", "1.234,5", "Gs. 25.000").
// Descarta todo lo que no sea dígito o la coma decimal (incluido el signo, los montos del
// formulario son no negativos). Nunca falla: la entrada vacía o
// ilegible devuelve 0 para que el usuario pueda corregirla.
func ParseDisplayNumber(text string) decimal.Decimal {
	var intPart, fracPart strings.Builder
	seenDecimal := false
	for _, r := range strings.TrimSpace(text) {
		switch {
		case r >= '0' && r <= '9':
			if seenDecimal {
				fracPart.WriteRune(r)
			} else {
				intPart.WriteRune(r)
			}
		case r == decimalSep:
			// Solo la primera coma cuenta como marcador decimal.
			seenDecimal = true
		}
	}
	if intPart.Len() == 0 && fracPart.Len() == 0 {
		return decimal.Zero
	}
	s := intPart.String()
	if s == "" {
		s = "0"
	}
	if fracPart.Len() > 0 {
		s += "." + fracPart.String()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatStoredNumber renderiza un valor con agrupación de miles es-PY para un campo editable.
// Ej: 1234 → "1.234", 1234.5 → "1.234,5", 1000000 → "1.000.000".
func FormatStoredNumber(value decimal.Decimal) string {
	s := value.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	out := sign + groupThousands(intPart)
	if hasFrac {
		out += string(decimalSep) + fracPart
	}
	return out
}

// FormatAmount redondea al guaraní y antepone el símbolo: "Gs. 1.234".
func FormatAmount(value decimal.Decimal) string {
	return "Gs. " + FormatStoredNumber(value.Round(0))
}

// groupThousands inserta puntos de miles en un string de dígitos.
// Ej: "25000" → "25.000"
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, thousandsSep)
		}
		buf = append(buf, digits[i])
	}
	return string(buf)
}
