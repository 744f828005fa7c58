package products

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrecio presenta un precio como moneda sin decimales, con
// separador de miles: 1234567.89 → "$ 1.234.568". Cero o negativo
// devuelve vacío.
func FormatPrecio(value float64) string {
	if value <= 0 {
		return ""
	}

	rounded := decimal.NewFromFloat(value).Round(0)
	digits := rounded.String()

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return "$ " + strings.Join(groups, ".")
}

// ParsePrecio interpreta una entrada de moneda ("$ 1.234,56") como
// número. Entradas no numéricas devuelven 0.
func ParsePrecio(value string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, value)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" || cleaned == "." {
		return 0
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
