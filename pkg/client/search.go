package client

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FilterProducts keeps the products whose name or category contains term,
// ignoring case. It only sees the page it is given.
func FilterProducts(products []Product, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out
}

var idr = message.NewPrinter(language.Indonesian)

// FormatPrice renders an amount in rupiah with Indonesian digit grouping.
func FormatPrice(amount float64) string {
	return idr.Sprintf("Rp %d", int64(amount))
}
