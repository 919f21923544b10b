// Package normalize holds the one-time coercions applied to every external table at ingestion.
package normalize

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vsinha/compras/pkg/domain/entities"
)

// Header turns a spreadsheet column title into its canonical key:
// trimmed, lower-cased, accents removed and spaces replaced by underscores.
func Header(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(folded)), " ", "_")
}

// Number parses a cell as a decimal, accepting a comma as decimal separator.
// Empty or unparseable cells become zero.
func Number(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Code trims a product code cell
func Code(s string) entities.ProductCode {
	return entities.ProductCode(strings.TrimSpace(s))
}

// Label compares filter values the way the catalog filter does: trimmed and lower-cased
func Label(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
