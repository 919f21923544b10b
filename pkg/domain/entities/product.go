package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductCode is the universal join key across catalog, side and contract tables
type ProductCode string

// Product represents one filtered catalog row
type Product struct {
	Family           string
	Subfamily        string
	Group            string
	Inactive         string
	Code             ProductCode
	ManufacturerCode string
	Description      string
	Description2     string
	Classification   string

	Consolidated     decimal.Decimal
	Billed3          decimal.Decimal
	Billed6          decimal.Decimal
	Billed12         decimal.Decimal
	InTransitUnder30 decimal.Decimal
	InTransitOver30  decimal.Decimal
	MexicoPrice      decimal.Decimal
	UnitsPerBox      decimal.Decimal
}

// BoxSize returns the packaging unit used for rounding; anything below one counts as one
func (p Product) BoxSize() decimal.Decimal {
	return decimal.Max(decimal.NewFromInt(1), p.UnitsPerBox)
}

// HasClassification reports whether the product's classification is one of classes, ignoring case
func (p Product) HasClassification(classes []string) bool {
	tag := strings.ToUpper(strings.TrimSpace(p.Classification))
	for _, c := range classes {
		if strings.ToUpper(c) == tag {
			return true
		}
	}
	return false
}
