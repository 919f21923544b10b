package entities

import (
	"github.com/shopspring/decimal"
)

// SideTableKind identifies one of the supplier side tables merged onto the catalog
type SideTableKind int

const (
	MexicoAvailability SideTableKind = iota
	MexicoBackorder
	PolifiltroAvailability
	PolifiltroBackorder
	PolifiltroPrice
)

// SideTableKinds lists every side table in merge order
var SideTableKinds = []SideTableKind{
	MexicoAvailability,
	MexicoBackorder,
	PolifiltroAvailability,
	PolifiltroBackorder,
	PolifiltroPrice,
}

// String method for SideTableKind enum
func (k SideTableKind) String() string {
	switch k {
	case MexicoAvailability:
		return "Reserv. México"
	case MexicoBackorder:
		return "BO México"
	case PolifiltroAvailability:
		return "Reserv. Polifiltro"
	case PolifiltroBackorder:
		return "BO Polifiltro"
	case PolifiltroPrice:
		return "Precio Polifiltro"
	default:
		return "Unknown"
	}
}

// Column returns the value column name used when the table is pasted or exported
func (k SideTableKind) Column() string {
	switch k {
	case MexicoAvailability:
		return "reserv_mexico"
	case MexicoBackorder:
		return "bo_mexico"
	case PolifiltroAvailability:
		return "reserv_polifiltro"
	case PolifiltroBackorder:
		return "bo_polifiltro"
	case PolifiltroPrice:
		return "precio_polifiltro"
	default:
		return "valor"
	}
}

// Mandatory reports whether a run must refuse to start without this table
func (k SideTableKind) Mandatory() bool {
	switch k {
	case MexicoAvailability, MexicoBackorder, PolifiltroPrice:
		return true
	default:
		return false
	}
}

// SupplierFigure is one row of a side table
type SupplierFigure struct {
	Code  ProductCode
	Value decimal.Decimal
}

// SupplierFigures holds the five side-table values merged onto a catalog row
type SupplierFigures struct {
	MexicoAvailability     decimal.Decimal
	MexicoBackorder        decimal.Decimal
	PolifiltroAvailability decimal.Decimal
	PolifiltroBackorder    decimal.Decimal
	PolifiltroPrice        decimal.Decimal
}

// Set stores value in the field matching kind
func (f *SupplierFigures) Set(kind SideTableKind, value decimal.Decimal) {
	switch kind {
	case MexicoAvailability:
		f.MexicoAvailability = value
	case MexicoBackorder:
		f.MexicoBackorder = value
	case PolifiltroAvailability:
		f.PolifiltroAvailability = value
	case PolifiltroBackorder:
		f.PolifiltroBackorder = value
	case PolifiltroPrice:
		f.PolifiltroPrice = value
	}
}
