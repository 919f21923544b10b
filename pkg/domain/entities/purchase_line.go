package entities

import (
	"github.com/shopspring/decimal"
)

// SupplierChoice is where a product should preferably be bought
type SupplierChoice string

const (
	SupplierMexico     SupplierChoice = "MEX"
	SupplierPolifiltro SupplierChoice = "POLI"
)

// AllocationCase tags the allocation policy applied to a product
type AllocationCase string

const (
	CaseA AllocationCase = "A"
	CaseB AllocationCase = "B"
	CaseC AllocationCase = "C"
)

// PurchaseLine is one row of the result table: catalog fields plus every derived field
type PurchaseLine struct {
	Product
	SupplierFigures

	HistoricalContractBilling decimal.Decimal
	CommittedContractDemand   decimal.Decimal
	ExcludedQ3                decimal.Decimal
	ExcludedQ6                decimal.Decimal
	ExcludedQ12               decimal.Decimal

	DemandWithoutContracts decimal.Decimal
	VirtualStock           decimal.Decimal
	// PriceDeltaPct is invalid when the Mexico price is not positive
	PriceDeltaPct decimal.NullDecimal
	Supplier      SupplierChoice
	Priority      bool

	Case        AllocationCase
	Ratio       string
	TargetStock decimal.Decimal

	RawQtyMexico     decimal.Decimal
	RawQtyPolifiltro decimal.Decimal
	QtyMexico        int64
	QtyPolifiltro    int64
}

// MexicoAmount is the value of the rounded Mexico purchase at the Mexico price
func (l PurchaseLine) MexicoAmount() decimal.Decimal {
	return decimal.NewFromInt(l.QtyMexico).Mul(l.MexicoPrice)
}

// PolifiltroAmount is the value of the rounded Polifiltro purchase at the Polifiltro price
func (l PurchaseLine) PolifiltroAmount() decimal.Decimal {
	return decimal.NewFromInt(l.QtyPolifiltro).Mul(l.PolifiltroPrice)
}
