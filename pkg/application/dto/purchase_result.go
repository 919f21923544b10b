package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
)

// PurchaseResult contains the complete output of a purchase run
type PurchaseResult struct {
	Lines   []entities.PurchaseLine
	Summary PurchaseSummary
}

// PurchaseSummary aggregates the result table for reporting
type PurchaseSummary struct {
	TotalCodes       int
	MexicoCodes      int
	PolifiltroCodes  int
	MexicoUnits      int64
	PolifiltroUnits  int64
	MexicoAmount     decimal.Decimal
	PolifiltroAmount decimal.Decimal
	CaseCounts       map[entities.AllocationCase]int
}

// PurchaseOrderLine is one row of a supplier purchase order
type PurchaseOrderLine struct {
	Code                    entities.ProductCode
	ManufacturerCode        string
	Description             string
	Classification          string
	Case                    entities.AllocationCase
	Ratio                   string
	DemandWithoutContracts  decimal.Decimal
	CommittedContractDemand decimal.Decimal
	VirtualStock            decimal.Decimal
	TargetStock             decimal.Decimal
	Quantity                int64
	UnitPrice               decimal.Decimal
	Amount                  decimal.Decimal
}
