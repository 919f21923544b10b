package entities

import (
	"github.com/shopspring/decimal"
)

// ActiveContractLine is one row of an active-contract table
type ActiveContractLine struct {
	Code       ProductCode
	Billed     decimal.Decimal
	Contracted decimal.Decimal
}

// BilledWithinContract approximates what was invoiced inside contract terms
func (l ActiveContractLine) BilledWithinContract() decimal.Decimal {
	return decimal.Min(l.Billed, l.Contracted)
}

// ActiveContractTable holds one company's active-contract lines
type ActiveContractTable struct {
	Company string
	Lines   []ActiveContractLine
}

// ExcludedContractLine is one row of an excluded-contract table
type ExcludedContractLine struct {
	Code ProductCode
	Q3   decimal.Decimal
	Q6   decimal.Decimal
	Q12  decimal.Decimal
}

// ExcludedContractTable holds one company's excluded quantities
type ExcludedContractTable struct {
	Company string
	Lines   []ExcludedContractLine
}

// ContractTotals is the per-code reduction of active contracts
type ContractTotals struct {
	HistoricalBilling decimal.Decimal
	CommittedDemand   decimal.Decimal
}

// ExclusionTotals is the per-code reduction of excluded contracts
type ExclusionTotals struct {
	Q3  decimal.Decimal
	Q6  decimal.Decimal
	Q12 decimal.Decimal
}
