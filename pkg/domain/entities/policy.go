package entities

import (
	"github.com/shopspring/decimal"
)

// CaseRule describes how one allocation case sizes and splits a purchase
type CaseRule struct {
	Case           AllocationCase
	Label          string
	DemandMonths   int64
	ContractMonths int64
	// MexicoShare is applied as target*Numerator/Denominator before subtracting virtual stock.
	MexicoNumerator   int64
	MexicoDenominator int64
}

// MexicoOnly reports whether the whole purchase goes to Mexico
func (r CaseRule) MexicoOnly() bool {
	return r.MexicoNumerator == r.MexicoDenominator
}

// Policy holds the purchasing parameters applied by the allocation engine
type Policy struct {
	PriorityClasses []string
	// Polifiltro is chosen only when its price delta is strictly below this percentage.
	PriceSwitchThresholdPct decimal.Decimal
	MexicoRule              CaseRule
	PriorityRule            CaseRule
	DefaultRule             CaseRule
}

// DefaultPolicy returns the purchasing policy used by the buying team
func DefaultPolicy() Policy {
	return Policy{
		PriorityClasses:         []string{"AA", "AB", "AC", "BA"},
		PriceSwitchThresholdPct: decimal.NewFromInt(-5),
		MexicoRule: CaseRule{
			Case:              CaseA,
			Label:             "6x0",
			DemandMonths:      6,
			ContractMonths:    4,
			MexicoNumerator:   1,
			MexicoDenominator: 1,
		},
		PriorityRule: CaseRule{
			Case:              CaseB,
			Label:             "5x3",
			DemandMonths:      8,
			ContractMonths:    4,
			MexicoNumerator:   5,
			MexicoDenominator: 8,
		},
		DefaultRule: CaseRule{
			Case:              CaseC,
			Label:             "4x3",
			DemandMonths:      7,
			ContractMonths:    4,
			MexicoNumerator:   4,
			MexicoDenominator: 7,
		},
	}
}

// RuleFor picks the case rule for a supplier choice and priority flag.
// Mexico wins first, then priority, everything else falls to the default rule.
func (p Policy) RuleFor(choice SupplierChoice, priority bool) CaseRule {
	switch {
	case choice == SupplierMexico:
		return p.MexicoRule
	case priority:
		return p.PriorityRule
	default:
		return p.DefaultRule
	}
}
