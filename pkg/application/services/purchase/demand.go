package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
)

var (
	two       = decimal.NewFromInt(2)
	four      = decimal.NewFromInt(4)
	thirtySix = decimal.NewFromInt(36)
)

// NormalizeDemand returns the mean monthly demand over the 3, 6 and 12 month windows,
// net of excluded contracts and of what was already billed under active contracts.
// Only historical billing is subtracted here; committed demand is added back in the target.
func NormalizeDemand(p entities.Product, excluded entities.ExclusionTotals, contracts entities.ContractTotals) decimal.Decimal {
	// (q3/3 + q6/6 + q12/12) / 3 over a common denominator, so only one division rounds
	weighted := decimal.Sum(
		p.Billed3.Sub(excluded.Q3).Mul(four),
		p.Billed6.Sub(excluded.Q6).Mul(two),
		p.Billed12.Sub(excluded.Q12),
	)
	mean := weighted.Div(thirtySix)
	return decimal.Max(decimal.Zero, mean.Sub(contracts.HistoricalBilling))
}
