package purchase

import (
	"github.com/vsinha/compras/pkg/domain/entities"
)

// AggregateActiveContracts reduces every company's active-contract lines to per-code totals.
// HistoricalBilling sums min(billed, contracted) per line; CommittedDemand sums contracted.
func AggregateActiveContracts(tables []entities.ActiveContractTable) map[entities.ProductCode]entities.ContractTotals {
	totals := make(map[entities.ProductCode]entities.ContractTotals)
	for _, table := range tables {
		for _, line := range table.Lines {
			t := totals[line.Code]
			t.HistoricalBilling = t.HistoricalBilling.Add(line.BilledWithinContract())
			t.CommittedDemand = t.CommittedDemand.Add(line.Contracted)
			totals[line.Code] = t
		}
	}
	return totals
}

// AggregateExcludedContracts sums the 3/6/12-month excluded quantities per code across companies
func AggregateExcludedContracts(tables []entities.ExcludedContractTable) map[entities.ProductCode]entities.ExclusionTotals {
	totals := make(map[entities.ProductCode]entities.ExclusionTotals)
	for _, table := range tables {
		for _, line := range table.Lines {
			t := totals[line.Code]
			t.Q3 = t.Q3.Add(line.Q3)
			t.Q6 = t.Q6.Add(line.Q6)
			t.Q12 = t.Q12.Add(line.Q12)
			totals[line.Code] = t
		}
	}
	return totals
}
