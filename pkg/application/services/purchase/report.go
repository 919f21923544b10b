package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/domain/entities"
)

// BuildSummary aggregates the result lines for reporting
func BuildSummary(lines []entities.PurchaseLine) dto.PurchaseSummary {
	summary := dto.PurchaseSummary{
		TotalCodes: len(lines),
		CaseCounts: map[entities.AllocationCase]int{
			entities.CaseA: 0,
			entities.CaseB: 0,
			entities.CaseC: 0,
		},
	}

	for _, line := range lines {
		summary.CaseCounts[line.Case]++
		if line.QtyMexico > 0 {
			summary.MexicoCodes++
			summary.MexicoUnits += line.QtyMexico
			summary.MexicoAmount = summary.MexicoAmount.Add(line.MexicoAmount())
		}
		if line.QtyPolifiltro > 0 {
			summary.PolifiltroCodes++
			summary.PolifiltroUnits += line.QtyPolifiltro
			summary.PolifiltroAmount = summary.PolifiltroAmount.Add(line.PolifiltroAmount())
		}
	}
	return summary
}

// PurchaseOrders projects the lines with something to buy at supplier into order rows
func PurchaseOrders(lines []entities.PurchaseLine, supplier entities.SupplierChoice) []dto.PurchaseOrderLine {
	var orders []dto.PurchaseOrderLine
	for _, line := range lines {
		var qty int64
		var price, amount decimal.Decimal
		switch supplier {
		case entities.SupplierMexico:
			qty, price, amount = line.QtyMexico, line.MexicoPrice, line.MexicoAmount()
		case entities.SupplierPolifiltro:
			qty, price, amount = line.QtyPolifiltro, line.PolifiltroPrice, line.PolifiltroAmount()
		}
		if qty <= 0 {
			continue
		}

		orders = append(orders, dto.PurchaseOrderLine{
			Code:                    line.Code,
			ManufacturerCode:        line.ManufacturerCode,
			Description:             line.Description,
			Classification:          line.Classification,
			Case:                    line.Case,
			Ratio:                   line.Ratio,
			DemandWithoutContracts:  line.DemandWithoutContracts,
			CommittedContractDemand: line.CommittedContractDemand,
			VirtualStock:            line.VirtualStock,
			TargetStock:             line.TargetStock,
			Quantity:                qty,
			UnitPrice:               price,
			Amount:                  amount.Round(2),
		})
	}
	return orders
}
