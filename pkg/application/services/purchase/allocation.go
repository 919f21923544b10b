package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
)

var one = decimal.NewFromInt(1)

// quantityPlaces is the scale targets and raw quantities are kept at.
// Residue from non-terminating divisions below it never triggers an order.
const quantityPlaces = 8

// TargetStock is the supply level a product should be brought up to under rule
func TargetStock(rule entities.CaseRule, demand, committed decimal.Decimal) decimal.Decimal {
	return demand.Mul(decimal.NewFromInt(rule.DemandMonths)).
		Add(committed.Mul(decimal.NewFromInt(rule.ContractMonths)))
}

// Split divides the shortfall between suppliers. Each side is clipped at zero on its own.
// Polifiltro covers what Mexico's share leaves, minus Polifiltro's own stock and backorder.
func Split(rule entities.CaseRule, target decimal.Decimal, line entities.PurchaseLine) (mexico, polifiltro decimal.Decimal) {
	if rule.MexicoOnly() {
		return decimal.Max(decimal.Zero, target.Sub(line.VirtualStock)), decimal.Zero
	}

	share := target.Mul(decimal.NewFromInt(rule.MexicoNumerator)).Div(decimal.NewFromInt(rule.MexicoDenominator))
	mexico = decimal.Max(decimal.Zero, share.Sub(line.VirtualStock))
	polifiltro = decimal.Max(decimal.Zero, target.
		Sub(line.VirtualStock).
		Sub(mexico).
		Sub(line.PolifiltroAvailability).
		Sub(line.PolifiltroBackorder))
	return mexico, polifiltro
}

// RoundToBox rounds qty up to a whole number of boxes and truncates the units to an integer.
// Zero or negative quantities give no order; any positive quantity orders at least one box.
func RoundToBox(qty, boxSize decimal.Decimal) int64 {
	if !qty.IsPositive() {
		return 0
	}
	box := decimal.Max(one, boxSize)
	boxes, rem := qty.QuoRem(box, 0)
	if rem.IsPositive() {
		boxes = boxes.Add(one)
	}
	return boxes.Mul(box).IntPart()
}

// Allocate fills the case, target and purchase quantities of an evaluated line
func Allocate(line *entities.PurchaseLine, policy entities.Policy) {
	rule := policy.RuleFor(line.Supplier, line.Priority)

	line.Case = rule.Case
	line.Ratio = rule.Label
	line.TargetStock = TargetStock(rule, line.DemandWithoutContracts, line.CommittedContractDemand).Round(quantityPlaces)
	mexico, polifiltro := Split(rule, line.TargetStock, *line)
	line.RawQtyMexico = mexico.Round(quantityPlaces)
	line.RawQtyPolifiltro = polifiltro.Round(quantityPlaces)

	box := line.BoxSize()
	line.QtyMexico = RoundToBox(line.RawQtyMexico, box)
	line.QtyPolifiltro = RoundToBox(line.RawQtyPolifiltro, box)
}
