package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// VirtualStock is the supply already committed before any new purchase
func VirtualStock(line entities.PurchaseLine) decimal.Decimal {
	return decimal.Sum(
		line.Consolidated,
		line.InTransitUnder30,
		line.InTransitOver30,
		line.MexicoAvailability,
		line.MexicoBackorder,
	)
}

// PriceDeltaPct returns how much cheaper (negative) or dearer Polifiltro is than Mexico, in percent.
// The result is invalid when the Mexico price is not positive.
func PriceDeltaPct(mexicoPrice, polifiltroPrice decimal.Decimal) decimal.NullDecimal {
	if !mexicoPrice.IsPositive() {
		return decimal.NullDecimal{}
	}
	delta := polifiltroPrice.Sub(mexicoPrice).Div(mexicoPrice).Mul(hundred)
	return decimal.NewNullDecimal(delta)
}

// ChooseSupplier picks Polifiltro only when it has a price and is strictly more than
// the threshold cheaper. Ties and incomparable prices stay with Mexico.
func ChooseSupplier(polifiltroPrice decimal.Decimal, delta decimal.NullDecimal, thresholdPct decimal.Decimal) entities.SupplierChoice {
	if polifiltroPrice.IsPositive() && delta.Valid && delta.Decimal.LessThan(thresholdPct) {
		return entities.SupplierPolifiltro
	}
	return entities.SupplierMexico
}
