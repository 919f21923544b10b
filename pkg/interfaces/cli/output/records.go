package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/domain/entities"
)

// resultRecord is one exported row of the full result table
type resultRecord struct {
	Code                      string          `csv:"codigo"`
	ManufacturerCode          string          `csv:"cod_fabricante"`
	Description               string          `csv:"descripcion"`
	Description2              string          `csv:"descripcion2"`
	Classification            string          `csv:"clasificacion"`
	Group                     string          `csv:"grupo"`
	Consolidated              decimal.Decimal `csv:"consolidado"`
	Billed3                   decimal.Decimal `csv:"q_fact_3"`
	Billed6                   decimal.Decimal `csv:"q_fact_6"`
	Billed12                  decimal.Decimal `csv:"q_fact_12"`
	InTransitUnder30          decimal.Decimal `csv:"en_sv_menos_30"`
	InTransitOver30           decimal.Decimal `csv:"en_sv_mas_30"`
	MexicoPrice               decimal.Decimal `csv:"pc"`
	UnitsPerBox               decimal.Decimal `csv:"qty_piezas_por_caja"`
	MexicoAvailability        decimal.Decimal `csv:"reserv_mexico"`
	MexicoBackorder           decimal.Decimal `csv:"bo_mexico"`
	PolifiltroAvailability    decimal.Decimal `csv:"reserv_polifiltro"`
	PolifiltroBackorder       decimal.Decimal `csv:"bo_polifiltro"`
	PolifiltroPrice           decimal.Decimal `csv:"precio_polifiltro"`
	HistoricalContractBilling decimal.Decimal `csv:"fact_contratos_historica"`
	CommittedContractDemand   decimal.Decimal `csv:"demanda_contratos_activos"`
	ExcludedQ3                decimal.Decimal `csv:"excluir_q_3m"`
	ExcludedQ6                decimal.Decimal `csv:"excluir_q_6m"`
	ExcludedQ12               decimal.Decimal `csv:"excluir_q_12m"`
	DemandWithoutContracts    decimal.Decimal `csv:"demanda_sin_contratos"`
	VirtualStock              decimal.Decimal `csv:"stock_virtual"`
	PriceDeltaPct             string          `csv:"delta_precio_pct"`
	Supplier                  string          `csv:"proveedor"`
	Priority                  string          `csv:"prioridad"`
	Case                      string          `csv:"caso"`
	Ratio                     string          `csv:"ratio"`
	TargetStock               decimal.Decimal `csv:"stock_objetivo"`
	RawQtyMexico              decimal.Decimal `csv:"qty_mexico_bruta"`
	RawQtyPolifiltro          decimal.Decimal `csv:"qty_polifiltro_bruta"`
	QtyMexico                 int64           `csv:"qty_mexico"`
	QtyPolifiltro             int64           `csv:"qty_polifiltro"`
	MexicoAmount              decimal.Decimal `csv:"monto_mexico"`
	PolifiltroAmount          decimal.Decimal `csv:"monto_polifiltro"`
}

func newResultRecord(l entities.PurchaseLine) resultRecord {
	delta := ""
	if l.PriceDeltaPct.Valid {
		delta = l.PriceDeltaPct.Decimal.Round(2).String()
	}
	return resultRecord{
		Code:                      string(l.Code),
		ManufacturerCode:          l.ManufacturerCode,
		Description:               l.Description,
		Description2:              l.Description2,
		Classification:            l.Classification,
		Group:                     l.Group,
		Consolidated:              l.Consolidated,
		Billed3:                   l.Billed3,
		Billed6:                   l.Billed6,
		Billed12:                  l.Billed12,
		InTransitUnder30:          l.InTransitUnder30,
		InTransitOver30:           l.InTransitOver30,
		MexicoPrice:               l.MexicoPrice,
		UnitsPerBox:               l.UnitsPerBox,
		MexicoAvailability:        l.MexicoAvailability,
		MexicoBackorder:           l.MexicoBackorder,
		PolifiltroAvailability:    l.PolifiltroAvailability,
		PolifiltroBackorder:       l.PolifiltroBackorder,
		PolifiltroPrice:           l.PolifiltroPrice,
		HistoricalContractBilling: l.HistoricalContractBilling,
		CommittedContractDemand:   l.CommittedContractDemand,
		ExcludedQ3:                l.ExcludedQ3,
		ExcludedQ6:                l.ExcludedQ6,
		ExcludedQ12:               l.ExcludedQ12,
		DemandWithoutContracts:    l.DemandWithoutContracts,
		VirtualStock:              l.VirtualStock,
		PriceDeltaPct:             delta,
		Supplier:                  string(l.Supplier),
		Priority:                  strconv.FormatBool(l.Priority),
		Case:                      string(l.Case),
		Ratio:                     l.Ratio,
		TargetStock:               l.TargetStock,
		RawQtyMexico:              l.RawQtyMexico,
		RawQtyPolifiltro:          l.RawQtyPolifiltro,
		QtyMexico:                 l.QtyMexico,
		QtyPolifiltro:             l.QtyPolifiltro,
		MexicoAmount:              l.MexicoAmount().Round(2),
		PolifiltroAmount:          l.PolifiltroAmount().Round(2),
	}
}

// cells returns the record in header order for spreadsheet export
func (r resultRecord) cells() []interface{} {
	return []interface{}{
		r.Code, r.ManufacturerCode, r.Description, r.Description2, r.Classification, r.Group,
		r.Consolidated, r.Billed3, r.Billed6, r.Billed12, r.InTransitUnder30, r.InTransitOver30,
		r.MexicoPrice, r.UnitsPerBox,
		r.MexicoAvailability, r.MexicoBackorder, r.PolifiltroAvailability, r.PolifiltroBackorder, r.PolifiltroPrice,
		r.HistoricalContractBilling, r.CommittedContractDemand, r.ExcludedQ3, r.ExcludedQ6, r.ExcludedQ12,
		r.DemandWithoutContracts, r.VirtualStock, r.PriceDeltaPct, r.Supplier, r.Priority,
		r.Case, r.Ratio, r.TargetStock, r.RawQtyMexico, r.RawQtyPolifiltro,
		r.QtyMexico, r.QtyPolifiltro, r.MexicoAmount, r.PolifiltroAmount,
	}
}

// orderRecord is one exported purchase order row
type orderRecord struct {
	Code                    string          `csv:"codigo"`
	ManufacturerCode        string          `csv:"cod_fabricante"`
	Description             string          `csv:"descripcion"`
	Classification          string          `csv:"clasificacion"`
	Case                    string          `csv:"caso"`
	Ratio                   string          `csv:"ratio"`
	DemandWithoutContracts  decimal.Decimal `csv:"demanda_sin_contratos"`
	CommittedContractDemand decimal.Decimal `csv:"demanda_contratos_activos"`
	VirtualStock            decimal.Decimal `csv:"stock_virtual"`
	TargetStock             decimal.Decimal `csv:"stock_objetivo"`
	Quantity                int64           `csv:"cantidad"`
	UnitPrice               decimal.Decimal `csv:"precio_unitario"`
	Amount                  decimal.Decimal `csv:"monto"`
}

func newOrderRecord(o dto.PurchaseOrderLine) orderRecord {
	return orderRecord{
		Code:                    string(o.Code),
		ManufacturerCode:        o.ManufacturerCode,
		Description:             o.Description,
		Classification:          o.Classification,
		Case:                    string(o.Case),
		Ratio:                   o.Ratio,
		DemandWithoutContracts:  o.DemandWithoutContracts,
		CommittedContractDemand: o.CommittedContractDemand,
		VirtualStock:            o.VirtualStock,
		TargetStock:             o.TargetStock,
		Quantity:                o.Quantity,
		UnitPrice:               o.UnitPrice,
		Amount:                  o.Amount,
	}
}

func (r orderRecord) cells() []interface{} {
	return []interface{}{
		r.Code, r.ManufacturerCode, r.Description, r.Classification, r.Case, r.Ratio,
		r.DemandWithoutContracts, r.CommittedContractDemand, r.VirtualStock, r.TargetStock,
		r.Quantity, r.UnitPrice, r.Amount,
	}
}

func resultRecords(lines []entities.PurchaseLine) []resultRecord {
	records := make([]resultRecord, 0, len(lines))
	for _, l := range lines {
		records = append(records, newResultRecord(l))
	}
	return records
}

func orderRecords(orders []dto.PurchaseOrderLine) []orderRecord {
	records := make([]orderRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, newOrderRecord(o))
	}
	return records
}
