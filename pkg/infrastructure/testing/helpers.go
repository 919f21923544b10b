package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/memory"
)

// D parses a decimal literal and panics on malformed input
func D(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// NewProduct returns an active Donaldson filter with a Mexico price of 10 and a box of 1
func NewProduct(code, classification string) *entities.Product {
	return &entities.Product{
		Family:           "Filtros",
		Subfamily:        "Donaldson",
		Group:            "DNS - General",
		Inactive:         "No",
		Code:             entities.ProductCode(code),
		ManufacturerCode: "MF-" + code,
		Description:      "Filtro " + code,
		Classification:   classification,
		MexicoPrice:      D("10"),
		UnitsPerBox:      D("1"),
	}
}

// WithBilling sets the 3, 6 and 12 month billed quantities
func WithBilling(p *entities.Product, billed3, billed6, billed12 string) *entities.Product {
	p.Billed3, p.Billed6, p.Billed12 = D(billed3), D(billed6), D(billed12)
	return p
}

// NewSideTable builds a side table from code/value literals
func NewSideTable(kind entities.SideTableKind, values map[string]string) *memory.SupplierFigureRepository {
	repo := memory.NewSupplierFigureRepository(kind)
	figures := make([]entities.SupplierFigure, 0, len(values))
	for code, v := range values {
		figures = append(figures, entities.SupplierFigure{Code: entities.ProductCode(code), Value: D(v)})
	}
	if err := repo.LoadFigures(figures); err != nil {
		panic(err)
	}
	return repo
}

// BuildPlanningInputs wraps products in a catalog and supplies empty mandatory side tables
func BuildPlanningInputs(products ...*entities.Product) dto.PlanningInputs {
	catalog := memory.NewProductRepository(len(products))
	if err := catalog.LoadProducts(products); err != nil {
		panic(err)
	}

	return dto.PlanningInputs{
		Catalog:            catalog,
		MexicoAvailability: memory.NewSupplierFigureRepository(entities.MexicoAvailability),
		MexicoBackorder:    memory.NewSupplierFigureRepository(entities.MexicoBackorder),
		PolifiltroPrice:    memory.NewSupplierFigureRepository(entities.PolifiltroPrice),
	}
}

// BuildReferenceScenario builds the three reference codes used across tests:
// X1 is a priority code Polifiltro sells 10% cheaper, X2 has no Polifiltro price,
// and X3 is Mexico-only with a box of 10.
func BuildReferenceScenario() dto.PlanningInputs {
	x1 := WithBilling(NewProduct("X1", "AA"), "30", "60", "120")
	x2 := WithBilling(NewProduct("X2", "CA"), "30", "60", "120")
	x3 := WithBilling(NewProduct("X3", "CC"), "30", "60", "120")
	x3.UnitsPerBox = D("10")

	inputs := BuildPlanningInputs(x1, x2, x3)
	return inputs.WithSideTable(NewSideTable(entities.PolifiltroPrice, map[string]string{
		"X1": "9",
		"X2": "0",
	}))
}
