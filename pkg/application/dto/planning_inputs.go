package dto

import (
	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/domain/repositories"
)

// PlanningInputs bundles every source a purchase run reads.
// A nil side table means the operator did not supply it.
type PlanningInputs struct {
	Catalog                repositories.ProductRepository
	MexicoAvailability     repositories.SupplierFigureRepository
	MexicoBackorder        repositories.SupplierFigureRepository
	PolifiltroAvailability repositories.SupplierFigureRepository
	PolifiltroBackorder    repositories.SupplierFigureRepository
	PolifiltroPrice        repositories.SupplierFigureRepository
	ActiveContracts        []entities.ActiveContractTable
	ExcludedContracts      []entities.ExcludedContractTable
}

// SideTable returns the side table of the given kind, or nil when absent
func (in PlanningInputs) SideTable(kind entities.SideTableKind) repositories.SupplierFigureRepository {
	switch kind {
	case entities.MexicoAvailability:
		return in.MexicoAvailability
	case entities.MexicoBackorder:
		return in.MexicoBackorder
	case entities.PolifiltroAvailability:
		return in.PolifiltroAvailability
	case entities.PolifiltroBackorder:
		return in.PolifiltroBackorder
	case entities.PolifiltroPrice:
		return in.PolifiltroPrice
	default:
		return nil
	}
}

// WithSideTable returns a copy of the bundle with the side table of its kind replaced
func (in PlanningInputs) WithSideTable(table repositories.SupplierFigureRepository) PlanningInputs {
	switch table.Kind() {
	case entities.MexicoAvailability:
		in.MexicoAvailability = table
	case entities.MexicoBackorder:
		in.MexicoBackorder = table
	case entities.PolifiltroAvailability:
		in.PolifiltroAvailability = table
	case entities.PolifiltroBackorder:
		in.PolifiltroBackorder = table
	case entities.PolifiltroPrice:
		in.PolifiltroPrice = table
	}
	return in
}

// MissingSources lists the mandatory sources that are absent, in display order
func (in PlanningInputs) MissingSources() []string {
	var missing []string
	if in.Catalog == nil {
		missing = append(missing, "REPO")
	}
	for _, kind := range entities.SideTableKinds {
		if kind.Mandatory() && in.SideTable(kind) == nil {
			missing = append(missing, kind.String())
		}
	}
	return missing
}
