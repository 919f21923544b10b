package purchase

import (
	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/domain/entities"
)

// MergeSupplierData left-joins the five side tables onto the catalog by code.
// Codes missing from a table, and every code when a table is absent, keep a zero value.
// The output has exactly one line per catalog product, in catalog order.
func MergeSupplierData(products []*entities.Product, inputs dto.PlanningInputs) []entities.PurchaseLine {
	lines := make([]entities.PurchaseLine, len(products))
	for i, p := range products {
		lines[i].Product = *p

		for _, kind := range entities.SideTableKinds {
			table := inputs.SideTable(kind)
			if table == nil {
				continue
			}
			if value, ok := table.GetFigure(p.Code); ok {
				lines[i].SupplierFigures.Set(kind, value)
			}
		}
	}
	return lines
}
