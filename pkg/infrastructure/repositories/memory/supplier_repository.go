package memory

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/domain/repositories"
)

// SupplierFigureRepository stores one side table keyed by product code
type SupplierFigureRepository struct {
	kind    entities.SideTableKind
	figures map[entities.ProductCode]decimal.Decimal
}

// NewSupplierFigureRepository creates an empty side table of the given kind
func NewSupplierFigureRepository(kind entities.SideTableKind) *SupplierFigureRepository {
	return &SupplierFigureRepository{
		kind:    kind,
		figures: make(map[entities.ProductCode]decimal.Decimal),
	}
}

// Verify interface compliance
var _ repositories.SupplierFigureRepository = (*SupplierFigureRepository)(nil)

// Kind returns which side table this is
func (r *SupplierFigureRepository) Kind() entities.SideTableKind {
	return r.kind
}

// LoadFigures loads rows into the table. A code listed twice rejects the whole batch.
func (r *SupplierFigureRepository) LoadFigures(figures []entities.SupplierFigure) error {
	seen := make(map[entities.ProductCode]bool, len(figures))
	var duplicates []string
	for _, f := range figures {
		_, stored := r.figures[f.Code]
		if seen[f.Code] || stored {
			duplicates = append(duplicates, string(f.Code))
		}
		seen[f.Code] = true
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return eris.Wrapf(entities.ErrUnparseableInput, "%s: duplicate codes: %s", r.kind, strings.Join(duplicates, ", "))
	}

	for _, f := range figures {
		r.figures[f.Code] = f.Value
	}
	return nil
}

// GetFigure returns the value for code and whether the table lists it
func (r *SupplierFigureRepository) GetFigure(code entities.ProductCode) (decimal.Decimal, bool) {
	v, ok := r.figures[code]
	return v, ok
}

// Count returns the number of codes in the table
func (r *SupplierFigureRepository) Count() int {
	return len(r.figures)
}
