package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
)

// SupplierFigureRepository provides code-keyed access to one supplier side table
type SupplierFigureRepository interface {
	Kind() entities.SideTableKind
	// GetFigure returns the value for code and whether the table lists it
	GetFigure(code entities.ProductCode) (decimal.Decimal, bool)
	LoadFigures(figures []entities.SupplierFigure) error
	Count() int
}
