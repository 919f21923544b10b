package spreadsheet

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/normalize"
)

// Catalog column keys, after header normalization
const (
	ColFamily           = "familia"
	ColSubfamily        = "subfamilia"
	ColGroup            = "grupo"
	ColInactive         = "inactivo"
	ColCode             = "codigo"
	ColManufacturerCode = "codfabricante"
	ColDescription      = "descripcion"
	ColDescription2     = "descripcion2"
	ColClassification   = "clasificacion"
	ColConsolidated     = "consolidado"
	ColBilled3          = "q_fact_3"
	ColBilled6          = "q_fact_6"
	ColBilled12         = "q_fact_12"
	ColInTransitUnder30 = "en_sv_en_menos_30_dias"
	ColInTransitOver30  = "en_sv_en_mas_30_dias"
	ColMexicoPrice      = "pc"
	ColUnitsPerBox      = "qty_piezas_por_caja"
)

// CatalogColumns lists every column the REPO export must carry, in export order
var CatalogColumns = []string{
	ColFamily, ColSubfamily, ColGroup, ColInactive, ColCode, ColManufacturerCode,
	ColDescription, ColDescription2, ColClassification, ColConsolidated,
	ColBilled3, ColBilled6, ColBilled12,
	ColInTransitUnder30, ColInTransitOver30,
	ColMexicoPrice, ColUnitsPerBox,
}

// CatalogHeader is the header row as the ERP writes it, aligned with CatalogColumns
var CatalogHeader = []string{
	"Familia", "Subfamilia", "Grupo", "Inactivo", "Código", "CodFabricante",
	"Descripcion", "Descripcion2", "Clasificacion", "Consolidado",
	"Q Fact 3", "Q Fact 6", "Q Fact 12",
	"En SV en menos 30 dias", "En SV en mas 30 dias",
	"PC", "Qty Piezas por Caja",
}

// CatalogFilter selects the catalog rows that are planned
type CatalogFilter struct {
	Family         string
	Subfamily      string
	Inactive       string
	ExcludedGroups []string
}

// DefaultCatalogFilter keeps active Donaldson filters outside the two stock-movement groups
func DefaultCatalogFilter() CatalogFilter {
	return CatalogFilter{
		Family:         "filtros",
		Subfamily:      "donaldson",
		Inactive:       "no",
		ExcludedGroups: []string{"dns - inmovilizado", "dns - a demanda"},
	}
}

// Matches reports whether a row passes the filter. Comparisons are trimmed and case-insensitive.
func (f CatalogFilter) Matches(family, subfamily, inactive, group string) bool {
	if normalize.Label(family) != normalize.Label(f.Family) ||
		normalize.Label(subfamily) != normalize.Label(f.Subfamily) ||
		normalize.Label(inactive) != normalize.Label(f.Inactive) {
		return false
	}
	for _, g := range f.ExcludedGroups {
		if normalize.Label(group) == normalize.Label(g) {
			return false
		}
	}
	return true
}

// CatalogLoadResult is the filtered catalog plus the counts shown to the operator
type CatalogLoadResult struct {
	Products  []*entities.Product
	TotalRows int
	KeptRows  int
}

// ExcludedRows is the number of rows dropped by the filter
func (r *CatalogLoadResult) ExcludedRows() int {
	return r.TotalRows - r.KeptRows
}

// CatalogLoader loads the REPO export into products
type CatalogLoader struct {
	filter CatalogFilter
	sheet  SheetOptions
}

// NewCatalogLoader creates a catalog loader
func NewCatalogLoader(filter CatalogFilter, sheet SheetOptions) *CatalogLoader {
	return &CatalogLoader{filter: filter, sheet: sheet}
}

// LoadCatalog reads the workbook at path and returns the filtered catalog
func (l *CatalogLoader) LoadCatalog(path string) (*CatalogLoadResult, error) {
	rows, err := ReadRows(path, l.sheet)
	if err != nil {
		return nil, err
	}

	result, err := l.ParseRows(rows)
	if err != nil {
		return nil, eris.Wrapf(err, "spreadsheet: catalog %s", path)
	}

	zap.L().Info("catalog loaded",
		zap.String("path", path),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("kept_rows", result.KeptRows),
		zap.Int("excluded_rows", result.ExcludedRows()),
	)
	return result, nil
}

// ParseRows turns raw sheet rows, header first, into filtered products.
// A header lacking any required column rejects the whole catalog.
func (l *CatalogLoader) ParseRows(rows [][]string) (*CatalogLoadResult, error) {
	if len(rows) == 0 {
		return nil, eris.Wrap(entities.ErrMissingColumn, "catalog has no header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		key := normalize.Header(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range CatalogColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Wrapf(entities.ErrMissingColumn, "catalog lacks columns: %s", strings.Join(missing, ", "))
	}

	result := &CatalogLoadResult{}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		result.TotalRows++

		cell := func(col string) string {
			i := index[col]
			if i < len(row) {
				return row[i]
			}
			return ""
		}

		if !l.filter.Matches(cell(ColFamily), cell(ColSubfamily), cell(ColInactive), cell(ColGroup)) {
			continue
		}

		result.Products = append(result.Products, &entities.Product{
			Family:           cell(ColFamily),
			Subfamily:        cell(ColSubfamily),
			Group:            cell(ColGroup),
			Inactive:         cell(ColInactive),
			Code:             normalize.Code(cell(ColCode)),
			ManufacturerCode: cell(ColManufacturerCode),
			Description:      cell(ColDescription),
			Description2:     cell(ColDescription2),
			Classification:   cell(ColClassification),
			Consolidated:     normalize.Number(cell(ColConsolidated)),
			Billed3:          normalize.Number(cell(ColBilled3)),
			Billed6:          normalize.Number(cell(ColBilled6)),
			Billed12:         normalize.Number(cell(ColBilled12)),
			InTransitUnder30: normalize.Number(cell(ColInTransitUnder30)),
			InTransitOver30:  normalize.Number(cell(ColInTransitOver30)),
			MexicoPrice:      normalize.Number(cell(ColMexicoPrice)),
			UnitsPerBox:      normalize.Number(cell(ColUnitsPerBox)),
		})
	}
	result.KeptRows = len(result.Products)
	return result, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
