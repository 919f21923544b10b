// Package spreadsheet reads the REPO catalog workbook and writes result workbooks.
package spreadsheet

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"
)

// maxSheetName is the longest sheet name Excel accepts
const maxSheetName = 31

// SheetOptions selects which sheet of a workbook is read
type SheetOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadRows reads a workbook sheet and returns all rows as string slices
func ReadRows(path string, opts SheetOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "spreadsheet: open %s", path)
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts SheetOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("spreadsheet: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("spreadsheet: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

// Sheet is one worksheet to write. Row values may be string, int, int64,
// decimal.Decimal or decimal.NullDecimal; an invalid NullDecimal leaves the cell empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// WriteWorkbook writes sheets, in order, to a new workbook at path
func WriteWorkbook(path string, sheets []Sheet) error {
	f := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := f.AddSheet(SheetName(s.Name))
		if err != nil {
			return eris.Wrapf(err, "spreadsheet: add sheet %s", s.Name)
		}

		header := sheet.AddRow()
		for _, h := range s.Header {
			header.AddCell().SetString(h)
		}
		for _, values := range s.Rows {
			row := sheet.AddRow()
			for _, v := range values {
				setCell(row.AddCell(), v)
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "spreadsheet: save %s", path)
	}
	return nil
}

// SheetName truncates name to the length Excel accepts
func SheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		return string(r[:maxSheetName])
	}
	return name
}

func setCell(cell *xlsx.Cell, v interface{}) {
	switch val := v.(type) {
	case string:
		cell.SetString(val)
	case int:
		cell.SetInt(val)
	case int64:
		cell.SetInt64(val)
	case decimal.Decimal:
		cell.SetFloat(val.InexactFloat64())
	case decimal.NullDecimal:
		if val.Valid {
			cell.SetFloat(val.Decimal.InexactFloat64())
		}
	}
}
