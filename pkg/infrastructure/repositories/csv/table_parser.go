package csv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/normalize"
)

// Column layouts of the pasted contract tables
var (
	ActiveContractColumns   = []string{"codigo", "q_fact", "q_contrato"}
	ExcludedContractColumns = []string{"codigo", "q_3m", "q_6m", "q_12m"}
)

type sideRow struct {
	Code  string `csv:"codigo"`
	Value string `csv:"valor"`
}

type activeRow struct {
	Code       string `csv:"codigo"`
	Billed     string `csv:"q_fact"`
	Contracted string `csv:"q_contrato"`
}

type excludedRow struct {
	Code string `csv:"codigo"`
	Q3   string `csv:"q_3m"`
	Q6   string `csv:"q_6m"`
	Q12  string `csv:"q_12m"`
}

// SideTableColumns returns the pasted column layout of a side table
func SideTableColumns(kind entities.SideTableKind) []string {
	return []string{"codigo", kind.Column()}
}

// ParseSideTable parses a pasted code/value table
func ParseSideTable(text string, kind entities.SideTableKind) ([]entities.SupplierFigure, error) {
	rows, err := decodeRows[sideRow](text, SideTableColumns(kind), []string{"codigo", "valor"})
	if err != nil {
		return nil, eris.Wrapf(err, "csv: %s", kind)
	}

	figures := make([]entities.SupplierFigure, 0, len(rows))
	for _, row := range rows {
		figures = append(figures, entities.SupplierFigure{
			Code:  normalize.Code(row.Code),
			Value: normalize.Number(row.Value),
		})
	}
	return figures, nil
}

// ParseActiveContracts parses one company's pasted active-contract table
func ParseActiveContracts(text, company string) (entities.ActiveContractTable, error) {
	rows, err := decodeRows[activeRow](text, ActiveContractColumns, ActiveContractColumns)
	if err != nil {
		return entities.ActiveContractTable{}, eris.Wrapf(err, "csv: active contracts %s", company)
	}

	table := entities.ActiveContractTable{
		Company: company,
		Lines:   make([]entities.ActiveContractLine, 0, len(rows)),
	}
	for _, row := range rows {
		table.Lines = append(table.Lines, entities.ActiveContractLine{
			Code:       normalize.Code(row.Code),
			Billed:     normalize.Number(row.Billed),
			Contracted: normalize.Number(row.Contracted),
		})
	}
	return table, nil
}

// ParseExcludedContracts parses one company's pasted excluded-contract table
func ParseExcludedContracts(text, company string) (entities.ExcludedContractTable, error) {
	rows, err := decodeRows[excludedRow](text, ExcludedContractColumns, ExcludedContractColumns)
	if err != nil {
		return entities.ExcludedContractTable{}, eris.Wrapf(err, "csv: excluded contracts %s", company)
	}

	table := entities.ExcludedContractTable{
		Company: company,
		Lines:   make([]entities.ExcludedContractLine, 0, len(rows)),
	}
	for _, row := range rows {
		table.Lines = append(table.Lines, entities.ExcludedContractLine{
			Code: normalize.Code(row.Code),
			Q3:   normalize.Number(row.Q3),
			Q6:   normalize.Number(row.Q6),
			Q12:  normalize.Number(row.Q12),
		})
	}
	return table, nil
}

// decodeRows splits pasted text into records of T.
// Tab is the separator unless the first line does not split into the expected columns, then comma.
// A first line repeating the column names is dropped. A first line with too few fields
// under either separator means a column is missing.
func decodeRows[T any](text string, columns, header []string) ([]T, error) {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return nil, eris.Wrap(entities.ErrUnparseableInput, "empty table")
	}

	tabs := len(strings.Split(lines[0], "\t"))
	commas := len(strings.Split(lines[0], ","))
	if max(tabs, commas) < len(columns) {
		return nil, eris.Wrapf(entities.ErrMissingColumn, "expected columns %s, first row has %d",
			strings.Join(columns, ", "), max(tabs, commas))
	}

	sep := '\t'
	if tabs != len(columns) {
		sep = ','
	}
	if isHeaderRow(lines[0], sep, columns) {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.Comma = sep
	reader.FieldsPerRecord = len(columns)
	reader.LazyQuotes = true

	dec, err := csvutil.NewDecoder(reader, header...)
	if err != nil {
		return nil, eris.Wrapf(entities.ErrUnparseableInput, "create decoder: %v", err)
	}

	var rows []T
	for {
		var row T
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(entities.ErrUnparseableInput, "row %d: %v", len(rows)+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func isHeaderRow(line string, sep rune, columns []string) bool {
	fields := strings.Split(line, string(sep))
	if len(fields) != len(columns) {
		return false
	}
	for i, col := range columns {
		if strings.ToLower(strings.TrimSpace(fields[i])) != strings.ToLower(col) {
			return false
		}
	}
	return true
}
