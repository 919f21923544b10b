package csv

import (
	"os"

	"github.com/rotisserie/eris"

	"github.com/vsinha/compras/pkg/domain/entities"
)

// Loader reads pasted side and contract tables saved as text files
type Loader struct{}

// NewLoader creates a new table loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSideTable loads a supplier side table from a TSV/CSV file
func (l *Loader) LoadSideTable(filename string, kind entities.SideTableKind) ([]entities.SupplierFigure, error) {
	text, err := readText(filename)
	if err != nil {
		return nil, err
	}

	figures, err := ParseSideTable(text, kind)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: file %s", filename)
	}
	return figures, nil
}

// LoadActiveContracts loads one company's active-contract table from a TSV/CSV file
func (l *Loader) LoadActiveContracts(filename, company string) (entities.ActiveContractTable, error) {
	text, err := readText(filename)
	if err != nil {
		return entities.ActiveContractTable{}, err
	}

	table, err := ParseActiveContracts(text, company)
	if err != nil {
		return entities.ActiveContractTable{}, eris.Wrapf(err, "csv: file %s", filename)
	}
	return table, nil
}

// LoadExcludedContracts loads one company's excluded-contract table from a TSV/CSV file
func (l *Loader) LoadExcludedContracts(filename, company string) (entities.ExcludedContractTable, error) {
	text, err := readText(filename)
	if err != nil {
		return entities.ExcludedContractTable{}, err
	}

	table, err := ParseExcludedContracts(text, company)
	if err != nil {
		return entities.ExcludedContractTable{}, eris.Wrapf(err, "csv: file %s", filename)
	}
	return table, nil
}

func readText(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", eris.Wrapf(err, "csv: open %s", filename)
	}
	return string(data), nil
}
