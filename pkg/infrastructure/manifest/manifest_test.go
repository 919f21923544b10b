package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/spreadsheet"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeCatalog(t *testing.T, dir string, codes ...string) {
	t.Helper()
	var rows [][]interface{}
	for _, code := range codes {
		rows = append(rows, []interface{}{
			"Filtros", "Donaldson", "DNS - General", "No", code, "MF-" + code,
			"Filtro", "", "AA", "10",
			"30", "60", "120",
			"0", "0",
			"10", "5",
		})
	}
	require.NoError(t, spreadsheet.WriteWorkbook(filepath.Join(dir, "repo.xlsx"), []spreadsheet.Sheet{
		{Name: "REPO", Header: spreadsheet.CatalogHeader, Rows: rows},
	}))
}

func TestParse_DefaultsCompanyLabels(t *testing.T) {
	m, err := Parse([]byte(`
catalog:
  path: repo.xlsx
active_contracts:
  - path: a.tsv
  - company: Mina Norte
    path: b.tsv
excluded_contracts:
  - path: x.tsv
`))
	require.NoError(t, err)

	assert.Equal(t, "Empresa_1", m.ActiveContracts[0].Company)
	assert.Equal(t, "Mina Norte", m.ActiveContracts[1].Company)
	assert.Equal(t, "Excluir_1", m.ExcludedContracts[0].Company)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("side_tables:\n  bo_mexico: bo.tsv\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("catalog: [oops"))
	assert.Error(t, err)
}

func TestSaveAndLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{
		Catalog:    CatalogSource{Path: "repo.xlsx"},
		SideTables: SideTables{MexicoBackorder: "bo_mexico.tsv", PolifiltroPrice: "/abs/precio.tsv"},
	}
	path := filepath.Join(dir, FileName)
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "repo.xlsx"), loaded.Resolve(loaded.Catalog.Path))
	assert.Equal(t, filepath.Join(dir, "bo_mexico.tsv"), loaded.Resolve(loaded.SideTables.Path(entities.MexicoBackorder)))
	assert.Equal(t, "/abs/precio.tsv", loaded.Resolve(loaded.SideTables.PolifiltroPrice))
	assert.Equal(t, "", loaded.SideTables.Path(entities.PolifiltroAvailability))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildInputs(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "P1", "P2")
	writeFile(t, dir, "reserv_mexico.tsv", "codigo\treserv_mexico\nP1\t4\n")
	writeFile(t, dir, "bo_mexico.tsv", "P2\t3\n")
	writeFile(t, dir, "precio.tsv", "P1,9.5\nP2,11\n")
	writeFile(t, dir, "bo_poli.tsv", "P1\t1\nP1\t2\n")
	writeFile(t, dir, "empresa.tsv", "codigo\tq_fact\tq_contrato\nP1\t10\t6\n")
	writeFile(t, dir, "broken.tsv", "P1\t1\t2\t3\t4\n")
	writeFile(t, dir, "excluir.tsv", "P2\t3\t6\t12\n")

	m := &Manifest{
		Catalog: CatalogSource{Path: "repo.xlsx", Sheet: "REPO"},
		SideTables: SideTables{
			MexicoAvailability:  "reserv_mexico.tsv",
			MexicoBackorder:     "bo_mexico.tsv",
			PolifiltroBackorder: "bo_poli.tsv",
			PolifiltroPrice:     "precio.tsv",
		},
		ActiveContracts: []CompanyTable{
			{Company: "Empresa_1", Path: "empresa.tsv"},
			{Company: "Empresa_2", Path: "broken.tsv"},
		},
		ExcludedContracts: []CompanyTable{{Company: "Excluir_1", Path: "excluir.tsv"}},
		dir:               dir,
	}

	in, err := m.BuildInputs(context.Background(), spreadsheet.DefaultCatalogFilter())
	require.NoError(t, err)

	assert.Equal(t, 2, in.Planning.Catalog.Count())
	assert.Equal(t, 2, in.Catalog.KeptRows)

	v, ok := in.Planning.MexicoAvailability.GetFigure("P1")
	require.True(t, ok)
	assert.Equal(t, "4", v.String())
	v, ok = in.Planning.PolifiltroPrice.GetFigure("P1")
	require.True(t, ok)
	assert.Equal(t, "9.5", v.String())

	assert.Nil(t, in.Planning.PolifiltroAvailability)
	assert.Nil(t, in.Planning.PolifiltroBackorder, "duplicate codes reject the table")
	assert.Equal(t, []string{"BO Polifiltro", "Empresa_2"}, in.Rejected)

	require.Len(t, in.Planning.ActiveContracts, 1)
	assert.Equal(t, "Empresa_1", in.Planning.ActiveContracts[0].Company)
	require.Len(t, in.Planning.ExcludedContracts, 1)
	assert.Empty(t, in.Planning.MissingSources())
}

func TestBuildInputs_CatalogFailureAborts(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{Catalog: CatalogSource{Path: "missing.xlsx"}, dir: dir}

	_, err := m.BuildInputs(context.Background(), spreadsheet.DefaultCatalogFilter())
	assert.Error(t, err)
}
