package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/manifest"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/spreadsheet"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Products  int    // Number of planned catalog rows
	Companies int    // Number of active-contract companies
	OutputDir string // Output directory for generated files
	Seed      int64  // Random seed for reproducible generation
	Verbose   bool
	Stdout    io.Writer
}

// GenerateCommand writes a synthetic purchase scenario: catalog, side tables, contracts and manifest
type GenerateCommand struct {
	config GenerateConfig
	faker  *gofakeit.Faker
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}

	return &GenerateCommand{
		config: config,
		faker:  gofakeit.New(uint64(seed)),
	}
}

var (
	classifications = []string{"AA", "AB", "AC", "BA", "BB", "BC", "CA", "CB", "CC"}
	boxSizes        = []int{1, 1, 4, 6, 10, 12, 24}
	filterTypes     = []string{"Filtro aire", "Filtro aceite", "Filtro combustible", "Filtro hidráulico", "Separador agua"}
	activeGroups    = []string{"DNS - General", "DNS - Mineria", "DNS - Transporte"}
)

// generatedProduct is one synthetic catalog row before it is written
type generatedProduct struct {
	code  string
	row   []interface{}
	price float64
}

type contractRow struct {
	Code       string `csv:"codigo"`
	Billed     int    `csv:"q_fact"`
	Contracted int    `csv:"q_contrato"`
}

type exclusionRow struct {
	Code string `csv:"codigo"`
	Q3   int    `csv:"q_3m"`
	Q6   int    `csv:"q_6m"`
	Q12  int    `csv:"q_12m"`
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Products <= 0 {
		return eris.New("generate: products must be positive")
	}
	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Stdout, "🔧 Generating scenario with %d products and %d contract companies\n",
			cmd.config.Products, cmd.config.Companies)
		fmt.Fprintf(cmd.config.Stdout, "📁 Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return eris.Wrapf(err, "generate: create output directory %s", cmd.config.OutputDir)
	}

	m := &manifest.Manifest{
		Catalog: manifest.CatalogSource{Path: "repo.xlsx", Sheet: "REPO"},
	}

	products := cmd.generateProducts()
	if err := cmd.writeCatalog(m.Catalog.Path, products); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sides := map[entities.SideTableKind]*string{
		entities.MexicoAvailability:     &m.SideTables.MexicoAvailability,
		entities.MexicoBackorder:        &m.SideTables.MexicoBackorder,
		entities.PolifiltroAvailability: &m.SideTables.PolifiltroAvailability,
		entities.PolifiltroBackorder:    &m.SideTables.PolifiltroBackorder,
		entities.PolifiltroPrice:        &m.SideTables.PolifiltroPrice,
	}
	for _, kind := range entities.SideTableKinds {
		name := kind.Column() + ".tsv"
		if err := cmd.writeSideTable(name, kind, products); err != nil {
			return err
		}
		*sides[kind] = name
	}

	for i := 0; i < cmd.config.Companies; i++ {
		table := manifest.CompanyTable{
			Company: cmd.faker.Company(),
			Path:    fmt.Sprintf("contratos_empresa_%d.tsv", i+1),
		}
		if err := cmd.writeActiveContracts(table.Path, products); err != nil {
			return err
		}
		m.ActiveContracts = append(m.ActiveContracts, table)
	}

	exclusion := manifest.CompanyTable{Path: "excluir_1.tsv"}
	if err := cmd.writeExcludedContracts(exclusion.Path, products); err != nil {
		return err
	}
	m.ExcludedContracts = append(m.ExcludedContracts, exclusion)

	manifestPath := filepath.Join(cmd.config.OutputDir, manifest.FileName)
	if err := m.Save(manifestPath); err != nil {
		return err
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Stdout, "✅ Scenario generated successfully, run it with: compras calculate --manifest %s\n", manifestPath)
	}
	return nil
}

// generateProducts creates planned rows plus a share of rows the catalog filter must drop
func (cmd *GenerateCommand) generateProducts() []generatedProduct {
	f := cmd.faker
	products := make([]generatedProduct, 0, cmd.config.Products)

	for i := 0; i < cmd.config.Products; i++ {
		code := fmt.Sprintf("P%06d", i+1)
		billed12 := f.IntRange(0, 1200)
		billed6 := billed12 / 2 * f.IntRange(80, 120) / 100
		billed3 := billed6 / 2 * f.IntRange(70, 130) / 100
		price := round2(f.Float64Range(4, 350))

		family, subfamily, group, inactive := "Filtros", "Donaldson", activeGroups[f.IntRange(0, len(activeGroups)-1)], "No"
		switch roll := f.IntRange(1, 100); {
		case roll <= 4:
			inactive = "Si"
		case roll <= 7:
			group = "DNS - Inmovilizado"
		case roll <= 10:
			subfamily = "Fleetguard"
		}

		products = append(products, generatedProduct{
			code:  code,
			price: price,
			row: []interface{}{
				family, subfamily, group, inactive, code,
				"P" + f.DigitN(6),
				filterTypes[f.IntRange(0, len(filterTypes)-1)],
				f.ProductName(),
				classifications[f.IntRange(0, len(classifications)-1)],
				f.IntRange(0, billed12/6+1),
				billed3, billed6, billed12,
				f.IntRange(0, 20), f.IntRange(0, 20),
				decimal.NewFromFloat(price),
				boxSizes[f.IntRange(0, len(boxSizes)-1)],
			},
		})
	}
	return products
}

func (cmd *GenerateCommand) writeCatalog(name string, products []generatedProduct) error {
	sheet := spreadsheet.Sheet{Name: "REPO", Header: spreadsheet.CatalogHeader}
	for _, p := range products {
		sheet.Rows = append(sheet.Rows, p.row)
	}
	return spreadsheet.WriteWorkbook(filepath.Join(cmd.config.OutputDir, name), []spreadsheet.Sheet{sheet})
}

// writeSideTable writes a pasted code/value table covering part of the catalog
func (cmd *GenerateCommand) writeSideTable(name string, kind entities.SideTableKind, products []generatedProduct) error {
	coverage := map[entities.SideTableKind]int{
		entities.MexicoAvailability:     60,
		entities.MexicoBackorder:        30,
		entities.PolifiltroAvailability: 40,
		entities.PolifiltroBackorder:    20,
		entities.PolifiltroPrice:        85,
	}[kind]

	return cmd.writeTSV(name, func(w *csv.Writer) error {
		if err := w.Write([]string{"codigo", kind.Column()}); err != nil {
			return err
		}
		for _, p := range products {
			if cmd.faker.IntRange(1, 100) > coverage {
				continue
			}
			var value string
			if kind == entities.PolifiltroPrice {
				value = decimal.NewFromFloat(round2(p.price * cmd.faker.Float64Range(0.8, 1.15))).String()
			} else {
				value = fmt.Sprint(cmd.faker.IntRange(1, 60))
			}
			if err := w.Write([]string{p.code, value}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (cmd *GenerateCommand) writeActiveContracts(name string, products []generatedProduct) error {
	var rows []contractRow
	for _, p := range products {
		if cmd.faker.IntRange(1, 100) > 10 {
			continue
		}
		rows = append(rows, contractRow{
			Code:       p.code,
			Billed:     cmd.faker.IntRange(0, 200),
			Contracted: cmd.faker.IntRange(10, 240),
		})
	}
	return cmd.encodeTSV(name, contractRow{}, rows)
}

func (cmd *GenerateCommand) writeExcludedContracts(name string, products []generatedProduct) error {
	var rows []exclusionRow
	for _, p := range products {
		if cmd.faker.IntRange(1, 100) > 5 {
			continue
		}
		q3 := cmd.faker.IntRange(0, 30)
		rows = append(rows, exclusionRow{Code: p.code, Q3: q3, Q6: q3 * 2, Q12: q3 * 4})
	}
	return cmd.encodeTSV(name, exclusionRow{}, rows)
}

func (cmd *GenerateCommand) encodeTSV(name string, header, rows interface{}) error {
	return cmd.writeTSV(name, func(w *csv.Writer) error {
		enc := csvutil.NewEncoder(w)
		if err := enc.EncodeHeader(header); err != nil {
			return err
		}
		return enc.Encode(rows)
	})
}

func (cmd *GenerateCommand) writeTSV(name string, write func(*csv.Writer) error) error {
	path := filepath.Join(cmd.config.OutputDir, name)
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "generate: create %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = '\t'
	if err := write(w); err != nil {
		return eris.Wrapf(err, "generate: write %s", path)
	}
	w.Flush()
	return eris.Wrapf(w.Error(), "generate: flush %s", path)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
