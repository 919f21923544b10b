package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vsinha/compras/pkg/application/services/purchase"
	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/manifest"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/spreadsheet"
	"github.com/vsinha/compras/pkg/interfaces/cli/output"
)

// Config holds configuration for the calculate command
type Config struct {
	ManifestPath  string
	OutputDir     string
	Format        string
	Verbose       bool
	CatalogSheet  string
	CatalogFilter spreadsheet.CatalogFilter
	Policy        entities.Policy
	Stdout        io.Writer
}

// CalculateCommand loads a run manifest, computes the purchase and writes the reports
type CalculateCommand struct {
	config Config
}

// NewCalculateCommand creates a new calculate command with the given configuration
func NewCalculateCommand(config Config) *CalculateCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &CalculateCommand{config: config}
}

// Execute runs the calculate command
func (c *CalculateCommand) Execute(ctx context.Context) error {
	if c.config.ManifestPath == "" {
		return eris.New("calculate: a manifest file is required")
	}

	m, err := manifest.Load(c.config.ManifestPath)
	if err != nil {
		return err
	}
	if c.config.CatalogSheet != "" {
		m.Catalog.Sheet = c.config.CatalogSheet
	}

	if c.config.Verbose {
		c.printHeader(m)
		fmt.Fprintln(c.config.Stdout, "📂 Loading catalog and pasted tables...")
	}

	inputs, err := m.BuildInputs(ctx, c.config.CatalogFilter)
	if err != nil {
		return eris.Wrap(err, "calculate: load inputs")
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.Stdout, "✅ Catalog: %d rows, %d kept, %d excluded by filter\n",
			inputs.Catalog.TotalRows, inputs.Catalog.KeptRows, inputs.Catalog.ExcludedRows())
		for _, kind := range entities.SideTableKinds {
			if t := inputs.Planning.SideTable(kind); t != nil {
				fmt.Fprintf(c.config.Stdout, "  %-20s %d codes\n", kind, t.Count())
			}
		}
		fmt.Fprintf(c.config.Stdout, "  Active contracts: %d companies, excluded contracts: %d companies\n\n",
			len(inputs.Planning.ActiveContracts), len(inputs.Planning.ExcludedContracts))
	}

	svc := purchase.NewPurchaseServiceWithPolicy(c.config.Policy)
	startTime := time.Now()
	result, err := svc.Calculate(ctx, inputs.Planning)
	if err != nil {
		if eris.Is(err, entities.ErrInsufficientInputs) && len(inputs.Rejected) > 0 {
			zap.L().Warn("rejected tables left the run without required inputs",
				zap.Strings("rejected", inputs.Rejected))
		}
		return eris.Wrap(err, "calculate: purchase run failed")
	}
	elapsed := time.Since(startTime)

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Elapsed:   elapsed,
		Rejected:  inputs.Rejected,
		Stdout:    c.config.Stdout,
	})
}

func (c *CalculateCommand) printHeader(m *manifest.Manifest) {
	w := c.config.Stdout
	fmt.Fprintf(w, "🛒 Filter Purchase Calculator\n")
	fmt.Fprintf(w, "=============================\n")
	fmt.Fprintf(w, "Manifest: %s\n", c.config.ManifestPath)
	fmt.Fprintf(w, "Catalog: %s\n", m.Resolve(m.Catalog.Path))
	for _, kind := range entities.SideTableKinds {
		path := m.SideTables.Path(kind)
		if path == "" {
			path = "(not supplied)"
		} else {
			path = m.Resolve(path)
		}
		fmt.Fprintf(w, "%s: %s\n", kind, path)
	}
	fmt.Fprintf(w, "Format: %s\n\n", c.config.Format)
}
