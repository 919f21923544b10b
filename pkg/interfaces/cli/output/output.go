package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vsinha/compras/pkg/application/dto"
	"github.com/vsinha/compras/pkg/application/services/purchase"
	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/infrastructure/repositories/spreadsheet"
)

// Exported file and sheet names
const (
	ResultsCSV      = "resultados_compras.csv"
	MexicoOrderCSV  = "oc_mexico.csv"
	PoliOrderCSV    = "oc_polifiltro.csv"
	ResultsJSON     = "resultados_compras.json"
	SummaryText     = "resumen_compras.txt"
	ResultsWorkbook = "resultados_compras_completo.xlsx"
	OrdersWorkbook  = "ordenes_compra_proveedores.xlsx"
	ResultsSheet    = "Resultados"
	MexicoSheet     = "OC México"
	PoliSheet       = "OC Polifiltro"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
	// Rejected names tables that failed to load and were treated as absent
	Rejected []string
	Stdout   io.Writer
}

func (c Config) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

// Generate creates output in the specified format
func Generate(result *dto.PurchaseResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "xlsx":
		return generateXLSXOutput(result, config)
	default:
		return eris.Errorf("output: unsupported format %q", config.Format)
	}
}

// generateTextOutput prints the summary and, with an output directory, saves it
func generateTextOutput(result *dto.PurchaseResult, config Config) error {
	if err := WriteSummary(config.stdout(), result, config); err != nil {
		return err
	}
	if config.OutputDir == "" {
		return nil
	}

	if err := ensureDir(config.OutputDir); err != nil {
		return err
	}
	filename := filepath.Join(config.OutputDir, SummaryText)
	f, err := os.Create(filename)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", filename)
	}
	defer f.Close()

	if err := WriteSummary(f, result, config); err != nil {
		return err
	}
	return announce(config, filename)
}

// WriteSummary renders the run summary with Spanish number formatting
func WriteSummary(w io.Writer, result *dto.PurchaseResult, config Config) error {
	p := message.NewPrinter(language.Spanish)
	s := result.Summary

	p.Fprintf(w, "Resumen de compra\n")
	p.Fprintf(w, "=================\n\n")
	p.Fprintf(w, "%-28s %12d\n", "Códigos analizados", s.TotalCodes)
	p.Fprintf(w, "%-28s %12d\n", "Códigos a comprar México", s.MexicoCodes)
	p.Fprintf(w, "%-28s %12d\n", "Códigos a comprar Polifiltro", s.PolifiltroCodes)
	p.Fprintf(w, "%-28s %12d\n", "Unidades México", s.MexicoUnits)
	p.Fprintf(w, "%-28s %12d\n", "Unidades Polifiltro", s.PolifiltroUnits)
	p.Fprintf(w, "%-28s %12.2f\n", "Monto México", s.MexicoAmount.InexactFloat64())
	p.Fprintf(w, "%-28s %12.2f\n", "Monto Polifiltro", s.PolifiltroAmount.InexactFloat64())
	if config.Elapsed > 0 {
		p.Fprintf(w, "%-28s %12s\n", "Tiempo de cálculo", config.Elapsed.Round(time.Millisecond))
	}

	p.Fprintf(w, "\nDistribución por caso\n")
	cases := make([]string, 0, len(s.CaseCounts))
	for c := range s.CaseCounts {
		cases = append(cases, string(c))
	}
	sort.Strings(cases)
	for _, c := range cases {
		p.Fprintf(w, "  Caso %-3s %8d\n", c, s.CaseCounts[entities.AllocationCase(c)])
	}

	if len(config.Rejected) > 0 {
		p.Fprintf(w, "\nTablas rechazadas (tratadas como ausentes)\n")
		for _, r := range config.Rejected {
			p.Fprintf(w, "  - %s\n", r)
		}
	}
	return nil
}

// generateJSONOutput writes the full result as JSON
func generateJSONOutput(result *dto.PurchaseResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return eris.Wrap(err, "output: marshal json")
	}

	if config.OutputDir == "" {
		_, err := fmt.Fprintln(config.stdout(), string(jsonData))
		return eris.Wrap(err, "output: write json")
	}

	if err := ensureDir(config.OutputDir); err != nil {
		return err
	}
	filename := filepath.Join(config.OutputDir, ResultsJSON)
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return eris.Wrapf(err, "output: write %s", filename)
	}
	return announce(config, filename)
}

// generateCSVOutput writes the result table and one order file per supplier
func generateCSVOutput(result *dto.PurchaseResult, config Config) error {
	if config.OutputDir == "" {
		return eris.New("output: output directory required for csv format")
	}
	if err := ensureDir(config.OutputDir); err != nil {
		return err
	}

	files := []struct {
		name    string
		header  interface{}
		records interface{}
	}{
		{ResultsCSV, resultRecord{}, resultRecords(result.Lines)},
		{MexicoOrderCSV, orderRecord{}, orderRecords(purchase.PurchaseOrders(result.Lines, entities.SupplierMexico))},
		{PoliOrderCSV, orderRecord{}, orderRecords(purchase.PurchaseOrders(result.Lines, entities.SupplierPolifiltro))},
	}
	for _, f := range files {
		filename := filepath.Join(config.OutputDir, f.name)
		if err := writeCSV(filename, f.header, f.records); err != nil {
			return err
		}
		if err := announce(config, filename); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(filename string, header, records interface{}) error {
	f, err := os.Create(filename)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", filename)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	if err := enc.EncodeHeader(header); err != nil {
		return eris.Wrapf(err, "output: header %s", filename)
	}
	if err := enc.Encode(records); err != nil {
		return eris.Wrapf(err, "output: encode %s", filename)
	}
	w.Flush()
	return eris.Wrapf(w.Error(), "output: flush %s", filename)
}

// generateXLSXOutput writes the results workbook and the supplier orders workbook
func generateXLSXOutput(result *dto.PurchaseResult, config Config) error {
	if config.OutputDir == "" {
		return eris.New("output: output directory required for xlsx format")
	}
	if err := ensureDir(config.OutputDir); err != nil {
		return err
	}

	resultsSheet, err := resultSheet(result.Lines)
	if err != nil {
		return err
	}
	mexico, err := orderSheet(MexicoSheet, purchase.PurchaseOrders(result.Lines, entities.SupplierMexico))
	if err != nil {
		return err
	}
	poli, err := orderSheet(PoliSheet, purchase.PurchaseOrders(result.Lines, entities.SupplierPolifiltro))
	if err != nil {
		return err
	}

	resultsFile := filepath.Join(config.OutputDir, ResultsWorkbook)
	if err := spreadsheet.WriteWorkbook(resultsFile, []spreadsheet.Sheet{resultsSheet}); err != nil {
		return err
	}
	ordersFile := filepath.Join(config.OutputDir, OrdersWorkbook)
	if err := spreadsheet.WriteWorkbook(ordersFile, []spreadsheet.Sheet{mexico, poli}); err != nil {
		return err
	}

	if err := announce(config, resultsFile); err != nil {
		return err
	}
	return announce(config, ordersFile)
}

func resultSheet(lines []entities.PurchaseLine) (spreadsheet.Sheet, error) {
	header, err := csvutil.Header(resultRecord{}, "csv")
	if err != nil {
		return spreadsheet.Sheet{}, eris.Wrap(err, "output: result header")
	}
	sheet := spreadsheet.Sheet{Name: ResultsSheet, Header: header}
	for _, r := range resultRecords(lines) {
		sheet.Rows = append(sheet.Rows, r.cells())
	}
	return sheet, nil
}

func orderSheet(name string, orders []dto.PurchaseOrderLine) (spreadsheet.Sheet, error) {
	header, err := csvutil.Header(orderRecord{}, "csv")
	if err != nil {
		return spreadsheet.Sheet{}, eris.Wrap(err, "output: order header")
	}
	sheet := spreadsheet.Sheet{Name: name, Header: header}
	for _, r := range orderRecords(orders) {
		sheet.Rows = append(sheet.Rows, r.cells())
	}
	return sheet, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return eris.Wrapf(err, "output: create directory %s", dir)
	}
	return nil
}

func announce(config Config, filename string) error {
	if !config.Verbose {
		return nil
	}
	_, err := fmt.Fprintf(config.stdout(), "💾 Saved: %s\n", filename)
	return eris.Wrap(err, "output: announce")
}
