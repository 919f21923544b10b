package main

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/compras/pkg/interfaces/cli/commands"
)

var (
	calcManifest string
	calcFormat   string
	calcOutput   string
	calcSheet    string
	calcVerbose  bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute the purchase split for a run manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := cfg.PurchasePolicy()
		if err != nil {
			return err
		}

		format := calcFormat
		if !cmd.Flags().Changed("format") {
			format = cfg.Output.Format
		}
		outputDir := calcOutput
		if !cmd.Flags().Changed("output") {
			outputDir = cfg.Output.Dir
		}
		sheet := calcSheet
		if sheet == "" {
			sheet = cfg.Catalog.Sheet
		}

		return commands.NewCalculateCommand(commands.Config{
			ManifestPath:  calcManifest,
			OutputDir:     outputDir,
			Format:        format,
			Verbose:       calcVerbose,
			CatalogSheet:  sheet,
			CatalogFilter: cfg.CatalogFilter(),
			Policy:        policy,
			Stdout:        cmd.OutOrStdout(),
		}).Execute(cmd.Context())
	},
}

func init() {
	calculateCmd.Flags().StringVar(&calcManifest, "manifest", "", "run manifest naming the catalog, side tables and contracts (required)")
	calculateCmd.Flags().StringVar(&calcFormat, "format", "text", "output format: text, json, csv, xlsx")
	calculateCmd.Flags().StringVar(&calcOutput, "output", "", "output directory for result files")
	calculateCmd.Flags().StringVar(&calcSheet, "sheet", "", "catalog sheet name, overrides the manifest")
	calculateCmd.Flags().BoolVarP(&calcVerbose, "verbose", "v", false, "print load details and saved files")
	_ = calculateCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(calculateCmd)
}
