package main

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/compras/pkg/interfaces/cli/commands"
)

var (
	genOutput    string
	genProducts  int
	genCompanies int
	genSeed      int64
	genVerbose   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic purchase scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.NewGenerateCommand(commands.GenerateConfig{
			Products:  genProducts,
			Companies: genCompanies,
			OutputDir: genOutput,
			Seed:      genSeed,
			Verbose:   genVerbose,
			Stdout:    cmd.OutOrStdout(),
		}).Execute(cmd.Context())
	},
}

func init() {
	generateCmd.Flags().StringVar(&genOutput, "output", "", "output directory for the scenario (required)")
	generateCmd.Flags().IntVar(&genProducts, "products", 200, "number of catalog rows")
	generateCmd.Flags().IntVar(&genCompanies, "companies", 2, "number of active-contract companies")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed, 0 picks one from the clock")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "print progress")
	_ = generateCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(generateCmd)
}
