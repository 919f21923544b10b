package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/compras/pkg/infrastructure/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "compras",
	Short:         "Donaldson filter purchase calculator",
	Long:          "Splits the monthly Donaldson filter purchase between Mexico and Polifiltro from the REPO export, supplier tables and customer contracts.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Stack traces only when debugging
		withTrace := cfg != nil && cfg.Log.Level == "debug"
		fmt.Fprintln(os.Stderr, "Error:", eris.ToString(err, withTrace))
		os.Exit(1)
	}
}
