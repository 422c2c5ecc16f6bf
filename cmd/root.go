package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/variant-cli/internal/config"
	"github.com/sells-group/variant-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "variant-cli",
	Short: "Viral variant analysis workbench",
	Long:  "Submits sequence samples for variant analysis, enriches results with AI pathogenicity predictions, and manages analysis history, parameter templates, and report exports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initKV opens the durable local store the history and template stores
// share.
func initKV() (store.KV, error) {
	return store.NewSQLite(cfg.Store.Path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
