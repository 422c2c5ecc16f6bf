package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/variant-cli/internal/model"
	"github.com/sells-group/variant-cli/internal/store"
)

var (
	templateName    string
	templateMinFreq float64
	templateMinCov  int
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage reusable parameter presets",
}

// -- templates save --

var templatesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the given thresholds as a named preset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		kv, err := initKV()
		if err != nil {
			return err
		}
		defer kv.Close() //nolint:errcheck

		params := model.AnalysisParameters{
			MinFrequency: templateMinFreq,
			MinCoverage:  templateMinCov,
		}
		if err := store.NewTemplates(kv).Save(ctx, templateName, params); err != nil {
			return err
		}

		zap.L().Info("template saved",
			zap.String("name", templateName),
			zap.Float64("min_frequency", params.MinFrequency),
			zap.Int("min_coverage", params.MinCoverage),
		)
		return nil
	},
}

// -- templates list --

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		kv, err := initKV()
		if err != nil {
			return err
		}
		defer kv.Close() //nolint:errcheck

		templates := store.NewTemplates(kv).List(ctx)
		if len(templates) == 0 {
			fmt.Fprintln(os.Stderr, "No templates saved.")
			return nil
		}

		formatTemplateList(os.Stdout, templates)
		return nil
	},
}

func formatTemplateList(w io.Writer, templates []model.ParameterTemplate) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMIN_FREQ\tMIN_COV")
	for _, t := range templates {
		fmt.Fprintf(tw, "%s\t%g\t%d\n", t.Name, t.MinFrequency, t.MinCoverage)
	}
	tw.Flush()
}

func init() {
	templatesSaveCmd.Flags().StringVar(&templateName, "name", "", "template name (required)")
	templatesSaveCmd.Flags().Float64Var(&templateMinFreq, "min-frequency", 0.01, "minimum variant frequency")
	templatesSaveCmd.Flags().IntVar(&templateMinCov, "min-coverage", 20, "minimum read coverage")
	_ = templatesSaveCmd.MarkFlagRequired("name")

	templatesCmd.AddCommand(templatesSaveCmd)
	templatesCmd.AddCommand(templatesListCmd)
	rootCmd.AddCommand(templatesCmd)
}
