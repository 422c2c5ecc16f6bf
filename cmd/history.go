package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/variant-cli/internal/model"
	"github.com/sells-group/variant-cli/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and replay past analysis runs",
	Long:  "Commands for listing, viewing, and replaying recorded analysis runs.",
}

// -- history list --

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded analysis runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		kv, err := initKV()
		if err != nil {
			return err
		}
		defer kv.Close() //nolint:errcheck

		entries := store.NewHistory(kv).List(ctx)
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "No history entries.")
			return nil
		}

		formatHistoryList(os.Stdout, entries)
		return nil
	},
}

// -- history show --

var historyShowCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show a recorded run in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		kv, err := initKV()
		if err != nil {
			return err
		}
		defer kv.Close() //nolint:errcheck

		entry := store.NewHistory(kv).Get(ctx, args[0])
		if entry == nil {
			return eris.Errorf("history entry %s not found", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	},
}

// -- history replay --

var historyReplayCmd = &cobra.Command{
	Use:   "replay <entry-id>",
	Short: "Re-run a recorded analysis with its original inputs",
	Long:  "Replays the recorded samples and parameters against the live services. Results may differ from those originally stored.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		kv, err := initKV()
		if err != nil {
			return err
		}
		defer kv.Close() //nolint:errcheck

		entry := store.NewHistory(kv).Get(ctx, args[0])
		if entry == nil {
			return eris.Errorf("history entry %s not found", args[0])
		}

		results, err := newOrchestrator(kv).Replay(ctx, *entry)
		if err != nil {
			return err
		}

		zap.L().Info("replay complete",
			zap.String("entry", entry.ID),
			zap.Int("samples", len(results)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func formatHistoryList(w io.Writer, entries []model.HistoryEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tSAMPLES\tMIN_FREQ\tMIN_COV")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%g\t%d\n",
			e.ID,
			e.Time.Format("2006-01-02 15:04:05"),
			len(e.Samples),
			e.Params.MinFrequency,
			e.Params.MinCoverage,
		)
	}
	tw.Flush()
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyReplayCmd)
	rootCmd.AddCommand(historyCmd)
}
