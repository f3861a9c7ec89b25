package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hostforge/adapters/storage"
	"hostforge/core/catalog"
	"hostforge/core/output"
)

var (
	historySector string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect generated batches",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List batches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a batch from history (identifiers stay allocated)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyListCmd.Flags().StringVar(&historySector, "sector", "", "only batches for this sector")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of batches")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	batches, err := eng.History(cmd.Context(), &storage.ListFilter{
		Sector: catalog.NormalizeName(historySector),
		Limit:  historyLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return render(out, batches, func() {
		if len(batches) == 0 {
			fmt.Fprintln(out, "No batches recorded.")
			return
		}
		output.WriteBatchTable(out, batches)
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	batch, err := eng.Batch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return render(out, batch, func() {
		r := batch.Request
		fmt.Fprintf(out, "Batch:    %s\n", batch.ID)
		fmt.Fprintf(out, "Created:  %s\n", batch.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(out, "Request:  %s / %s / %s / %s x%d\n", r.Vendor, r.Type, r.Sector, r.Location, r.Count)
		fmt.Fprintf(out, "Hostnames:\n  %s\n", strings.Join(batch.Hostnames, "\n  "))
	})
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.DeleteBatch(cmd.Context(), args[0]); err != nil {
		return err
	}
	newUIWriter(cmd.OutOrStdout()).Success("deleted batch %s", args[0])
	return nil
}
