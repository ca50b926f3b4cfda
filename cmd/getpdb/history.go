package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/macromol/getpdb/internal/history"
	"github.com/macromol/getpdb/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past fetch outcomes",
	Long: `History queries the local fetch ledger. Every fetch invocation records
one row per identifier: the serving host, the output path, and the error
when the fetch failed.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("identifier", "", "filter by identifier")
	historyCmd.Flags().String("host", "", "filter by serving host")
	historyCmd.Flags().String("status", "", "filter by status: fetched or failed")
	historyCmd.Flags().Int("limit", 0, "maximum number of rows (default 20)")
	historyCmd.Flags().Bool("json", false, "output rows as JSON")
	historyCmd.Flags().String("export", "", "write matching rows to a YAML file")

	rootCmd.AddCommand(historyCmd)
}

// historyDir returns the configured ledger directory, defaulting to
// .getpdb in the current directory.
func historyDir() string {
	if dir := viper.GetString("history_dir"); dir != "" {
		return dir
	}
	return ".getpdb"
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(types.HistoryConfig{
		HistoryDir: historyDir(),
		MaxResults: viper.GetInt("max_results"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	identifier, _ := cmd.Flags().GetString("identifier")
	host, _ := cmd.Flags().GetString("host")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := history.QueryOptions{
		Identifier: identifier,
		Host:       host,
		Status:     status,
		Limit:      limit,
	}

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := store.ExportYAML(cmd.Context(), exportPath, opts); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Exported history to", exportPath)
		return nil
	}

	records, err := store.Query(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No history.")
		return nil
	}

	fmt.Printf("%-12s  %-5s  %-12s  %-8s  %-20s  %s\n",
		"Identifier", "Type", "Host", "Status", "When", "Output")
	for _, rec := range records {
		when := ""
		if !rec.Timestamp.IsZero() {
			when = rec.Timestamp.Local().Format("2006-01-02 15:04:05")
		}
		out := rec.OutputPath
		if rec.Status == types.StatusFailed {
			out = rec.Error
		}
		fmt.Printf("%-12s  %-5s  %-12s  %-8s  %-20s  %s\n",
			rec.Identifier, rec.FileType, rec.Host, rec.Status, when, out)
	}
	return nil
}
