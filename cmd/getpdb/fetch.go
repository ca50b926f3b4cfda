package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/macromol/getpdb/internal/fetch"
	"github.com/macromol/getpdb/internal/history"
	"github.com/macromol/getpdb/internal/httputil"
	"github.com/macromol/getpdb/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "getpdb/0.2"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [identifiers...]",
	Short: "Fetch structure files by identifier",
	Long: `Fetch resolves structure identifiers (PDB IDs, PubChem CIDs, UniProt
accessions) against the host registry and writes one file per identifier.
When no file type is given, identifiers shorter than four characters
default to sdf and longer ones to cif. A failed identifier never aborts
the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("type", "o", "", "output file type (supported file types depend on host)")
	fetchCmd.Flags().StringP("dir", "d", "", "path to a directory that will store the files")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive identifiers")
	fetchCmd.Flags().Bool("no-ssl-verify", false, "disable SSL verification when making requests")
	fetchCmd.Flags().Bool("no-history", false, "do not record outcomes in the fetch history")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	fileType, _ := cmd.Flags().GetString("type")
	if fileType == "" {
		fileType = viper.GetString("file_type")
	}

	outputDir, _ := cmd.Flags().GetString("dir")
	if outputDir == "" {
		outputDir = viper.GetString("output_dir")
	}

	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("download_delay")
	}

	noVerify, _ := cmd.Flags().GetBool("no-ssl-verify")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:            timeout,
			UserAgent:          userAgent,
			InsecureSkipVerify: noVerify || viper.GetBool("insecure_skip_verify"),
		},
		FileType:      fileType,
		OutputDir:     outputDir,
		DownloadDelay: delay,
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	hosts := fetch.Registry(client)

	var ledger fetch.Ledger
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		store, err := history.NewStore(types.HistoryConfig{HistoryDir: historyDir()})
		if err != nil {
			logger.Warn().Err(err).Msg("fetch history disabled")
		} else {
			defer store.Close()
			ledger = store
		}
	}

	result := fetch.FetchBatch(cmd.Context(), hosts, args, cfg, ledger, logger)
	if result.HasFailures() {
		return fmt.Errorf("%d identifier(s) failed", result.Failed)
	}
	return nil
}
