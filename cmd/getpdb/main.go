// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the getpdb CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is constructed once before any subcommand runs and passed by
// value into the fetch and history packages. No package mutates global
// logging state after this point.
var logger zerolog.Logger

// rootCmd is the base command for the getpdb CLI.
var rootCmd = &cobra.Command{
	Use:   "getpdb",
	Short: "Fetch molecular structure files from public databases",
	Long: `getpdb retrieves molecular structure records by identifier (PDB ID,
PubChem CID, UniProt accession) from the RCSB archive, the RCSB ligand
archive, PubChem, and AlphaFold. Databases are tried in a fixed order
until one can serve the requested file type; each successful fetch is
written to <identifier>.<type>.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./getpdb.yaml or ~/.config/getpdb/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "provide verbose output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("getpdb")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "getpdb"))
		}
	}

	viper.SetEnvPrefix("GETPDB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
