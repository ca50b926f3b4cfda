package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macromol/getpdb/internal/fetch"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List databases and the file types they serve",
	Long: `Hosts prints the host registry in fallback order together with the
file types each database can serve.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, h := range fetch.Registry(nil) {
			fmt.Printf("%-12s  %s\n", h.Name(), strings.Join(h.Capabilities(), ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(hostsCmd)
}
