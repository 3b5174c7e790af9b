package main

import (
	"fmt"

	"github.com/arloliu/hydrocube"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hydrocube",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hydrocube v%s\n", hydrocube.Version)
	},
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
}
