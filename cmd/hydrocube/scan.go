package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the packages of a manifest with their variables and step counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		model, err := loadModel()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PACKAGE\tFORMAT\tFILE\tSTEPS\tLAYERS\tVARIABLES")
		for _, p := range model.Packages {
			found, err := p.Scan()
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(w, "%s\t%s\t%s\tmissing\t-\t-\n", p.Name, p.Format, p.FileName)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				p.Name, p.Format, p.FileName, p.NumTimeStep(), p.NumLayer(), strings.Join(p.Variables, ", "))
		}

		return w.Flush()
	},
}
