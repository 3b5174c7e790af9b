package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Load one stream variable and print its longitudinal profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, v, err := loadSelectedVariable()
		if err != nil {
			return err
		}

		rivers := Cfg.GetIntSlice("rivers")
		if len(rivers) == 0 {
			return errors.New("--rivers is required")
		}
		prof, err := p.ProfileTimeSeries(rivers, v, Cfg.GetInt("step"),
			Cfg.GetBool("all-reaches"), Cfg.GetBool("unified"))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i := range prof.Len() {
			fmt.Fprintf(out, "%g\t%g\n", prof.Distance[i], prof.Values[i])
		}

		return nil
	},
}
