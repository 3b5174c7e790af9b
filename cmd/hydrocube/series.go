package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/hydrocube/datapkg"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/timeline"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Load one variable and print the daily series of a cell or reach",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, v, err := loadSelectedVariable()
		if err != nil {
			return err
		}

		var s timeline.Series
		if pair := Cfg.GetString("reach"); pair != "" {
			river, reach, perr := parseReach(pair)
			if perr != nil {
				return perr
			}
			s, err = p.GetReachTimeSeries(river-1, reach-1, v, p.StartOfLoading())
		} else {
			s, err = p.GetTimeSeries(Cfg.GetInt("cell"), v)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, d := range s.Dates {
			fmt.Fprintf(out, "%s\t%g\n", d.Format(time.DateOnly), s.Values[i])
		}

		return nil
	},
}

// loadSelectedVariable resolves --package and --variable and loads that
// variable. Non-normal outcomes are logged but still return the package.
func loadSelectedVariable() (*datapkg.Package, int, error) {
	p, err := selectPackage()
	if err != nil {
		return nil, 0, err
	}
	v, err := resolveVariable(p.Variables, Cfg.GetString("variable"))
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := interruptContext()
	defer cancel()
	h, done := newHandler(ctx, p.Name)
	state, err := p.LoadVariable(v, h)
	done()
	if err != nil {
		return nil, 0, err
	}
	if state == format.FatalError {
		return nil, 0, fmt.Errorf("load %s: %s", p.Name, p.Message())
	}
	if state == format.Warning {
		log.WithField("package", p.Name).Warn(p.Message())
	}

	return p, v, nil
}

// resolveVariable accepts a 0-based index or a case-insensitive name.
func resolveVariable(names []string, s string) (int, error) {
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 || i >= len(names) {
			return 0, fmt.Errorf("variable index %d out of range [0, %d)", i, len(names))
		}

		return i, nil
	}
	for i, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), strings.TrimSpace(s)) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown variable %q", s)
}

// parseReach parses a 1-based "river:reach" pair.
func parseReach(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("reach %q must be river:reach", s)
	}
	river, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("reach %q: %w", s, err)
	}
	reach, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("reach %q: %w", s, err)
	}
	if river < 1 || reach < 1 {
		return 0, 0, fmt.Errorf("reach %q must be 1-based", s)
	}

	return river, reach, nil
}
