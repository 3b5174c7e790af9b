package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/arloliu/hydrocube/datapkg"
	"github.com/arloliu/hydrocube/manifest"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds the merged flag, environment and config file settings.
var Cfg = viper.New()

// Root is the top-level command.
var Root = &cobra.Command{
	Use:   "hydrocube",
	Short: "Inspect and extract hydrological model results.",
	Long: `hydrocube loads cell-budget and stream-network result files listed in a
model manifest and prints their contents as time series or river profiles.

Every flag can also be set through a HYDROCUBE_ environment variable or a
TOML file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setConfig(cmd.Flags())
	},
}

type option struct {
	name, usage, shorthand string
	defaultVal             any
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	Root.AddCommand(versionCmd, scanCmd, seriesCmd, profileCmd)

	options = []option{
		{
			name:       "config",
			usage:      "config file location (TOML)",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "manifest",
			usage:      "model manifest describing the grid, network, calendar and packages",
			shorthand:  "m",
			defaultVal: "./model.toml",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "log level: debug, info, warn or error",
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "memory-limit",
			usage:      "maximum bytes a loaded cube may hold, 0 for unlimited",
			defaultVal: int64(0),
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "no-progress",
			usage:      "disable the progress bar",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "package",
			usage:      "name of the manifest package to read",
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{seriesCmd.Flags(), profileCmd.Flags()},
		},
		{
			name:       "variable",
			usage:      "variable name or 0-based index",
			shorthand:  "v",
			defaultVal: "0",
			flagsets:   []*pflag.FlagSet{seriesCmd.Flags(), profileCmd.Flags()},
		},
		{
			name:       "cell",
			usage:      "0-based spatial index of the series",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{seriesCmd.Flags()},
		},
		{
			name:       "reach",
			usage:      "1-based river:reach pair; overrides --cell for stream output",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{seriesCmd.Flags()},
		},
		{
			name:       "step",
			usage:      "0-based timestep of the profile",
			shorthand:  "t",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{profileCmd.Flags()},
		},
		{
			name:       "rivers",
			usage:      "1-based river ids along the profile, upstream first",
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{profileCmd.Flags()},
		},
		{
			name:       "all-reaches",
			usage:      "emit one profile point per reach instead of per river",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{profileCmd.Flags()},
		},
		{
			name:       "unified",
			usage:      "divide values by reach length",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{profileCmd.Flags()},
		},
	}

	for _, o := range options {
		for _, set := range o.flagsets {
			switch v := o.defaultVal.(type) {
			case string:
				set.StringP(o.name, o.shorthand, v, o.usage)
			case bool:
				set.BoolP(o.name, o.shorthand, v, o.usage)
			case int:
				set.IntP(o.name, o.shorthand, v, o.usage)
			case int64:
				set.Int64P(o.name, o.shorthand, v, o.usage)
			case []int:
				set.IntSliceP(o.name, o.shorthand, v, o.usage)
			default:
				panic(fmt.Sprintf("invalid flag type %T for %s", v, o.name))
			}
		}
	}

	Cfg.SetEnvPrefix("HYDROCUBE")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	Cfg.AutomaticEnv()
}

// setConfig binds the flags of the running command and reads the optional
// config file.
func setConfig(flags *pflag.FlagSet) error {
	if err := Cfg.BindPFlags(flags); err != nil {
		return err
	}

	if path := Cfg.GetString("config"); path != "" {
		Cfg.SetConfigFile(path)
		Cfg.SetConfigType("toml")
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("problem reading configuration file: %w", err)
		}
	}

	level, err := log.ParseLevel(Cfg.GetString("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	return nil
}

// loadModel reads the manifest and initializes its packages.
func loadModel() (*manifest.Model, error) {
	path := Cfg.GetString("manifest")
	m, err := manifest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	opts := []datapkg.Option{datapkg.WithLogger(log.StandardLogger())}
	if limit := Cfg.GetInt64("memory-limit"); limit > 0 {
		opts = append(opts, datapkg.WithMemoryLimit(limit))
	}

	return m.Build(opts...)
}

// selectPackage loads the model and returns the package named by --package.
func selectPackage() (*datapkg.Package, error) {
	model, err := loadModel()
	if err != nil {
		return nil, err
	}
	name := Cfg.GetString("package")
	p, ok := model.Package(name)
	if name == "" && len(model.Packages) == 1 {
		p, ok = model.Packages[0], true
	}
	if !ok {
		return nil, fmt.Errorf("package %q not found in manifest", name)
	}
	found, err := p.Scan()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("result file %s does not exist", p.FileName)
	}

	return p, nil
}

// interruptContext is cancelled on the first interrupt signal.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
