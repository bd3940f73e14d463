package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/svgflat"
	"github.com/gogpu/svgflat/internal/config"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath   string
	precision    int
	clipSegments bool
	bezierArcs   bool
	e2eTolerance string
	workers      int
	verbose      bool
}

// env is what a subcommand needs once flags and config are merged.
type env struct {
	conf  config.Config
	ctx   *svgflat.Context
	units svgflat.Units
}

func bindGlobalFlags(fs *pflag.FlagSet, o *globalOptions) {
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file (default $XDG_CONFIG_HOME/svgflat/"+config.FileName+")")
	fs.IntVarP(&o.precision, "precision", "p", 3, "decimal places in output coordinates")
	fs.BoolVar(&o.clipSegments, "clip-segments", false, "recorded in the run configuration")
	fs.BoolVar(&o.bezierArcs, "bezier-arcs", false, "recorded in the run configuration")
	fs.StringVar(&o.e2eTolerance, "e2e-tolerance", "", "verification tolerance (overrides config)")
	fs.IntVarP(&o.workers, "workers", "j", 0, "parallel workers for path baking (0 = GOMAXPROCS)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log debug records to stderr")
}

func newRootCommand() *cobra.Command {
	var opts globalOptions
	var e env

	root := &cobra.Command{
		Use:           "svgflat",
		Short:         "Bake SVG transforms with exact decimal arithmetic",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			svgflat.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			var err error
			e, err = loadEnv(cmd.Flags(), &opts)
			return err
		},
	}
	bindGlobalFlags(root.PersistentFlags(), &opts)

	root.AddCommand(
		newFlattenCommand(&e),
		newOptimizeCommand(&e),
		newDecomposeCommand(&e),
		newViewBoxCommand(&e),
	)
	return root
}

// loadEnv reads the configuration file and applies the flags that were set
// explicitly on top of it.
func loadEnv(fs *pflag.FlagSet, o *globalOptions) (env, error) {
	path, optional := o.configPath, false
	if path == "" {
		path, optional = filepath.Join(config.Dir(), config.FileName), true
	}
	conf, err := config.Load(path, optional)
	if err != nil {
		return env{}, err
	}

	if fs.Changed("precision") {
		conf.OutputPrecision = o.precision
	}
	if fs.Changed("clip-segments") {
		conf.ClipSegments = o.clipSegments
	}
	if fs.Changed("bezier-arcs") {
		conf.BezierArcs = o.bezierArcs
	}
	if fs.Changed("e2e-tolerance") {
		conf.Tolerance = o.e2eTolerance
	}
	if fs.Changed("workers") {
		conf.Workers = o.workers
	}
	if err := conf.Validate(); err != nil {
		return env{}, err
	}

	ctx, err := newContext(conf)
	if err != nil {
		return env{}, err
	}
	units, err := newUnits(conf)
	if err != nil {
		return env{}, err
	}
	svgflat.Logger().Debug("svgflat: configuration",
		"precision", conf.Precision,
		"outputPrecision", conf.OutputPrecision,
		"tolerance", conf.Tolerance,
		"clipSegments", conf.ClipSegments,
		"bezierArcs", conf.BezierArcs)
	return env{conf: conf, ctx: ctx, units: units}, nil
}

func newContext(conf config.Config) (*svgflat.Context, error) {
	eps, err := svgflat.ParseNum(conf.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("epsilon: %w", err)
	}
	tol, err := svgflat.ParseNum(conf.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("tolerance: %w", err)
	}
	return svgflat.NewContext(
		svgflat.WithPrecision(conf.Precision),
		svgflat.WithEpsilon(eps),
		svgflat.WithTolerance(tol),
	)
}

func newUnits(conf config.Config) (svgflat.Units, error) {
	dpi, err := svgflat.ParseNum(conf.DPI)
	if err != nil {
		return svgflat.Units{}, fmt.Errorf("dpi: %w", err)
	}
	fontSize, err := svgflat.ParseNum(conf.FontSize)
	if err != nil {
		return svgflat.Units{}, fmt.Errorf("font_size: %w", err)
	}
	return svgflat.Units{DPI: dpi, FontSize: fontSize}, nil
}
