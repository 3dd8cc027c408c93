package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/odeint/internal/config"
)

// cli holds the flag values shared by every command.
type cli struct {
	configFile string
	preset     string
	method     string
	dt         float64
	tMax       float64
	tol        float64
	theta1     float64
	omega1     float64
	theta2     float64
	omega2     float64
	pendula    int
	dtheta     float64
	logLevel   string

	logger log.Logger
}

// main builds the command tree and exits with status 1 if a command fails.
func main() {
	c := &cli{logger: newLogger(os.Stderr, "info")}
	if err := newRootCmd(c).Execute(); err != nil {
		level.Error(c.logger).Log("err", err)
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "odeint",
		Short:         "numerical ODE integration lab for the double pendulum",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := levelOption(c.logLevel); err != nil {
				return err
			}
			c.logger = newLogger(cmd.ErrOrStderr(), c.logLevel)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&c.preset, "preset", "", "use preset configuration")
	pf.StringVar(&c.method, "method", config.DefaultMethod, "integration method")
	pf.Float64Var(&c.dt, "dt", config.DefaultDt, "timestep")
	pf.Float64Var(&c.tMax, "time", config.DefaultTMax, "duration")
	pf.Float64Var(&c.tol, "tol", 0, "adaptive tolerance (0 uses the method default)")
	pf.Float64Var(&c.theta1, "theta1", 90, "initial angle of the first arm (degrees)")
	pf.Float64Var(&c.omega1, "omega1", 0, "initial angular velocity of the first arm (degrees/s)")
	pf.Float64Var(&c.theta2, "theta2", 90, "initial angle of the second arm (degrees)")
	pf.Float64Var(&c.omega2, "omega2", 0, "initial angular velocity of the second arm (degrees/s)")
	pf.IntVar(&c.pendula, "pendula", config.DefaultPendula, "number of pendula in the ensemble")
	pf.Float64Var(&c.dtheta, "dtheta", config.DefaultDTheta, "theta1 spacing between pendula (degrees)")
	pf.StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error, none")

	rootCmd.AddCommand(
		newRunCmd(c),
		newCompareCmd(c),
		newMethodsCmd(),
		newPresetsCmd(),
		newRunsCmd(c),
		newPlotCmd(c),
		newAnalyzeCmd(c),
		newAnimateCmd(c),
		newExportCmd(c),
		newScenarioCmd(c),
		newSweepCmd(c),
		newTuneCmd(c),
	)
	return rootCmd
}

func levelOption(name string) (level.Option, error) {
	switch strings.ToLower(name) {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("unknown log level: %s", name)
}

// newLogger writes logfmt to w, dropping records below levelName.
func newLogger(w io.Writer, levelName string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	opt, err := levelOption(levelName)
	if err != nil {
		opt = level.AllowInfo()
	}
	return level.NewFilter(logger, opt)
}

// resolveConfig layers defaults, the preset, the config file and explicitly
// set flags, in that order.
func (c *cli) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if c.preset != "" {
		cfg = config.GetPreset(c.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", c.preset, config.ListPresets())
		}
	}

	if c.configFile != "" {
		loaded, err := config.Load(c.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = c.method
	}
	if flags.Changed("dt") {
		cfg.Dt = c.dt
	}
	if flags.Changed("time") {
		cfg.TMax = c.tMax
	}
	if flags.Changed("tol") {
		cfg.Tolerance = c.tol
	}
	if flags.Changed("pendula") {
		cfg.Ensemble.Count = c.pendula
	}
	if flags.Changed("dtheta") {
		cfg.Ensemble.DTheta = c.dtheta
	}

	y0 := []*float64{&c.theta1, &c.omega1, &c.theta2, &c.omega2}
	for i, name := range []string{"theta1", "omega1", "theta2", "omega2"} {
		if flags.Changed(name) {
			cfg.Pendulum.Y0[i] = *y0[i]
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
