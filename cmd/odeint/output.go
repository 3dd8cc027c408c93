package main

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/odeint/internal/analysis"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/export"
	"github.com/san-kum/odeint/internal/metrics"
	"github.com/san-kum/odeint/internal/models"
	"github.com/san-kum/odeint/internal/odeint"
	"github.com/san-kum/odeint/internal/viz"
)

// componentIndex accepts a state index or a column name such as theta2.
func componentIndex(s string) (int, error) {
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 || i >= len(export.DoublePendulumColumns) {
			return 0, fmt.Errorf("component %d out of range [0, %d)", i, len(export.DoublePendulumColumns))
		}
		return i, nil
	}
	for i, name := range export.DoublePendulumColumns {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown component: %s (available: %v)", s, export.DoublePendulumColumns)
}

func runEnsemble(c *cli, cmd *cobra.Command) (*config.Config, *experiment.Result, error) {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	res, err := experiment.New(c.logger).Run(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func newPlotCmd(c *cli) *cobra.Command {
	var (
		component string
		height    int
		width     int
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "plot one state component against time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := componentIndex(component)
			if err != nil {
				return err
			}
			_, res, err := runEnsemble(c, cmd)
			if err != nil {
				return err
			}

			series := make([][]float64, 0, len(res.Pendula))
			for _, dp := range res.Pendula {
				col, err := dp.Trajectory().Component(idx)
				if err != nil {
					return err
				}
				series = append(series, col.Map(degrees))
			}

			caption := fmt.Sprintf("%s (degrees) - %s", export.DoublePendulumColumns[idx], res.Method)
			var out string
			if len(series) == 1 {
				out, err = viz.PlotSeries(series[0], caption, height, width)
			} else {
				out, err = viz.PlotMany(series, caption, height, width)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&component, "component", "theta1", "state component to plot (index or name)")
	cmd.Flags().IntVar(&height, "height", viz.PlotHeight, "plot height")
	cmd.Flags().IntVar(&width, "width", viz.PlotWidth, "plot width")
	return cmd
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var (
		lyapunov     bool
		perturbation float64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "spectral, phase space and chaos analysis of the first pendulum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, res, err := runEnsemble(c, cmd)
			if err != nil {
				return err
			}
			dp := res.Pendula[0]
			tr := dp.Trajectory()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, viz.HeaderStyle.Render("analysis: "+res.Method))
			for _, idx := range []int{0, 2} {
				name := export.DoublePendulumColumns[idx]
				col, err := tr.Component(idx)
				if err != nil {
					return err
				}
				period, err := analysis.DominantPeriod(col, cfg.Dt)
				if err != nil {
					fmt.Fprintf(out, "%s: %s\n", viz.LabelStyle.Render(name+" period"), viz.Failure.Render(err.Error()))
					continue
				}
				fmt.Fprintf(out, "%s%s\n", viz.LabelStyle.Render(name+" period"), viz.ValueStyle.Render(fmt.Sprintf("%.3fs", period)))
			}

			drift := metrics.MaxEnergyDrift(tr, dp.Params.Energy)
			fmt.Fprintf(out, "%s%s\n", viz.LabelStyle.Render("energy drift"), viz.ValueStyle.Render(fmt.Sprintf("%.3e", drift)))

			if lyapunov {
				method, err := odeint.Lookup(cfg.Method)
				if err != nil {
					return err
				}
				opts := append([]odeint.Option{odeint.WithArgs(dp.Params.Args()...)}, cfg.SolverOptions()...)
				lambda, err := analysis.LyapunovExponent(method, models.Derivative, dp.Y0, cfg.Dt, cfg.TMax, perturbation, opts...)
				if err != nil {
					return fmt.Errorf("lyapunov exponent: %w", err)
				}
				verdict := "regular"
				if lambda > 0 {
					verdict = "chaotic"
				}
				fmt.Fprintf(out, "%s%s\n", viz.LabelStyle.Render("lyapunov"), viz.ValueStyle.Render(fmt.Sprintf("%.4f (%s)", lambda, verdict)))
			}

			portrait, err := analysis.NewPhasePortrait(tr, 0, 1)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nphase portrait (theta1, omega1)")
			fmt.Fprintln(out, portrait.ToASCII(60, 20))

			// sample arm 2 whenever arm 1 swings upward through the hanging position
			section, err := analysis.NewPoincareSection(tr, 0, dp.Params.HangingAngle(), 2, 3)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\npoincare section (theta2, omega2), %d crossings\n", len(section.Points))
			fmt.Fprintln(out, section.ToASCII(60, 20))
			return nil
		},
	}

	cmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "estimate the largest lyapunov exponent")
	cmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation for the lyapunov estimate")
	return cmd
}

func newAnimateCmd(c *cli) *cobra.Command {
	var (
		theme    string
		loop     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "replay the ensemble in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := runEnsemble(c, cmd)
			if err != nil {
				return err
			}

			sources := make([]viz.FrameSource, len(res.Pendula))
			for i, dp := range res.Pendula {
				sources[i] = dp
			}

			opts := []viz.AnimationOption{viz.WithTheme(theme), viz.WithInterval(interval)}
			if loop {
				opts = append(opts, viz.WithLoop())
			}
			anim, err := viz.NewAnimation("double pendulum - "+res.Method, sources, opts...)
			if err != nil {
				return err
			}

			p := tea.NewProgram(anim, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "cyberpunk", fmt.Sprintf("color theme %v", viz.ThemeNames()))
	cmd.Flags().BoolVar(&loop, "loop", false, "restart after the last frame")
	cmd.Flags().DurationVar(&interval, "interval", viz.DefaultInterval, "time between frames")
	return cmd
}

const phaseDotScale = 4

var bobStrokes = []string{"#ff2a6d", "#05d9e8", "#d1f7ff", "#f9c80e", "#7cfc00"}

func newExportCmd(c *cli) *cobra.Command {
	var (
		format string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the trajectory (csv, json), bob traces (svg) or the theta1 phase portrait (phase) to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "csv", "json", "svg", "phase":
			default:
				return fmt.Errorf("unknown format: %s (available: csv, json, svg, phase)", format)
			}
			cfg, res, err := runEnsemble(c, cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dp := res.Pendula[0]

			switch format {
			case "csv":
				return export.WriteCSV(out, dp.Trajectory(), export.DoublePendulumColumns)
			case "json":
				doc := export.NewDocument(res.Method, cfg.Dt, cfg.TMax, dp.Trajectory(), export.DoublePendulumColumns)
				doc.Params = map[string]float64{
					"l1": dp.Params.L1, "l2": dp.Params.L2,
					"m1": dp.Params.M1, "m2": dp.Params.M2,
					"g": dp.Params.G,
				}
				doc.Metrics = metrics.Evaluate(dp.Trajectory(),
					metrics.NewEnergyDrift(dp.Params.Energy),
					metrics.NewStability(experiment.StabilityBound),
				)
				return export.WriteJSON(out, doc)
			case "phase":
				portrait, err := analysis.NewPhasePortrait(dp.Trajectory(), 0, 1)
				if err != nil {
					return err
				}
				// 2x4 sub-pixels per cell, phaseDotScale units apart
				c := portrait.Canvas(width/(2*phaseDotScale), height/(4*phaseDotScale))
				if c == nil {
					return fmt.Errorf("phase export needs at least %dx%d", 2*phaseDotScale, 4*phaseDotScale)
				}
				return export.WriteDots(out, c, phaseDotScale, bobStrokes[3])
			}

			paths := make([]export.Path, len(res.Pendula))
			for i, p := range res.Pendula {
				paths[i] = export.Path{X: p.Pendulum2.X, Y: p.Pendulum2.Y, Stroke: bobStrokes[i%len(bobStrokes)]}
			}
			return export.WriteSVG(out, paths, width, height)
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv, json, svg, phase")
	cmd.Flags().IntVar(&width, "width", 800, "svg width")
	cmd.Flags().IntVar(&height, "height", 800, "svg height")
	return cmd
}
