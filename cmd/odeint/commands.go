package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/metrics"
	"github.com/san-kum/odeint/internal/odeint"
	"github.com/san-kum/odeint/internal/storage"
	"github.com/san-kum/odeint/internal/viz"
)

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func newRunCmd(c *cli) *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the configured ensemble and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}

			res, err := experiment.New(c.logger).Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "method %s, dt=%g, t_max=%g, %d pendula, %v\n\n", res.Method, cfg.Dt, cfg.TMax, len(res.Pendula), res.Elapsed)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\ttheta1_0\tfinal_theta1\tfinal_theta2\tsamples\tsteps\trejected\tevals\tenergy_drift")
			for i, dp := range res.Pendula {
				tr := dp.Trajectory()
				_, final := tr.Final()
				drift := metrics.MaxEnergyDrift(tr, dp.Params.Energy)
				fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%d\t%d\t%d\t%d\t%.3e\n",
					i, degrees(dp.Y0[0]), degrees(final[0]), degrees(final[2]),
					tr.Len(), tr.Stats.Steps, tr.Stats.Rejected, tr.Stats.Evaluations, drift)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if saveDir == "" {
				return nil
			}
			st := storage.New(saveDir)
			if err := st.Init(); err != nil {
				return err
			}
			runID, err := st.Save(cfg, res)
			if err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			fmt.Fprintf(out, "\nsaved run %s\n", runID)
			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "save", "", "directory to save the run in")
	return cmd
}

func newRunsCmd(c *cli) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "list saved runs, or replay one and plot theta1",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dir)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				res, err := st.Replay(cmd.Context(), experiment.New(c.logger), args[0])
				if err != nil {
					return err
				}
				series := make([][]float64, 0, len(res.Pendula))
				for _, dp := range res.Pendula {
					col, err := dp.Trajectory().Component(0)
					if err != nil {
						return err
					}
					series = append(series, col.Map(degrees))
				}
				plot, err := viz.PlotMany(series, "theta1 (degrees) - "+args[0], viz.PlotHeight, viz.PlotWidth)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, plot)
				return nil
			}

			runs, err := st.List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no saved runs in "+dir)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "id\tmethod\tdt\tt_max\tpendula\tdiverged\tsaved")
			for _, r := range runs {
				diverged := 0
				for _, p := range r.Pendula {
					if p.Diverged {
						diverged++
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\t%d\t%s\n",
					r.ID, r.Method, r.Dt, r.TMax, len(r.Pendula), diverged, r.Timestamp.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "runs", "directory holding saved runs")
	return cmd
}

func newCompareCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [method...]",
		Short: "compare integration methods on the same initial condition",
		Long:  "compare integration methods on the same initial condition; with no arguments every method is compared",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}

			methods := args
			if len(methods) == 0 {
				methods = odeint.Names()
			}
			rows, err := experiment.New(c.logger).Compare(cmd.Context(), cfg, methods)
			if err != nil {
				return err
			}

			best := -1
			for i, r := range rows {
				if r.Err == nil && (best < 0 || r.EnergyDrift < rows[best].EnergyDrift) {
					best = i
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "comparing methods (dt=%g, t_max=%g, y0=%v)\n\n", cfg.Dt, cfg.TMax, cfg.Pendulum.Y0)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "method\tfinal_theta1\tfinal_theta2\tsteps\trejected\tevals\tenergy_drift\tstability\ttime_ms")
			for i, r := range rows {
				if r.Err != nil {
					fmt.Fprintf(w, "%s\t%s\n", r.Method, viz.Failure.Render("error: "+r.Err.Error()))
					continue
				}
				drift := fmt.Sprintf("%.3e", r.EnergyDrift)
				if i == best {
					drift = viz.Highlight.Render(drift)
				}
				fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%d\t%d\t%d\t%s\t%.3f\t%.2f\n",
					r.Method, r.FinalTheta1, r.FinalTheta2, r.Steps, r.Rejected, r.Evaluations,
					drift, r.Stability, float64(r.Elapsed.Microseconds())/1000)
			}
			return w.Flush()
		},
	}
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "name\torder\tadaptive\tdescription")
			for _, info := range odeint.Methods() {
				fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", info.Name, info.Order, info.Adaptive, info.Title)
			}
			return w.Flush()
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(out, "  %-10s %-6s dt=%g t_max=%g y0=%v pendula=%d\n",
					name, p.Method, p.Dt, p.TMax, p.Pendulum.Y0, p.Ensemble.Count)
			}
			return nil
		},
	}
}
