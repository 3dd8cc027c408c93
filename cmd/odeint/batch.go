package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odeint/internal/automation"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/odeint"
	"github.com/san-kum/odeint/internal/optim"
	"github.com/san-kum/odeint/internal/storage"
)

func newScenarioCmd(c *cli) *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			st := storage.New(saveDir)
			if err := st.Init(); err != nil {
				return err
			}

			results, err := automation.RunScenario(cmd.Context(), c.logger, sc, st)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "step\tmethod\tpendula\telapsed\trun")
			for _, r := range results {
				runID := r.RunID
				if runID == "" {
					runID = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\n", r.Name, r.Result.Method, len(r.Result.Pendula), r.Result.Elapsed, runID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "runs", "directory for steps marked save")
	return cmd
}

func newSweepCmd(c *cli) *cobra.Command {
	var (
		param  string
		lo, hi float64
		steps  int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and report final state and energy range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			results, err := automation.RunSweep(cmd.Context(), c.logger, &automation.ParameterSweep{
				Base: cfg, Param: param, Min: lo, Max: hi, NumSteps: steps,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tfinal_theta1\tfinal_theta2\tmin_energy\tmax_energy\n", param)
			for _, r := range results {
				fmt.Fprintf(w, "%g\t%.3f\t%.3f\t%.4f\t%.4f\n",
					r.ParamValue, degrees(r.FinalState[0]), degrees(r.FinalState[2]), r.MinEnergy, r.MaxEnergy)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&param, "param", "theta1", fmt.Sprintf("parameter to sweep %v", automation.SweepParams))
	cmd.Flags().Float64Var(&lo, "min", 0, "first value")
	cmd.Flags().Float64Var(&hi, "max", 180, "last value")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of values")
	return cmd
}

func newTuneCmd(c *cli) *cobra.Command {
	var (
		maxDrift float64
		dts      []float64
		tols     []float64
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "find the cheapest step size (and tolerance) within an energy drift budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			info, err := odeint.Describe(cfg.Method)
			if err != nil {
				return err
			}

			names, ranges := []string{"dt"}, [][]float64{dts}
			if info.Adaptive {
				names, ranges = append(names, "tolerance"), append(ranges, tols)
			}
			g, err := optim.NewGridSearch(names, ranges)
			if err != nil {
				return err
			}

			best, cost, err := g.Search(cmd.Context(), optim.EvaluationCost(experiment.New(c.logger), cfg, maxDrift))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: dt=%g", info.Name, best["dt"])
			if tol, ok := best["tolerance"]; ok {
				fmt.Fprintf(out, " tolerance=%g", tol)
			}
			fmt.Fprintf(out, " evaluations=%d (energy drift <= %g)\n", int(cost), maxDrift)
			return nil
		},
	}

	cmd.Flags().Float64Var(&maxDrift, "max-drift", 1e-4, "largest acceptable relative energy drift")
	cmd.Flags().Float64SliceVar(&dts, "dts", []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1}, "step sizes to try")
	cmd.Flags().Float64SliceVar(&tols, "tols", []float64{1e-4, 1e-6, 1e-8}, "tolerances to try for adaptive methods")
	return cmd
}
