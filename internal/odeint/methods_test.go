package odeint_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

func zero(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
	return algebra.Zeros(len(y)), nil
}

func constant(k ...float64) odeint.Func {
	return func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
		return algebra.NewVector(k...), nil
	}
}

func oscillator(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
	return algebra.Vector{y[1], -y[0]}, nil
}

func ramp(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
	return algebra.Vector{t}, nil
}

func oscillatorError(traj *odeint.Trajectory) float64 {
	t, y := traj.Final()
	return y.Sub(algebra.Vector{math.Cos(t), -math.Sin(t)}).Norm()
}

var _ = Describe("Integrators", func() {
	for _, info := range odeint.Methods() {
		info := info

		Context(info.Name, func() {
			It("keeps a zero-derivative system constant", func() {
				y0 := algebra.Vector{1.5, -2, 0.25}
				traj, err := info.Method(zero, y0, 0, 3, 0.1)
				Expect(err).NotTo(HaveOccurred())

				for i, y := range traj.States {
					Expect(y.EqualApprox(y0, 1e-12)).To(BeTrue(), "state %d = %v", i, y)
				}
			})

			It("returns an index-aligned trajectory starting at (tStart, y0)", func() {
				y0 := algebra.Vector{1, 0}
				traj, err := info.Method(oscillator, y0, 0.5, 2.5, 0.05)
				Expect(err).NotTo(HaveOccurred())

				Expect(traj.Times).To(HaveLen(len(traj.States)))
				Expect(traj.Times[0]).To(Equal(0.5))
				Expect(traj.States[0]).To(Equal(y0))
				for i := 1; i < traj.Len(); i++ {
					Expect(traj.Times[i]).To(BeNumerically(">", traj.Times[i-1]))
				}
				Expect(traj.Stats.Steps).To(Equal(traj.Len() - 1))
			})

			It("does not alias the caller's initial state", func() {
				y0 := algebra.Vector{1, 0}
				traj, err := info.Method(oscillator, y0, 0, 1, 0.1)
				Expect(err).NotTo(HaveOccurred())

				y0.Set(0, 42)
				Expect(traj.States[0].At(0)).To(Equal(1.0))
			})

			It("aborts on a derivative error without a partial trajectory", func() {
				boom := errors.New("domain error")
				calls := 0
				f := func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
					calls++
					if calls > 5 {
						return nil, boom
					}
					return algebra.Vector{y[1], -y[0]}, nil
				}

				traj, err := info.Method(f, algebra.Vector{1, 0}, 0, 10, 0.1)
				Expect(traj).To(BeNil())
				Expect(err).To(MatchError(boom))

				var stepErr *odeint.StepError
				Expect(errors.As(err, &stepErr)).To(BeTrue())
				Expect(stepErr.Method).To(Equal(info.Name))
				Expect(stepErr.Step).To(BeNumerically(">", 0))
			})

			It("rejects a derivative of the wrong length", func() {
				f := func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
					return algebra.Vector{1}, nil
				}
				_, err := info.Method(f, algebra.Vector{1, 2}, 0, 1, 0.1)
				Expect(err).To(MatchError(odeint.ErrDimensionMismatch))
			})

			It("checks its preconditions", func() {
				_, err := info.Method(zero, algebra.Vector{1}, 0, 1, 0)
				Expect(err).To(MatchError(odeint.ErrInvalidStep))
				_, err = info.Method(zero, algebra.Vector{1}, 0, 1, -0.1)
				Expect(err).To(MatchError(odeint.ErrInvalidStep))
				_, err = info.Method(zero, algebra.Vector{1}, 1, 1, 0.1)
				Expect(err).To(MatchError(odeint.ErrInvalidSpan))
				_, err = info.Method(zero, algebra.Vector{}, 0, 1, 0.1)
				Expect(err).To(MatchError(odeint.ErrEmptyState))
				_, err = info.Method(nil, algebra.Vector{1}, 0, 1, 0.1)
				Expect(err).To(MatchError(odeint.ErrNilFunc))
			})

			It("forwards extra arguments to the derivative", func() {
				var seen []float64
				f := func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
					seen = args
					return algebra.Vector{args[0] * args[1]}, nil
				}
				traj, err := info.Method(f, algebra.Vector{0}, 0, 1, 0.25, odeint.WithArgs(2, 3))
				Expect(err).NotTo(HaveOccurred())
				Expect(seen).To(Equal([]float64{2, 3}))

				tEnd, y := traj.Final()
				Expect(y.At(0)).To(BeNumerically("~", 6*tEnd, 1e-9))
			})

			It("fails on non-finite derivatives only when validation is on", func() {
				f := func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
					return algebra.Vector{math.NaN()}, nil
				}
				_, err := info.Method(f, algebra.Vector{1}, 0, 1, 0.25, odeint.WithValidation())
				Expect(err).To(MatchError(odeint.ErrInvalidState))

				_, err = info.Method(f, algebra.Vector{1}, 0, 1, 0.25)
				Expect(err).NotTo(HaveOccurred())
			})
		})
	}

	DescribeTable("fixed-step methods are exact on a constant derivative",
		func(method odeint.Method) {
			y0 := algebra.Vector{1, -1}
			traj, err := method(constant(0.5, 3), y0, 0, 2, 0.25)
			Expect(err).NotTo(HaveOccurred())

			tEnd, y := traj.Final()
			Expect(tEnd).To(Equal(2.0))
			Expect(traj.Len()).To(Equal(9))
			Expect(y.EqualApprox(algebra.Vector{2, 5}, 1e-12)).To(BeTrue(), "got %v", y)
		},
		Entry("euler", odeint.Method(odeint.Euler)),
		Entry("rk4", odeint.Method(odeint.RK4)),
		Entry("ab3", odeint.Method(odeint.AdamsBashforth3)),
	)

	DescribeTable("adaptive methods terminate at or past tMax",
		func(method odeint.Method) {
			traj, err := method(constant(1, 2), algebra.Vector{0, 0}, 0, 1.05, 0.1)
			Expect(err).NotTo(HaveOccurred())

			tEnd, y := traj.Final()
			Expect(tEnd).To(BeNumerically(">=", 1.05))
			Expect(traj.Times[traj.Len()-2]).To(BeNumerically("<", 1.05))
			Expect(y.EqualApprox(algebra.Vector{tEnd, 2 * tEnd}, 1e-9)).To(BeTrue())
			Expect(traj.Stats.Rejected).To(BeZero())
		},
		Entry("rkf45", odeint.Method(odeint.RKF45)),
		Entry("rkdp", odeint.Method(odeint.DormandPrince)),
	)

	Describe("time grid", func() {
		It("follows the accumulated grid and may stop short of tMax", func() {
			traj, err := odeint.Euler(zero, algebra.Vector{0}, 0, 1, 0.3)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Times).To(HaveLen(4))
			Expect(traj.Times[0]).To(Equal(0.0))
			Expect(traj.Times[3]).To(BeNumerically("~", 0.9, 1e-12))
		})

		It("yields only the initial point when one step overshoots", func() {
			traj, err := odeint.RK4(zero, algebra.Vector{0}, 0, 0.05, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Len()).To(Equal(1))
			Expect(traj.Stats.Steps).To(Equal(0))
			Expect(traj.Stats.MinStep).To(Equal(0.0))
		})
	})

	Describe("stage times", func() {
		It("evaluates Euler at the new sample's time", func() {
			traj, err := odeint.Euler(ramp, algebra.Vector{0}, 0, 2, 0.25)
			Expect(err).NotTo(HaveOccurred())
			_, y := traj.Final()
			// 0.25 * (0.25 + 0.5 + ... + 2)
			Expect(y.At(0)).To(BeNumerically("~", 2.25, 1e-12))
		})

		It("passes the grid times themselves to Euler", func() {
			var seen []float64
			record := func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
				seen = append(seen, t)
				return algebra.Vector{0}, nil
			}
			traj, err := odeint.Euler(record, algebra.Vector{0}, 0, 1, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal(traj.Times[1:]))
		})

		It("integrates a polynomial right-hand side exactly with RK4", func() {
			traj, err := odeint.RK4(ramp, algebra.Vector{0}, 0, 2, 0.25)
			Expect(err).NotTo(HaveOccurred())
			_, y := traj.Final()
			Expect(y.At(0)).To(BeNumerically("~", 2.0, 1e-12))
		})
	})

	Describe("order of accuracy on a harmonic oscillator", func() {
		const h = 0.01
		period := 2 * math.Pi

		It("tracks the analytic solution over one period with RK4", func() {
			traj, err := odeint.RK4(oscillator, algebra.Vector{1, 0}, 0, period, h)
			Expect(err).NotTo(HaveOccurred())
			Expect(oscillatorError(traj)).To(BeNumerically("<", 1e-6))
		})

		It("is visibly worse with Euler at the same step", func() {
			rk4, err := odeint.RK4(oscillator, algebra.Vector{1, 0}, 0, period, h)
			Expect(err).NotTo(HaveOccurred())
			euler, err := odeint.Euler(oscillator, algebra.Vector{1, 0}, 0, period, h)
			Expect(err).NotTo(HaveOccurred())

			Expect(oscillatorError(euler)).To(BeNumerically(">", 1e-3))
			Expect(oscillatorError(euler)).To(BeNumerically(">", 1000*oscillatorError(rk4)))
		})

		It("puts Adams-Bashforth-3 between Euler and RK4", func() {
			ab3, err := odeint.AdamsBashforth3(oscillator, algebra.Vector{1, 0}, 0, period, h)
			Expect(err).NotTo(HaveOccurred())
			euler, err := odeint.Euler(oscillator, algebra.Vector{1, 0}, 0, period, h)
			Expect(err).NotTo(HaveOccurred())

			Expect(oscillatorError(ab3)).To(BeNumerically("<", 1e-4))
			Expect(oscillatorError(ab3)).To(BeNumerically("<", oscillatorError(euler)))
		})
	})

	Describe("step control", func() {
		It("shrinks oversized RKF45 steps and never grows them", func() {
			traj, err := odeint.RKF45(oscillator, algebra.Vector{1, 0}, 0, 2*math.Pi, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Stats.Rejected).To(BeNumerically(">", 0))
			Expect(traj.Stats.MaxStep).To(BeNumerically("<=", 1.0))
			Expect(traj.Stats.MinStep).To(BeNumerically("<", 1.0))
			Expect(oscillatorError(traj)).To(BeNumerically("<", 1e-2))
		})

		It("shrinks oversized Dormand-Prince steps", func() {
			traj, err := odeint.DormandPrince(oscillator, algebra.Vector{1, 0}, 0, 2*math.Pi, 1.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Stats.Rejected).To(BeNumerically(">", 0))
			Expect(traj.Stats.MaxStep).To(BeNumerically("<=", 1.5))
			Expect(oscillatorError(traj)).To(BeNumerically("<", 1e-2))
		})

		It("gives up once the step falls below the floor", func() {
			_, err := odeint.RKF45(oscillator, algebra.Vector{1, 0}, 0, 1, 0.1, odeint.WithTolerance(1e-300))
			Expect(err).To(MatchError(odeint.ErrStepTooSmall))
		})

		It("gives up after the retry limit", func() {
			_, err := odeint.DormandPrince(oscillator, algebra.Vector{1, 0}, 0, 10, 1.5, odeint.WithMaxRetries(1))
			Expect(err).To(MatchError(odeint.ErrStepTooSmall))
		})

		It("fails instead of looping when the step no longer advances time", func() {
			// the float64 spacing at 1e12 is about 1.2e-4
			_, err := odeint.RKF45(zero, algebra.Vector{1}, 1e12, 1e12+1, 1e-5)
			Expect(err).To(MatchError(odeint.ErrStepTooSmall))

			var serr *odeint.StepError
			Expect(errors.As(err, &serr)).To(BeTrue())
			Expect(serr.Time).To(Equal(1e12))
		})

		It("does not reserve memory for an astronomically long run", func() {
			_, err := odeint.RKF45(zero, algebra.Vector{1}, 1e6, 1e6+1, 1e-11)
			Expect(err).To(MatchError(odeint.ErrStepTooSmall))
		})

		It("reports the stall of a fixed-step grid", func() {
			for _, method := range []odeint.Method{odeint.Euler, odeint.RK4, odeint.AdamsBashforth3} {
				_, err := method(zero, algebra.Vector{1}, 1e12, 1e12+1, 1e-5)
				Expect(err).To(MatchError(odeint.ErrStepTooSmall))
			}
		})

		It("stops at the accepted-step cap", func() {
			_, err := odeint.RKF45(zero, algebra.Vector{1}, 0, 100, 0.1, odeint.WithMaxSteps(3))
			Expect(err).To(MatchError(odeint.ErrMaxSteps))
		})

		It("tightens accuracy with a smaller tolerance", func() {
			loose, err := odeint.DormandPrince(oscillator, algebra.Vector{1, 0}, 0, 2*math.Pi, 0.5)
			Expect(err).NotTo(HaveOccurred())
			tight, err := odeint.DormandPrince(oscillator, algebra.Vector{1, 0}, 0, 2*math.Pi, 0.5, odeint.WithTolerance(1e-9))
			Expect(err).NotTo(HaveOccurred())

			Expect(tight.Stats.Evaluations).To(BeNumerically(">", loose.Stats.Evaluations))
			Expect(oscillatorError(tight)).To(BeNumerically("<", oscillatorError(loose)))
		})
	})

	Describe("evaluation counts", func() {
		It("matches the stage count of each fixed-step method", func() {
			euler, _ := odeint.Euler(zero, algebra.Vector{1}, 0, 1, 0.25)
			rk4, _ := odeint.RK4(zero, algebra.Vector{1}, 0, 1, 0.25)
			ab3, _ := odeint.AdamsBashforth3(zero, algebra.Vector{1}, 0, 1, 0.25)

			Expect(euler.Stats.Evaluations).To(Equal(4))
			Expect(rk4.Stats.Evaluations).To(Equal(16))
			// two RK4 bootstrap steps, then three evaluations per step
			Expect(ab3.Stats.Evaluations).To(Equal(2*4 + 2*3))
		})
	})
})
