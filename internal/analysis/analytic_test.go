package analysis_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/integrators"
	"github.com/san-kum/ballsim/internal/sim"
)

var _ = Describe("AnalyticHeights", func() {
	p := dynamo.Params{InitialHeight: 10, InitialVelocity: 2.5, Acceleration: -9.81, Duration: 5, TimeStep: 0.1}

	It("evaluates the closed form at each time", func() {
		hs := analysis.AnalyticHeights(p, []float64{0, 1, 2})
		Expect(hs).To(HaveLen(3))
		Expect(hs[0]).To(Equal(10.0))
		Expect(hs[1]).To(BeNumerically("~", 10+2.5-4.905, 1e-12))
		Expect(hs[2]).To(BeNumerically("~", 10+5-19.62, 1e-12))
	})

	It("does not stop at the ground", func() {
		hs := analysis.AnalyticHeights(p, []float64{10})
		Expect(hs[0]).To(BeNumerically("<", 0))
	})

	It("returns an empty slice for no times", func() {
		Expect(analysis.AnalyticHeights(p, nil)).To(BeEmpty())
	})

	It("matches the velocity closed form", func() {
		Expect(analysis.AnalyticVelocity(p, 1)).To(BeNumerically("~", 2.5-9.81, 1e-12))
	})
})

var _ = Describe("Compare", func() {
	DescribeTable("numerical heights track the analytic solution",
		func(dt float64) {
			p := dynamo.Params{InitialHeight: 1000, InitialVelocity: 4, Acceleration: -9.81, Duration: 3, TimeStep: dt}
			traj, err := sim.Simulate(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj).To(HaveLen(p.NumSteps() + 1))

			cmp := analysis.Compare(p, traj)
			Expect(cmp.Exact).To(HaveLen(len(traj)))
			Expect(cmp.MaxAbsError).To(BeNumerically("<=", analysis.GlobalErrorBound(p, p.Duration)*1.01+1e-9))
			Expect(cmp.RMSError).To(BeNumerically("<=", cmp.MaxAbsError))
		},
		Entry("dt=0.1", 0.1),
		Entry("dt=0.01", 0.01),
		Entry("dt=0.001", 0.001),
	)

	It("shrinks the error with the step size", func() {
		errAt := func(dt float64) float64 {
			p := dynamo.Params{InitialHeight: 1000, Acceleration: -9.81, Duration: 2, TimeStep: dt}
			traj, err := sim.Simulate(p)
			Expect(err).NotTo(HaveOccurred())
			return analysis.Compare(p, traj).MaxAbsError
		}
		coarse, fine := errAt(0.1), errAt(0.01)
		Expect(fine).To(BeNumerically("<", coarse/5))
	})

	It("is exact when there is no acceleration", func() {
		p := dynamo.Params{InitialHeight: 5, InitialVelocity: 1, Duration: 1, TimeStep: 0.25}
		traj, err := sim.Simulate(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(analysis.Compare(p, traj).MaxAbsError).To(BeNumerically("<", 1e-12))
	})

	It("keeps residual signs: semi-implicit Euler lands below the parabola", func() {
		p := dynamo.Params{InitialHeight: 1000, Acceleration: -9.81, Duration: 1, TimeStep: 0.1}
		traj, err := sim.Simulate(p)
		Expect(err).NotTo(HaveOccurred())
		cmp := analysis.Compare(p, traj)
		for _, r := range cmp.Residuals[1:] {
			Expect(r).To(BeNumerically("<", 0))
		}
		Expect(cmp.Bias).To(BeNumerically("<", 0))
	})

	It("handles an empty trajectory", func() {
		cmp := analysis.Compare(dynamo.Params{}, nil)
		Expect(cmp.MaxAbsError).To(BeZero())
		Expect(math.IsNaN(cmp.RMSError)).To(BeFalse())
	})

	It("shows the forward Euler error on the other side", func() {
		p := dynamo.Params{InitialHeight: 1000, Acceleration: -9.81, Duration: 1, TimeStep: 0.1}
		res, err := sim.New(integrators.NewEuler()).Run(p)
		Expect(err).NotTo(HaveOccurred())
		cmp := analysis.Compare(p, res.Trajectory)
		Expect(cmp.Residuals[len(cmp.Residuals)-1]).To(BeNumerically(">", 0))
	})
})
