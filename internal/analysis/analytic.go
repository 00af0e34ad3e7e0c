package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// AnalyticHeight is the closed-form height h0 + v0*t + a*t^2/2 under
// constant acceleration. No ground is applied.
func AnalyticHeight(p dynamo.Params, t float64) float64 {
	return p.InitialHeight + p.InitialVelocity*t + 0.5*p.Acceleration*t*t
}

// AnalyticHeights evaluates AnalyticHeight at each of times, one-to-one.
func AnalyticHeights(p dynamo.Params, times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = AnalyticHeight(p, t)
	}
	return out
}

// AnalyticVelocity is v0 + a*t.
func AnalyticVelocity(p dynamo.Params, t float64) float64 {
	return p.InitialVelocity + p.Acceleration*t
}

// Comparison holds the residuals of a numerical trajectory against the
// closed-form solution at the same time points.
type Comparison struct {
	Times       []float64
	Numerical   []float64
	Exact       []float64
	Residuals   []float64
	MaxAbsError float64
	RMSError    float64
	// Bias is the mean signed residual. Semi-implicit Euler under a
	// downward acceleration lands below the parabola, so it is negative.
	Bias float64
}

// Compare evaluates the analytic heights at the trajectory's time points.
func Compare(p dynamo.Params, tr dynamo.Trajectory) Comparison {
	times := tr.Times()
	numerical := tr.Heights()
	exact := AnalyticHeights(p, times)

	c := Comparison{
		Times:     times,
		Numerical: numerical,
		Exact:     exact,
		Residuals: make([]float64, len(times)),
	}
	if len(times) == 0 {
		return c
	}

	floats.SubTo(c.Residuals, numerical, exact)
	c.MaxAbsError = floats.Norm(c.Residuals, math.Inf(1))
	c.RMSError = floats.Norm(c.Residuals, 2) / math.Sqrt(float64(len(times)))
	c.Bias = stat.Mean(c.Residuals, nil)
	return c
}

// GlobalErrorBound is the height error of semi-implicit Euler after a
// simulated span T under constant acceleration: |a|*dt*T/2. In exact
// arithmetic the scheme is off the parabola by exactly this amount.
func GlobalErrorBound(p dynamo.Params, span float64) float64 {
	return 0.5 * math.Abs(p.Acceleration) * p.TimeStep * span
}
