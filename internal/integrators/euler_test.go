package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
)

func TestEulerStep(t *testing.T) {
	tests := []struct {
		x, dxdt, dt, want float64
	}{
		{0, 1, 0.1, 0.1},
		{10, -9.81, 0.1, 10 - 0.981},
		{5, 0, 0.5, 5},
		{1, 2, 0, 1},
	}
	for _, tt := range tests {
		if got := EulerStep(tt.x, tt.dxdt, tt.dt); got != tt.want {
			t.Errorf("EulerStep(%g, %g, %g) = %g, want %g", tt.x, tt.dxdt, tt.dt, got, tt.want)
		}
	}
}

func TestEulerStepPropagatesNaN(t *testing.T) {
	if got := EulerStep(1, math.NaN(), 0.1); !math.IsNaN(got) {
		t.Errorf("expected NaN, got %g", got)
	}
}

func TestEvolveEquationsOfMotion_UsesUpdatedVelocity(t *testing.T) {
	s := dynamo.KinematicState{Height: 10, Velocity: 2.5, Time: 0}
	next := EvolveEquationsOfMotion(s, -9.81, 0.1)

	wantV := 2.5 + 0.1*-9.81
	wantH := 10 + 0.1*wantV

	if next.Velocity != wantV {
		t.Errorf("velocity: got %g, want %g", next.Velocity, wantV)
	}
	if next.Height != wantH {
		t.Errorf("height: got %g, want %g", next.Height, wantH)
	}
	if next.Time != 0.1 {
		t.Errorf("time: got %g, want 0.1", next.Time)
	}
}

func TestSteppersDiffer(t *testing.T) {
	s := dynamo.KinematicState{Height: 10, Velocity: 2.5}

	semi := NewSemiImplicitEuler().Step(s, -9.81, 0.1)
	fwd := NewEuler().Step(s, -9.81, 0.1)

	if semi.Velocity != fwd.Velocity {
		t.Errorf("velocity updates should agree: %g vs %g", semi.Velocity, fwd.Velocity)
	}
	if fwd.Height != 10+0.1*2.5 {
		t.Errorf("forward euler height: got %g", fwd.Height)
	}
	if semi.Height == fwd.Height {
		t.Error("semi-implicit and forward Euler heights should differ")
	}
}

func TestSemiImplicitOscillatorStaysBounded(t *testing.T) {
	// x'' = -x stepped with the same update order; the symplectic scheme
	// keeps the amplitude bounded where forward Euler grows.
	x, v := 1.0, 0.0
	fx, fv := 1.0, 0.0
	dt := 0.1
	for i := 0; i < 1000; i++ {
		v = EulerStep(v, -x, dt)
		x = EulerStep(x, v, dt)

		fx, fv = EulerStep(fx, fv, dt), EulerStep(fv, -fx, dt)
	}

	if amp := math.Hypot(x, v); amp > 1.1 {
		t.Errorf("semi-implicit amplitude grew to %.4f", amp)
	}
	if amp := math.Hypot(fx, fv); amp < 2 {
		t.Errorf("forward euler amplitude should grow, got %.4f", amp)
	}
}
