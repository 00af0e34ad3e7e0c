package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestKinematicState_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		state KinematicState
		valid bool
	}{
		{"finite", KinematicState{10, 2.5, 0}, true},
		{"nan height", KinematicState{math.NaN(), 0, 0}, false},
		{"inf velocity", KinematicState{0, math.Inf(-1), 0}, false},
		{"inf time", KinematicState{0, 0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name  string
		p     Params
		field string
	}{
		{"valid", Params{Duration: 1, TimeStep: 0.1}, ""},
		{"zero duration", Params{Duration: 0, TimeStep: 0.1}, ""},
		{"zero dt", Params{Duration: 1, TimeStep: 0}, "time_step"},
		{"negative dt", Params{Duration: 1, TimeStep: -0.1}, "time_step"},
		{"nan dt", Params{Duration: 1, TimeStep: math.NaN()}, "time_step"},
		{"negative duration", Params{Duration: -1, TimeStep: 0.1}, "duration"},
		{"infinite duration", Params{Duration: math.Inf(1), TimeStep: 0.1}, "duration"},
		{"too many steps", Params{Duration: 1e300, TimeStep: 1e-300}, "duration"},
		{"step count at the limit", Params{Duration: MaxSteps, TimeStep: 1}, ""},
		{"step count past the limit", Params{Duration: MaxSteps + 1, TimeStep: 1}, "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if ce.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ce.Field)
			}
		})
	}
}

func TestParams_NumSteps(t *testing.T) {
	tests := []struct {
		duration, dt float64
		want         int
	}{
		{5, 0.1, 50},
		{1, 0.5, 2},
		{1, 0.3, 3},
		{0, 0.1, 0},
		{0.05, 0.1, 0},
	}
	for _, tt := range tests {
		p := Params{Duration: tt.duration, TimeStep: tt.dt}
		if got := p.NumSteps(); got != tt.want {
			t.Errorf("NumSteps(%g/%g) = %d, want %d", tt.duration, tt.dt, got, tt.want)
		}
	}
}

func TestTrajectory_Columns(t *testing.T) {
	tr := Trajectory{
		{Height: 10, Velocity: 2.5, Time: 0},
		{Height: 9.9, Velocity: 1.5, Time: 0.1},
	}

	h, v, ts := tr.Heights(), tr.Velocities(), tr.Times()
	if h[1] != 9.9 || v[1] != 1.5 || ts[1] != 0.1 {
		t.Errorf("unexpected columns: %v %v %v", h, v, ts)
	}

	h[0] = -1
	if tr[0].Height != 10 {
		t.Error("Heights() must not alias the trajectory")
	}

	back := FromColumns(ts, tr.Heights(), v)
	if len(back) != 2 || back[1] != tr[1] {
		t.Errorf("FromColumns round trip mismatch: %v", back)
	}

	last, ok := tr.Last()
	if !ok || last != tr[1] {
		t.Errorf("Last() = %v, %v", last, ok)
	}
	if _, ok := Trajectory(nil).Last(); ok {
		t.Error("Last() on empty trajectory should report !ok")
	}
}

func TestTrajectory_Clone(t *testing.T) {
	tr := Trajectory{{Height: 1}}
	c := tr.Clone()
	c[0].Height = 2
	if tr[0].Height != 1 {
		t.Error("Clone shares storage with original")
	}
}
