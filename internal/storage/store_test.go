package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ballsim/internal/dynamo"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		Trajectory: dynamo.Trajectory{
			{Height: 10, Velocity: 2.5, Time: 0},
			{Height: 10.1519, Velocity: 1.519, Time: 0.1},
		},
		Metrics:  map[string]float64{"apex": 10.1519},
		Grounded: true,
	}
}

func testParams() dynamo.Params {
	return dynamo.Params{InitialHeight: 10, InitialVelocity: 2.5, Acceleration: -9.81, Duration: 5, TimeStep: 0.1}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st := New(dir, nil)
	require.NoError(t, st.Init())
	return st, dir
}

func TestStoreSaveLoad(t *testing.T) {
	st, _ := newTestStore(t)

	runID, err := st.Save("classroom", "semi-implicit", testParams(), testResult())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)

	assert.Equal(t, "classroom", meta.Name)
	assert.Equal(t, "semi-implicit", meta.Integrator)
	assert.Equal(t, 2, meta.Steps)
	assert.True(t, meta.Grounded)
	assert.Equal(t, testParams(), meta.Params())
	assert.InDelta(t, 10.1519, float64(meta.Metrics["apex"]), 1e-12)

	tr, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	assert.Equal(t, testResult().Trajectory, tr, "CSV must round-trip floats exactly")
}

func TestStoreList(t *testing.T) {
	st, _ := newTestStore(t)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	st.now = func() time.Time {
		tick++
		return base.Add(time.Duration(-tick) * time.Hour)
	}

	first, err := st.Save("a", "semi-implicit", testParams(), testResult())
	require.NoError(t, err)
	second, err := st.Save("b", "explicit", testParams(), testResult())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(st.baseDir, "garbage"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID, "runs are sorted oldest first")
	assert.Equal(t, first, runs[1].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"), nil)
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	st, dir := newTestStore(t)

	runID, err := st.Save("test", "semi-implicit", testParams(), testResult())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, runID, "metadata.json"))
	assert.FileExists(t, filepath.Join(dir, runID, "states.csv"))

	data, err := os.ReadFile(filepath.Join(dir, runID, "states.csv"))
	require.NoError(t, err)
	assert.Equal(t, "time,height,velocity\n0,10,2.5\n0.1,10.1519,1.519\n", string(data))
}

func TestStoreRunNotFound(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Load("missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))

	_, err = st.LoadTrajectory("missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestReadCSVRejectsGarbage(t *testing.T) {
	_, err := ReadCSV(bytes.NewBufferString("time,height,velocity\n0,abc,1\n"))
	assert.Error(t, err)

	tr, err := ReadCSV(bytes.NewBufferString("time,height,velocity\n"))
	require.NoError(t, err)
	assert.Empty(t, tr)
}

func TestExportJSON(t *testing.T) {
	st, _ := newTestStore(t)
	runID, err := st.Save("test", "semi-implicit", testParams(), testResult())
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, testResult().Trajectory))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, runID, out["id"])
	assert.Len(t, out["heights"], 2)
	assert.Len(t, out["times"], 2)
	assert.Len(t, out["velocities"], 2)
}

func TestStoreSaveNonFinite(t *testing.T) {
	st, dir := newTestStore(t)

	p := dynamo.Params{InitialHeight: 10, Acceleration: math.NaN(), Duration: 1, TimeStep: 0.1}
	result := &dynamo.Result{
		Trajectory: dynamo.Trajectory{
			{Height: 10, Velocity: 0, Time: 0},
			{Height: math.NaN(), Velocity: math.NaN(), Time: 0.1},
		},
		Metrics: map[string]float64{"apex": 10, "energy_drift": math.NaN(), "impact_speed": math.Inf(1)},
	}

	runID, err := st.Save("nan", "semi-implicit", p, result)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, runID, "metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"acceleration": "NaN"`)
	assert.Contains(t, string(data), `"impact_speed": "+Inf"`)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(meta.Params().Acceleration))
	assert.True(t, math.IsNaN(float64(meta.Metrics["energy_drift"])))
	assert.True(t, math.IsInf(float64(meta.Metrics["impact_speed"]), 1))
	assert.Equal(t, 10.0, meta.Params().InitialHeight)

	tr, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	require.Len(t, tr, 2)
	assert.True(t, math.IsNaN(tr[1].Height))

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, tr))
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []any{10.0, "NaN"}, out["heights"])
}

func TestStoreSaveFailureLeavesNothing(t *testing.T) {
	st, dir := newTestStore(t)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return ts }
	runDir := filepath.Join(dir, fmt.Sprintf("blocked_%d", ts.UnixNano()))
	require.NoError(t, os.MkdirAll(filepath.Join(runDir, "states.csv"), 0755))

	runID, err := st.Save("blocked", "semi-implicit", testParams(), testResult())
	require.Error(t, err)
	assert.Empty(t, runID)
	assert.NoDirExists(t, runDir)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestFloatJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{-9.81, "-9.81"},
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(Float(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data))

		var back Float
		require.NoError(t, json.Unmarshal(data, &back))
		if math.IsNaN(tt.in) {
			assert.True(t, math.IsNaN(float64(back)))
		} else {
			assert.Equal(t, tt.in, float64(back))
		}
	}

	var f Float
	assert.Error(t, json.Unmarshal([]byte(`"fast"`), &f))
}
