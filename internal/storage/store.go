package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	logger  *log.Logger
	now     func() time.Time
}

func New(baseDir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{baseDir: baseDir, logger: logger, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Timestamp       time.Time        `json:"timestamp"`
	Integrator      string           `json:"integrator"`
	InitialHeight   Float            `json:"initial_height"`
	InitialVelocity Float            `json:"initial_velocity"`
	InitialTime     Float            `json:"initial_time"`
	Acceleration    Float            `json:"acceleration"`
	Duration        Float            `json:"duration"`
	TimeStep        Float            `json:"time_step"`
	Steps           int              `json:"steps"`
	Grounded        bool             `json:"grounded"`
	Metrics         map[string]Float `json:"metrics"`
}

// Params reconstructs the parameters the run was made with.
func (m *RunMetadata) Params() dynamo.Params {
	return dynamo.Params{
		InitialHeight:   float64(m.InitialHeight),
		InitialVelocity: float64(m.InitialVelocity),
		InitialTime:     float64(m.InitialTime),
		Acceleration:    float64(m.Acceleration),
		Duration:        float64(m.Duration),
		TimeStep:        float64(m.TimeStep),
	}
}

// Save writes a run directory and returns its id. A failed save leaves no
// directory behind.
func (s *Store) Save(name, integrator string, p dynamo.Params, result *dynamo.Result) (runID string, err error) {
	ts := s.now()
	runID = fmt.Sprintf("%s_%d", name, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(runDir); rmErr != nil {
				s.logger.Warn("failed to remove partial run", "dir", runDir, "err", rmErr)
			}
			runID = ""
		}
	}()

	meta := RunMetadata{
		ID:              runID,
		Name:            name,
		Timestamp:       ts,
		Integrator:      integrator,
		InitialHeight:   Float(p.InitialHeight),
		InitialVelocity: Float(p.InitialVelocity),
		InitialTime:     Float(p.InitialTime),
		Acceleration:    Float(p.Acceleration),
		Duration:        Float(p.Duration),
		TimeStep:        Float(p.TimeStep),
		Steps:           len(result.Trajectory),
		Grounded:        result.Grounded,
		Metrics:         floatMap(result.Metrics),
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	if err := WriteCSV(csvFile, result.Trajectory); err != nil {
		csvFile.Close()
		return "", fmt.Errorf("write states: %w", err)
	}
	if err := csvFile.Close(); err != nil {
		return "", err
	}

	s.logger.Debug("saved run", "id", runID, "dir", runDir, "states", len(result.Trajectory))
	return runID, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// WriteCSV writes a time,height,velocity table with a header row.
func WriteCSV(w io.Writer, tr dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "height", "velocity"}); err != nil {
		return err
	}
	for _, st := range tr {
		row := []string{
			strconv.FormatFloat(st.Time, 'g', -1, 64),
			strconv.FormatFloat(st.Height, 'g', -1, 64),
			strconv.FormatFloat(st.Velocity, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// List returns the metadata of every readable run, oldest first.
// Unreadable run directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Warn("skipping run", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) (dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return dynamo.Trajectory{}, nil
	}

	tr := make(dynamo.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			vals[j] = v
		}
		tr = append(tr, dynamo.KinematicState{Time: vals[0], Height: vals[1], Velocity: vals[2]})
	}

	return tr, nil
}
