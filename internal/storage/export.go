package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ballsim/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Times      []Float `json:"times"`
	Heights    []Float `json:"heights"`
	Velocities []Float `json:"velocities"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, tr dynamo.Trajectory) error {
	data := ExportData{
		RunMetadata: *meta,
		Times:       floatSlice(tr.Times()),
		Heights:     floatSlice(tr.Heights()),
		Velocities:  floatSlice(tr.Velocities()),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
