package storage

import (
	"encoding/json"
	"math"
	"strconv"
)

// Float is a float64 that survives JSON when it is NaN or infinite.
// Non-finite values are written as the strings "NaN", "+Inf" and "-Inf";
// finite values stay plain JSON numbers.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = Float(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

func floatSlice(vals []float64) []Float {
	out := make([]Float, len(vals))
	for i, v := range vals {
		out[i] = Float(v)
	}
	return out
}

func floatMap(m map[string]float64) map[string]Float {
	out := make(map[string]Float, len(m))
	for k, v := range m {
		out[k] = Float(v)
	}
	return out
}
