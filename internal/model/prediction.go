package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// PredictionResult is the three-valued outcome of an environmental-factor
// prediction. The upstream API encodes it as the strings "-1", "0" and "1"
// (and occasionally as bare numbers); the codec below preserves that wire
// format while the rest of the code works with the typed constants.
type PredictionResult int

const (
	ResultPoor    PredictionResult = -1
	ResultAverage PredictionResult = 0
	ResultGood    PredictionResult = 1
)

// String returns the human-readable label for the result.
func (r PredictionResult) String() string {
	switch r {
	case ResultPoor:
		return "Poor"
	case ResultAverage:
		return "Average"
	case ResultGood:
		return "Good"
	}
	return fmt.Sprintf("PredictionResult(%d)", int(r))
}

// Valid reports whether r is one of the three known outcomes.
func (r PredictionResult) Valid() bool {
	return r == ResultPoor || r == ResultAverage || r == ResultGood
}

// ParsePredictionResult parses the wire representation of a result.
func ParsePredictionResult(s string) (PredictionResult, error) {
	switch s {
	case "-1":
		return ResultPoor, nil
	case "0":
		return ResultAverage, nil
	case "1":
		return ResultGood, nil
	}
	return 0, fmt.Errorf("unknown prediction result %q", s)
}

// MarshalJSON encodes the result as the wire string the server expects.
func (r PredictionResult) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot encode prediction result %d", int(r))
	}
	return []byte(strconv.Quote(strconv.Itoa(int(r)))), nil
}

// UnmarshalJSON accepts both the string form ("-1") and the bare number
// form (-1) seen from older server builds.
func (r *PredictionResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid prediction result %s", string(data))
		}
		s = strconv.Itoa(n)
	}
	parsed, err := ParsePredictionResult(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// NaturalElement is a measured environmental factor attached to a prediction.
type NaturalElement struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Value       float64 `json:"value"`
}

// Prediction represents a stored prediction for an area. The camelCase
// timestamp keys match the upstream API.
type Prediction struct {
	ID              int64            `json:"id"`
	AreaID          int64            `json:"area_id"`
	Result          PredictionResult `json:"prediction_text"`
	NaturalElements []NaturalElement `json:"natural_elements"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}
