package model_test

import (
	"encoding/json"
	"testing"

	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionResultString(t *testing.T) {
	assert.Equal(t, "Poor", model.ResultPoor.String())
	assert.Equal(t, "Average", model.ResultAverage.String())
	assert.Equal(t, "Good", model.ResultGood.String())
}

func TestParsePredictionResult(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.PredictionResult
		wantErr bool
	}{
		{"Parse_Poor", "-1", model.ResultPoor, false},
		{"Parse_Average", "0", model.ResultAverage, false},
		{"Parse_Good", "1", model.ResultGood, false},
		{"Parse_Unknown", "2", 0, true},
		{"Parse_Empty", "", 0, true},
		{"Parse_Label", "Good", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParsePredictionResult(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The server stores results as the strings "-1"/"0"/"1"; the enum must keep
// that wire format.
func TestPredictionResultMarshalKeepsWireStrings(t *testing.T) {
	data, err := json.Marshal(model.ResultPoor)
	require.NoError(t, err)
	assert.Equal(t, `"-1"`, string(data))

	data, err = json.Marshal(model.ResultGood)
	require.NoError(t, err)
	assert.Equal(t, `"1"`, string(data))

	_, err = json.Marshal(model.PredictionResult(7))
	assert.Error(t, err, "out-of-range results must not be encodable")
}

func TestPredictionResultUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.PredictionResult
		wantErr bool
	}{
		{"Unmarshal_String", `"-1"`, model.ResultPoor, false},
		{"Unmarshal_StringGood", `"1"`, model.ResultGood, false},
		// older server builds send bare numbers
		{"Unmarshal_Number", `0`, model.ResultAverage, false},
		{"Unmarshal_NumberPoor", `-1`, model.ResultPoor, false},
		{"Unmarshal_Unknown", `"5"`, 0, true},
		{"Unmarshal_Garbage", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.PredictionResult
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredictionJSONRoundTrip(t *testing.T) {
	raw := `{"id":3,"area_id":9,"prediction_text":"1","natural_elements":[{"name":"salinity","unit":"ppt","category":"water","value":28.5}],"createdAt":"2026-08-01T10:00:00Z","updatedAt":"2026-08-01T10:00:00Z"}`

	var p model.Prediction
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, model.ResultGood, p.Result)
	require.Len(t, p.NaturalElements, 1)
	assert.Equal(t, "salinity", p.NaturalElements[0].Name)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"prediction_text":"1"`)
}
