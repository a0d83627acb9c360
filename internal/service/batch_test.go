package service_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/haiquanvn/aquamon/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPredictionAPI is a mock implementation of service.PredictionAPI
type MockPredictionAPI struct {
	mock.Mock
}

func (m *MockPredictionAPI) CreatePrediction(ctx context.Context, in api.PredictionInput) (*model.Prediction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Prediction), args.Error(1)
}

func (m *MockPredictionAPI) SubmitBatch(ctx context.Context, rows []map[string]string) (*api.BatchResponse, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.BatchResponse), args.Error(1)
}

func (m *MockPredictionAPI) UploadExcel(ctx context.Context, filename string, file io.Reader) (*api.UploadResponse, error) {
	args := m.Called(ctx, filename, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.UploadResponse), args.Error(1)
}

const sampleCSV = `area_id,salinity,temperature
1,28.5,24.1
2,30.0,25.3
3,27.2,23.8
4,29.1,24.9
5,31.4,26.0
`

func TestParseCSV(t *testing.T) {
	rows, err := service.ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, map[string]string{"area_id": "1", "salinity": "28.5", "temperature": "24.1"}, rows[0])
	assert.Equal(t, "31.4", rows[4]["salinity"])
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"ParseCSV_Empty", ""},
		{"ParseCSV_RaggedRow", "a,b\n1,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	rows, err := service.ParseCSV(strings.NewReader("area_id,salinity\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// A CSV of 5 well-formed rows must submit exactly those 5 row mappings.
func TestIngestCSVSubmitsParsedRows(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockPredictionAPI)

	var submitted []map[string]string
	mockAPI.On("SubmitBatch", ctx, mock.AnythingOfType("[]map[string]string")).
		Run(func(args mock.Arguments) {
			submitted = args.Get(1).([]map[string]string)
		}).
		Return(&api.BatchResponse{JobID: 11, Rows: 5}, nil)

	predictionService := service.NewPredictionService(mockAPI)
	result, err := predictionService.IngestCSV(ctx, strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, 5, result.Rows)
	assert.Equal(t, int64(11), result.JobID)
	require.Len(t, submitted, 5)
	assert.Equal(t, "1", submitted[0]["area_id"])
	assert.Equal(t, "5", submitted[4]["area_id"])

	mockAPI.AssertExpectations(t)
}

func TestIngestCSVNoDataRowsNeverSubmits(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockPredictionAPI)

	predictionService := service.NewPredictionService(mockAPI)
	_, err := predictionService.IngestCSV(ctx, strings.NewReader("area_id,salinity\n"))

	assert.ErrorIs(t, err, service.ErrValidation)
	mockAPI.AssertNotCalled(t, "SubmitBatch", mock.Anything, mock.Anything)
}

// The Excel path forwards the file untouched and reports no row count.
func TestIngestExcelPassesFileThrough(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockPredictionAPI)
	file := strings.NewReader("opaque spreadsheet bytes")

	mockAPI.On("UploadExcel", ctx, "batch.xlsx", file).
		Return(&api.UploadResponse{JobID: 4}, nil)

	predictionService := service.NewPredictionService(mockAPI)
	result, err := predictionService.IngestExcel(ctx, "batch.xlsx", file)

	require.NoError(t, err)
	assert.Equal(t, int64(4), result.JobID)
	assert.Zero(t, result.Rows, "the client never learns the spreadsheet row count")

	mockAPI.AssertExpectations(t)
}

func TestCreatePredictionValidatesInput(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockPredictionAPI)
	predictionService := service.NewPredictionService(mockAPI)

	_, err := predictionService.Create(ctx, api.PredictionInput{ModelName: "oyster_ridge"})
	assert.ErrorIs(t, err, service.ErrValidation, "missing area and inputs must fail locally")
	mockAPI.AssertNotCalled(t, "CreatePrediction", mock.Anything, mock.Anything)

	in := api.PredictionInput{
		AreaID:    2,
		ModelName: "oyster_ridge",
		Inputs:    map[string]string{"salinity": "28.5"},
	}
	mockAPI.On("CreatePrediction", ctx, in).
		Return(&model.Prediction{ID: 1, AreaID: 2, Result: model.ResultGood}, nil)

	prediction, err := predictionService.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, model.ResultGood, prediction.Result)

	mockAPI.AssertExpectations(t)
}
