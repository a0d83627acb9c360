package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/haiquanvn/aquamon/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchCSV = `area_id,salinity,temperature
1,28.5,24.1
2,30.0,25.3
3,27.2,23.8
1,29.1,24.9
2,31.4,26.0
`

func TestBatchCSVIngestEndToEnd(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	login(t, env, "expert@aquamon.vn")

	predictionService := service.NewPredictionService(env.Client)
	result, err := predictionService.IngestCSV(ctx, strings.NewReader(batchCSV))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Rows)
	require.NotZero(t, result.JobID)

	// The submission shows up as a waiting job.
	var job *model.Job
	for _, j := range env.Backend.Jobs() {
		if j.ID == result.JobID {
			job = &j
		}
	}
	require.NotNil(t, job)
	assert.Equal(t, model.JobWaiting, job.State)

	jobs, err := env.Client.Jobs(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, jobs, 4)
}

func TestBatchExcelUploadEndToEnd(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	login(t, env, "expert@aquamon.vn")

	predictionService := service.NewPredictionService(env.Client)
	result, err := predictionService.IngestExcel(ctx, "du-lieu-q3.xlsx", strings.NewReader("opaque bytes"))
	require.NoError(t, err)
	require.NotZero(t, result.JobID)
	assert.Zero(t, result.Rows)

	var found bool
	for _, j := range env.Backend.Jobs() {
		if j.ID == result.JobID {
			found = true
			assert.Equal(t, "du-lieu-q3.xlsx", j.Name)
		}
	}
	assert.True(t, found)
}

func TestBatchRequiresLogin(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()

	predictionService := service.NewPredictionService(env.Client)
	_, err := predictionService.IngestCSV(ctx, strings.NewReader(batchCSV))
	require.Error(t, err)
}

func TestExpertCreatesSinglePrediction(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	login(t, env, "expert@aquamon.vn")

	predictionService := service.NewPredictionService(env.Client)
	created, err := predictionService.Create(ctx, api.PredictionInput{
		AreaID:    2,
		ModelName: "oyster_ridge",
		Inputs:    map[string]string{"salinity": "29.0", "temperature": "24.5"},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(2), created.AreaID)
}
