package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/metrics"
	"github.com/haiquanvn/aquamon/internal/model"
)

// PredictionAPI is the slice of the API client the prediction workflows need.
type PredictionAPI interface {
	CreatePrediction(ctx context.Context, in api.PredictionInput) (*model.Prediction, error)
	SubmitBatch(ctx context.Context, rows []map[string]string) (*api.BatchResponse, error)
	UploadExcel(ctx context.Context, filename string, file io.Reader) (*api.UploadResponse, error)
}

// PredictionService owns single and batch prediction submission.
type PredictionService struct {
	api PredictionAPI
}

// NewPredictionService creates a PredictionService over the given API.
func NewPredictionService(predictionAPI PredictionAPI) *PredictionService {
	return &PredictionService{api: predictionAPI}
}

// Create validates and runs one prediction.
func (s *PredictionService) Create(ctx context.Context, in api.PredictionInput) (*model.Prediction, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.api.CreatePrediction(ctx, in)
}

// ParseCSV decodes a batch file into one string map per data row, keyed by
// the header row. This is the only client-side parsing in the ingestion
// paths; spreadsheets go to the server untouched.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: the file is empty", ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			row[key] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BatchResult reports what a CSV ingestion did. Rows is known because the
// client did the parsing; the Excel path has no equivalent.
type BatchResult struct {
	Rows  int
	JobID int64
}

// IngestCSV parses the file and submits the rows for batch prediction.
func (s *PredictionService) IngestCSV(ctx context.Context, file io.Reader) (*BatchResult, error) {
	rows, err := ParseCSV(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: the file has no data rows", ErrValidation)
	}

	resp, err := s.api.SubmitBatch(ctx, rows)
	if err != nil {
		return nil, err
	}
	metrics.BatchRowsSubmitted.Add(float64(len(rows)))
	return &BatchResult{Rows: len(rows), JobID: resp.JobID}, nil
}

// IngestExcel forwards a spreadsheet untouched; the server parses it and the
// row count stays opaque to the client.
func (s *PredictionService) IngestExcel(ctx context.Context, filename string, file io.Reader) (*BatchResult, error) {
	resp, err := s.api.UploadExcel(ctx, filename, file)
	if err != nil {
		return nil, err
	}
	return &BatchResult{JobID: resp.JobID}, nil
}
