package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/haiquanvn/aquamon/internal/model"
)

// PredictionInput is the payload for a single expert prediction run.
type PredictionInput struct {
	AreaID    int64             `json:"area_id" validate:"required"`
	ModelName string            `json:"modelName" validate:"required"`
	Inputs    map[string]string `json:"inputs" validate:"required,min=1"`
}

// PredictionsPage is one offset/limit page of predictions.
type PredictionsPage struct {
	Predictions []model.Prediction `json:"predictions"`
	Total       int                `json:"total"`
}

// BatchResponse acknowledges a batch submission with the job tracking it.
type BatchResponse struct {
	JobID int64 `json:"job_id"`
	Rows  int   `json:"rows"`
}

// UploadResponse acknowledges a raw spreadsheet upload. The row count is
// unknown client-side; the server parses the file.
type UploadResponse struct {
	JobID int64 `json:"job_id"`
}

func pageQuery(limit, offset int) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return params.Encode()
}

// AdminPredictions fetches one page of all predictions.
func (c *Client) AdminPredictions(ctx context.Context, limit, offset int) (*PredictionsPage, error) {
	var out PredictionsPage
	path := "/predictions/admin?" + pageQuery(limit, offset)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserPredictions fetches one page of the predictions created by a user.
func (c *Client) UserPredictions(ctx context.Context, userID int64, limit, offset int) (*PredictionsPage, error) {
	var out PredictionsPage
	path := fmt.Sprintf("/predictions/user/%d?%s", userID, pageQuery(limit, offset))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Prediction fetches one prediction with its natural elements.
func (c *Client) Prediction(ctx context.Context, id int64) (*model.Prediction, error) {
	var out model.Prediction
	path := fmt.Sprintf("/predictions/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestPrediction fetches the newest prediction for an area. Public: the
// citizen area detail shows it without a login, and callers treat a failure
// here as best-effort.
func (c *Client) LatestPrediction(ctx context.Context, areaID int64) (*model.Prediction, error) {
	var out model.Prediction
	path := fmt.Sprintf("/predictions/%d/latest", areaID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePrediction runs one prediction for an area.
func (c *Client) CreatePrediction(ctx context.Context, in PredictionInput) (*model.Prediction, error) {
	var out model.Prediction
	if err := c.doJSON(ctx, http.MethodPost, "/predictions", in, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitBatch sends client-parsed CSV rows for asynchronous batch
// prediction. Uses the long batch timeout: the server may synchronously
// validate a large submission before queueing it.
func (c *Client) SubmitBatch(ctx context.Context, rows []map[string]string) (*BatchResponse, error) {
	body := map[string]any{"rows": rows}
	var out BatchResponse
	opts := requestOpts{authed: true, timeout: c.conf.BatchTimeout}
	if err := c.doJSON(ctx, http.MethodPost, "/predictions/batch", body, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadExcel forwards a raw .xlsx/.xls file for server-side parsing.
func (c *Client) UploadExcel(ctx context.Context, filename string, file io.Reader) (*UploadResponse, error) {
	var out UploadResponse
	if err := c.doMultipart(ctx, "/predictions/excel", "file", filename, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadExcelV2 is the alternate upload endpoint with the newer server-side
// parser.
func (c *Client) UploadExcelV2(ctx context.Context, filename string, file io.Reader) (*UploadResponse, error) {
	var out UploadResponse
	if err := c.doMultipart(ctx, "/predictions/excel2", "file", filename, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
