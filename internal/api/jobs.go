package api

import (
	"context"
	"net/http"

	"github.com/haiquanvn/aquamon/internal/model"
)

// Jobs fetches one offset/limit page of async batch-prediction jobs.
func (c *Client) Jobs(ctx context.Context, limit, offset int) ([]model.Job, error) {
	var out struct {
		Jobs []model.Job `json:"jobs"`
	}
	path := "/jobs?" + pageQuery(limit, offset)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}
