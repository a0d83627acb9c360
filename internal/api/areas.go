package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/haiquanvn/aquamon/internal/model"
)

// AreaInput is the create/update payload for a farming area.
type AreaInput struct {
	Name       string         `json:"name" validate:"required"`
	AreaType   model.AreaType `json:"area_type" validate:"required,oneof=oyster cobia"`
	Size       float64        `json:"area" validate:"gt=0"`
	Latitude   float64        `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64        `json:"longitude" validate:"gte=-180,lte=180"`
	ProvinceID int64          `json:"province_id" validate:"required"`
	DistrictID *int64         `json:"district_id"`
}

// Areas lists all farming areas. Public: the citizen home screen shows it
// before any login.
func (c *Client) Areas(ctx context.Context) ([]model.Area, error) {
	var out struct {
		Areas []model.Area `json:"areas"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/areas/all", nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return out.Areas, nil
}

// Area fetches one area by id. Public.
func (c *Client) Area(ctx context.Context, id int64) (*model.Area, error) {
	var out model.Area
	path := fmt.Sprintf("/areas/area/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateArea creates a new area.
func (c *Client) CreateArea(ctx context.Context, in AreaInput) (*model.Area, error) {
	var out model.Area
	if err := c.doJSON(ctx, http.MethodPost, "/areas", in, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateArea replaces an area with the full payload.
func (c *Client) UpdateArea(ctx context.Context, id int64, in AreaInput) (*model.Area, error) {
	var out model.Area
	path := fmt.Sprintf("/areas/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, in, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteArea deletes an area by id.
func (c *Client) DeleteArea(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/areas/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, requestOpts{authed: true})
}

// Provinces lists all provinces.
func (c *Client) Provinces(ctx context.Context) ([]model.Province, error) {
	var out struct {
		Provinces []model.Province `json:"provinces"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/areas/provinces", nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out.Provinces, nil
}

// Districts lists all districts across provinces.
func (c *Client) Districts(ctx context.Context) ([]model.District, error) {
	var out struct {
		Districts []model.District `json:"districts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/areas/districts", nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out.Districts, nil
}
