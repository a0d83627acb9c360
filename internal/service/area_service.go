package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/model"
)

// AreaAPI is the slice of the API client the area workflows need.
type AreaAPI interface {
	Areas(ctx context.Context) ([]model.Area, error)
	Area(ctx context.Context, id int64) (*model.Area, error)
	CreateArea(ctx context.Context, in api.AreaInput) (*model.Area, error)
	UpdateArea(ctx context.Context, id int64, in api.AreaInput) (*model.Area, error)
	DeleteArea(ctx context.Context, id int64) error
	Provinces(ctx context.Context) ([]model.Province, error)
	Districts(ctx context.Context) ([]model.District, error)
	LatestPrediction(ctx context.Context, areaID int64) (*model.Prediction, error)
}

// AreaService owns the area list, detail and form workflows.
type AreaService struct {
	api AreaAPI
}

// NewAreaService creates an AreaService over the given API.
func NewAreaService(areaAPI AreaAPI) *AreaService {
	return &AreaService{api: areaAPI}
}

// List fetches all areas.
func (s *AreaService) List(ctx context.Context) ([]model.Area, error) {
	return s.api.Areas(ctx)
}

// Detail is an area plus its best-effort latest prediction.
type Detail struct {
	Area   *model.Area
	Latest *model.Prediction
}

// Detail fetches the area and its latest prediction in parallel. The
// prediction is auxiliary: its failure is swallowed so the area still
// renders.
func (s *AreaService) Detail(ctx context.Context, id int64) (*Detail, error) {
	var (
		wg      sync.WaitGroup
		area    *model.Area
		areaErr error
		latest  *model.Prediction
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		area, areaErr = s.api.Area(ctx, id)
	}()
	go func() {
		defer wg.Done()
		var err error
		latest, err = s.api.LatestPrediction(ctx, id)
		if err != nil {
			slog.Debug("latest prediction unavailable", slog.Int64("area_id", id), slog.Any("err", err))
			latest = nil
		}
	}()
	wg.Wait()

	if areaErr != nil {
		return nil, areaErr
	}
	return &Detail{Area: area, Latest: latest}, nil
}

// Create validates the form, checks the district belongs to the chosen
// province and creates the area.
func (s *AreaService) Create(ctx context.Context, in api.AreaInput) (*model.Area, error) {
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	return s.api.CreateArea(ctx, in)
}

// Update validates the form the same way and replaces the area with the
// full payload.
func (s *AreaService) Update(ctx context.Context, id int64, in api.AreaInput) (*model.Area, error) {
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	return s.api.UpdateArea(ctx, id, in)
}

// Delete removes an area.
func (s *AreaService) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteArea(ctx, id)
}

// Provinces lists all provinces for the form pickers.
func (s *AreaService) Provinces(ctx context.Context) ([]model.Province, error) {
	return s.api.Provinces(ctx)
}

// Districts lists the districts of one province for the form pickers,
// pre-filtered so a foreign district can never be chosen.
func (s *AreaService) Districts(ctx context.Context, provinceID int64) ([]model.District, error) {
	districts, err := s.api.Districts(ctx)
	if err != nil {
		return nil, err
	}
	return model.DistrictsOfProvince(districts, provinceID), nil
}

func (s *AreaService) checkInput(ctx context.Context, in api.AreaInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.DistrictID == nil {
		return nil
	}
	districts, err := s.Districts(ctx, in.ProvinceID)
	if err != nil {
		return err
	}
	for _, d := range districts {
		if d.ID == *in.DistrictID {
			return nil
		}
	}
	return fmt.Errorf("%w: district %d does not belong to province %d", ErrValidation, *in.DistrictID, in.ProvinceID)
}
