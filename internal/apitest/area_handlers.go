package apitest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haiquanvn/aquamon/internal/model"
)

func (s *Server) listAreas(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"areas": s.areas})
}

func (s *Server) getArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.areas {
		if a.ID == id {
			c.JSON(http.StatusOK, a)
			return
		}
	}
	notFound(c, "area")
}

type areaRequest struct {
	Name       string  `json:"name" binding:"required"`
	AreaType   string  `json:"area_type" binding:"required,oneof=oyster cobia"`
	Size       float64 `json:"area" binding:"required,gt=0"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ProvinceID int64   `json:"province_id" binding:"required"`
	DistrictID *int64  `json:"district_id"`
}

// resolveNames fills the denormalized province and district names the list
// responses carry. Must be called with mu held.
func (s *Server) resolveNames(a *model.Area) {
	for _, p := range s.provinces {
		if p.ID == a.ProvinceID {
			a.Province = p.Name
		}
	}
	a.District = ""
	if a.DistrictID != nil {
		for _, d := range s.districts {
			if d.ID == *a.DistrictID {
				a.District = d.Name
			}
		}
	}
}

func (s *Server) createArea(c *gin.Context) {
	var req areaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	area := model.Area{
		ID:         s.id(),
		Name:       req.Name,
		AreaType:   model.AreaType(req.AreaType),
		Size:       req.Size,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		ProvinceID: req.ProvinceID,
		DistrictID: req.DistrictID,
	}
	s.resolveNames(&area)
	s.areas = append(s.areas, area)
	c.JSON(http.StatusCreated, area)
}

func (s *Server) updateArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req areaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.areas {
		if a.ID != id {
			continue
		}
		a.Name = req.Name
		a.AreaType = model.AreaType(req.AreaType)
		a.Size = req.Size
		a.Latitude = req.Latitude
		a.Longitude = req.Longitude
		a.ProvinceID = req.ProvinceID
		a.DistrictID = req.DistrictID
		s.resolveNames(&a)
		s.areas[i] = a
		c.JSON(http.StatusOK, a)
		return
	}
	notFound(c, "area")
}

func (s *Server) deleteArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.areas {
		if a.ID == id {
			s.areas = append(s.areas[:i], s.areas[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "area deleted"})
			return
		}
	}
	notFound(c, "area")
}

func (s *Server) listProvinces(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"provinces": s.provinces})
}

func (s *Server) listDistricts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"districts": s.districts})
}
