package apitest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haiquanvn/aquamon/internal/model"
)

func (s *Server) adminPredictions(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	offset := queryInt(c, "offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := pageBounds(len(s.predictions), limit, offset)
	c.JSON(http.StatusOK, gin.H{
		"predictions": s.predictions[start:end],
		"total":       len(s.predictions),
	})
}

// userPredictions returns the same paginated shape as the admin listing.
// The fake does not track per-prediction creators, so every user sees the
// full set.
func (s *Server) userPredictions(c *gin.Context) {
	if _, ok := pathID(c); !ok {
		return
	}
	s.adminPredictions(c)
}

func (s *Server) getPrediction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.predictions {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	notFound(c, "prediction")
}

func (s *Server) latestPrediction(c *gin.Context) {
	areaID, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *model.Prediction
	for i := range s.predictions {
		p := s.predictions[i]
		if p.AreaID != areaID {
			continue
		}
		if latest == nil || p.CreatedAt > latest.CreatedAt {
			latest = &p
		}
	}
	if latest == nil {
		notFound(c, "prediction")
		return
	}
	c.JSON(http.StatusOK, latest)
}

type predictionRequest struct {
	AreaID    int64             `json:"area_id" binding:"required"`
	ModelName string            `json:"modelName" binding:"required"`
	Inputs    map[string]string `json:"inputs" binding:"required"`
}

func (s *Server) createPrediction(c *gin.Context) {
	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.areaExists(req.AreaID) {
		notFound(c, "area")
		return
	}

	now := time.Now().Format(time.RFC3339)
	prediction := model.Prediction{
		ID:        s.id(),
		AreaID:    req.AreaID,
		Result:    model.ResultAverage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for name, raw := range req.Inputs {
		prediction.NaturalElements = append(prediction.NaturalElements, model.NaturalElement{
			Name:        name,
			Description: raw,
			Category:    "input",
		})
	}
	s.predictions = append(s.predictions, prediction)
	c.JSON(http.StatusCreated, prediction)
}

type batchRequest struct {
	Rows []map[string]string `json:"rows" binding:"required"`
}

func (s *Server) submitBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no rows submitted"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.enqueueJob(fmt.Sprintf("batch-%d-rows", len(req.Rows)))
	c.JSON(http.StatusOK, gin.H{"job_id": job.ID, "rows": len(req.Rows)})
}

func (s *Server) uploadExcel(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.enqueueJob(file.Filename)
	c.JSON(http.StatusOK, gin.H{"job_id": job.ID})
}

// enqueueJob records a waiting job for a batch submission. Must be called
// with mu held.
func (s *Server) enqueueJob(name string) model.Job {
	job := model.Job{
		ID:        s.id(),
		Name:      name,
		State:     model.JobWaiting,
		Creator:   "apitest",
		CreatedOn: time.Now().Format(time.RFC3339),
	}
	s.jobs = append(s.jobs, job)
	return job
}

func (s *Server) listJobs(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	offset := queryInt(c, "offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := pageBounds(len(s.jobs), limit, offset)
	c.JSON(http.StatusOK, gin.H{"jobs": s.jobs[start:end]})
}
