// Package apitest implements an in-memory double of the monitoring API for
// integration tests and local development. It speaks the same routes, wire
// envelopes and error bodies as the real backend, mints real signed tokens,
// and keeps all state in memory behind a mutex.
package apitest

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haiquanvn/aquamon/internal/model"
)

// Secret signs every token the fake issues. Tests that want to forge or
// inspect tokens use the same value.
const Secret = "apitest-secret"

// Server is the in-memory API double. Exported fields are for test
// assertions only; handlers guard all access with mu.
type Server struct {
	mu sync.Mutex

	users     []model.User
	passwords map[int64]string

	provinces []model.Province
	districts []model.District
	areas     []model.Area

	predictions   []model.Prediction
	subscriptions []model.EmailSubscription
	jobs          []model.Job

	// otps maps a subscriber email to the code most recently issued for it.
	otps map[string]string

	nextID  int64
	otpSeq  int
	engine  *gin.Engine
	started time.Time
}

// New builds a seeded fake server.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		passwords: make(map[int64]string),
		otps:      make(map[string]string),
		nextID:    1000,
		started:   time.Now(),
	}
	s.seed()

	engine := gin.New()
	engine.Use(Recovery())
	s.routes(engine)
	s.engine = engine
	return s
}

// Handler exposes the server for httptest or a plain http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// OTPCode returns the last one-time code issued for an email, for tests that
// play the citizen reading their inbox. Empty when none is pending.
func (s *Server) OTPCode(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[email]
}

// Subscriptions returns a snapshot of the stored subscriptions.
func (s *Server) Subscriptions() []model.EmailSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.EmailSubscription, len(s.subscriptions))
	copy(out, s.subscriptions)
	return out
}

// Jobs returns a snapshot of the stored jobs, newest first.
func (s *Server) Jobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func strptr(v string) *string { return &v }

func (s *Server) seed() {
	s.provinces = []model.Province{
		{ID: 10, Name: "Khanh Hoa"},
		{ID: 20, Name: "Ba Ria - Vung Tau"},
	}
	s.districts = []model.District{
		{ID: 1, Name: "Van Ninh", ProvinceID: 10},
		{ID: 2, Name: "Cam Ranh", ProvinceID: 10},
		{ID: 3, Name: "Long Dien", ProvinceID: 20},
	}

	districtOne := int64(1)
	s.areas = []model.Area{
		{ID: 1, Name: "Vũng Rô", AreaType: model.AreaTypeCobia, Size: 24.0,
			Latitude: 12.86, Longitude: 109.4, ProvinceID: 10, DistrictID: &districtOne,
			Province: "Khanh Hoa", District: "Van Ninh"},
		{ID: 2, Name: "Vân Phong", AreaType: model.AreaTypeOyster, Size: 18.5,
			Latitude: 12.58, Longitude: 109.33, ProvinceID: 10,
			Province: "Khanh Hoa"},
		{ID: 3, Name: "Long Hải", AreaType: model.AreaTypeOyster, Size: 9.75,
			Latitude: 10.43, Longitude: 107.23, ProvinceID: 20,
			Province: "Ba Ria - Vung Tau"},
	}

	s.users = []model.User{
		{ID: 1, Username: "Quan Tri", LoginName: "admin", Email: "admin@aquamon.vn",
			Role: model.RoleAdmin, Status: model.StatusActive},
		{ID: 2, Username: "Chuyen Gia", LoginName: "expert", Email: "expert@aquamon.vn",
			Role: model.RoleExpert, Status: model.StatusActive},
		{ID: 3, Username: "Quan Ly Tinh", LoginName: "manager-province", Email: "manager.kh@aquamon.vn",
			Role: model.RoleManager, Province: "Khanh Hoa", Status: model.StatusActive},
		{ID: 4, Username: "Quan Ly Huyen", LoginName: "manager-district", Email: "manager.vn@aquamon.vn",
			Role: model.RoleManager, Province: "Khanh Hoa", District: strptr("Van Ninh"),
			Status: model.StatusActive},
		{ID: 5, Username: "Khoa Cu", LoginName: "disabled", Email: "disabled@aquamon.vn",
			Role: model.RoleExpert, Status: model.StatusInactive},
	}
	for _, u := range s.users {
		s.passwords[u.ID] = "secret123"
	}

	now := s.started
	for i := 0; i < 8; i++ {
		created := now.Add(-time.Duration(8-i) * 24 * time.Hour)
		s.predictions = append(s.predictions, model.Prediction{
			ID:     int64(i + 1),
			AreaID: int64(i%3 + 1),
			Result: model.PredictionResult(i%3 - 1),
			NaturalElements: []model.NaturalElement{
				{Name: "salinity", Unit: "ppt", Category: "water", Value: 28.0 + float64(i)},
				{Name: "temperature", Unit: "C", Category: "water", Value: 23.5 + float64(i)/2},
			},
			CreatedAt: created.Format(time.RFC3339),
			UpdatedAt: created.Format(time.RFC3339),
		})
	}

	s.subscriptions = []model.EmailSubscription{
		{ID: 1, Email: "ngudan1@example.com", AreaID: 1, IsActive: true,
			CreatedAt: now.Add(-72 * time.Hour).Format(time.RFC3339)},
		{ID: 2, Email: "ngudan2@example.com", AreaID: 2, IsActive: false,
			CreatedAt: now.Add(-48 * time.Hour).Format(time.RFC3339)},
	}

	s.jobs = []model.Job{
		{ID: 1, Name: "batch-2026-08-01", State: model.JobCompleted, Creator: "expert",
			CreatedOn:   now.Add(-96 * time.Hour).Format(time.RFC3339),
			CompletedOn: now.Add(-95 * time.Hour).Format(time.RFC3339)},
		{ID: 2, Name: "batch-2026-08-12", State: model.JobFailed, Creator: "expert",
			CreatedOn: now.Add(-50 * time.Hour).Format(time.RFC3339)},
		{ID: 3, Name: "batch-2026-08-20", State: model.JobActive, Creator: "admin",
			CreatedOn: now.Add(-2 * time.Hour).Format(time.RFC3339)},
	}
}

func (s *Server) routes(engine *gin.Engine) {
	// Public surface: login, the citizen home data and the OTP registration.
	engine.POST("/auth/login", s.login)
	engine.GET("/areas/all", s.listAreas)
	engine.GET("/areas/area/:id", s.getArea)
	engine.POST("/emails/send-otp", s.sendOTP)
	engine.POST("/emails/verify-otp", s.verifyOTP)
	engine.GET("/predictions/:id/latest", s.latestPrediction)

	authed := engine.Group("", s.requireAuth)

	auth := authed.Group("/auth")
	{
		auth.GET("", s.listUsers)
		auth.GET("/paginated", s.paginatedUsers)
		auth.GET("/user/:id", s.getUser)
		auth.POST("/create-user", s.createUser)
		auth.POST("/update/:id", s.updateUser)
		auth.DELETE("/delete/:id", s.deleteUser)
		auth.PATCH("/activate/:id", s.setUserStatus(model.StatusActive))
		auth.PATCH("/deactivate/:id", s.setUserStatus(model.StatusInactive))
		auth.POST("/change-password/:id", s.changePassword)
	}

	areas := authed.Group("/areas")
	{
		areas.POST("", s.createArea)
		areas.PUT("/:id", s.updateArea)
		areas.DELETE("/:id", s.deleteArea)
		areas.GET("/provinces", s.listProvinces)
		areas.GET("/districts", s.listDistricts)
	}

	emails := authed.Group("/emails")
	{
		emails.GET("", s.listSubscriptions)
		emails.GET("/area/:id/subscribers", s.listSubscribers)
		emails.POST("/subscribe", s.createSubscription)
		emails.PUT("/:id", s.updateSubscription)
		emails.DELETE("/:id", s.deleteSubscription)
		emails.POST("/send-manual", s.sendManual)
		emails.POST("/test", s.sendTest)
	}

	predictions := authed.Group("/predictions")
	{
		predictions.GET("/admin", s.adminPredictions)
		predictions.GET("/user/:id", s.userPredictions)
		predictions.GET("/:id", s.getPrediction)
		predictions.POST("", s.createPrediction)
		predictions.POST("/batch", s.submitBatch)
		predictions.POST("/excel", s.uploadExcel)
		predictions.POST("/excel2", s.uploadExcel)
	}

	authed.GET("/jobs", s.listJobs)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// page slices rows for an offset/limit query. Pages past the first start one
// row early, so consecutive pages share a boundary row the way the upstream
// backend's queries do. Clients are expected to deduplicate.
func pageBounds(total, limit, offset int) (int, int) {
	start := offset
	if start > 0 {
		start--
	}
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", what)})
}
