package apitest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haiquanvn/aquamon/internal/model"
)

type otpRequest struct {
	Email  string `json:"email" binding:"required,email"`
	AreaID int64  `json:"area_id" binding:"required"`
}

func (s *Server) sendOTP(c *gin.Context) {
	var req otpRequest
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

	s.otpSeq++
	s.otps[req.Email] = fmt.Sprintf("%06d", s.otpSeq*7919%1000000)
	c.JSON(http.StatusOK, gin.H{"message": "otp sent"})
}

type verifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTPCode string `json:"otp_code" binding:"required"`
	AreaID  int64  `json:"area_id" binding:"required"`
}

func (s *Server) verifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, pending := s.otps[req.Email]
	if !pending || code != req.OTPCode {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong or expired code"})
		return
	}
	delete(s.otps, req.Email)

	s.subscriptions = append(s.subscriptions, model.EmailSubscription{
		ID:        s.id(),
		Email:     req.Email,
		AreaID:    req.AreaID,
		IsActive:  true,
		CreatedAt: time.Now().Format(time.RFC3339),
	})
	c.JSON(http.StatusOK, gin.H{"message": "subscription confirmed"})
}

func (s *Server) areaExists(id int64) bool {
	for _, a := range s.areas {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) listSubscriptions(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	offset := queryInt(c, "offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := pageBounds(len(s.subscriptions), limit, offset)
	c.JSON(http.StatusOK, gin.H{"emails": s.subscriptions[start:end]})
}

func (s *Server) listSubscribers(c *gin.Context) {
	areaID, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers := []model.EmailSubscription{}
	for _, sub := range s.subscriptions {
		if sub.AreaID == areaID {
			subscribers = append(subscribers, sub)
		}
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}

type subscriptionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	AreaID   int64  `json:"area_id" binding:"required"`
	IsActive bool   `json:"is_active"`
}

func (s *Server) createSubscription(c *gin.Context) {
	var req subscriptionRequest
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

	sub := model.EmailSubscription{
		ID:        s.id(),
		Email:     req.Email,
		AreaID:    req.AreaID,
		IsActive:  req.IsActive,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.subscriptions = append(s.subscriptions, sub)
	c.JSON(http.StatusCreated, sub)
}

func (s *Server) updateSubscription(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscriptions {
		if sub.ID != id {
			continue
		}
		sub.Email = req.Email
		sub.AreaID = req.AreaID
		sub.IsActive = req.IsActive
		s.subscriptions[i] = sub
		c.JSON(http.StatusOK, sub)
		return
	}
	notFound(c, "subscription")
}

func (s *Server) deleteSubscription(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscriptions {
		if sub.ID == id {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "subscription deleted"})
			return
		}
	}
	notFound(c, "subscription")
}

type manualEmailRequest struct {
	AreaID  int64  `json:"area_id" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (s *Server) sendManual(c *gin.Context) {
	var req manualEmailRequest
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
	c.JSON(http.StatusOK, gin.H{"message": "emails queued"})
}

func (s *Server) sendTest(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test email sent"})
}
