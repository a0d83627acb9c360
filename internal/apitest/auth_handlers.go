package apitest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/haiquanvn/aquamon/internal/model"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email != req.Email {
			continue
		}
		if s.passwords[u.ID] != req.Password {
			break
		}
		if !u.IsActive() {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
			return
		}
		token, err := s.mintToken(u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "role": string(u.Role)})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
}

// mintToken signs a token carrying the same claim set the real backend puts
// in its tokens. The role deliberately stays out: clients read it from the
// login response body.
func (s *Server) mintToken(u model.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"province": u.Province,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	if u.District != nil {
		claims["district"] = *u.District
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
}

func (s *Server) listUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"users": s.users})
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			c.JSON(http.StatusOK, u)
			return
		}
	}
	notFound(c, "user")
}

func (s *Server) paginatedUsers(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))
	role := c.Query("role")
	province := c.Query("province")
	limit := queryInt(c, "limit", 10)
	offset := queryInt(c, "offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.User
	for _, u := range s.users {
		if role != "" && string(u.Role) != role {
			continue
		}
		if province != "" && u.Province != province {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		matched = append(matched, u)
	}

	start, end := pageBounds(len(matched), limit, offset)
	c.JSON(http.StatusOK, gin.H{"users": matched[start:end], "total": len(matched)})
}

type userRequest struct {
	Username  string  `json:"username" binding:"required"`
	LoginName string  `json:"login_name"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Role      string  `json:"role" binding:"required"`
	Province  string  `json:"province"`
	District  *string `json:"district"`
}

func (s *Server) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == req.Email {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
	}

	user := model.User{
		ID:        s.id(),
		Username:  req.Username,
		LoginName: req.LoginName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      model.Role(req.Role),
		Province:  req.Province,
		District:  req.District,
		Status:    model.StatusActive,
	}
	s.users = append(s.users, user)
	s.passwords[user.ID] = req.Password
	c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID != id {
			continue
		}
		u.Username = req.Username
		u.LoginName = req.LoginName
		u.Email = req.Email
		u.Phone = req.Phone
		u.Address = req.Address
		u.Role = model.Role(req.Role)
		u.Province = req.Province
		u.District = req.District
		if req.Password != "" {
			s.passwords[id] = req.Password
		}
		s.users[i] = u
		c.JSON(http.StatusOK, u)
		return
	}
	notFound(c, "user")
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			delete(s.passwords, id)
			c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
			return
		}
	}
	notFound(c, "user")
}

func (s *Server) setUserStatus(status model.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.users {
			if s.users[i].ID == id {
				s.users[i].Status = status
				c.JSON(http.StatusOK, gin.H{"message": "status updated"})
				return
			}
		}
		notFound(c, "user")
	}
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (s *Server) changePassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.passwords[id]
	if !exists {
		notFound(c, "user")
		return
	}
	if current != req.OldPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old password does not match"})
		return
	}
	s.passwords[id] = req.NewPassword
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
