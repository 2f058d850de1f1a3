package server

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/npatel/wayfinder/internal/auth"
	"github.com/npatel/wayfinder/internal/geo"
	"github.com/npatel/wayfinder/internal/models"
	"github.com/sirupsen/logrus"
)

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	if !emailShape.MatchString(req.Email) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid email address"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Password must be at least 6 characters"})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "First and last name are required"})
		return
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}
	user := models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashed,
	}
	if err := s.db.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("signup: create user")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

// handleLogin accepts OAuth2-style form credentials (username = email) and
// returns a bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil || !auth.VerifyPassword(password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid Credentials"})
		return
	}

	token, err := auth.CreateAccessToken(s.jwtSecret, user.ID, s.tokenTTL)
	if err != nil {
		logrus.WithError(err).Error("login: mint token")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

type distanceRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Unit        string `json:"unit"`
}

func validUnit(u string) bool {
	return u == "miles" || u == "kilometers" || u == "both"
}

func (s *Server) handleDistance(c *gin.Context) {
	var req distanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	if req.Source == "" || req.Destination == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Source and destination are required"})
		return
	}
	if !validUnit(req.Unit) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Unit must be miles, kilometers, or both"})
		return
	}

	ctx := c.Request.Context()
	from, err := s.geocoder.Geocode(ctx, req.Source)
	if err == nil {
		var to geo.Coordinates
		to, err = s.geocoder.Geocode(ctx, req.Destination)
		if err == nil {
			km := geo.Round2(geo.Haversine(from.Lat, from.Lon, to.Lat, to.Lon))
			miles := geo.Round2(geo.KMToMiles(km))

			user := currentUser(c)
			record := models.RouteQuery{
				Source:        req.Source,
				Destination:   req.Destination,
				DistanceKM:    km,
				DistanceMiles: miles,
				UserID:        user.ID,
			}
			// History is best effort: a failed save must not fail the
			// calculation.
			if err := s.db.Create(&record).Error; err != nil {
				logrus.WithError(err).Warn("distance: save history")
			}

			c.JSON(http.StatusOK, gin.H{
				"success":        true,
				"source":         req.Source,
				"destination":    req.Destination,
				"unit":           req.Unit,
				"distance_km":    km,
				"distance_miles": miles,
			})
			return
		}
	}

	logrus.WithError(err).Error("distance: calculation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to calculate distance"})
}

func (s *Server) handleHistory(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "offset must be a non-negative integer"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "limit must be between 1 and 100"})
		return
	}

	user := currentUser(c)

	var total int64
	if err := s.db.Model(&models.RouteQuery{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve history"})
		return
	}

	var rows []models.RouteQuery
	if err := s.db.Where("user_id = ?", user.ID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve history"})
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		items = append(items, gin.H{
			"source":         r.Source,
			"destination":    r.Destination,
			"distance_km":    r.DistanceKM,
			"distance_miles": r.DistanceMiles,
		})
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": items})
}

type insightsRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleHistoryInsights(c *gin.Context) {
	var req insightsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "question is required"})
		return
	}

	user := currentUser(c)
	answer, err := s.assistant.Answer(c.Request.Context(), user.ID, req.SessionID, req.Question)
	if err != nil {
		logrus.WithError(err).Error("history-insights failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to process history insights"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "answer": answer})
}
