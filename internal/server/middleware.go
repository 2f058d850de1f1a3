package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/npatel/wayfinder/internal/auth"
	"github.com/npatel/wayfinder/internal/models"
	"gorm.io/gorm"
)

// currentUserKey is the gin context key holding the authenticated user.
const currentUserKey = "currentUser"

// requireUser parses the bearer token, loads the user, and aborts with 401
// on any failure. The {"detail": ...} error shape matches the rest of the
// API.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		claims, err := auth.ParseAccessToken(s.jwtSecret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		var user models.User
		if err := s.db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load user"})
			}
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// currentUser returns the user set by requireUser.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(currentUserKey).(*models.User)
}
