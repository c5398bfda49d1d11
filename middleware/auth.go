package middleware

import (
	"errors"
	"net/http"
	"strings"

	"shutterbay-backend/models"
	"shutterbay-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequesterKey is the context key holding the authenticated identity.
const RequesterKey = "requester"

// Auth validates the bearer token and attaches a models.Requester to the
// request context. Services receive the requester as an explicit argument;
// this middleware is the only place that reads the token.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(RequesterKey, models.Requester{UserID: userID, IsAdmin: claims.IsAdmin})
		c.Next()
	}
}

// RequireAdmin gates a route group behind the admin role flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, err := GetRequester(c)
		if err != nil || !requester.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// GetRequester returns the identity attached by Auth.
func GetRequester(c *gin.Context) (models.Requester, error) {
	if val, ok := c.Get(RequesterKey); ok {
		if requester, ok := val.(models.Requester); ok {
			return requester, nil
		}
	}
	return models.Requester{}, errors.New("requester not found in context")
}
