package api

import (
	"errors"
	"net/http"

	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextProfileIDKey = "profileID"
)

// ProfileMiddleware resolves the install's single profile and stores its ID in
// the context. Requests are rejected until the profile has been set up.
func ProfileMiddleware(profileService service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := profileService.Get(c.Request.Context())
		if err != nil {
			if errors.Is(err, service.ErrProfileNotFound) {
				abortWithError(c, http.StatusNotFound, "Profile not set up, create it with PUT /api/v1/profile")
				return
			}
			log.Errorf("resolve profile: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
			return
		}

		c.Set(ContextProfileIDKey, profile.ID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get Profile ID from context (used by handlers)
func getProfileIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextProfileIDKey)
	if !exists {
		return "", errors.New("profile ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok || idStr == "" {
		return "", errors.New("invalid profile ID type in context")
	}
	return idStr, nil
}

// mustProfileID aborts the request when the profile middleware did not run.
func mustProfileID(c *gin.Context) (string, bool) {
	profileID, err := getProfileIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return "", false
	}
	return profileID, true
}
