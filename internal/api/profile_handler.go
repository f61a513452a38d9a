package api

import (
	"errors"
	"net/http"

	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	profileService   service.ProfileService
	dashboardService service.DashboardService
}

func NewProfileHandler(profileService service.ProfileService, dashboardService service.DashboardService) *ProfileHandler {
	return &ProfileHandler{
		profileService:   profileService,
		dashboardService: dashboardService,
	}
}

// GetProfile returns the install's profile.
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			log.Errorf("get profile: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile creates the profile on first use, updates it afterwards.
// PUT /api/v1/profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, err := h.profileService.Save(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			log.Errorf("save profile: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetDashboard godoc
// @Summary Landing view: today's workout, this week, streak and plan position
// @Tags Dashboard
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 404 {object} gin.H "Profile not set up"
// @Router /dashboard [get]
func (h *ProfileHandler) GetDashboard(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.Get(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			log.Errorf("dashboard for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to build dashboard")
		}
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
