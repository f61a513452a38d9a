package api

import (
	"errors"
	"net/http"

	"alcyxob/fitlocal/internal/metrics"
	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	reviewService  service.ReviewService
	fitnessService service.FitnessService
	metricsManager *metrics.Manager
}

func NewReviewHandler(
	reviewService service.ReviewService,
	fitnessService service.FitnessService,
	metricsManager *metrics.Manager,
) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		fitnessService: fitnessService,
		metricsManager: metricsManager,
	}
}

// GenerateReview godoc
// @Summary Review the most recent sessions
// @Tags Reviews
// @Produce json
// @Success 201 {object} service.ReviewView
// @Failure 409 {object} gin.H "No sessions to review yet"
// @Failure 425 {object} gin.H "Rate limited"
// @Failure 502 {object} gin.H "Generator failed"
// @Router /reviews [post]
func (h *ReviewHandler) GenerateReview(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Generate(c.Request.Context(), profileID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSessions):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			log.Errorf("generate review for %s: %s", profileID, err)
			abortWithError(c, http.StatusBadGateway, "Error generating review: "+err.Error())
		}
		return
	}

	h.metricsManager.CounterReviews.Inc()
	c.JSON(http.StatusCreated, review)
}

// GET /api/v1/reviews/latest
func (h *ReviewHandler) GetLatestReview(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Latest(c.Request.Context(), profileID)
	if err != nil {
		log.Errorf("latest review for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load review")
		return
	}
	if review == nil {
		abortWithError(c, http.StatusNotFound, "No review generated yet")
		return
	}
	c.JSON(http.StatusOK, review)
}

// CreateFitnessTest godoc
// @Summary Record a fitness test dated today
// @Description Rejected until the retest interval has passed since the latest test.
// @Tags FitnessTests
// @Accept json
// @Produce json
// @Param test body service.FitnessTestInput true "Results"
// @Success 201 {object} domain.FitnessTest
// @Failure 409 {object} gin.H "Too soon for a retest"
// @Router /fitness-tests [post]
func (h *ReviewHandler) CreateFitnessTest(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var req service.FitnessTestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	test, err := h.fitnessService.Create(c.Request.Context(), profileID, req)
	if err != nil {
		if errors.Is(err, service.ErrRetestTooSoon) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			log.Errorf("create fitness test for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to record fitness test")
		}
		return
	}
	c.JSON(http.StatusCreated, test)
}

// GET /api/v1/fitness-tests, newest first
func (h *ReviewHandler) ListFitnessTests(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	tests, err := h.fitnessService.List(c.Request.Context(), profileID)
	if err != nil {
		log.Errorf("list fitness tests for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load fitness tests")
		return
	}
	c.JSON(http.StatusOK, tests)
}

// GET /api/v1/fitness-tests/status
func (h *ReviewHandler) GetRetestStatus(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	status, err := h.fitnessService.Status(c.Request.Context(), profileID)
	if err != nil {
		log.Errorf("retest status for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to check retest status")
		return
	}
	c.JSON(http.StatusOK, status)
}
