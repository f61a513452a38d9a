package api

import (
	"errors"
	"io"
	"net/http"

	"alcyxob/fitlocal/internal/metrics"
	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type PlanHandler struct {
	planService    service.PlanService
	metricsManager *metrics.Manager
}

func NewPlanHandler(planService service.PlanService, metricsManager *metrics.Manager) *PlanHandler {
	return &PlanHandler{
		planService:    planService,
		metricsManager: metricsManager,
	}
}

type ActivatePlanRequest struct {
	PendingID string `json:"pendingId"`
}

// GeneratePlan godoc
// @Summary Generate a new training plan and store it as pending
// @Description Replaces any earlier pending plan. Nothing is stored when generation fails.
// @Tags Plans
// @Produce json
// @Success 201 {object} service.PendingPlan
// @Failure 425 {object} gin.H "Rate limited"
// @Failure 502 {object} gin.H "Generator failed or returned an unusable plan"
// @Router /plans/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	pending, err := h.planService.Generate(c.Request.Context(), profileID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidDocument):
			abortWithError(c, http.StatusBadGateway, "Generated plan could not be used: "+err.Error())
		default:
			log.Errorf("generate plan for %s: %s", profileID, err)
			abortWithError(c, http.StatusBadGateway, "Error generating plan: "+err.Error())
		}
		return
	}

	h.metricsManager.CounterPlansGenerated.Inc()
	c.JSON(http.StatusCreated, pending)
}

// GET /api/v1/plans/pending
func (h *PlanHandler) GetPendingPlan(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	pending, err := h.planService.GetPending(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingPlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			log.Errorf("get pending plan for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to load pending plan")
		}
		return
	}
	c.JSON(http.StatusOK, pending)
}

// ActivatePlan promotes the pending plan, replacing the active one.
// The body is optional; with a pendingId only that pending plan is accepted.
// POST /api/v1/plans/pending/activate
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var req ActivatePlanRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	plan, err := h.planService.Activate(c.Request.Context(), profileID, req.PendingID)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingPlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			log.Errorf("activate plan for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to activate plan")
		}
		return
	}

	h.metricsManager.CounterPlansActivated.Inc()
	c.JSON(http.StatusOK, plan)
}

// GET /api/v1/plans/active
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetActive(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			log.Errorf("get active plan for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to load active plan")
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GET /api/v1/plans/active/progress
func (h *PlanHandler) GetProgress(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	progress, err := h.planService.Progress(c.Request.Context(), profileID)
	if err != nil {
		log.Errorf("plan progress for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to compute plan progress")
		return
	}
	if progress == nil {
		abortWithError(c, http.StatusNotFound, service.ErrNoActivePlan.Error())
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GET /api/v1/nutrition
func (h *PlanHandler) GetNutrition(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	nutrition, err := h.planService.Nutrition(c.Request.Context(), profileID)
	if err != nil {
		log.Errorf("nutrition for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load nutrition guidance")
		return
	}
	if nutrition == nil {
		abortWithError(c, http.StatusNotFound, "No nutrition guidance for the current week")
		return
	}
	c.JSON(http.StatusOK, nutrition)
}
