package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alcyxob/fitlocal/internal/metrics"
	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type SessionHandler struct {
	sessionService service.SessionService
	metricsManager *metrics.Manager
}

func NewSessionHandler(sessionService service.SessionService, metricsManager *metrics.Manager) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		metricsManager: metricsManager,
	}
}

// GetTodayWorkout godoc
// @Summary Today's planned workout with each exercise's last performance
// @Description A rest day returns 200 without a workout.
// @Tags Workouts
// @Produce json
// @Success 200 {object} service.TodayWorkout
// @Failure 404 {object} gin.H "No active plan"
// @Router /workouts/today [get]
func (h *SessionHandler) GetTodayWorkout(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	today, err := h.sessionService.TodayWorkout(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			log.Errorf("today's workout for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to load today's workout")
		}
		return
	}
	c.JSON(http.StatusOK, today)
}

// LogSession godoc
// @Summary Log a workout session dated today
// @Description Numeric set fields accept numbers or strings; unparseable values are stored empty.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session body service.LogSessionInput true "Session"
// @Success 201 {object} domain.WorkoutSession
// @Failure 400 {object} gin.H "Invalid input or unknown planned workout"
// @Router /sessions [post]
func (h *SessionHandler) LogSession(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var req service.LogSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.sessionService.Log(c.Request.Context(), profileID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			log.Errorf("log session for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to log session")
		}
		return
	}

	h.metricsManager.CounterSessionsLogged.Inc()
	c.JSON(http.StatusCreated, session)
}

// GET /api/v1/sessions?limit=N, newest first
func (h *SessionHandler) ListSessions(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	sessions, err := h.sessionService.History(c.Request.Context(), profileID, limit)
	if err != nil {
		log.Errorf("session history for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GET /api/v1/sessions/:sessionId
func (h *SessionHandler) GetSession(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	detail, err := h.sessionService.Detail(c.Request.Context(), profileID, c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			log.Errorf("session detail for %s: %s", profileID, err)
			abortWithError(c, http.StatusInternalServerError, "Failed to load session")
		}
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /api/v1/calendar?year=2025&month=6, defaults to the current month
func (h *SessionHandler) GetCalendar(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	year, err := optionalIntQuery(c, "year")
	if err != nil || year < 0 {
		abortWithError(c, http.StatusBadRequest, "year must be a positive integer")
		return
	}
	month, err := optionalIntQuery(c, "month")
	if err != nil || month < 0 || month > 12 {
		abortWithError(c, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	calendar, err := h.sessionService.Calendar(c.Request.Context(), profileID, year, time.Month(month))
	if err != nil {
		log.Errorf("calendar for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to build calendar")
		return
	}
	c.JSON(http.StatusOK, calendar)
}

// GET /api/v1/stats/weekly
func (h *SessionHandler) GetWeeklyStats(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	count, err := h.sessionService.WeeklyCount(c.Request.Context(), profileID)
	if err != nil {
		log.Errorf("weekly stats for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to count sessions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionsThisWeek": count})
}

// GET /api/v1/exercises/:name/last-performance
func (h *SessionHandler) GetLastPerformance(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	exercise := strings.TrimSpace(c.Param("name"))
	if exercise == "" {
		abortWithError(c, http.StatusBadRequest, "exercise name is required")
		return
	}

	perf, err := h.sessionService.LastPerformance(c.Request.Context(), profileID, exercise)
	if err != nil {
		log.Errorf("last performance of %q for %s: %s", exercise, profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to look up last performance")
		return
	}
	if perf == nil {
		abortWithError(c, http.StatusNotFound, "No logged sets for "+exercise)
		return
	}
	c.JSON(http.StatusOK, perf)
}

func optionalIntQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
