package api

import (
	"net/http"

	"alcyxob/fitlocal/internal/metrics"
	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the handlers call into.
type Services struct {
	Profiles  service.ProfileService
	Dashboard service.DashboardService
	Plans     service.PlanService
	Sessions  service.SessionService
	Reviews   service.ReviewService
	Fitness   service.FitnessService
	Export    service.ExportService
}

// RateLimitSettings applies to the endpoints that call the generator.
// A nil Limiter disables limiting.
type RateLimitSettings struct {
	Limiter           RequestRateLimiter
	GeneratePerMinute int
}

func SetupRoutes(
	router *gin.Engine,
	services Services,
	metricsManager *metrics.Manager,
	gatherer prometheus.Gatherer,
	rateLimit RateLimitSettings,
) {
	profileHandler := NewProfileHandler(services.Profiles, services.Dashboard)
	planHandler := NewPlanHandler(services.Plans, metricsManager)
	sessionHandler := NewSessionHandler(services.Sessions, metricsManager)
	reviewHandler := NewReviewHandler(services.Reviews, services.Fitness, metricsManager)
	exportHandler := NewExportHandler(services.Export)

	router.Use(PanicRecovery(metricsManager), RequestMetrics(metricsManager), LogRequest())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	{
		// reachable before the profile exists
		apiV1.GET("/profile", profileHandler.GetProfile)
		apiV1.PUT("/profile", profileHandler.SaveProfile)
	}

	profiled := apiV1.Group("")
	profiled.Use(ProfileMiddleware(services.Profiles))
	{
		profiled.GET("/dashboard", profileHandler.GetDashboard)

		// --- Plans ---
		planGroup := profiled.Group("/plans")
		{
			planGroup.POST("/generate",
				RateLimit(rateLimit.Limiter, "generate_plan", rateLimit.GeneratePerMinute, metricsManager),
				planHandler.GeneratePlan,
			)
			planGroup.GET("/pending", planHandler.GetPendingPlan)
			planGroup.POST("/pending/activate", planHandler.ActivatePlan)
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.GET("/active/progress", planHandler.GetProgress)
		}
		profiled.GET("/nutrition", planHandler.GetNutrition)

		// --- Workouts and sessions ---
		profiled.GET("/workouts/today", sessionHandler.GetTodayWorkout)
		sessionGroup := profiled.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.LogSession)
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.GET("/:sessionId", sessionHandler.GetSession)
		}
		profiled.GET("/calendar", sessionHandler.GetCalendar)
		profiled.GET("/stats/weekly", sessionHandler.GetWeeklyStats)
		profiled.GET("/exercises/:name/last-performance", sessionHandler.GetLastPerformance)

		// --- Reviews and fitness tests ---
		reviewGroup := profiled.Group("/reviews")
		{
			reviewGroup.POST("",
				RateLimit(rateLimit.Limiter, "generate_review", rateLimit.GeneratePerMinute, metricsManager),
				reviewHandler.GenerateReview,
			)
			reviewGroup.GET("/latest", reviewHandler.GetLatestReview)
		}
		fitnessGroup := profiled.Group("/fitness-tests")
		{
			fitnessGroup.POST("", reviewHandler.CreateFitnessTest)
			fitnessGroup.GET("", reviewHandler.ListFitnessTests)
			fitnessGroup.GET("/status", reviewHandler.GetRetestStatus)
		}

		// --- Export ---
		profiled.GET("/export", exportHandler.DownloadExport)
		profiled.POST("/export/archive", exportHandler.ArchiveExport)
	}
}
