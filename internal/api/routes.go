package api

import (
	"alcyxob/liftlog/internal/metrics"
	"alcyxob/liftlog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers middleware and every route on router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	m *metrics.Manager,
	gatherer prometheus.Gatherer,
	authService service.AuthService,
	workoutService service.WorkoutService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(authService, workoutService, exportService, m)

	router.Use(RequestLogger(), RequestMetrics(m))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)
		protected.GET("/exercises", workoutHandler.Exercises)

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.LogWorkout)
			workoutGroup.GET("", workoutHandler.History)
			workoutGroup.GET("/progress", workoutHandler.Progress)
			workoutGroup.GET("/export", workoutHandler.Export)
			workoutGroup.GET("/exports", workoutHandler.ListExports)
			workoutGroup.GET("/exports/:exportId/url", workoutHandler.ExportURL)
		}
	}
}
