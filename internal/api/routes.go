package api

import (
	"net/http"

	"github.com/DenGolivets/tracker-api/internal/provider/fatsecret"
	"github.com/DenGolivets/tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers into the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	containerLiters float64,
	authService service.AuthService,
	userService service.UserService,
	planService service.PlanService,
	statsService service.StatsService,
	logService service.LogService,
	exportService service.ExportService,
	foodClient *fatsecret.Client,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService, planService)
	statsHandler := NewStatsHandler(statsService, containerLiters)
	logHandler := NewLogHandler(logService)
	exportHandler := NewExportHandler(exportService)
	foodHandler := NewFoodHandler(foodClient)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		meGroup := protected.Group("/me")
		{
			meGroup.GET("", userHandler.GetMe)
			meGroup.GET("/onboarding", userHandler.OnboardingStatus)
			meGroup.PUT("/profile", userHandler.SaveProfile)
			meGroup.POST("/plan/generate", userHandler.GeneratePlan)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/daily", statsHandler.GetDailyStats)
		}

		logGroup := protected.Group("/logs")
		{
			logGroup.POST("", logHandler.AddLog)
			logGroup.GET("", logHandler.GetLogs)
			logGroup.POST("/water", logHandler.AddWater)
		}

		protected.GET("/foods/search", foodHandler.SearchFoods)
		protected.POST("/exports", exportHandler.CreateExport)
	}
}
