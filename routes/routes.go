package routes

import (
	"backend/config"
	"backend/controllers"
	"backend/repositories"
	"backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // the Next.js frontend runs on its own origin

	catalogRepo := repositories.NewGormCatalogRepository(config.DB)
	userRepo := repositories.NewGormUserRepository(config.DB)
	logRepo := repositories.NewGormLogRepository(config.DB)
	recRepo := repositories.NewGormRecommendationRepository(config.DB)

	userSvc := services.NewUserService(userRepo)
	recSvc := services.NewRecommendationService(catalogRepo, userRepo, recRepo)
	deliverySvc := services.NewDeliveryService(catalogRepo)
	logSvc := services.NewLogService(userRepo, catalogRepo, logRepo)
	summarySvc := services.NewSummaryService(userRepo, catalogRepo, logRepo)
	dishSvc := services.NewDishService(catalogRepo)

	userCtl := controllers.NewUserController(userSvc)
	recCtl := controllers.NewRecommendationController(recSvc)
	deliveryCtl := controllers.NewDeliveryController(deliverySvc)
	logCtl := controllers.NewLogController(logSvc)
	summaryCtl := controllers.NewSummaryController(summarySvc)
	dishCtl := controllers.NewDishController(dishSvc)

	auth := r.Group("/auth")
	{
		auth.POST("/register", userCtl.Register)
	}

	user := r.Group("/user")
	{
		user.POST("/calorie-target", userCtl.ComputeCalorieTarget)
		user.POST("/log-dish", logCtl.LogDish)
		user.POST("/daily-summary", summaryCtl.DailySummary)
	}

	r.POST("/recommendations", recCtl.GetRecommendation)
	r.POST("/delivery/cheapest", deliveryCtl.Cheapest)
	r.POST("/dishes/resolve", dishCtl.ResolveDish)

	return r
}
