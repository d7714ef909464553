package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/controllers"
	"github.com/yigit/placement/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	performanceController *controllers.PerformanceController,
	predictionController *controllers.PredictionController,
	authMiddleware *middleware.AuthMiddleware,
	requireAuthForStudentPrediction bool,
) {
	router.GET("/", controllers.Root)
	router.GET("/ping", controllers.Ping)

	// --- Public admin routes ---
	admin := router.Group("/admin")
	admin.POST("/login", authController.Login)

	// --- Authenticated admin routes ---
	authenticated := admin.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/dashboard", authController.Dashboard)
		authenticated.PUT("/password", authController.ChangePassword)

		students := authenticated.Group("/students")
		{
			students.POST("", studentController.CreateStudent)
			students.GET("", studentController.ListStudents)
			students.GET("/:id", studentController.GetStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		performance := authenticated.Group("/performance")
		{
			performance.GET("/summary", performanceController.Summary)
			performance.GET("/top-performers", performanceController.TopPerformers)
			performance.GET("/skill-distribution", performanceController.SkillDistribution)
		}
	}

	// --- Prediction routes ---
	predict := router.Group("/predict")
	predict.POST("", predictionController.PredictBatch)
	if requireAuthForStudentPrediction {
		predict.GET("/student/:id", authMiddleware.JWTAuth(), predictionController.PredictForStudent)
	} else {
		predict.GET("/student/:id", predictionController.PredictForStudent)
	}
}
