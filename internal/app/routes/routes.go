package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aurel/sportcourse/internal/app/controllers"
	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	sportController *controllers.SportController,
	courseController *controllers.CourseController,
	subscriptionController *controllers.SubscriptionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	sports := v1.Group("/sports")
	{
		sports.GET("", sportController.GetAllSports)
		sports.GET("/:id", sportController.GetSportByID)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		// Sport catalog management is admin only
		sportsAdmin := authenticated.Group("/sports")
		sportsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			sportsAdmin.POST("", sportController.CreateSport)
			sportsAdmin.PUT("/:id", sportController.UpdateSport)
			sportsAdmin.DELETE("/:id", sportController.DeleteSport)
		}

		users := authenticated.Group("/users")
		{
			users.GET("/:id", userController.GetUserByID)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				usersAdmin.GET("", userController.GetAllUsers)
				usersAdmin.POST("/:id/grant-coach", userController.GrantCoachRole)
				usersAdmin.POST("/:id/revoke-coach", userController.RevokeCoachRole)
			}
		}

		authenticated.GET("/coaches/search", userController.SearchCoaches)

		courses := authenticated.Group("/courses")
		{
			courses.GET("/search", courseController.SearchCourses)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.POST("/:id/subscribe", courseController.Subscribe)

			// Ownership of the course is checked inside the controller; the
			// role guard only keeps non-coaches out.
			coursesCoach := courses.Group("")
			coursesCoach.Use(authMiddleware.RoleRequired(models.RoleCoach, models.RoleAdmin))
			{
				coursesCoach.POST("", courseController.CreateCourse)
				coursesCoach.PUT("/:id", courseController.UpdateCourse)
				coursesCoach.DELETE("/:id", courseController.DeleteCourse)
				coursesCoach.POST("/:id/sports/:sportId", courseController.AddSportToCourse)
				coursesCoach.DELETE("/sports/:courseSportId", courseController.RemoveSportFromCourse)
			}
		}

		subscriptions := authenticated.Group("/subscriptions")
		{
			subscriptions.GET("/:id", subscriptionController.GetSubscriptionByID)
			subscriptions.POST("/:id/accept", subscriptionController.AcceptSubscription)
			subscriptions.POST("/:id/reject", subscriptionController.RejectSubscription)
			subscriptions.POST("/:id/cancel", subscriptionController.CancelSubscription)

			subscriptionsAdmin := subscriptions.Group("")
			subscriptionsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				subscriptionsAdmin.GET("", subscriptionController.GetAllSubscriptions)
				subscriptionsAdmin.POST("", subscriptionController.CreateSubscription)
				subscriptionsAdmin.PUT("/:id", subscriptionController.UpdateSubscription)
				subscriptionsAdmin.DELETE("/:id", subscriptionController.DeleteSubscription)
			}
		}
	}
}
