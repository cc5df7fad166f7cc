package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/servicedesk/backend/internal/controllers"
	"github.com/servicedesk/backend/internal/middleware"
	"github.com/servicedesk/backend/internal/models"
	"github.com/servicedesk/backend/internal/services"
	"gorm.io/gorm"
)

func mountLookup[T any, P interface {
	*T
	models.LookupRow
}](api *gin.RouterGroup, path string, ctrl *controllers.LookupController[T, P]) {
	group := api.Group(path)
	{
		group.POST("", ctrl.Create)
		group.GET("", ctrl.GetAll)
		group.GET("/:id", ctrl.GetByID)
		group.PUT("/:id", ctrl.Update)
		group.DELETE("/:id", ctrl.Delete)
	}
}

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize services
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService)
	incidentService := services.NewIncidentService(db)

	priorityService := services.NewLookupService[models.Priority](db, "priority")
	impactService := services.NewLookupService[models.Impact](db, "impact")
	urgencyService := services.NewLookupService[models.Urgency](db, "urgency")
	categoryService := services.NewLookupService[models.Category](db, "category")
	resolutionCodeService := services.NewLookupService[models.ResolutionCode](db, "resolution code")
	pendingReasonService := services.NewLookupService[models.PendingReason](db, "pending reason")

	// Initialize controllers
	authController := controllers.NewAuthController(authService, userService)
	userController := controllers.NewUserController(userService)
	roleController := controllers.NewRoleController(userService)
	incidentController := controllers.NewIncidentController(incidentService)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Users
			users := protected.Group("/users")
			{
				users.POST("", userController.Create)
				users.GET("", userController.GetAll)
				users.GET("/:id", userController.GetByID)
				users.PUT("/:id", userController.Update)
				users.DELETE("/:id", userController.Delete)
			}

			// Roles (no update; rows are immutable once created)
			roles := protected.Group("/roles")
			{
				roles.POST("", roleController.Create)
				roles.GET("", roleController.GetAll)
				roles.GET("/:id", roleController.GetByID)
				roles.GET("/by-name/:name", roleController.GetByName)
				roles.DELETE("/:id", roleController.Delete)
			}

			// Incidents
			incidents := protected.Group("/incidents")
			{
				incidents.POST("", incidentController.Create)
				incidents.GET("", incidentController.GetAll)
				incidents.GET("/:id", incidentController.GetByID)
				incidents.PUT("/:id", incidentController.Update)
				incidents.PATCH("/:id/status", incidentController.UpdateStatus)
				incidents.DELETE("/:id", incidentController.Delete)
			}

			// Taxonomies
			mountLookup(protected, "/priorities", controllers.NewLookupController(priorityService))
			mountLookup(protected, "/impacts", controllers.NewLookupController(impactService))
			mountLookup(protected, "/urgencies", controllers.NewLookupController(urgencyService))
			mountLookup(protected, "/categories", controllers.NewLookupController(categoryService))
			mountLookup(protected, "/resolution-codes", controllers.NewLookupController(resolutionCodeService))
			mountLookup(protected, "/pending-reasons", controllers.NewLookupController(pendingReasonService))
		}
	}
}
