// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/controller"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	recordController    *controller.RecordController
	dashboardController *controller.DashboardController
	groupController     *controller.GroupController
	supplierController  *controller.SupplierController
	goalController      *controller.GoalController
	alertController     *controller.AlertController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// Controllers groups the controllers mounted by the router. Nil controllers
// leave their routes unregistered.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	Record    *controller.RecordController
	Dashboard *controller.DashboardController
	Group     *controller.GroupController
	Supplier  *controller.SupplierController
	Goal      *controller.GoalController
	Alert     *controller.AlertController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    controllers.Health,
		authController:      controllers.Auth,
		recordController:    controllers.Record,
		dashboardController: controllers.Dashboard,
		groupController:     controllers.Group,
		supplierController:  controllers.Supplier,
		goalController:      controllers.Goal,
		alertController:     controllers.Alert,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	r.engine.GET("/api/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}
	}

	if r.authMiddleware == nil {
		return
	}

	// Authenticated routes that do not depend on a store
	authenticated := v1.Group("")
	authenticated.Use(r.authMiddleware.Authenticate())
	{
		if r.authController != nil {
			authenticated.GET("/stores", r.authController.ListStores)
		}
		if r.alertController != nil {
			authenticated.POST("/alerts/run", middleware.RequireRole(entity.RoleAdmin), r.alertController.Run)
		}
	}

	// Store scoped routes
	scoped := v1.Group("")
	scoped.Use(r.authMiddleware.Authenticate(), middleware.RequireStore())
	{
		if r.authController != nil {
			scoped.GET("/me", r.authController.Me)
		}

		if r.recordController != nil {
			records := scoped.Group("/records")
			{
				records.GET("", r.recordController.List)
				records.POST("/purchases", r.recordController.AddPurchase)
				records.DELETE("/purchases/:date", r.recordController.RemovePurchase)
				records.PUT("/revenue", r.recordController.SetRevenue)
			}
		}

		if r.dashboardController != nil {
			scoped.GET("/dashboard", r.dashboardController.Get)
			analysis := scoped.Group("/analysis")
			{
				analysis.GET("/groups", r.dashboardController.GroupAnalysis)
				analysis.GET("/suppliers", r.dashboardController.SupplierAnalysis)
			}
		}

		if r.groupController != nil {
			groups := scoped.Group("/groups")
			{
				groups.GET("", r.groupController.List)
				groups.POST("", r.groupController.Create)
				groups.PUT("", middleware.RequireRole(entity.RoleAdmin), r.groupController.Replace)
				groups.DELETE("/:id", r.groupController.Delete)
			}
		}

		if r.supplierController != nil {
			suppliers := scoped.Group("/suppliers")
			{
				suppliers.GET("", r.supplierController.List)
				suppliers.POST("", r.supplierController.Create)
				suppliers.DELETE("/:id", r.supplierController.Delete)
			}
		}

		if r.goalController != nil {
			goals := scoped.Group("/goals")
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.DELETE("/:id", r.goalController.Delete)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
