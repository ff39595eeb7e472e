package v1

import (
	"github.com/gin-gonic/gin"

	"edr/internal/domain/auth"
	"edr/internal/domain/dashboard"
	"edr/internal/domain/hr"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/projects"
	"edr/internal/domain/quotes"
	"edr/internal/domain/settings"
	"edr/internal/domain/suppliers"
	"edr/internal/infrastructure/http/v1/handlers"
	"edr/internal/infrastructure/http/v1/middleware"
	"edr/pkg/logger"
)

// RouterConfig bundles the services exposed by the API.
type RouterConfig struct {
	Logger *logger.Logger

	AuthService   *auth.Service
	Interventions *interventions.Service
	Quotes        *quotes.Service
	Inventory     *inventory.Service
	Suppliers     *suppliers.Service
	Employees     *hr.EmployeeService
	Leaves        *hr.LeaveService
	Projects      *projects.Service
	Settings      *settings.Service
	Dashboard     *dashboard.Service

	// Ready reports backend connectivity for the readiness probe.
	// Nil means always ready (memory backend).
	Ready func() error

	// AllowedOrigins configures CORS; empty allows every origin.
	AllowedOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Ready)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.AuthService.JWT()))

		interventionHandler := handlers.NewInterventionHandler(base, cfg.Interventions)
		RegisterRecordRoutes(protected.Group("/interventions"), interventionHandler)

		quoteHandler := handlers.NewQuoteHandler(base, cfg.Quotes)
		quotesGroup := protected.Group("/quotes")
		RegisterRecordRoutes(quotesGroup, quoteHandler)
		quotesGroup.POST("/:id/items", quoteHandler.AddItem)
		quotesGroup.PUT("/:id/items/:itemId", quoteHandler.UpdateItem)
		quotesGroup.DELETE("/:id/items/:itemId", quoteHandler.RemoveItem)

		inventoryHandler := handlers.NewInventoryHandler(base, cfg.Inventory)
		inventoryGroup := protected.Group("/inventory")
		inventoryGroup.GET("/low-stock", inventoryHandler.LowStock)
		RegisterRecordRoutes(inventoryGroup, inventoryHandler)
		inventoryGroup.POST("/:id/adjust", inventoryHandler.AdjustStock)

		supplierHandler := handlers.NewRecordHandler(base, cfg.Suppliers,
			func() *suppliers.Supplier { return &suppliers.Supplier{} })
		RegisterRecordRoutes(protected.Group("/suppliers"), supplierHandler)

		employeeHandler := handlers.NewRecordHandler(base, cfg.Employees,
			func() *hr.Employee { return &hr.Employee{} })
		RegisterRecordRoutes(protected.Group("/hr/employees"), employeeHandler)

		leaveHandler := handlers.NewLeaveHandler(base, cfg.Leaves)
		leaveGroup := protected.Group("/hr/leave-requests")
		RegisterRecordRoutes(leaveGroup, leaveHandler)
		leaveGroup.POST("/:id/approve", leaveHandler.Approve)
		leaveGroup.POST("/:id/reject", leaveHandler.Reject)

		projectHandler := handlers.NewRecordHandler(base, cfg.Projects,
			func() *projects.Project { return &projects.Project{} })
		RegisterRecordRoutes(protected.Group("/projects"), projectHandler)

		settingsHandler := handlers.NewSettingsHandler(base, cfg.Settings)
		protected.GET("/settings", settingsHandler.Get)
		protected.PUT("/settings", settingsHandler.Update)

		dashboardHandler := handlers.NewDashboardHandler(base, cfg.Dashboard)
		protected.GET("/dashboard", dashboardHandler.Summary)

		adminHandler := handlers.NewAdminDatabaseHandler(base)
		admin := protected.Group("/admin", middleware.RequireAdmin())
		admin.POST("/database/initialize", adminHandler.Initialize)
		admin.POST("/database/verify", adminHandler.Verify)
	}

	return router
}
