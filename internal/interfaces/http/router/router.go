package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/infrastructure/auth"
	"github.com/jdcrm/backend/internal/infrastructure/logger"
	"github.com/jdcrm/backend/internal/interfaces/http/handler"
	"github.com/jdcrm/backend/internal/interfaces/http/middleware"
)

// maxUploadBytes bounds document upload bodies
const maxUploadBytes = 10 << 20

// Config bundles everything the router needs
type Config struct {
	TokenService   *auth.TokenService
	SessionRevoker auth.SessionRevoker
	Logger         *zap.Logger

	Auth      *handler.AuthHandler
	Leads     *handler.LeadHandler
	Agents    *handler.AgentHandler
	Projects  *handler.ProjectHandler
	Bookings  *handler.BookingHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler
	SSE       *handler.ConnectivitySSEHandler
}

// New builds the gin engine with all middleware and routes registered
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.Secure())

	middleware.SetupValidator()

	// Unauthenticated surface
	engine.GET("/health", cfg.System.Health)

	api := engine.Group("/api/v1")
	api.POST("/auth/token", cfg.Auth.MintToken)

	jwtCfg := middleware.DefaultJWTConfig(cfg.TokenService)
	jwtCfg.SessionRevoker = cfg.SessionRevoker
	jwtCfg.Logger = cfg.Logger
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	registerAuthRoutes(api, cfg)
	registerLeadRoutes(api, cfg)
	registerAgentRoutes(api, cfg)
	registerProjectRoutes(api, cfg)
	registerBookingRoutes(api, cfg)
	registerSystemRoutes(api, cfg)

	return engine
}

func registerAuthRoutes(api *gin.RouterGroup, cfg Config) {
	authGroup := api.Group("/auth")
	authGroup.GET("/me", cfg.Auth.Me)
	authGroup.POST("/logout", cfg.Auth.Logout)
}

func registerLeadRoutes(api *gin.RouterGroup, cfg Config) {
	leads := api.Group("/leads")
	leads.GET("", middleware.RequirePermission(auth.PermViewLeads), cfg.Leads.List)
	leads.GET("/:id", middleware.RequirePermission(auth.PermViewLeads), cfg.Leads.Get)
	leads.POST("", middleware.RequirePermission(auth.PermManageLeads), cfg.Leads.Capture)
	leads.POST("/:id/assign", middleware.RequirePermission(auth.PermManageLeads), cfg.Leads.Assign)
	leads.PATCH("/:id/status", middleware.RequirePermission(auth.PermManageLeads), cfg.Leads.SetStatus)
	leads.DELETE("/:id", middleware.RequirePermission(auth.PermManageLeads), cfg.Leads.Delete)
	leads.POST("/:id/interactions", middleware.RequirePermission(auth.PermCreateInteraction), cfg.Leads.LogInteraction)
	leads.GET("/:id/interactions", middleware.RequirePermission(auth.PermViewLeads), cfg.Leads.ListInteractions)
	leads.GET("/:id/bookings", middleware.RequirePermission(auth.PermViewLeads), cfg.Bookings.ListForLead)
}

func registerAgentRoutes(api *gin.RouterGroup, cfg Config) {
	agents := api.Group("/agents")
	agents.GET("", cfg.Agents.List)
	agents.POST("", middleware.RequirePermission(auth.PermManageUsers), cfg.Agents.Create)
	agents.PATCH("/:id", middleware.RequirePermission(auth.PermManageUsers), cfg.Agents.Update)
	agents.GET("/load", cfg.Agents.TeamLoad)
	agents.GET("/suggest", middleware.RequirePermission(auth.PermManageLeads), cfg.Agents.SuggestAssignee)
	agents.GET("/:id/load", cfg.Agents.Load)
}

func registerProjectRoutes(api *gin.RouterGroup, cfg Config) {
	projects := api.Group("/projects")
	projects.GET("", cfg.Projects.List)
	projects.GET("/:id", cfg.Projects.Get)
	projects.POST("", middleware.RequirePermission(auth.PermManageProjects), cfg.Projects.Create)
	projects.POST("/quick", middleware.RequirePermission(auth.PermManageProjects), cfg.Projects.QuickSetup)
	projects.POST("/:id/deactivate", middleware.RequirePermission(auth.PermManageProjects), cfg.Projects.Deactivate)
	projects.POST("/:id/units", middleware.RequirePermission(auth.PermManageInventory), cfg.Projects.AddUnit)
	projects.GET("/:id/units", cfg.Projects.ListUnits)
	projects.GET("/:id/inventory", cfg.Projects.Inventory)
}

func registerBookingRoutes(api *gin.RouterGroup, cfg Config) {
	bookings := api.Group("/bookings")
	bookings.GET("", middleware.RequireAnyPermission(auth.PermViewReports, auth.PermCreateBookings), cfg.Bookings.List)
	bookings.GET("/:id", cfg.Bookings.Get)
	bookings.POST("", middleware.RequirePermission(auth.PermCreateBookings), cfg.Bookings.Create)
	bookings.POST("/:id/confirm", middleware.RequirePermission(auth.PermManageBookings), cfg.Bookings.Confirm)
	bookings.POST("/:id/cancel", middleware.RequirePermission(auth.PermManageBookings), cfg.Bookings.Cancel)
	bookings.POST("/:id/charges", middleware.RequirePermission(auth.PermCreateBookings), cfg.Bookings.AddCharge)
	bookings.DELETE("/:id/charges/:charge_id", middleware.RequirePermission(auth.PermCreateBookings), cfg.Bookings.RemoveCharge)
	bookings.GET("/:id/schedule", cfg.Bookings.GetSchedule)
	bookings.POST("/:id/schedule/template", middleware.RequirePermission(auth.PermCreateBookings), cfg.Bookings.ApplyScheduleTemplate)
	bookings.PUT("/:id/schedule", middleware.RequirePermission(auth.PermCreateBookings), cfg.Bookings.ReplaceSchedule)
	bookings.POST("/:id/payments", middleware.RequirePermission(auth.PermManageBookings), cfg.Bookings.RecordPayment)
	bookings.POST("/:id/documents",
		middleware.RequirePermission(auth.PermCreateBookings),
		middleware.BodyLimit(maxUploadBytes),
		cfg.Bookings.UploadDocument)
	bookings.GET("/:id/documents/:filename", cfg.Bookings.DocumentURL)
}

func registerSystemRoutes(api *gin.RouterGroup, cfg Config) {
	api.GET("/dashboard/stats", middleware.RequirePermission(auth.PermViewReports), cfg.Dashboard.Stats)

	system := api.Group("/system")
	system.GET("/connectivity", cfg.System.Connectivity)
	system.GET("/connectivity/stream", cfg.SSE.Stream)
}
