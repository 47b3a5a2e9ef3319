package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/raziqtech/portal-api/internal/bus"
	"github.com/raziqtech/portal-api/internal/config"
	"github.com/raziqtech/portal-api/internal/constants"
	"github.com/raziqtech/portal-api/internal/handlers"
	"github.com/raziqtech/portal-api/internal/middleware"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/persistence"
	"github.com/raziqtech/portal-api/internal/services"
	"github.com/raziqtech/portal-api/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Pick the snapshot persistence backend
	snapshotter, err := newSnapshotter(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}

	// Build the change bus and the store
	changeBus := bus.New()
	defer changeBus.Shutdown()

	st, err := store.New(changeBus, snapshotter)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	if cfg.SeedDemoData && st.Empty() {
		st.SeedDemoData()
		log.Println("Seeded demo dataset")
	}

	// Initialize services
	authService := services.NewAuthService(st)
	employeeService := services.NewEmployeeService(st)
	projectService := services.NewProjectService(st)
	inquiryService := services.NewInquiryService(st)
	messagingService := services.NewMessagingService(st)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	projectHandler := handlers.NewProjectHandler(projectService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	messageHandler := handlers.NewMessageHandler(messagingService)
	eventHandler := handlers.NewEventHandler(changeBus)

	// Initialize Gin router
	r := gin.Default()

	// Setup cookie-backed session middleware
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Portal API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(st), authHandler.GetCurrentUser)
		}

		// Change-notification stream for open views
		api.GET("/events", eventHandler.Stream)

		// Public marketing reads and the contact form
		api.GET("/team", employeeHandler.ListTeam)
		api.GET("/portfolio", projectHandler.ListPortfolio)
		api.POST("/inquiries", middleware.OptionalAuth(st), inquiryHandler.Submit)

		// Employee management (admin)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth(st), middleware.RequireRole(models.RoleAdmin))
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.POST("", employeeHandler.CreateEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		// Own profile and the approval workflow
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth(st), middleware.RequireRole(models.RoleEmployee))
		{
			profile.GET("", employeeHandler.GetOwnProfile)
			profile.POST("/update-request", employeeHandler.RequestProfileUpdate)
		}

		pending := api.Group("/pending-updates")
		pending.Use(middleware.RequireAuth(st), middleware.RequireRole(models.RoleAdmin))
		{
			pending.GET("", employeeHandler.ListPendingUpdates)
			pending.POST("/:id/approve", employeeHandler.ApproveUpdate)
			pending.POST("/:id/reject", employeeHandler.RejectUpdate)
		}

		// Projects, milestones and chat (protected; per-role visibility is
		// enforced in the service layer)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(st))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/milestones", projectHandler.AddMilestone)
			projects.PATCH("/:id/milestones/:milestone_id", projectHandler.UpdateMilestone)
			projects.DELETE("/:id/milestones/:milestone_id", projectHandler.DeleteMilestone)
			projects.POST("/:id/milestones/:milestone_id/toggle", projectHandler.ToggleMilestone)
			projects.GET("/:id/chat", projectHandler.GetChat)
			projects.POST("/:id/chat", projectHandler.PostChat)
		}

		// Inquiry follow-up (protected)
		inquiries := api.Group("/inquiries")
		inquiries.Use(middleware.RequireAuth(st))
		{
			inquiries.GET("", inquiryHandler.ListInquiries)
			inquiries.PATCH("/:id/status", inquiryHandler.UpdateStatus)
			inquiries.POST("/:id/reply", inquiryHandler.Reply)
		}

		// Internal relays (protected)
		messages := api.Group("/messages")
		messages.Use(middleware.RequireAuth(st))
		{
			messages.GET("/staff", messageHandler.GetStaffRelay)
			messages.POST("/staff", messageHandler.PostStaffMessage)
			messages.POST("/staff/read", messageHandler.MarkStaffRead)
			messages.GET("/direct/:engineer_id", messageHandler.GetDirectRelay)
			messages.POST("/direct/:engineer_id", messageHandler.PostDirectMessage)
			messages.POST("/direct/:engineer_id/read", messageHandler.MarkDirectRead)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newSnapshotter(cfg *config.Config) (persistence.Snapshotter, error) {
	switch cfg.PersistenceDriver {
	case "memory":
		return persistence.NewMemorySnapshotter(), nil
	case "file":
		return persistence.NewFileSnapshotter(cfg.SnapshotFile), nil
	default:
		db, err := persistence.Connect(cfg)
		if err != nil {
			return nil, err
		}
		return persistence.NewDatabaseSnapshotter(db)
	}
}
