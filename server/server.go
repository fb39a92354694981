package server

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/ai"
	"github.com/youssefibrahim146/Volt/auth"
	"github.com/youssefibrahim146/Volt/confs"
	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/handlers"
	httpHandler "github.com/youssefibrahim146/Volt/handlers/http"
	"github.com/youssefibrahim146/Volt/middleware"
	"github.com/youssefibrahim146/Volt/repositories"
	"github.com/youssefibrahim146/Volt/storage"
	"github.com/youssefibrahim146/Volt/usecases"
	"github.com/youssefibrahim146/Volt/ws"
)

type Server struct {
	app       *gin.Engine
	db        db.Database
	cfg       *confs.Config
	generator ai.TextGenerator
}

// NewServer assembles the gin engine. Panics anywhere below the router
// still come back as the uniform error envelope.
func NewServer(database db.Database, cfg *confs.Config, generator ai.TextGenerator) *Server {
	app := gin.New()
	app.Use(gin.Logger())
	app.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal server error",
			"data":    nil,
		})
	}))

	return &Server{
		app:       app,
		db:        database,
		cfg:       cfg,
		generator: generator,
	}
}

func (s *Server) Start() error {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	if len(s.cfg.AllowedOrigins) > 0 {
		config.AllowOrigins = s.cfg.AllowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Healthcheck
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	tokens, err := auth.NewTokens(s.cfg.JWTSecret)
	if err != nil {
		return err
	}
	images, err := storage.NewImageStore(s.cfg.Upload.Dir, s.cfg.Upload.MaxBytes)
	if err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	adminRepo := repositories.NewAdminPgRepository(s.db)
	systemDeviceRepo := repositories.NewSystemDevicePgRepository(s.db)
	homeDeviceRepo := repositories.NewHomeDevicePgRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, tokens)
	adminUseCase := usecases.NewAdminUseCase(adminRepo, tokens)
	systemDeviceUseCase := usecases.NewSystemDeviceUseCase(systemDeviceRepo, homeDeviceRepo, images)
	homeDeviceUseCase := usecases.NewHomeDeviceUseCase(homeDeviceRepo, systemDeviceRepo, userRepo, s.cfg.RatePerKWh)
	recommendationUseCase := usecases.NewRecommendationUseCase(systemDeviceRepo, userRepo, s.cfg.RatePerKWh)
	aiUseCase := usecases.NewAIUseCase(recommendationUseCase, homeDeviceUseCase, s.generator)

	// Live budget stream
	manager := ws.NewManager()
	wsHandler := handlers.NewWSHandler(manager)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(userUseCase)
	userHandler := httpHandler.NewUserHandler(userUseCase, wsHandler)
	adminHandler := httpHandler.NewAdminHandler(adminUseCase)
	systemDeviceHandler := httpHandler.NewSystemDeviceHandler(systemDeviceUseCase)
	homeDeviceHandler := httpHandler.NewHomeDeviceHandler(homeDeviceUseCase, recommendationUseCase, wsHandler)
	aiHandler := httpHandler.NewAIHandler(aiUseCase)

	guard := middleware.NewAuthMiddleware(tokens, userUseCase, adminUseCase)

	// Stored catalog images
	s.app.Static(storage.UploadsRoute, s.cfg.Upload.Dir)

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/register", adminHandler.Register)
			admin.POST("/login", adminHandler.Login)
			admin.GET("/me", guard.RequireAdmin(), adminHandler.GetProfile)
		}

		// Account routes
		users := api.Group("/users", guard.RequireUser())
		{
			users.GET("/me", userHandler.GetProfile)
			users.PUT("/me", userHandler.UpdateProfile)
			users.DELETE("/me", userHandler.DeleteAccount)
			users.PUT("/me/budget", userHandler.UpdateBudget)
		}

		// Catalog routes; writes are admin only
		systemDevices := api.Group("/system-devices")
		{
			systemDevices.GET("", guard.RequireUser(), systemDeviceHandler.List)
			systemDevices.GET("/:id", guard.RequireUser(), systemDeviceHandler.Get)
			systemDevices.POST("", guard.RequireAdmin(), systemDeviceHandler.Create)
			systemDevices.PUT("/:id", guard.RequireAdmin(), systemDeviceHandler.Update)
			systemDevices.DELETE("/:id", guard.RequireAdmin(), systemDeviceHandler.Delete)
		}

		// Home device routes
		homeDevices := api.Group("/home-devices", guard.RequireUser())
		{
			homeDevices.GET("", homeDeviceHandler.List)
			homeDevices.GET("/calculate-cost", homeDeviceHandler.CalculateCost)       // Monthly cost breakdown
			homeDevices.GET("/recommendations", homeDeviceHandler.Recommendations)    // Affordable catalog entries
			homeDevices.POST("/:deviceId", homeDeviceHandler.Assign)                  // Assign a catalog device
			homeDevices.GET("/:id", homeDeviceHandler.Get)
			homeDevices.PUT("/:id", homeDeviceHandler.Update)
			homeDevices.DELETE("/:id", homeDeviceHandler.Remove)
		}

		// AI routes
		aiRoutes := api.Group("/ai", guard.RequireUser())
		{
			aiRoutes.GET("/recommendations", aiHandler.Recommendations)
			aiRoutes.GET("/tips/:deviceId", aiHandler.Tips)
		}
	}

	s.app.GET("/ws", guard.RequireUser(), wsHandler.HandleBudgetStream)

	return s.app.Run("0.0.0.0:" + s.cfg.Port)
}
