package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-occupancy-tracker/internal/config"
	"classroom-occupancy-tracker/internal/delivery/http/handler"
	"classroom-occupancy-tracker/internal/infrastructure/database/postgres"
	"classroom-occupancy-tracker/internal/logger"
	"classroom-occupancy-tracker/internal/mail"
	"classroom-occupancy-tracker/internal/middleware"
	accountUsecase "classroom-occupancy-tracker/internal/usecase/account"
	statusUsecase "classroom-occupancy-tracker/internal/usecase/status"
	"classroom-occupancy-tracker/web"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, mailer mail.Mailer) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	accountRepository := postgres.NewAccountRepository(db)
	accountService := accountUsecase.NewService(accountRepository, mailer, cfg)
	accountHandler := handler.NewAccountHandler(accountService)

	statusRepository := postgres.NewStatusRepository(db)
	statusService := statusUsecase.NewService(statusRepository)
	statusHandler := handler.NewStatusHandler(statusService)

	api := router.Group("/api")
	{
		accountHandler.RegisterPublicRoutes(api)

		// Anonymous viewer reads; same handlers as the authenticated
		// variants, gated differently.
		public := api.Group("/public")
		statusHandler.RegisterPublicRoutes(public)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			accountHandler.RegisterProtectedRoutes(protected)
			statusHandler.RegisterProtectedRoutes(protected)
		}

		api.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "Backend is running!")
		})
	}

	registerFrontend(router)

	logger.Info("All routes initialized")
	return router
}

// registerFrontend serves the embedded single-page client. The index page
// also answers /reset-password so mailed reset links land on the UI.
func registerFrontend(router *gin.Engine) {
	assets, err := web.Static()
	if err != nil {
		logger.Fatal("Failed to load embedded frontend: " + err.Error())
		return
	}
	index, err := web.Index()
	if err != nil {
		logger.Fatal("Failed to load embedded index page: " + err.Error())
		return
	}

	router.StaticFS("/static", http.FS(assets))

	serveIndex := func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}
	router.GET("/", serveIndex)
	router.GET("/reset-password", serveIndex)
}
