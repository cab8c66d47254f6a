package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coworkspace/internal/config"
	"coworkspace/internal/database"
	"coworkspace/internal/middleware"
	"coworkspace/internal/modules/admin"
	"coworkspace/internal/modules/auth"
	"coworkspace/internal/modules/booking"
	"coworkspace/internal/modules/catalog"
	"coworkspace/internal/modules/payment"
	jwtsvc "coworkspace/internal/pkg/jwt"
	"coworkspace/internal/repository"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewAuditRepository(db, logger)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(locationRepo, spaceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, spaceRepo)
	bookingHandler := booking.NewHandler(bookingService)

	gateway := payment.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	paymentService := payment.NewService(paymentRepo, bookingRepo, gateway, logger, cfg.Currency)
	paymentHandler := payment.NewHandler(paymentService)

	adminService := admin.NewService(
		userRepo,
		bookingRepo,
		paymentRepo,
		locationRepo,
		spaceRepo,
		paymentService,
		auditRepo,
		j,
		logger,
	)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
		}
	}

	adminGroup := v1.Group("/admin")
	{
		adminHandler.RegisterAuthRoutes(adminGroup)

		adminProtected := adminGroup.Group("/")
		adminProtected.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminProtected)
			catalogHandler.RegisterAdminRoutes(adminProtected)
		}
	}

	logger.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
