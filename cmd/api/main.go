package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	_ "procurement/api/swagger" // swagger docs
	"procurement/internal/config"
	"procurement/internal/database"
	"procurement/internal/handler"
	"procurement/internal/kpi"
	"procurement/internal/logger"
	"procurement/internal/metrics"
	"procurement/internal/repository"
	"procurement/internal/service"
	"procurement/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Procurement Tracking API
// @version         1.0
// @description     Purchase orders, supplier follow-ups and payments for one working session, with daily KPIs and xlsx backups.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, envFound := config.Load()

	zlog, err := logger.New(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "procurement-api",
	})
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	if !envFound {
		zlog.Info("No configs/.env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(zlog)
	if err != nil {
		zlog.Fatal("Session store connection failed", zap.Error(err))
	}

	store := repository.NewStore(db)
	if err := store.Initialize(ctx); err != nil {
		zlog.Fatal("Session store init failed", zap.Error(err))
	}

	m := metrics.New()
	clock := kpi.SystemClock{}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zlog)
	go wsHub.Run(ctx)

	// Set up dependencies (Store -> Service -> Handler)
	notifier := service.NewStoreNotifier(store, clock, wsHub, m, zlog)
	orderService := service.NewOrderService(store, clock, notifier, m, zlog)
	followUpService := service.NewFollowUpService(store, clock, notifier, m, zlog)
	paymentService := service.NewPaymentService(store, clock, notifier, m, zlog)
	dashboardService := service.NewDashboardService(store, clock, cfg.AttentionHorizonDays)
	backupService := service.NewBackupService(store, clock, notifier, m, zlog)

	orderHandler := handler.NewOrderHandler(orderService)
	followUpHandler := handler.NewFollowUpHandler(followUpService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	backupHandler := handler.NewBackupHandler(backupService)
	referenceHandler := handler.NewReferenceHandler()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.Middleware(zlog), m.Middleware())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	router.GET("/metrics", gin.WrapH(m.Handler()))

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// API Routing
	api := router.Group("")
	orderHandler.RegisterRoutes(api)
	followUpHandler.RegisterRoutes(api)
	paymentHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)
	backupHandler.RegisterRoutes(api)
	referenceHandler.RegisterRoutes(api)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		zlog.Info("Server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		zlog.Error("Shutdown failed", zap.Error(err))
	}
}
