package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourorg/trading-dashboard/internal/client"
	"github.com/yourorg/trading-dashboard/internal/config"
	"github.com/yourorg/trading-dashboard/internal/handler"
	"github.com/yourorg/trading-dashboard/internal/kafka"
	"github.com/yourorg/trading-dashboard/internal/middleware"
	"github.com/yourorg/trading-dashboard/internal/repository"
	"github.com/yourorg/trading-dashboard/internal/service"
	"github.com/yourorg/trading-dashboard/internal/strategy"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize clients and repositories
	alpacaClient := client.NewAlpacaClient(cfg.Alpaca, logger)
	backtestRepo := repository.NewBacktestRepository(db, logger)

	// Event publishing is optional
	var producer *kafka.Producer
	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID, logger)
		defer producer.Close()
		publisher = producer
	}

	// Initialize strategy registry
	registry := strategy.NewRegistry()

	// Initialize services
	authService := service.NewAuthService(cfg.Auth, logger)
	marketDataService := service.NewMarketDataService(alpacaClient, logger)
	strategyService := service.NewStrategyService(registry, alpacaClient, logger)
	backtestService := service.NewBacktestService(
		alpacaClient,
		registry,
		backtestRepo,
		publisher,
		cfg.Kafka.Topics["backtestEvents"],
		logger,
	)
	tradingService := service.NewTradingService(alpacaClient, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	marketDataHandler := handler.NewMarketDataHandler(marketDataService, logger)
	strategyHandler := handler.NewStrategyHandler(strategyService, logger)
	backtestHandler := handler.NewBacktestHandler(backtestService, logger)
	tradingHandler := handler.NewTradingHandler(tradingService, logger)

	// Set up HTTP server with Gin
	router := setupRouter(
		authHandler,
		marketDataHandler,
		strategyHandler,
		backtestHandler,
		tradingHandler,
		authService,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	authHandler *handler.AuthHandler,
	marketDataHandler *handler.MarketDataHandler,
	strategyHandler *handler.StrategyHandler,
	backtestHandler *handler.BacktestHandler,
	tradingHandler *handler.TradingHandler,
	authService *service.AuthService,
	logger *zap.Logger,
) *gin.Engine {
	handler.RegisterValidations()

	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS("*"))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Strategy routes
		strategies := v1.Group("/strategies")
		{
			strategies.GET("", strategyHandler.ListStrategies)
			strategies.GET("/:id", strategyHandler.GetStrategy)

			strategiesAuth := strategies.Group("")
			strategiesAuth.Use(middleware.AuthMiddleware(authService, logger))
			strategiesAuth.POST("/:id/run", strategyHandler.RunStrategy)
		}

		// Market data routes
		marketData := v1.Group("/market-data")
		{
			marketData.GET("/:symbol/bars", marketDataHandler.GetBars)
			marketData.GET("/:symbol/indicators", marketDataHandler.GetIndicators)
		}

		// Backtest routes
		backtests := v1.Group("/backtests")
		{
			backtests.Use(middleware.AuthMiddleware(authService, logger))

			backtests.POST("", backtestHandler.RunBacktest)
			backtests.GET("", backtestHandler.ListBacktests)
			backtests.GET("/:id", backtestHandler.GetBacktest)
		}

		// Brokerage account routes
		account := v1.Group("")
		account.Use(middleware.AuthMiddleware(authService, logger))
		{
			account.GET("/account", tradingHandler.GetAccount)
			account.GET("/positions", tradingHandler.GetPositions)
			account.GET("/assets", tradingHandler.GetAssets)
			account.GET("/quotes/:symbol", tradingHandler.GetQuote)
			account.GET("/orders", tradingHandler.GetOrders)
			account.POST("/orders", tradingHandler.CreateOrder)
			account.DELETE("/orders/:id", tradingHandler.CancelOrder)
		}
	}
	return router
}
