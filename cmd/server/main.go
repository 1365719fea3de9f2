package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "autorent-backend/internal/api/http"
	"autorent-backend/internal/config"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/notify"
	"autorent-backend/internal/repository/postgres"
	"autorent-backend/internal/security"
	"autorent-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Autorent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Admin.JWTSecret, time.Duration(cfg.Admin.TokenExpiry)*time.Minute)

	// Initialize Notifications
	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			logger.Error("Failed to initialize telegram notifier", "error", err)
			log.Fatalf("Failed to initialize telegram notifier: %v", err)
		}
		notifier = tg
		logger.Info("Telegram notifications enabled", "chat_id", cfg.Telegram.ChatID)
	} else {
		logger.Warn("Telegram token not configured, chat notifications disabled")
	}

	var emails notify.EmailSender = notify.NopEmailSender{}
	if cfg.Email.APIKey != "" {
		emails = notify.NewSendGridSender(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
		logger.Info("SendGrid email enabled", "from", cfg.Email.From)
	} else {
		logger.Warn("SendGrid API key not configured, customer emails disabled")
	}

	// Initialize Services
	discountSvc := service.NewDiscountService(store.CouponRepository, store.PhoneRepository)
	quoteSvc := service.NewQuoteService(store.CarRepository, store.FeeRepository, discountSvc)
	ledgerSvc := service.NewLedgerService(store.PhoneRepository)
	wheelSvc := service.NewWheelService(store.WheelRepository, store.CouponRepository, ledgerSvc, nil)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.CarRepository,
		store.FeeRepository,
		store.CouponRepository,
		discountSvc,
		ledgerSvc,
		notifier,
		emails,
		cfg.Rewards.ReturnGiftCode,
	)

	// Initialize HTTP handlers
	handler := httpapi.NewHandler(
		quoteSvc,
		discountSvc,
		bookingSvc,
		ledgerSvc,
		wheelSvc,
		store.CarRepository,
		store.WheelRepository,
	)
	adminHandler := httpapi.NewAdminHandler(
		cfg.Admin,
		tokenManager,
		bookingSvc,
		ledgerSvc,
		store.CouponRepository,
		store.WheelRepository,
		store.FeeRepository,
	)

	router := httpapi.NewRouter(handler, adminHandler, tokenManager)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
