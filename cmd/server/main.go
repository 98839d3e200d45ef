package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "equiprent-backend/internal/api/http"
	"equiprent-backend/internal/clock"
	"equiprent-backend/internal/config"
	"equiprent-backend/internal/events"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository/postgres"
	"equiprent-backend/internal/security"
	"equiprent-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Equiprent Order Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenValidator := security.NewTokenValidator(cfg.JWT.Secret)

	// Initialize Event Publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(events.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Kafka event publishing enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	// Initialize Notifier
	var notifier service.Notifier = service.NopNotifier{}
	if cfg.Email.Enabled {
		notifier = service.NewEmailNotifier(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, store)
		logger.Info("Email notifications enabled", "from", cfg.Email.FromEmail)
	}

	// Initialize Services
	clk := clock.New()
	availability := service.NewAvailabilityChecker(store.OrderRepository, clk)
	orderSvc := service.NewOrderService(store.OrderRepository, store.EquipmentRepository, store, availability, notifier, publisher, clk)

	// Initialize HTTP handlers
	orderHandler := httpapi.NewOrderHandler(orderSvc)
	router := httpapi.NewRouter(orderHandler, tokenValidator, cfg.Payment.WebhookSecret)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
