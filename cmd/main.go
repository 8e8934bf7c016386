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

	"github.com/fixhub/repair-service/internal/cache"
	"github.com/fixhub/repair-service/internal/config"
	"github.com/fixhub/repair-service/internal/discovery"
	"github.com/fixhub/repair-service/internal/handlers"
	"github.com/fixhub/repair-service/internal/messaging"
	"github.com/fixhub/repair-service/internal/repository"
	"github.com/fixhub/repair-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Connect to PostgreSQL
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("Connected to PostgreSQL")

	// Run migrations
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Kafka producer
	kafkaProducer := messaging.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer kafkaProducer.Close()
	log.Println("Kafka producer initialized")

	// Initialize Redis-backed inventory cache when configured
	var inventoryCache cache.InventoryCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		inventoryCache = cache.NewRedisInventoryCache(redisClient)
		log.Println("Inventory cache initialized")
	}

	// Initialize repositories and services
	ticketRepo := repository.NewServiceTicketRepository(db)
	ticketService := service.NewServiceTicketService(ticketRepo, kafkaProducer)
	ticketHandler := handlers.NewServiceTicketHandler(ticketService)

	inventoryRepo := repository.NewInventoryRepository(db)
	inventoryService := service.NewInventoryService(inventoryRepo, kafkaProducer, inventoryCache)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	// Setup router
	router := mux.NewRouter()
	ticketHandler.RegisterRoutes(router)
	inventoryHandler.RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// The browser front end is served from a different origin
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	// Register with Consul
	consulClient, err := discovery.NewConsulClient(cfg.ConsulAddr)
	if err != nil {
		return fmt.Errorf("failed to create consul client: %w", err)
	}

	serviceID := fmt.Sprintf("repair-service-%s", cfg.ServiceID)
	if err := consulClient.RegisterService(serviceID, "repair-service", cfg.ServerPort); err != nil {
		return fmt.Errorf("failed to register service with consul: %w", err)
	}
	log.Printf("Registered with Consul as %s", serviceID)

	defer func() {
		if err := consulClient.DeregisterService(serviceID); err != nil {
			log.Printf("Failed to deregister service: %v", err)
		}
	}()

	// Start HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting repair-service on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}

func runMigrations(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS services (
		id SERIAL PRIMARY KEY,
		serial_number VARCHAR(255) UNIQUE NOT NULL,
		customer_name TEXT NOT NULL,
		phone_number VARCHAR(20) NOT NULL,
		device_model TEXT NOT NULL,
		fault_description TEXT NOT NULL,
		service_date VARCHAR(10) NOT NULL,
		estimated_cost NUMERIC(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'in_progress',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP,
		returned_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_services_status ON services(status);
	CREATE INDEX IF NOT EXISTS idx_services_service_date ON services(service_date);

	CREATE TABLE IF NOT EXISTS inventory (
		id SERIAL PRIMARY KEY,
		model TEXT NOT NULL,
		product TEXT NOT NULL,
		condition VARCHAR(20) NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	return err
}
