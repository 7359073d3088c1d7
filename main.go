package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streadway/amqp"

	"videohub/internal/cache"
	"videohub/internal/config"
	"videohub/internal/database"
	"videohub/internal/repositories"
	"videohub/internal/server"
	"videohub/internal/services"
	"videohub/internal/session"
	"videohub/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// A failed check is logged only; queries will fail per request until the database is back.
	if database.CheckConnection(context.Background(), db) && cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Printf("Migration failed: %v", err)
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	videoRepo := repositories.NewGORMVideoRepository(db)

	// --- Cache ---
	store := newCacheStore(cfg)
	videoCache := cache.NewVideoCache(store, videoRepo.GetAll, cfg.CacheTTL)

	// --- Services ---
	videoOpts := []services.VideoOption{services.WithInvalidateOnWrite(cfg.CacheInvalidateOnWrite)}
	if mqClient := newMQClient(cfg); mqClient != nil {
		defer mqClient.Close()
		videoOpts = append(videoOpts, services.WithEvents(mqClient))
	}
	authService := services.NewAuthService(userRepo, services.NewBcryptHasher(cfg.BcryptCost))
	videoService := services.NewVideoService(videoRepo, videoCache, videoOpts...)

	// --- Sessions ---
	sessionStorage, err := session.NewGORMStorage(db, 10*time.Minute)
	if err != nil {
		log.Printf("Session table not ready, will retry on first use: %v", err)
	}
	defer sessionStorage.Close()
	sessions := session.NewStore(sessionStorage, session.Config{
		CookieName: cfg.SessionCookie,
		TTL:        cfg.SessionTTL,
	})

	// --- HTTP ---
	app := server.New(server.Deps{
		DB:            db,
		Sessions:      sessions,
		Auth:          authService,
		Videos:        videoService,
		SessionSecret: cfg.SessionSecret,
		PublicDir:     "./public",
		AccessLog:     true,
	})

	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}

// newCacheStore picks the listing cache backend; an unreachable Redis falls back to memory.
func newCacheStore(cfg config.Config) cache.Store {
	if cfg.CacheBackend == "redis" {
		rs, err := cache.NewRedisStore(context.Background(), cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err == nil {
			log.Printf("Caching video listing in Redis at %s", cfg.RedisAddr)
			return rs
		}
		log.Printf("Redis unavailable, caching in memory instead: %v", err)
	}
	return cache.NewMemoryStore()
}

// newMQClient connects to RabbitMQ and starts the audit consumer. It returns nil when
// events are disabled or the broker is unreachable.
func newMQClient(cfg config.Config) *rabbitmq.Client {
	if cfg.RabbitMQURL == "" {
		return nil
	}
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Video events disabled: %v", err)
		return nil
	}

	auditHandler := func(msg amqp.Delivery) error {
		var ev services.VideoEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			// Undecodable messages would loop forever if requeued.
			log.Printf("Dropping malformed video event %d: %v", msg.DeliveryTag, err)
			return nil
		}
		log.Printf("Audit: %s at %s", ev, ev.At.Format(time.RFC3339))
		return nil
	}
	if err := mqClient.ConsumeVideoEvents(auditHandler); err != nil {
		log.Printf("Failed to start video event consumer: %v", err)
	}
	return mqClient
}
