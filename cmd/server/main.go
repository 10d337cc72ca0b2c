package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-profiles/auth"
	"github.com/diewo77/go-profiles/internal/config"
	"github.com/diewo77/go-profiles/internal/db"
	"github.com/diewo77/go-profiles/internal/profiles"
	"github.com/diewo77/go-profiles/internal/store"
	"github.com/joho/godotenv"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Insert sample profiles and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Load configuration from environment
	cfg := config.Load()

	// Connect to database using config struct
	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Handle migrate-only flag
	if *migrateOnlyFlag {
		if err := db.Migrate(dbConn, cfg); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed successfully")
		return
	}

	// Handle seed-only flag
	if *seedOnlyFlag {
		if cfg.Profile.WithAuth {
			log.Fatal("Seeding needs WITH_AUTH=false, seeded profiles would have no password")
		}
		if err := db.SeedSamples(dbConn); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seeding completed successfully")
		return
	}

	// The schema has to exist before the first request either way.
	if err := db.Migrate(dbConn, cfg); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Insert sample profiles when enabled
	if err := db.Seed(dbConn, cfg); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	users := store.NewUserStore(dbConn)
	svc := profiles.New(users, cfg.Profile)

	// Sessions stay valid only while the account still exists.
	if cfg.Profile.WithAuth {
		auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
			u, err := users.ByID(uid)
			return err == nil && u != nil
		})
	}

	// Create application handler
	appHandler := NewApp(svc, cfg)

	// Create server with config timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s (with_auth=%v dev=%v)",
			cfg.Server.Port, cfg.Profile.WithAuth, cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
