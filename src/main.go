package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"caudal-server/src/api"
	"caudal-server/src/config"
	"caudal-server/src/db"
	"caudal-server/src/db/memory"
	dbsql "caudal-server/src/db/sql"
	"caudal-server/src/export"
	"caudal-server/src/services"
	"caudal-server/src/session"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	var store services.Store
	switch cfg.DataBackend {
	case "memory":
		log.Println("INFO: Using in-memory store, data is lost on restart")
		store = memory.New()
	default:
		if cfg.MigrateOnStart {
			if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("Migrations failed: %v", err)
			}
		}
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		defer pool.Close()
		store = dbsql.NewStore(pool)
	}

	cache, err := db.NewCache(cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Cache init failed: %v", err)
	}
	defer cache.Close()

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	tokens, err := session.NewHMACTokenProvider(cfg.JWTSecret, cfg.ServiceTokenTTL, cfg.JWTAudience)
	if err != nil {
		log.Fatalf("Token provider init failed: %v", err)
	}

	router := api.NewRouter(cfg, api.Deps{
		Services: services.New(store, cache, now),
		Cache:    cache,
		Exporter: export.NewClient(cfg.ExportServiceURL, cfg.ExportTimeout, tokens),
		Now:      now,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ExportTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("API server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("INFO: Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}
	log.Println("INFO: Server exited")
}
