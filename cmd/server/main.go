package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"partnerhub/internal/api"
	"partnerhub/internal/config"
	"partnerhub/internal/database"
	"partnerhub/internal/health"
	"partnerhub/internal/metrics"
	"partnerhub/internal/service"
	"partnerhub/internal/site"
	"partnerhub/internal/store"
	"partnerhub/internal/whatsapp"
	"partnerhub/internal/ws"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	database.SyncConfig(db, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run(ctx)

	svc := service.New(store.New(db), whatsapp.NewClient(cfg.GraphAPIURL), hub, service.Options{
		SelfNumber: cfg.SelfNumber,
		UploadDir:  cfg.UploadDir,
	})

	routes, err := site.LoadRoutes()
	if err != nil {
		log.Fatalf("Failed to load route table: %v", err)
	}

	deployed := cfg.DeployedAt
	if deployed == "" {
		deployed = time.Now().UTC().Format(time.RFC3339)
	}
	if cfg.AdminToken == "" {
		log.Println("Warning: ADMIN_TOKEN is not set, admin methods are unreachable")
	}

	metrics.MustRegister()
	r := api.NewRouter(api.Deps{
		Service:          svc,
		Hub:              hub,
		Site:             site.New(cfg.SiteDir, routes),
		Health:           health.Report{Version: cfg.Version, Timestamp: deployed, Status: "Running"},
		AdminToken:       cfg.AdminToken,
		PublicRatePerMin: cfg.ContactRatePerMin,
		TrustedProxies:   cfg.TrustedProxies,
		Metrics:          true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
