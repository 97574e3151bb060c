package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/alerts"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/api"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/config"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/data"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/logger"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/service"

	// Drivers
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogDir); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info.Println("Starting lab server...")

	// Resolve the database pool once; a nil pool means every read degrades
	// to the fallback gateway.
	resolver := data.NewResolver()
	resolver.Budget = cfg.ConnectBudget
	resolver.Backoff = cfg.ConnectBackoff
	db := resolver.Resolve(context.Background(), cfg.ConnectionCandidates())
	if db == nil {
		logger.Error.Println("Database unavailable; serving via fallback gateway only")
	}

	fallback := service.NewFallbackGateway(cfg.FallbackAPIURL, cfg.FallbackTimeout)
	autotrade := service.NewAutotradeClient(cfg.AutotradeAPIURL, cfg.AutotradeTimeout)
	reader := data.NewLogReader(db, cfg.DBDriver, fallback)

	store, err := alerts.OpenStore(cfg.RuleBookPath)
	if err != nil {
		logger.Error.Fatalf("Failed to open rule book store: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(reader, store, autotrade, fallback != nil)

	r := chi.NewRouter()
	r.Use(api.LoggingMiddleware)

	apiLimiter := api.NewRateLimiter(300, 30)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)
		r.Mount("/", handler.Routes())
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info.Printf("Server listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error.Fatalf("Server startup failed: %v", err)
		}
	}()

	<-stop
	logger.Info.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error.Printf("Server shutdown error: %v", err)
	}
	if db != nil {
		db.Close()
	}
	logger.Info.Println("Server stopped")
}
