package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johnwards/hublens/internal/api"
	"github.com/johnwards/hublens/internal/api/companies"
	"github.com/johnwards/hublens/internal/api/mappings"
	"github.com/johnwards/hublens/internal/catalog"
	"github.com/johnwards/hublens/internal/config"
	"github.com/johnwards/hublens/internal/hubspot"
	"github.com/johnwards/hublens/internal/queryparse"
	"github.com/johnwards/hublens/internal/seed"
	"github.com/johnwards/hublens/internal/translate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	store := catalog.NewStore(seed.Catalog())

	client := hubspot.NewClient(hubspot.Config{
		BaseURL:            cfg.HubSpotBaseURL,
		AccessToken:        cfg.HubSpotToken,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	var source mappings.CatalogSource
	if cfg.HubSpotToken != "" {
		discovery := hubspot.NewDiscovery(client, cfg.CacheTTL)
		source = discovery

		// Best effort: the seeded catalog serves until discovery succeeds.
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defs, err := discovery.BuildCatalog(ctx)
		cancel()
		if err != nil {
			slog.Warn("initial catalog discovery failed, serving seeded mappings", "error", err)
		} else if err := store.Refresh(defs); err != nil {
			slog.Warn("discovered catalog rejected, serving seeded mappings", "error", err)
		} else {
			stats := store.Stats()
			slog.Info("catalog discovered from HubSpot",
				"properties", stats.PropertyCount,
				"valueMappings", stats.ValueMappingCount)
		}
	} else {
		slog.Info("no HubSpot access token configured, serving seeded mappings only")
	}

	translator := translate.New(store)
	parser := queryparse.New(store, queryparse.Config{
		MaxFilters:            cfg.MaxFilters,
		RevenueThreshold:      cfg.RevenueThreshold,
		LargeCompanyEmployees: cfg.LargeCompanyEmployees,
		SmallCompanyEmployees: cfg.SmallCompanyEmployees,
		RecentWindowDays:      cfg.RecentWindowDays,
	})

	mux := http.NewServeMux()

	companies.RegisterRoutes(mux, client, parser, translator, companies.Limits{
		Default: cfg.DefaultLimit,
		Max:     cfg.MaxLimit,
	})
	mappings.RegisterRoutes(mux, store, source)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catch-all: return 404 in the HubSpot error format.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.AuthToken),
		api.JSONContentType(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting hublens server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
