package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/PaulBabatuyi/portfolio-cms/internal/client"
	"github.com/PaulBabatuyi/portfolio-cms/internal/config"
	"github.com/PaulBabatuyi/portfolio-cms/internal/middleware"
	"github.com/PaulBabatuyi/portfolio-cms/internal/site"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}
	log := cfg.Logger().With().Str("component", "site").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Same-origin "/api" only makes sense in a browser; resolve it against
	// the public site origin for server-side calls.
	base := client.ResolveBaseURL(client.Env{BuildOverride: cfg.APIURL, PageHost: cfg.SiteHost()})
	base = client.Absolute(base, cfg.SitePublicURL)
	api := client.New(base,
		client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		client.WithLogger(log),
	)
	log.Info().Str("api", api.BaseURL()).Msg("content API resolved")

	renderer, err := site.NewRenderer(api, log)
	if err != nil {
		log.Fatal().Err(err).Msg("site renderer")
	}

	router := chi.NewRouter()
	router.Use(chimid.RequestID)
	router.Use(chimid.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(chimid.Recoverer)
	router.Use(middleware.NewSecure(middleware.SecureOptions(cfg.IsDevelopment() || client.IsLocalHost(cfg.SiteHost()), middleware.SiteContentSecurityPolicy)))
	renderer.Routes(router)

	httpServer := &http.Server{
		Addr:              ":" + cfg.SitePort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("site listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server exit")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
