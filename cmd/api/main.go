package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/PaulBabatuyi/portfolio-cms/internal/auth"
	"github.com/PaulBabatuyi/portfolio-cms/internal/config"
	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
	"github.com/PaulBabatuyi/portfolio-cms/internal/db"
	"github.com/PaulBabatuyi/portfolio-cms/internal/grpchealth"
	"github.com/PaulBabatuyi/portfolio-cms/internal/middleware"
	"github.com/PaulBabatuyi/portfolio-cms/internal/pgstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}
	log := cfg.Logger()
	if cfg.UsingDefaultSecrets() {
		log.Warn().Msg("ADMIN_PASSWORD or JWT_SECRET left at development defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open content store")
	}
	defer func() {
		_ = store.Close(context.Background())
	}()
	log.Info().Str("driver", cfg.StoreDriver).Msg("content store connected")

	password, err := newPassphrase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("admin passphrase")
	}

	// Token valid for TOKEN_TTL (24h by default). JWT_KEYS enables rotation;
	// otherwise the single JWT_SECRET signs everything.
	var jwtMgr *auth.JWTManager
	if len(cfg.JWTKeys) > 0 {
		jwtMgr = auth.NewJWTManagerFromKeys(cfg.JWTKeys, cfg.JWTActiveKid, cfg.TokenTTL)
	} else {
		jwtMgr = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	}

	var limiter *middleware.LimiterStore
	if cfg.LoginRateLimitRPM > 0 {
		// small burst to allow a couple of quick retries
		limiter = middleware.NewLimiterStore(cfg.LoginRateLimitRPM, 3, time.Minute)
		defer limiter.Stop()
	}

	srv := newServer(store, jwtMgr, password, log)
	srv.exposeInternalErrors = cfg.ExposeInternalErrors

	handler := NewRouter(RouterConfig{
		Server:       srv,
		Log:          log,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		LoginLimiter: limiter,
		Secure:       middleware.NewSecure(middleware.SecureOptions(cfg.IsDevelopment(), middleware.APIContentSecurityPolicy)),
		Metrics:      true,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("API listening at /api")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server exit")
		}
	}()

	var grpcServer *grpc.Server
	if cfg.GRPCHealthPort != "" {
		grpcServer, err = serveHealth(ctx, cfg.GRPCHealthPort, store, log)
		if err != nil {
			log.Fatal().Err(err).Msg("grpc health listener")
		}
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	log.Info().Msg("server stopped")
}

// openStore connects the configured backend.
func openStore(ctx context.Context, cfg *config.Config) (data.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return pgstore.Open(cfg.PostgresDSN)
	default:
		dbClient, err := db.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		// Ensure indexes exist
		if err := dbClient.CreateIndexes(ctx); err != nil {
			_ = dbClient.Close(ctx)
			return nil, errors.Annotate(err, "creating indexes")
		}
		return data.NewMongoStore(dbClient), nil
	}
}

// newPassphrase prefers a precomputed hash over hashing the plaintext.
func newPassphrase(cfg *config.Config) (*auth.Passphrase, error) {
	if cfg.AdminPasswordHash != "" {
		return auth.NewPassphraseFromHash(cfg.AdminPasswordHash)
	}
	return auth.NewPassphrase(cfg.AdminPassword)
}

// serveHealth starts the gRPC health service and its store monitor.
func serveHealth(ctx context.Context, port string, store data.Pinger, log zerolog.Logger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return nil, err
	}
	grpcServer := grpc.NewServer()
	monitor := grpchealth.New(store, 15*time.Second, log)
	monitor.Register(grpcServer)
	go monitor.Run(ctx)
	go func() {
		log.Info().Str("addr", lis.Addr().String()).Msg("gRPC health listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc health server exit")
		}
	}()
	return grpcServer, nil
}
