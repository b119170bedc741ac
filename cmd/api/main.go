package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ngonexus/internal/credentials"
	"ngonexus/internal/genai"
	"ngonexus/internal/http/handlers"
	"ngonexus/internal/http/httpapi"
	"ngonexus/internal/infra"
	"ngonexus/internal/infra/geoip"
	"ngonexus/internal/middleware"
	"ngonexus/internal/nexus"
	"ngonexus/internal/prompt"
	"ngonexus/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Blob store: Postgres when DATABASE_URL is set, local files otherwise.
	var kv store.Store
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		kv = store.NewPGStore(infra.NewSQLRunner(pool, logger))
		logger.Info().Msg("using postgres blob store")
	} else {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open data dir")
		}
		kv = fs
		logger.Info().Str("dir", fs.BasePath()).Msg("using filesystem blob store")
	}

	creds := credentials.NewStore(kv)
	if cfg.GeminiAPIKey != "" {
		if err := creds.SetGeminiAPIKey(ctx, cfg.GeminiAPIKey); err != nil {
			logger.Warn().Err(err).Msg("failed to store bootstrap gemini key")
		}
	}

	nx := nexus.New(nexus.Options{
		Store:    kv,
		Logger:   logger,
		AdminKey: cfg.AdminSecurityKey,
	})
	if err := nx.Bootstrap(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap state")
	}

	var geoResolver geoip.Resolver
	if resolver, err := geoip.NewResolver(cfg.GeoIPDBPath); err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		geoResolver = resolver
	}

	app := &handlers.App{
		Nexus: nx,
		Creds: creds,
		Gateway: func(apiKey string) handlers.AIGateway {
			return genai.NewClient(genai.Options{
				APIKey:  apiKey,
				BaseURL: cfg.GeminiBaseURL,
				Logger:  &logger,
			})
		},
		Enhancer: prompt.NewStaticEnhancer(),
		Geo:      geoResolver,
		Logger:   logger,
	}

	var countryLookup middleware.CountryLookup
	if geoResolver != nil {
		countryLookup = geoResolver.CountryCode
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  countryLookup,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
