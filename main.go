package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"weather-board/api"
	"weather-board/collector"
	"weather-board/config"
	"weather-board/datasource"
)

func main() {
	envFile := flag.String("env", ".env", "Path to the dotenv file")
	port := flag.String("port", "", "Port to run the server on (overrides PORT)")
	flag.Parse()

	// Load environment variables from the dotenv file
	envErr := config.LoadEnvFile(*envFile)

	cfg := config.Load()
	if *port != "" {
		cfg.HTTPPort = *port
	}

	logger := setupLogger(cfg)
	if envErr != nil {
		logger.Warn("could not load env file", "path", *envFile, "error", envErr)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	cities, err := collector.LoadCities(cfg.CitiesFile)
	if err != nil {
		logger.Error("failed to load city list", "path", cfg.CitiesFile, "error", err)
		os.Exit(1)
	}

	locator, err := datasource.OpenGeoIPLocator(cfg.GeoIPDB)
	if err != nil {
		logger.Error("failed to open geolocation database", "error", err)
		os.Exit(1)
	}
	defer locator.Close()

	// Create the weather provider, paced only when a rate is configured
	var provider datasource.Provider = datasource.NewOpenWeatherMapProvider(cfg.APIKey, cfg.WeatherBaseURL)
	if cfg.RateLimited() {
		provider = datasource.NewRateLimitedProvider(provider, cfg.RateLimitRPS, cfg.RateLimitBurst)
		logger.Info("applied rate limiting to weather provider", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}

	builder := collector.NewBuilder(datasource.NewCountryDirectory(cfg.CountriesURL), provider, logger)
	cityCollector := collector.NewCollector(provider, builder, logger)
	cityCollector.SetConcurrency(cfg.FetchConcurrency)
	cityCollector.SetFetchTimeout(cfg.FetchTimeout)

	server := api.NewServer(api.Config{
		Weather:   provider,
		Builder:   builder,
		Collector: cityCollector,
		IPs:       datasource.NewPublicIPResolver(cfg.PublicIPURL),
		Locator:   locator,
		Cities:    cities,
		StaticDir: cfg.StaticDir,
		Logger:    logger,
	}, net.JoinHostPort("", cfg.HTTPPort))

	logger.Info("configuration loaded",
		"port", cfg.HTTPPort,
		"provider", provider.Name(),
		"cities", len(cities),
		"concurrency", cfg.FetchConcurrency,
		"fetch_timeout", cfg.FetchTimeout)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	sig := <-shutdownChan
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", "error", err)
	} else {
		logger.Info("shutdown complete")
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)

	// JSON output in production
	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
