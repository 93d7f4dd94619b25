package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"busboard.cytransit.org/internal/app"
	"busboard.cytransit.org/internal/live"
	"busboard.cytransit.org/internal/logging"
	"busboard.cytransit.org/internal/metrics"
	"busboard.cytransit.org/internal/restapi"
	"busboard.cytransit.org/internal/selection"
	"busboard.cytransit.org/internal/static"
	"busboard.cytransit.org/internal/views"
)

func main() {
	// A missing .env file is fine; flags and real environment
	// variables still apply.
	_ = godotenv.Load()

	var cfg app.Config
	var foldersFlag string
	var refreshSeconds int

	flag.IntVar(&cfg.Port, "port", envInt("BUSBOARD_PORT", 4000), "API server port")
	flag.StringVar(&cfg.Env, "env", envString("BUSBOARD_ENV", "development"), "Environment (development|staging|production)")
	flag.StringVar(&cfg.FeedURL, "feed-url", envString("BUSBOARD_FEED_URL", ""), "URL of the GTFS-realtime feed")
	flag.IntVar(&refreshSeconds, "refresh-interval", envInt("BUSBOARD_REFRESH_INTERVAL", 30), "Feed refresh interval in seconds")
	flag.StringVar(&foldersFlag, "static-folders", envString("BUSBOARD_STATIC_FOLDERS", "google_transit"), "Comma separated folders holding static GTFS files")
	flag.StringVar(&cfg.Timezone, "timezone", envString("BUSBOARD_TIMEZONE", "Asia/Nicosia"), "IANA time zone for displayed clocks")
	flag.Parse()

	cfg.RefreshInterval = time.Duration(refreshSeconds) * time.Second
	for _, folder := range strings.Split(foldersFlag, ",") {
		if folder = strings.TrimSpace(folder); folder != "" {
			cfg.StaticFolders = append(cfg.StaticFolders, folder)
		}
	}

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	if cfg.FeedURL == "" {
		logger.Error("no feed URL configured, set -feed-url or BUSBOARD_FEED_URL")
		os.Exit(1)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("failed to load time zone", "error", err, "timezone", cfg.Timezone)
		os.Exit(1)
	}

	index := static.LoadFolders(logger, cfg.StaticFolders)
	logging.LogOperation(logger, "static timetable loaded",
		slog.Int("routes", len(index.Routes)),
		slog.Int("stops", len(index.Stops)),
		slog.Int("trips", len(index.Trips)))

	feed := live.NewFeed()
	collector := metrics.NewCollector()
	poller := live.NewPoller(live.Config{
		FeedURL:         cfg.FeedURL,
		RefreshInterval: cfg.RefreshInterval,
		AuthHeaderKey:   envString("BUSBOARD_FEED_AUTH_HEADER", ""),
		AuthHeaderValue: envString("BUSBOARD_FEED_AUTH_VALUE", ""),
	}, feed, logger, collector)
	poller.Start()

	projector := views.NewProjector(index, location)
	controller := selection.NewController(feed, projector)

	application := &app.Application{
		Config:    cfg,
		Logger:    logger,
		Static:    index,
		Feed:      feed,
		Poller:    poller,
		Selection: controller,
		Metrics:   collector,
		Location:  location,
	}
	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		poller.Shutdown()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)

	err = srv.ListenAndServe()
	if err != http.ErrServerClosed {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped", "addr", srv.Addr)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
