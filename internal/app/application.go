package app

import (
	"log/slog"
	"time"

	"busboard.cytransit.org/internal/live"
	"busboard.cytransit.org/internal/metrics"
	"busboard.cytransit.org/internal/selection"
	"busboard.cytransit.org/internal/static"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the configuration, the logger, the immutable
// timetable index, the live feed and its poller, the selection state
// machine, and the metrics collector.
type Application struct {
	Config    Config
	Logger    *slog.Logger
	Static    *static.Index
	Feed      *live.Feed
	Poller    *live.Poller
	Selection *selection.Controller
	Metrics   *metrics.Collector
	Location  *time.Location
}

// Config holds all the configuration settings for our Application: the
// network port to listen on, the operating environment name, the feed
// transport settings, the static timetable folders, and the operator's
// time zone.
type Config struct {
	Port            int
	Env             string
	FeedURL         string
	RefreshInterval time.Duration
	StaticFolders   []string
	Timezone        string
}

// Now returns the current time in the operator's time zone. This is
// the single place the wall clock is read; every projection below the
// HTTP layer takes now as an explicit parameter.
func (app *Application) Now() time.Time {
	return time.Now().In(app.Location)
}
