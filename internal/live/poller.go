package live

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jamespfennell/gtfs"

	"busboard.cytransit.org/internal/logging"
	"busboard.cytransit.org/internal/metrics"
)

// Config holds the feed transport settings.
type Config struct {
	FeedURL         string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	AuthHeaderKey   string
	AuthHeaderValue string
}

// Poller refreshes the feed on a fixed cadence. Each cycle fetches and
// decodes the GTFS-realtime feed and publishes a fresh snapshot; a
// failed cycle is logged and skipped, leaving the previous snapshot
// authoritative until the next success. The cadence never stops on
// failure.
type Poller struct {
	config    Config
	feed      *Feed
	client    *http.Client
	logger    *slog.Logger
	collector *metrics.Collector

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewPoller creates a poller publishing into feed. The collector may be
// nil.
func NewPoller(config Config, feed *Feed, logger *slog.Logger, collector *metrics.Collector) *Poller {
	if config.FetchTimeout == 0 {
		config.FetchTimeout = 15 * time.Second
	}
	return &Poller{
		config:       config,
		feed:         feed,
		client:       &http.Client{Timeout: config.FetchTimeout},
		logger:       logger.With(slog.String("component", "feed_poller")),
		collector:    collector,
		shutdownChan: make(chan struct{}),
	}
}

// Start performs an initial refresh and then launches the periodic
// refresh goroutine.
func (p *Poller) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.FetchTimeout)
	if err := p.Refresh(ctx); err != nil {
		logging.LogError(p.logger, "initial feed refresh failed", err,
			slog.String("url", p.config.FeedURL))
	}
	cancel()

	p.wg.Add(1)
	go p.run()
}

// Shutdown stops the refresh loop and waits for it to exit.
func (p *Poller) Shutdown() {
	p.shutdownOnce.Do(func() {
		close(p.shutdownChan)
		p.wg.Wait()
	})
}

func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), p.config.FetchTimeout)
			if err := p.Refresh(ctx); err != nil {
				logging.LogError(p.logger, "feed refresh failed", err,
					slog.String("url", p.config.FeedURL))
			}
			cancel()
		case <-p.shutdownChan:
			logging.LogOperation(p.logger, "shutting_down_feed_poller")
			return
		}
	}
}

// Refresh fetches and decodes the feed once and publishes the resulting
// snapshot. It never clears the previous snapshot on failure.
func (p *Poller) Refresh(ctx context.Context) error {
	start := time.Now()

	b, err := p.fetchFeed(ctx)
	if err != nil {
		p.countError()
		return err
	}

	realtime, err := gtfs.ParseRealtime(b, &gtfs.ParseRealtimeOptions{})
	if err != nil {
		p.countError()
		return fmt.Errorf("decoding realtime feed: %w", err)
	}

	snapshot := NewSnapshot(recordsFromRealtime(realtime), time.Now())
	p.feed.Publish(snapshot)

	if p.collector != nil {
		p.collector.FeedRefreshes.Inc()
		p.collector.VehiclesTracked.Set(float64(len(snapshot.Vehicles)))
		p.collector.RefreshDuration.Observe(time.Since(start).Seconds())
	}
	logging.LogOperation(p.logger, "feed_refreshed",
		slog.Int("vehicles", len(snapshot.Vehicles)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (p *Poller) fetchFeed(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.FeedURL, nil)
	if err != nil {
		return nil, err
	}
	if p.config.AuthHeaderKey != "" && p.config.AuthHeaderValue != "" {
		req.Header.Add(p.config.AuthHeaderKey, p.config.AuthHeaderValue)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, p.logger, "http_response_body")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching realtime feed: HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (p *Poller) countError() {
	if p.collector != nil {
		p.collector.FeedRefreshErrs.Inc()
	}
}

// recordsFromRealtime flattens a decoded GTFS-realtime message into
// partial per-vehicle records. Vehicle entities contribute trip id,
// timestamp and position; trip-update entities contribute trip id and
// stop-time updates. Entities with no vehicle id are dropped, as are
// stop-time updates missing either the arrival or the departure side.
func recordsFromRealtime(realtime *gtfs.Realtime) []Record {
	records := make([]Record, 0, len(realtime.Vehicles)+len(realtime.Trips))

	for _, v := range realtime.Vehicles {
		if v.ID == nil || v.ID.ID == "" {
			continue
		}
		r := Record{VehicleID: v.ID.ID}
		if v.Trip != nil {
			r.TripID = v.Trip.ID.ID
		}
		if v.Timestamp != nil {
			r.Timestamp = v.Timestamp.Unix()
		}
		if v.Position != nil && v.Position.Latitude != nil && v.Position.Longitude != nil {
			r.Position = &Position{
				Lat: float64(*v.Position.Latitude),
				Lon: float64(*v.Position.Longitude),
			}
		}
		records = append(records, r)
	}

	for _, t := range realtime.Trips {
		if t.Vehicle == nil || t.Vehicle.ID == nil || t.Vehicle.ID.ID == "" {
			continue
		}
		records = append(records, Record{
			VehicleID:       t.Vehicle.ID.ID,
			TripID:          t.ID.ID,
			StopTimeUpdates: convertStopTimeUpdates(t.StopTimeUpdates),
		})
	}

	return records
}

func convertStopTimeUpdates(updates []gtfs.StopTimeUpdate) []StopTimeUpdate {
	// Always non-nil: a trip update with nothing usable still asserts
	// "this vehicle has no upcoming calls" and overwrites stale ones.
	converted := make([]StopTimeUpdate, 0, len(updates))
	for _, u := range updates {
		if u.StopID == nil || u.Arrival == nil || u.Departure == nil {
			continue
		}
		if u.Arrival.Time == nil || u.Departure.Time == nil {
			continue
		}
		converted = append(converted, StopTimeUpdate{
			StopID:    *u.StopID,
			Arrival:   convertStopTimeEvent(u.Arrival),
			Departure: convertStopTimeEvent(u.Departure),
		})
	}
	return converted
}

func convertStopTimeEvent(event *gtfs.StopTimeEvent) StopTimeEvent {
	converted := StopTimeEvent{Time: event.Time.Unix()}
	if event.Delay != nil {
		converted.Delay = int64(event.Delay.Seconds())
	}
	return converted
}
