// Package selection holds the map UI's focus: nothing, one stop, or
// one vehicle, plus an independent highlighted stop. The focus decides
// which view the periodic refresh computes.
package selection

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"busboard.cytransit.org/internal/live"
	"busboard.cytransit.org/internal/models"
	"busboard.cytransit.org/internal/views"
)

// Mode is the main selection state.
type Mode int

const (
	ModeDefault Mode = iota
	ModeStopSelected
	ModeBusSelected
)

// state is the full selection tuple. It is immutable; transitions build
// a new value and swap the pointer, so a concurrent reader can never
// observe a torn combination such as ModeStopSelected with a leftover
// vehicle id. Exactly one of StopID/VehicleID is set outside
// ModeDefault; HighlightedStopID is independent of the mode but cleared
// by every main-selection change.
type state struct {
	Mode              Mode
	StopID            string
	VehicleID         string
	HighlightedStopID string
}

// Controller is the selection state machine. Reads are lock-free
// pointer loads; transitions serialize on a mutex so concurrent
// selection actions cannot lose each other's updates.
type Controller struct {
	feed      *live.Feed
	projector views.Projector

	mu      sync.Mutex
	current atomic.Pointer[state]
}

// NewController returns a controller in the default (nothing selected)
// state.
func NewController(feed *live.Feed, projector views.Projector) *Controller {
	c := &Controller{feed: feed, projector: projector}
	c.current.Store(&state{Mode: ModeDefault})
	return c
}

// SelectStop focuses a stop, clearing any bus selection and highlight,
// and returns the stop's board computed at now.
func (c *Controller) SelectStop(stopID string, now time.Time) models.StopBoard {
	c.swap(&state{Mode: ModeStopSelected, StopID: stopID})
	return c.projector.StopBoard(c.feed.Current(), stopID, now)
}

// SelectBus focuses a vehicle, clearing any stop selection and
// highlight, and returns the vehicle's full itinerary (unfiltered; the
// initial selection response shows every known call). A vehicle that
// has dropped out of the feed yields the not-found variant (a normal
// outcome, since the feed may have moved on between the map click and
// this call) and the selection still transitions, so the next tick
// reports not-found again rather than silently showing the old view.
func (c *Controller) SelectBus(vehicleID string) models.VehicleItinerary {
	c.swap(&state{Mode: ModeBusSelected, VehicleID: vehicleID})
	return c.projector.VehicleItinerary(c.feed.Current(), vehicleID, time.Time{})
}

// HighlightStop marks a stop on the map without touching the main
// selection. Only a confirmation message is returned; the highlighted
// stop does not change what Tick computes.
func (c *Controller) HighlightStop(stopID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := *c.current.Load()
	next.HighlightedStopID = stopID
	c.current.Store(&next)
	return fmt.Sprintf("Stop %s highlighted on map", stopID)
}

// Deselect resets to the default view and clears every selection
// field.
func (c *Controller) Deselect() string {
	c.swap(&state{Mode: ModeDefault})
	return "Deselected all. Reset to default view."
}

// Tick recomputes the view for the current selection at now without
// changing state. It is the periodic-refresh entry point, also invoked
// on demand by view fetches; identical inputs yield identical output.
func (c *Controller) Tick(now time.Time) models.View {
	current := c.current.Load()
	snap := c.feed.Current()

	switch current.Mode {
	case ModeBusSelected:
		return c.projector.VehicleItinerary(snap, current.VehicleID, now)
	case ModeStopSelected:
		return c.projector.StopBoard(snap, current.StopID, now)
	default:
		return c.projector.FleetSnapshot(snap)
	}
}

// Snapshot returns the current selection tuple for inspection.
func (c *Controller) Snapshot() (mode Mode, stopID, vehicleID, highlightedStopID string) {
	current := c.current.Load()
	return current.Mode, current.StopID, current.VehicleID, current.HighlightedStopID
}

func (c *Controller) swap(next *state) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.Store(next)
}
