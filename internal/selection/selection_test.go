package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busboard.cytransit.org/internal/live"
	"busboard.cytransit.org/internal/models"
	"busboard.cytransit.org/internal/static"
	"busboard.cytransit.org/internal/views"
)

func newTestController() (*Controller, *live.Feed) {
	idx := static.NewIndex()
	idx.Routes["R1"] = static.RouteInfo{RouteID: "R1", ShortName: "101"}
	idx.Stops["S1"] = static.StopInfo{StopID: "S1", Name: "Harbour Square", Lat: 10.0, Lon: 20.0}
	idx.Trips["T1"] = static.TripInfo{TripID: "T1", RouteID: "R1"}

	feed := live.NewFeed()
	feed.Publish(live.NewSnapshot([]live.Record{
		{
			VehicleID: "V1",
			TripID:    "T1",
			Timestamp: 1000,
			Position:  &live.Position{Lat: 10.0, Lon: 20.5},
			StopTimeUpdates: []live.StopTimeUpdate{
				{StopID: "S1", Arrival: live.StopTimeEvent{Time: 1100, Delay: 60}, Departure: live.StopTimeEvent{Time: 1110}},
			},
		},
	}, time.Unix(1000, 0)))

	return NewController(feed, views.NewProjector(idx, time.UTC)), feed
}

func TestControllerStartsInDefaultMode(t *testing.T) {
	c, _ := newTestController()

	mode, stopID, vehicleID, highlighted := c.Snapshot()
	assert.Equal(t, ModeDefault, mode)
	assert.Empty(t, stopID)
	assert.Empty(t, vehicleID)
	assert.Empty(t, highlighted)

	view := c.Tick(time.Unix(1050, 0))
	fleet, ok := view.(models.FleetSnapshot)
	require.True(t, ok)
	assert.Contains(t, fleet.BusLocations, "V1")
}

func TestSelectStopReturnsBoardAndSetsMode(t *testing.T) {
	c, _ := newTestController()

	board := c.SelectStop("S1", time.Unix(1050, 0))
	require.Len(t, board.Rows, 1)
	assert.Equal(t, "V1", board.Rows[0].VehicleID)

	mode, stopID, vehicleID, _ := c.Snapshot()
	assert.Equal(t, ModeStopSelected, mode)
	assert.Equal(t, "S1", stopID)
	assert.Empty(t, vehicleID)
}

func TestSelectBusReturnsItineraryAndSetsMode(t *testing.T) {
	c, _ := newTestController()

	itinerary := c.SelectBus("V1")
	assert.False(t, itinerary.NotFound())
	require.Len(t, itinerary.FutureStops, 1)

	mode, stopID, vehicleID, _ := c.Snapshot()
	assert.Equal(t, ModeBusSelected, mode)
	assert.Empty(t, stopID)
	assert.Equal(t, "V1", vehicleID)
}

func TestSelectionsAreMutuallyExclusive(t *testing.T) {
	c, _ := newTestController()

	c.SelectStop("S1", time.Unix(1050, 0))
	c.SelectBus("V1")

	mode, stopID, vehicleID, _ := c.Snapshot()
	assert.Equal(t, ModeBusSelected, mode)
	assert.Empty(t, stopID, "stop selection must clear when a bus is selected")
	assert.Equal(t, "V1", vehicleID)

	c.SelectStop("S1", time.Unix(1050, 0))

	mode, stopID, vehicleID, _ = c.Snapshot()
	assert.Equal(t, ModeStopSelected, mode)
	assert.Equal(t, "S1", stopID)
	assert.Empty(t, vehicleID, "bus selection must clear when a stop is selected")
}

func TestHighlightStopLeavesMainSelectionAlone(t *testing.T) {
	c, _ := newTestController()

	c.SelectStop("S1", time.Unix(1050, 0))
	message := c.HighlightStop("S2")
	assert.Equal(t, "Stop S2 highlighted on map", message)

	mode, stopID, _, highlighted := c.Snapshot()
	assert.Equal(t, ModeStopSelected, mode)
	assert.Equal(t, "S1", stopID)
	assert.Equal(t, "S2", highlighted)

	// Tick still computes the stop board, not anything highlight-driven.
	view := c.Tick(time.Unix(1050, 0))
	_, ok := view.(models.StopBoard)
	assert.True(t, ok)
}

func TestMainSelectionClearsHighlight(t *testing.T) {
	c, _ := newTestController()

	c.HighlightStop("S2")
	c.SelectBus("V1")

	_, _, _, highlighted := c.Snapshot()
	assert.Empty(t, highlighted)
}

func TestDeselectResetsEverything(t *testing.T) {
	c, _ := newTestController()

	c.SelectStop("S1", time.Unix(1050, 0))
	c.HighlightStop("S2")
	message := c.Deselect()
	assert.Equal(t, "Deselected all. Reset to default view.", message)

	mode, stopID, vehicleID, highlighted := c.Snapshot()
	assert.Equal(t, ModeDefault, mode)
	assert.Empty(t, stopID)
	assert.Empty(t, vehicleID)
	assert.Empty(t, highlighted)
}

func TestTickDoesNotChangeState(t *testing.T) {
	c, _ := newTestController()
	c.SelectStop("S1", time.Unix(1050, 0))

	first := c.Tick(time.Unix(1050, 0))
	second := c.Tick(time.Unix(1050, 0))

	assert.Equal(t, first, second)

	mode, stopID, _, _ := c.Snapshot()
	assert.Equal(t, ModeStopSelected, mode)
	assert.Equal(t, "S1", stopID)
}

func TestSelectBusNotFoundPersistsAcrossTicks(t *testing.T) {
	c, _ := newTestController()

	itinerary := c.SelectBus("ghost")
	assert.True(t, itinerary.NotFound())

	// The selection transitioned anyway; every tick reports not-found
	// until the vehicle reappears or the user moves on.
	view := c.Tick(time.Unix(1050, 0))
	ticked, ok := view.(models.VehicleItinerary)
	require.True(t, ok)
	assert.True(t, ticked.NotFound())
}

func TestTickSeesFreshSnapshot(t *testing.T) {
	c, feed := newTestController()
	c.SelectBus("ghost")

	// The missing vehicle shows up on a later refresh.
	feed.Publish(live.NewSnapshot([]live.Record{
		{VehicleID: "ghost", Timestamp: 2000, Position: &live.Position{Lat: 1, Lon: 2}},
	}, time.Unix(2000, 0)))

	view := c.Tick(time.Unix(2050, 0))
	ticked, ok := view.(models.VehicleItinerary)
	require.True(t, ok)
	assert.False(t, ticked.NotFound())
}
