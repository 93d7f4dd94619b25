package models

// View is the result of a periodic refresh. Exactly one of the three
// concrete view types is produced per tick, depending on the current
// selection.
type View interface {
	view()
}

// BoardRow is a single arrival on a stop's departure board.
type BoardRow struct {
	VehicleID      string `json:"vehicle_id"`
	TripID         string `json:"trip_id"`
	RouteID        string `json:"route_id"`
	RouteShortName string `json:"route_number"`
	ETA            string `json:"eta"`
	ETAInMinutes   int64  `json:"eta_in_minutes"`
	DelayInMinutes int64  `json:"delay_in_minutes"`
}

// BusLocation is an interpolated position shown alongside a stop board.
// Timestamps are local wall-clock strings for display.
type BusLocation struct {
	RouteShortName string  `json:"route_number"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Timestamp      string  `json:"timestamp"`
	Now            string  `json:"now"`
}

// StopBoard is the arrival board for a single stop.
type StopBoard struct {
	Now          string                 `json:"now"`
	StopID       string                 `json:"stop_id"`
	StopName     string                 `json:"stop_name"`
	StopLat      float64                `json:"stop_lat"`
	StopLon      float64                `json:"stop_lon"`
	Rows         []BoardRow             `json:"stop_table"`
	BusLocations map[string]BusLocation `json:"bus_locations"`
}

func (StopBoard) view() {}

// FutureStop is one upcoming stop on a vehicle's itinerary. Delay stays
// in raw seconds here, unlike the stop board's minutes.
type FutureStop struct {
	StopID string `json:"stop_id"`
	ETA    string `json:"eta"`
	Delay  int64  `json:"delay"`
}

// VehiclePosition is a raw last-known fix, epoch seconds, no
// interpolation.
type VehiclePosition struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp int64   `json:"timestamp"`
}

// VehicleItinerary lists a vehicle's upcoming stops. A vehicle that has
// dropped out of the feed yields the not-found variant; that is a normal
// outcome, not an error return.
type VehicleItinerary struct {
	Error        string                     `json:"error,omitempty"`
	FutureStops  []FutureStop               `json:"future_stops,omitempty"`
	BusLocations map[string]VehiclePosition `json:"bus_locations,omitempty"`
}

func (VehicleItinerary) view() {}

// NotFound reports whether this itinerary is the not-found variant.
func (v VehicleItinerary) NotFound() bool {
	return v.Error != ""
}

// VehicleNotFound returns the itinerary variant for a vehicle that is
// absent from the current snapshot.
func VehicleNotFound() VehicleItinerary {
	return VehicleItinerary{Error: "Vehicle not found"}
}

// FleetSnapshot is the default view: every vehicle's raw position.
type FleetSnapshot struct {
	BusLocations map[string]VehiclePosition `json:"bus_locations"`
}

func (FleetSnapshot) view() {}

// Message is the confirmation payload for selection actions that return
// no data view.
type Message struct {
	Message string `json:"message"`
}
