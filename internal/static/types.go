package static

// RouteInfo is one row from routes.txt. Loaded once, keyed by RouteID.
type RouteInfo struct {
	RouteID   string
	ShortName string
}

// StopInfo is one row from stops.txt.
type StopInfo struct {
	StopID string
	Name   string
	Lat    float64
	Lon    float64
}

// StopTime is one scheduled call on a trip, attached to the trip at load
// time and sorted ascending by StopSequence.
type StopTime struct {
	StopID        string
	ArrivalTime   string
	DepartureTime string
	StopSequence  int
}

// TripInfo is one row from trips.txt plus its scheduled stop sequence.
type TripInfo struct {
	TripID    string
	RouteID   string
	StopTimes []StopTime
}
