package static

// Index holds the static timetable lookup tables. It is built once at
// startup and read-only afterwards, so it is shared by every request
// without synchronization.
type Index struct {
	Routes map[string]RouteInfo
	Stops  map[string]StopInfo
	Trips  map[string]TripInfo
}

// NewIndex returns an empty index with initialized tables.
func NewIndex() *Index {
	return &Index{
		Routes: make(map[string]RouteInfo),
		Stops:  make(map[string]StopInfo),
		Trips:  make(map[string]TripInfo),
	}
}

// Stop looks up a stop by id.
func (idx *Index) Stop(stopID string) (StopInfo, bool) {
	stop, ok := idx.Stops[stopID]
	return stop, ok
}

// RouteIDForTrip resolves a trip to its route id. Unknown trips resolve
// to the empty string rather than an error; a vehicle may report a trip
// the timetable has never heard of.
func (idx *Index) RouteIDForTrip(tripID string) string {
	return idx.Trips[tripID].RouteID
}

// RouteShortName resolves a route id to its rider-facing short name, or
// "" when the route is unknown.
func (idx *Index) RouteShortName(routeID string) string {
	return idx.Routes[routeID].ShortName
}
