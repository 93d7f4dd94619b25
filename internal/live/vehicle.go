package live

// Position is a reported coordinate fix. Latitude and longitude are
// always present together.
type Position struct {
	Lat float64
	Lon float64
}

// StopTimeEvent is a predicted arrival or departure. Time is epoch
// seconds; Delay is seconds and may be negative when running early.
type StopTimeEvent struct {
	Time  int64
	Delay int64
}

// StopTimeUpdate is one predicted call at a stop. The feed transport
// only passes updates through when both arrival and departure are
// present; partially specified updates never reach the snapshot.
type StopTimeUpdate struct {
	StopID    string
	Arrival   StopTimeEvent
	Departure StopTimeEvent
}

// VehicleState is everything currently known about one vehicle. States
// are created fresh on each feed refresh and never mutated after the
// snapshot holding them is published.
type VehicleState struct {
	VehicleID string
	TripID    string
	Timestamp int64
	Position  *Position
	// StopTimeUpdates keeps feed arrival order; it is not guaranteed
	// sorted by time.
	StopTimeUpdates []StopTimeUpdate
}

// Record is one partial per-vehicle record from a decoded feed batch.
// A single refresh may describe the same vehicle in several entities
// (its position in one, its trip update in another), so records merge
// field-by-field before entering the snapshot: a later record's present
// fields overwrite an earlier record's.
type Record struct {
	VehicleID       string
	TripID          string
	Timestamp       int64
	Position        *Position
	StopTimeUpdates []StopTimeUpdate
}

// merge overlays r's present fields onto the state accumulated so far.
func (s VehicleState) merge(r Record) VehicleState {
	if r.TripID != "" {
		s.TripID = r.TripID
	}
	if r.Timestamp != 0 {
		s.Timestamp = r.Timestamp
	}
	if r.Position != nil {
		s.Position = r.Position
	}
	if r.StopTimeUpdates != nil {
		s.StopTimeUpdates = r.StopTimeUpdates
	}
	return s
}
