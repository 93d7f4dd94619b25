package models

// StopRecord is one static stop as served to the map UI.
type StopRecord struct {
	StopID string  `json:"stop_id"`
	Name   string  `json:"stop_name"`
	Lat    float64 `json:"stop_lat"`
	Lon    float64 `json:"stop_lon"`
}

// StopList is the /bus_stops response.
type StopList struct {
	Stops []StopRecord `json:"stops"`
}

// VehiclePositionRecord is one row of the fleet-wide positions
// endpoint: the raw fix joined with the vehicle's trip and next stop.
type VehiclePositionRecord struct {
	VehicleID  string  `json:"vehicle_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
	TripID     string  `json:"trip_id"`
	NextStopID string  `json:"next_stop_id"`
}

// VehiclePositionList is the /vehicle_positions response.
type VehiclePositionList struct {
	Vehicles []VehiclePositionRecord `json:"vehicles"`
}

// FeedStatus is the manual feed refresh response.
type FeedStatus struct {
	Status        string `json:"status"`
	VehiclesCount int    `json:"vehicles_count"`
}
