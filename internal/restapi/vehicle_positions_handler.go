package restapi

import (
	"net/http"
	"sort"

	"busboard.cytransit.org/internal/models"
	"busboard.cytransit.org/internal/views"
)

// vehiclePositionsHandler serves every vehicle's raw last-known fix,
// joined with its trip and next scheduled call for the map popups. It
// is sourced from the fleet snapshot, independent of the current
// selection.
func (api *RestAPI) vehiclePositionsHandler(w http.ResponseWriter, r *http.Request) {
	snap := api.Feed.Current()
	fleet := views.NewProjector(api.Static, api.Location).FleetSnapshot(snap)

	vehicles := make([]models.VehiclePositionRecord, 0, len(fleet.BusLocations))
	for vehicleID, location := range fleet.BusLocations {
		vehicle, _ := snap.Vehicle(vehicleID)
		nextStopID := ""
		if len(vehicle.StopTimeUpdates) > 0 {
			nextStopID = vehicle.StopTimeUpdates[0].StopID
		}
		vehicles = append(vehicles, models.VehiclePositionRecord{
			VehicleID:  vehicleID,
			Latitude:   location.Lat,
			Longitude:  location.Lon,
			Timestamp:  location.Timestamp,
			TripID:     vehicle.TripID,
			NextStopID: nextStopID,
		})
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].VehicleID < vehicles[j].VehicleID
	})

	api.sendResponse(w, r, models.VehiclePositionList{Vehicles: vehicles})
}
