package restapi

import (
	"net/http"
	"sort"

	"busboard.cytransit.org/internal/models"
)

// busStopsHandler serves the full static stop list the map draws its
// markers from.
func (api *RestAPI) busStopsHandler(w http.ResponseWriter, r *http.Request) {
	stops := make([]models.StopRecord, 0, len(api.Static.Stops))
	for _, stop := range api.Static.Stops {
		stops = append(stops, models.StopRecord{
			StopID: stop.StopID,
			Name:   stop.Name,
			Lat:    stop.Lat,
			Lon:    stop.Lon,
		})
	}
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].StopID < stops[j].StopID
	})

	api.sendResponse(w, r, models.StopList{Stops: stops})
}
