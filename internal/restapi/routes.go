package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Routes builds the full HTTP handler: all endpoints registered on the
// router, wrapped in request logging.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()

	router.Handler(http.MethodGet, "/bus_state/view", http.HandlerFunc(api.viewHandler))
	router.Handler(http.MethodGet, "/bus_state/select_stop/:id", http.HandlerFunc(api.selectStopHandler))
	router.Handler(http.MethodGet, "/bus_state/select_bus/:id", http.HandlerFunc(api.selectBusHandler))
	router.Handler(http.MethodGet, "/bus_state/select_stop_from_route/:id", http.HandlerFunc(api.highlightStopHandler))
	router.Handler(http.MethodGet, "/bus_state/deselect", http.HandlerFunc(api.deselectHandler))
	router.Handler(http.MethodGet, "/bus_state/update", http.HandlerFunc(api.updateFeedHandler))

	router.Handler(http.MethodGet, "/bus_stops", http.HandlerFunc(api.busStopsHandler))
	router.Handler(http.MethodGet, "/vehicle_positions", http.HandlerFunc(api.vehiclePositionsHandler))

	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	logRequests := NewRequestLoggingMiddleware(api.Logger)
	return logRequests(router)
}
