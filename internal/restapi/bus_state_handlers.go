package restapi

import (
	"net/http"

	"busboard.cytransit.org/internal/models"
	"busboard.cytransit.org/internal/utils"
)

// viewHandler is the periodic-refresh entry point: it recomputes the
// view matching the current selection at the current time. The map UI
// polls it every few seconds.
func (api *RestAPI) viewHandler(w http.ResponseWriter, r *http.Request) {
	view := api.Selection.Tick(api.Now())
	api.sendResponse(w, r, view)
}

func (api *RestAPI) selectStopHandler(w http.ResponseWriter, r *http.Request) {
	stopID := utils.ExtractIDFromParams(r, "id")
	board := api.Selection.SelectStop(stopID, api.Now())
	api.sendResponse(w, r, board)
}

// selectBusHandler returns the vehicle's itinerary, or the not-found
// variant when the vehicle has dropped out of the feed. Both are 200s:
// a vanished vehicle is an expected outcome, not a failure.
func (api *RestAPI) selectBusHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := utils.ExtractIDFromParams(r, "id")
	itinerary := api.Selection.SelectBus(vehicleID)
	api.sendResponse(w, r, itinerary)
}

func (api *RestAPI) highlightStopHandler(w http.ResponseWriter, r *http.Request) {
	stopID := utils.ExtractIDFromParams(r, "id")
	message := api.Selection.HighlightStop(stopID)
	api.sendResponse(w, r, models.Message{Message: message})
}

func (api *RestAPI) deselectHandler(w http.ResponseWriter, r *http.Request) {
	message := api.Selection.Deselect()
	api.sendResponse(w, r, models.Message{Message: message})
}

// updateFeedHandler triggers a feed refresh outside the regular
// cadence, mainly for debugging against a flaky upstream.
func (api *RestAPI) updateFeedHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.Poller.Refresh(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.FeedStatus{
		Status:        "Live feed updated",
		VehiclesCount: len(api.Feed.Current().Vehicles),
	})
}
