package views

import (
	"sort"
	"time"

	"busboard.cytransit.org/internal/live"
	"busboard.cytransit.org/internal/models"
	"busboard.cytransit.org/internal/static"
)

// clockLayout is the local wall-clock format used in every view.
const clockLayout = "15:04:05"

// Projector derives the output views from the timetable index and a
// feed snapshot. All methods are pure: the query time is an explicit
// parameter and the wall clock is never read here, which keeps the
// projections deterministic and trivially testable.
type Projector struct {
	static *static.Index
	loc    *time.Location
}

// NewProjector returns a projector rendering times in loc, the
// operator's single civil time zone.
func NewProjector(idx *static.Index, loc *time.Location) Projector {
	return Projector{static: idx, loc: loc}
}

// StopBoard builds the arrival board for one stop: a row per stop-time
// update matching the stop across every vehicle in the snapshot, plus
// an interpolated position per matching vehicle. Rows are sorted by
// eta, then vehicle id, so the board is reproducible regardless of map
// iteration order.
func (p Projector) StopBoard(snap *live.Snapshot, stopID string, now time.Time) models.StopBoard {
	stop, _ := p.static.Stop(stopID)

	board := models.StopBoard{
		Now:          now.In(p.loc).Format(clockLayout),
		StopID:       stopID,
		StopName:     stop.Name,
		StopLat:      stop.Lat,
		StopLon:      stop.Lon,
		Rows:         []models.BoardRow{},
		BusLocations: map[string]models.BusLocation{},
	}

	type timedRow struct {
		row     models.BoardRow
		arrival int64
	}
	var rows []timedRow

	for vehicleID, vehicle := range snap.Vehicles {
		for _, update := range vehicle.StopTimeUpdates {
			if update.StopID != stopID {
				continue
			}

			routeID := p.static.RouteIDForTrip(vehicle.TripID)
			shortName := p.static.RouteShortName(routeID)

			rows = append(rows, timedRow{
				arrival: update.Arrival.Time,
				row: models.BoardRow{
					VehicleID:      vehicleID,
					TripID:         vehicle.TripID,
					RouteID:        routeID,
					RouteShortName: shortName,
					ETA:            p.clock(update.Arrival.Time),
					ETAInMinutes:   floorDiv(update.Arrival.Time-now.Unix(), 60),
					DelayInMinutes: floorDiv(update.Arrival.Delay, 60),
				},
			})

			if vehicle.Position == nil {
				continue
			}
			lat, lon := Interpolate(
				vehicle.Position.Lat, vehicle.Position.Lon, vehicle.Timestamp,
				stop.Lat, stop.Lon, update.Arrival.Time,
				now.Unix(),
			)
			board.BusLocations[vehicleID] = models.BusLocation{
				RouteShortName: shortName,
				Lat:            lat,
				Lon:            lon,
				Timestamp:      p.clock(vehicle.Timestamp),
				Now:            board.Now,
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].arrival != rows[j].arrival {
			return rows[i].arrival < rows[j].arrival
		}
		return rows[i].row.VehicleID < rows[j].row.VehicleID
	})
	for _, r := range rows {
		board.Rows = append(board.Rows, r.row)
	}

	return board
}

// VehicleItinerary lists a vehicle's upcoming calls in feed order. A
// zero now means no filtering (the initial selection response); a
// non-zero now keeps only calls with arrival >= now. The vehicle's raw
// last fix rides along, keyed by vehicle id, omitted entirely when the
// vehicle has never reported a position. An id absent from the snapshot
// yields the not-found variant.
func (p Projector) VehicleItinerary(snap *live.Snapshot, vehicleID string, now time.Time) models.VehicleItinerary {
	vehicle, ok := snap.Vehicle(vehicleID)
	if !ok {
		return models.VehicleNotFound()
	}

	itinerary := models.VehicleItinerary{FutureStops: []models.FutureStop{}}
	for _, update := range vehicle.StopTimeUpdates {
		if !now.IsZero() && update.Arrival.Time < now.Unix() {
			continue
		}
		itinerary.FutureStops = append(itinerary.FutureStops, models.FutureStop{
			StopID: update.StopID,
			ETA:    p.clock(update.Arrival.Time),
			Delay:  update.Arrival.Delay,
		})
	}

	if vehicle.Position != nil {
		itinerary.BusLocations = map[string]models.VehiclePosition{
			vehicleID: {
				Lat:       vehicle.Position.Lat,
				Lon:       vehicle.Position.Lon,
				Timestamp: vehicle.Timestamp,
			},
		}
	}

	return itinerary
}

// FleetSnapshot reports every vehicle's raw last-known fix. No
// interpolation, no timetable join; vehicles that have never reported a
// position are omitted.
func (p Projector) FleetSnapshot(snap *live.Snapshot) models.FleetSnapshot {
	fleet := models.FleetSnapshot{
		BusLocations: make(map[string]models.VehiclePosition, len(snap.Vehicles)),
	}
	for vehicleID, vehicle := range snap.Vehicles {
		if vehicle.Position == nil {
			continue
		}
		fleet.BusLocations[vehicleID] = models.VehiclePosition{
			Lat:       vehicle.Position.Lat,
			Lon:       vehicle.Position.Lon,
			Timestamp: vehicle.Timestamp,
		}
	}
	return fleet
}

func (p Projector) clock(epoch int64) string {
	return time.Unix(epoch, 0).In(p.loc).Format(clockLayout)
}

// floorDiv divides rounding toward negative infinity, so a bus 30
// seconds overdue shows -1 minutes, not 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
