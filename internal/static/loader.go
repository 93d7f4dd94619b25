package static

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"busboard.cytransit.org/internal/logging"
)

const (
	routesFile    = "routes.txt"
	stopsFile     = "stops.txt"
	tripsFile     = "trips.txt"
	stopTimesFile = "stop_times.txt"
)

// LoadFolders builds the timetable index from one or more GTFS folders.
// Operators publish one folder per region; later folders extend the same
// tables. A missing or malformed file is logged and skipped (the
// affected table is simply smaller), so startup never fails on bad
// static data.
func LoadFolders(logger *slog.Logger, folders []string) *Index {
	idx := NewIndex()
	stopTimes := make(map[string][]StopTime)

	for _, folder := range folders {
		loadCSV(logger, filepath.Join(folder, routesFile), "route_id", func(row map[string]string) {
			idx.Routes[row["route_id"]] = RouteInfo{
				RouteID:   row["route_id"],
				ShortName: row["route_short_name"],
			}
		})

		loadCSV(logger, filepath.Join(folder, stopsFile), "stop_id", func(row map[string]string) {
			lat, _ := strconv.ParseFloat(row["stop_lat"], 64)
			lon, _ := strconv.ParseFloat(row["stop_lon"], 64)
			idx.Stops[row["stop_id"]] = StopInfo{
				StopID: row["stop_id"],
				Name:   row["stop_name"],
				Lat:    lat,
				Lon:    lon,
			}
		})

		loadCSV(logger, filepath.Join(folder, tripsFile), "trip_id", func(row map[string]string) {
			idx.Trips[row["trip_id"]] = TripInfo{
				TripID:  row["trip_id"],
				RouteID: row["route_id"],
			}
		})

		loadCSV(logger, filepath.Join(folder, stopTimesFile), "trip_id", func(row map[string]string) {
			seq, err := strconv.Atoi(row["stop_sequence"])
			if err != nil {
				return
			}
			tripID := row["trip_id"]
			stopTimes[tripID] = append(stopTimes[tripID], StopTime{
				StopID:        row["stop_id"],
				ArrivalTime:   row["arrival_time"],
				DepartureTime: row["departure_time"],
				StopSequence:  seq,
			})
		})
	}

	// Attach the scheduled stop sequence to each known trip, sorted by
	// stop_sequence. Stop times for unknown trips are dropped.
	for tripID, times := range stopTimes {
		trip, ok := idx.Trips[tripID]
		if !ok {
			continue
		}
		sort.Slice(times, func(i, j int) bool {
			return times[i].StopSequence < times[j].StopSequence
		})
		trip.StopTimes = times
		idx.Trips[tripID] = trip
	}

	return idx
}

// loadCSV streams one GTFS CSV file, calling row for each record as a
// header-keyed map. Files are skipped with a warning when absent, when
// the header is unreadable, or when the required key column is missing.
func loadCSV(logger *slog.Logger, path, requiredColumn string, row func(map[string]string)) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("skipping static data file", "path", path, "error", err)
		return
	}
	defer logging.SafeCloseWithLogging(f, logger, "static_data_file")

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		logger.Warn("skipping static data file with unreadable header", "path", path, "error", err)
		return
	}
	// Some operator exports carry a UTF-8 BOM on the first column name.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	if _, ok := columns[requiredColumn]; !ok {
		logger.Warn("skipping static data file with missing column",
			"path", path, "column", requiredColumn)
		return
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			logging.LogError(logger, "error reading static data file", err,
				slog.String("path", path))
			return
		}
		fields := make(map[string]string, len(columns))
		for name, i := range columns {
			if i < len(record) {
				fields[name] = record[i]
			}
		}
		row(fields)
	}
}
