package live

import (
	"sync/atomic"
	"time"
)

// Snapshot is the complete set of vehicle states from one refresh
// cycle. A snapshot is immutable once published; refreshes build a new
// map off to the side and swap it in wholesale, so readers iterating a
// snapshot never race with the poller.
type Snapshot struct {
	Vehicles    map[string]VehicleState
	RefreshedAt time.Time
}

// NewSnapshot builds a snapshot from a decoded feed batch, merging
// multiple records for the same vehicle in batch order.
func NewSnapshot(records []Record, refreshedAt time.Time) *Snapshot {
	vehicles := make(map[string]VehicleState, len(records))
	for _, r := range records {
		if r.VehicleID == "" {
			continue
		}
		state := vehicles[r.VehicleID]
		state.VehicleID = r.VehicleID
		vehicles[r.VehicleID] = state.merge(r)
	}
	return &Snapshot{Vehicles: vehicles, RefreshedAt: refreshedAt}
}

// Vehicle looks up one vehicle's state.
func (s *Snapshot) Vehicle(vehicleID string) (VehicleState, bool) {
	state, ok := s.Vehicles[vehicleID]
	return state, ok
}

// Feed owns the current snapshot. Replacement is a single atomic
// pointer swap: any number of request handlers read the snapshot while
// the poller publishes replacements, with no locking on the read path.
type Feed struct {
	snapshot atomic.Pointer[Snapshot]
}

// NewFeed returns a feed holding an empty snapshot, so readers before
// the first successful refresh see no vehicles rather than nil.
func NewFeed() *Feed {
	f := &Feed{}
	f.snapshot.Store(&Snapshot{Vehicles: map[string]VehicleState{}})
	return f
}

// Current returns the latest published snapshot. The returned value
// must be treated as read-only.
func (f *Feed) Current() *Snapshot {
	return f.snapshot.Load()
}

// Publish installs a new snapshot. The previous snapshot stays valid
// for readers that already hold it.
func (f *Feed) Publish(s *Snapshot) {
	f.snapshot.Store(s)
}
