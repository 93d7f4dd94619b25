package views

// Interpolate estimates a position between two timestamped fixes at the
// query time. The first fix is the vehicle's last reported position;
// the second is its predicted arrival at the stop being viewed (the
// stop's coordinates at the arrival estimate). The model is a straight
// line between the two, nothing smarter.
//
// Degenerate intervals (t2 <= t1, a stale or duplicate fix) return the
// first fix's position unchanged. Otherwise the fraction elapsed is
// clamped to [0, 1], so positions are never extrapolated past either
// fix. Pure function, safe from any goroutine.
func Interpolate(lat1, lon1 float64, t1 int64, lat2, lon2 float64, t2 int64, now int64) (float64, float64) {
	if t2 <= t1 {
		return lat1, lon1
	}

	f := float64(now-t1) / float64(t2-t1)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}

	return lat1 + f*(lat2-lat1), lon1 + f*(lon2-lon1)
}
