package enrichment

import "math"

// Direction returns the compass quadrant of the listing relative to the
// origin point: the initial great-circle bearing mapped to NORTH, SOUTH,
// EAST or WEST. Pure computation, no I/O.
func Direction(originLat, originLng, destLat, destLng float64) string {
	bearing := initialBearing(originLat, originLng, destLat, destLng)

	switch {
	case bearing >= -45 && bearing <= 45:
		return "NORTH"
	case bearing <= -135 || bearing >= 135:
		return "SOUTH"
	case bearing < 0:
		return "WEST"
	default:
		return "EAST"
	}
}

// initialBearing computes the initial heading in degrees from the first
// point to the second, in the range [-180, 180] with 0 = due north.
func initialBearing(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	return math.Atan2(y, x) * 180 / math.Pi
}
