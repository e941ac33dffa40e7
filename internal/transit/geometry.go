package transit

import (
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusKM = 6371.0

// destinationPoint walks distanceKM from (lat, lon) along the given initial
// bearing (degrees clockwise from north) on a spherical Earth and returns the
// destination coordinates in degrees.
func destinationPoint(lat, lon, bearingDeg, distanceKM float64) (float64, float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	theta := bearingDeg * math.Pi / 180
	delta := distanceKM / earthRadiusKM

	phi2 := math.Asin(math.Sin(phi)*math.Cos(delta) + math.Cos(phi)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi),
		math.Cos(delta)-math.Sin(phi)*math.Sin(phi2),
	)

	return phi2 * 180 / math.Pi, lambda2 * 180 / math.Pi
}

// boundingSquare builds a closed polygon ring around (lat, lon): the four
// corners sit at the cardinal bearings, halfSideKM away from the center.
// Points are in GeoJSON (lon, lat) order and the ring repeats the first
// point to close itself.
func boundingSquare(lat, lon, halfSideKM float64) orb.Ring {
	bearings := []float64{0, 90, 180, 270}
	ring := make(orb.Ring, 0, len(bearings)+1)
	for _, b := range bearings {
		cornerLat, cornerLon := destinationPoint(lat, lon, b, halfSideKM)
		ring = append(ring, orb.Point{cornerLon, cornerLat})
	}
	ring = append(ring, ring[0])
	return ring
}
