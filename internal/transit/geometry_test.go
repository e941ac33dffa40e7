package transit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// haversineKM computes the great-circle distance between two points.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const toRad = math.Pi / 180
	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

func TestDestinationPointDistance(t *testing.T) {
	// Trieste city center.
	lat, lon := 45.6495, 13.7768
	for _, bearing := range []float64{0, 90, 180, 270} {
		dLat, dLon := destinationPoint(lat, lon, bearing, 0.4)
		assert.InDelta(t, 0.4, haversineKM(lat, lon, dLat, dLon), 1e-6,
			"bearing %.0f", bearing)
	}
}

func TestDestinationPointNorthKeepsLongitude(t *testing.T) {
	lat, lon := 46.0667, 13.2333
	dLat, dLon := destinationPoint(lat, lon, 0, 1.0)
	assert.Greater(t, dLat, lat)
	assert.InDelta(t, lon, dLon, 1e-9)
}

func TestBoundingSquareClosedRing(t *testing.T) {
	ring := boundingSquare(45.6495, 13.7768, 0.4)
	require.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4])
	// GeoJSON order: x is longitude.
	for _, p := range ring {
		assert.InDelta(t, 13.7768, p.X(), 0.01)
		assert.InDelta(t, 45.6495, p.Y(), 0.01)
	}
}
