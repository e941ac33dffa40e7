package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionFavorite(t *testing.T) {
	action, err := ParseAction("fav", "stop+02001")
	require.NoError(t, err)
	assert.Equal(t, ToggleFavorite{Code: "02001"}, action)
}

func TestParseActionRouteModes(t *testing.T) {
	action, err := ParseAction("route", "stop+02001")
	require.NoError(t, err)
	assert.Equal(t, ShowRouteChoices{Code: "02001"}, action)

	action, err = ParseAction("route", "cancel+02001")
	require.NoError(t, err)
	assert.Equal(t, CancelRouteChoices{Code: "02001"}, action)

	action, err = ParseAction("route", "trip+G01|1|A|12345|02001|09:05")
	require.NoError(t, err)
	reveal, ok := action.(RevealRoute)
	require.True(t, ok)
	assert.Equal(t, "G01", reveal.Trip.Line)
	assert.Equal(t, "1", reveal.Trip.LineCode)
	assert.Equal(t, "A", reveal.Trip.Direction)
	assert.Equal(t, "12345", reveal.Trip.TripID)
	assert.Equal(t, "02001", reveal.Trip.StopCode)
	assert.Equal(t, "09:05", reveal.Trip.ArrivalLabel)
}

func TestParseActionZone(t *testing.T) {
	action, err := ParseAction("zone", "T")
	require.NoError(t, err)
	assert.Equal(t, ToggleZone{Code: "T"}, action)
}

func TestParseActionRejectsMalformed(t *testing.T) {
	cases := []struct{ key, payload string }{
		{"fav", "stop"},
		{"fav", "route+02001"},
		{"route", "trip+too|few|fields"},
		{"route", "warp+02001"},
		{"zone", ""},
		{"unknown", "stop+02001"},
	}
	for _, c := range cases {
		_, err := ParseAction(c.key, c.payload)
		assert.Error(t, err, "key=%s payload=%s", c.key, c.payload)
	}
}

func TestTripRefPackParseRoundTrip(t *testing.T) {
	ref := TripRef{
		Line:         "G01",
		LineCode:     "1",
		Direction:    "A",
		TripID:       "12345",
		StopCode:     "02001",
		ArrivalLabel: "5 MIN",
	}
	parsed, err := ParseTripRef(ref.Pack())
	require.NoError(t, err)
	assert.Equal(t, ref, parsed)
}
