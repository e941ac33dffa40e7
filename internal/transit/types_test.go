package transit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrivalTimeUnmarshalInstant(t *testing.T) {
	var a ArrivalTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-12T09:05:00"`), &a))
	assert.True(t, a.IsInstant())
	assert.Equal(t, "09:05", a.Display())
}

func TestArrivalTimeUnmarshalLabel(t *testing.T) {
	var a ArrivalTime
	require.NoError(t, json.Unmarshal([]byte(`"5 MIN"`), &a))
	assert.False(t, a.IsInstant())
	assert.Equal(t, "5 MIN", a.Display())
	assert.Equal(t, "5 MIN", a.Label())
}

func TestArrivalTimeUnmarshalRejectsNonString(t *testing.T) {
	var a ArrivalTime
	assert.Error(t, json.Unmarshal([]byte(`42`), &a))
}

func TestMonitorEntryRealtime(t *testing.T) {
	assert.True(t, MonitorEntry{Vehicle: "310"}.Realtime())
	assert.False(t, MonitorEntry{Vehicle: ""}.Realtime())
	assert.False(t, MonitorEntry{Vehicle: "   "}.Realtime())
}

func TestMonitorEntryDecode(t *testing.T) {
	raw := `{
		"Line": "G01",
		"LineCode": "1",
		"Destination": "VIA SAN MICHELE",
		"Departure": "STAZIONE FS",
		"Direction": "A",
		"Race": "12345",
		"ArrivalTime": "2024-05-12T09:05:00",
		"NextPasses": "09:25 09:45",
		"Vehicle": "",
		"Note": "",
		"IsDestination": false
	}`
	var e MonitorEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, "1", e.LineCode)
	assert.Equal(t, "12345", e.TripID)
	assert.Equal(t, "STAZIONE FS", e.Origin)
	assert.False(t, e.Realtime())
	assert.Equal(t, "09:05", e.ArrivalTime.Display())
}

func TestRouteStopClock(t *testing.T) {
	assert.Equal(t, "09:05", RouteStop{Time: 905}.Clock())
	assert.Equal(t, "14:30", RouteStop{Time: 1430}.Clock())
	assert.Equal(t, "00:07", RouteStop{Time: 7}.Clock())
}
