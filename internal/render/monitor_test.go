package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dododevs/tg-tplfvg/internal/transit"
)

var monitorNow = time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)

func TestMonitorHeaderAndFooter(t *testing.T) {
	out := Monitor("P.ZZA OBERDAN", "02001", nil, monitorNow)

	assert.Contains(t, out, "🚏 /02001 *P\\.ZZA OBERDAN*")
	assert.Contains(t, out, ">Prossimi passaggi \\(in tempo reale se segnalato con ✱\\):")
	assert.Contains(t, out, "_Aggiornato alle 09:00 del 12/05/2024_\\.")
}

func TestMonitorOmitsEmptyName(t *testing.T) {
	out := Monitor("", "02001", nil, monitorNow)
	assert.Contains(t, out, "🚏 /02001\n")
	assert.NotContains(t, out, "**")
}

func TestMonitorScheduledEntry(t *testing.T) {
	entry := transit.MonitorEntry{
		LineCode:    "24",
		Destination: "VIA COMMERCIALE",
		ArrivalTime: transit.NewArrivalInstant(time.Date(2024, 5, 12, 9, 5, 0, 0, time.UTC)),
	}
	out := Monitor("X", "02001", []transit.MonitorEntry{entry}, monitorNow)

	assert.Contains(t, out, "*Linea 24* ⇒ VIA COMMERCIALE\n09:05")
	assert.NotContains(t, out, "✱\\)  09:05")
}

func TestMonitorRealtimeEntry(t *testing.T) {
	entry := transit.MonitorEntry{
		LineCode:    "1",
		Destination: "ROIANO",
		Vehicle:     "310",
		ArrivalTime: transit.NewArrivalLabel("5 MIN"),
		NextPasses:  "09:25 09:45",
	}
	out := Monitor("X", "02001", []transit.MonitorEntry{entry}, monitorNow)

	assert.Contains(t, out, "\\(✱\\)  5 MIN")
	assert.Contains(t, out, "_succ\\._ 09:25 09:45")
}

func TestMonitorNotesAndLastStop(t *testing.T) {
	entry := transit.MonitorEntry{
		LineCode:      "1",
		Destination:   "ROIANO",
		Notes:         "FERIALE",
		IsDestination: true,
		ArrivalTime:   transit.NewArrivalLabel("IN ARRIVO"),
	}
	out := Monitor("X", "02001", []transit.MonitorEntry{entry}, monitorNow)

	assert.Contains(t, out, " \\[FERIALE\\]")
	assert.Contains(t, out, "_\\[ultima fermata di questa corsa\\]_")
}
