package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dododevs/tg-tplfvg/internal/transit"
)

func sampleRoute() []transit.RouteStop {
	return []transit.RouteStop{
		{StopCode: "01001", StopDescription: "STAZIONE FS", Time: 900},
		{StopCode: "02001", StopDescription: "P.ZZA OBERDAN", Time: 905},
		{StopCode: "03001", StopDescription: "VIA ROSSETTI", Time: 912},
		{StopCode: "04001", StopDescription: "CAPOLINEA", Time: 920},
	}
}

func TestRouteGlyphsAroundReference(t *testing.T) {
	out, err := Route("1", "12345", "03001", sampleRoute())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Contains(t, out, "🚍 *Linea 1 • Corsa 12345*")
	assert.Contains(t, out, ">Percorso completo corsa")

	// First stop, before the reference: passed rail.
	assert.Equal(t, "┏ STAZIONE FS", lines[4])
	assert.Contains(t, out, "┋ P\\.ZZA OBERDAN")
	// Reference stop is bold with the origin glyph.
	assert.Contains(t, out, "┏  *VIA ROSSETTI*")
	assert.Contains(t, out, "┗ CAPOLINEA")
}

func TestRouteTimesAndCommands(t *testing.T) {
	out, err := Route("1", "12345", "02001", sampleRoute())
	require.NoError(t, err)

	assert.Contains(t, out, "/02001")
	assert.Contains(t, out, "09:05")
	assert.Contains(t, out, "09:20")
}

func TestRouteReferenceStopMissing(t *testing.T) {
	_, err := Route("1", "12345", "99999", sampleRoute())
	assert.ErrorIs(t, err, ErrStopNotInRoute)
}
