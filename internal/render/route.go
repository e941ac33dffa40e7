package render

import (
	"errors"
	"strings"

	"github.com/dododevs/tg-tplfvg/core/telegram/format"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

// ErrStopNotInRoute means the reference stop does not appear in the trip's
// stop sequence, so there is no position to render the route around.
var ErrStopNotInRoute = errors.New("render: reference stop not in route")

// Route renders the full stop sequence of a trip top to bottom. Stops before
// the reference position use a "passed" dashed rail, stops after use a solid
// rail, and the reference stop itself is bold. Each stop shows its name, its
// code as a re-selectable command token and its scheduled time.
func Route(lineCode, tripID, refStopCode string, route []transit.RouteStop) (string, error) {
	ref := -1
	for i, stop := range route {
		if stop.StopCode == refStopCode {
			ref = i
			break
		}
	}
	if ref < 0 {
		return "", ErrStopNotInRoute
	}

	var b strings.Builder
	b.WriteString("🚍 *Linea ")
	b.WriteString(format.EscapeMarkdownV2(lineCode))
	b.WriteString(" • Corsa ")
	b.WriteString(format.EscapeMarkdownV2(tripID))
	b.WriteString("*\n\n>Percorso completo corsa\n\n")

	lines := make([]string, 0, len(route))
	for i, stop := range route {
		lines = append(lines, routeStop(stop, i, ref, len(route)))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String(), nil
}

func routeStop(stop transit.RouteStop, i, ref, total int) string {
	last := i == total-1

	var head string
	switch {
	case i == 0, i == ref:
		head = "┏ "
	case last:
		head = "┗ "
	case i > ref:
		head = "┃ "
	default:
		head = "┋ "
	}

	// Rail drawn under this stop's name and code lines.
	rail := "┋"
	if i >= ref {
		rail = "┃"
	}
	if last {
		rail = "   "
	}

	var b strings.Builder
	b.WriteString(head)
	if i == ref {
		b.WriteString(" *")
		b.WriteString(format.EscapeMarkdownV2(stop.StopDescription))
		b.WriteString("*")
	} else {
		b.WriteString(format.EscapeMarkdownV2(stop.StopDescription))
	}
	b.WriteString("\n")
	b.WriteString(rail)
	b.WriteString(" /")
	b.WriteString(stop.StopCode)
	b.WriteString("\n")
	b.WriteString(rail)
	b.WriteString(" ")
	b.WriteString(stop.Clock())
	if !last {
		b.WriteString("\n")
		b.WriteString(rail)
	}
	return b.String()
}
