// Package render builds the MarkdownV2 message blocks sent to users: pole
// monitors, trip routes and stop disambiguation lists, plus the entity-aware
// chunker that keeps them within platform limits.
//
// Free text coming from users or the upstream is escaped per field; the
// renderer's own structural markup (bold and italic markers, command
// slashes) is emitted unescaped. Escaping an assembled message would destroy
// that structure, so it never happens.
package render

import (
	"strings"
	"time"

	"github.com/dododevs/tg-tplfvg/core/telegram/format"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

// Monitor renders a stop's pole monitor: one block per pass with line,
// destination, optional notes, the real-time marker when a vehicle is
// tracked, and the arrival time, closed by a generation timestamp footer.
func Monitor(stopName, stopCode string, entries []transit.MonitorEntry, now time.Time) string {
	var b strings.Builder
	b.WriteString("🚏 /")
	b.WriteString(stopCode)
	if stopName != "" {
		b.WriteString(" *")
		b.WriteString(format.EscapeMarkdownV2(stopName))
		b.WriteString("*")
	}
	b.WriteString("\n\n>Prossimi passaggi \\(in tempo reale se segnalato con ✱\\):\n\n")

	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, monitorEntry(e))
	}
	b.WriteString(strings.Join(blocks, "\n"))

	b.WriteString("\n\n_Aggiornato alle ")
	b.WriteString(now.Format("15:04"))
	b.WriteString(" del ")
	b.WriteString(now.Format("02/01/2006"))
	b.WriteString("_\\.")
	return b.String()
}

func monitorEntry(e transit.MonitorEntry) string {
	var b strings.Builder
	b.WriteString("*Linea ")
	b.WriteString(format.EscapeMarkdownV2(e.LineCode))
	b.WriteString("* ⇒ ")
	b.WriteString(format.EscapeMarkdownV2(e.Destination))
	if e.Notes != "" {
		b.WriteString(" \\[")
		b.WriteString(format.EscapeMarkdownV2(e.Notes))
		b.WriteString("\\]")
	}
	if e.IsDestination {
		b.WriteString(" _\\[ultima fermata di questa corsa\\]_")
	}
	b.WriteString("\n")
	if e.Realtime() {
		b.WriteString("\\(✱\\)  ")
	}
	if e.ArrivalTime.IsInstant() {
		b.WriteString(e.ArrivalTime.Display())
	} else {
		b.WriteString(format.EscapeMarkdownV2(e.ArrivalTime.Label()))
	}
	if e.NextPasses != "" {
		b.WriteString("\n_succ\\._ ")
		b.WriteString(format.EscapeMarkdownV2(e.NextPasses))
	}
	b.WriteString("\n")
	return b.String()
}
