package render

import (
	"strings"
	"unicode/utf8"

	"github.com/dododevs/tg-tplfvg/core/telegram/format"
	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

// Verbosity selects how much line detail a disambiguation list carries.
type Verbosity int

const (
	// VerbosityLong annotates each stop with its lines and their descriptions.
	VerbosityLong Verbosity = iota
	// VerbosityShort annotates each stop with a compact list of line codes.
	VerbosityShort
	// VerbosityBare lists stops with no line annotations.
	VerbosityBare
)

// VerbosityTiers is the fallback order tried when building a disambiguation
// message: richest first, dropping detail until one rendering fits.
var VerbosityTiers = []Verbosity{VerbosityLong, VerbosityShort, VerbosityBare}

// Candidates renders a disambiguation list at the given verbosity. Each stop
// is a command token the user can tap, optionally annotated with the lines
// serving it from the reference table.
func Candidates(stops []transit.StopCandidate, tbl *reference.Table, v Verbosity) string {
	lines := make([]string, 0, len(stops))
	for _, stop := range stops {
		entry := "/" + format.EscapeMarkdownV2(stop.Code) + " " + format.EscapeMarkdownV2(stop.Name)
		if v != VerbosityBare {
			entry += stopLinesAnnotation(stop.Code, tbl, v)
		}
		lines = append(lines, entry)
	}
	return "Fermate trovate:\n\n" + strings.Join(lines, "\n")
}

func stopLinesAnnotation(code string, tbl *reference.Table, v Verbosity) string {
	if tbl.Empty() {
		return ""
	}
	entry, ok := tbl.Lookup(code)
	if !ok || len(entry.Lines) == 0 {
		return "\n_Nessuna linea trovata_\n"
	}

	if v == VerbosityLong {
		parts := make([]string, 0, len(entry.Lines))
		for _, l := range entry.Lines {
			parts = append(parts, "*"+format.EscapeMarkdownV2(l.Code)+"* • "+format.EscapeMarkdownV2(l.Description))
		}
		return "\n" + strings.Join(parts, "\n") + "\n"
	}

	parts := make([]string, 0, len(entry.Lines))
	for _, l := range entry.Lines {
		parts = append(parts, "*"+format.EscapeMarkdownV2(l.Code)+"*")
	}
	return "\n_Linee:_ " + strings.Join(parts, " \\- ") + "\n"
}

// CandidateMessages builds the chunked message sequence for a disambiguation
// list, trying each verbosity tier in order and keeping the first whose full
// rendering fits the platform text limit. It returns false when even the
// bare tier overflows, in which case the caller should ask the user to
// narrow the search.
func CandidateMessages(stops []transit.StopCandidate, tbl *reference.Table) ([]string, bool) {
	for _, tier := range VerbosityTiers {
		msg := Candidates(stops, tbl, tier)
		if utf8.RuneCountInString(msg) <= MaxTextLength {
			return Chunk(msg), true
		}
	}
	return nil, false
}
