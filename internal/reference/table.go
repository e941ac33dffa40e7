package reference

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dododevs/tg-tplfvg/core/logger"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

// Line is one guideline serving a stop.
type Line struct {
	Code        string `json:"guideline_public_code"`
	Description string `json:"public_description"`
}

// StopLines holds the lines calling at a stop plus the zone groups the stop
// belongs to. Zone group values end with the single-letter zone code.
type StopLines struct {
	Lines []Line   `json:"lines"`
	Zones []string `json:"zones"`
}

// Table is the offline stop-to-lines mapping produced by the scraping job.
// It backs line annotations in disambiguation lists and zone filtering; an
// empty table disables both, it never fails a lookup path.
type Table struct {
	byStop map[string]StopLines
}

// Empty returns a table with no entries.
func Empty() *Table {
	return &Table{byStop: map[string]StopLines{}}
}

// Load reads the lines-by-stop JSON file. Duplicate lines for a stop are
// collapsed by public code, keeping first occurrence order.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reference: read %s: %w", path, err)
	}
	var raw map[string]StopLines
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("reference: parse %s: %w", path, err)
	}

	byStop := make(map[string]StopLines, len(raw))
	for code, entry := range raw {
		byStop[code] = StopLines{
			Lines: dedupeLines(entry.Lines),
			Zones: entry.Zones,
		}
	}
	if logger.REF != nil {
		logger.REF.Info("reference table loaded",
			slog.String("event", "ref.load"),
			slog.Int("stops", len(byStop)),
		)
	}
	return &Table{byStop: byStop}, nil
}

func dedupeLines(lines []Line) []Line {
	seen := make(map[string]struct{}, len(lines))
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.Code]; ok {
			continue
		}
		seen[l.Code] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Empty reports whether the table holds no entries.
func (t *Table) Empty() bool {
	return t == nil || len(t.byStop) == 0
}

// Lookup returns the lines record for a stop code.
func (t *Table) Lookup(code string) (StopLines, bool) {
	if t == nil {
		return StopLines{}, false
	}
	entry, ok := t.byStop[code]
	return entry, ok
}

// FilterByZones keeps candidates that belong to at least one of the selected
// zones. Membership compares the final letter of each of the stop's zone
// groups against the selected codes. With no selected zones or an empty
// table the filter is a no-op; stops absent from the table are kept, since
// their zones cannot be determined.
func (t *Table) FilterByZones(stops []transit.StopCandidate, zones []string) []transit.StopCandidate {
	if len(zones) == 0 || t.Empty() {
		return stops
	}
	selected := make(map[string]struct{}, len(zones))
	for _, z := range zones {
		selected[z] = struct{}{}
	}

	out := make([]transit.StopCandidate, 0, len(stops))
	for _, stop := range stops {
		entry, ok := t.byStop[stop.Code]
		if !ok {
			out = append(out, stop)
			continue
		}
		for _, group := range entry.Zones {
			if group == "" {
				continue
			}
			last := string([]rune(group)[len([]rune(group))-1])
			if _, match := selected[last]; match {
				out = append(out, stop)
				break
			}
		}
	}
	return out
}
