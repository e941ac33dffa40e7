package bot

import (
	"fmt"
	"strings"
)

const tripRefSep = "|"

// TripRef identifies one trip shown on a monitor, packed into a callback
// payload and split back when the button fires. StopCode is the monitor's
// stop, used as the reference position when rendering the route.
type TripRef struct {
	Line         string
	LineCode     string
	Direction    string
	TripID       string
	StopCode     string
	ArrivalLabel string
}

// Pack serializes the reference for a callback payload.
func (t TripRef) Pack() string {
	return strings.Join([]string{
		t.Line, t.LineCode, t.Direction, t.TripID, t.StopCode, t.ArrivalLabel,
	}, tripRefSep)
}

// ParseTripRef decodes a packed trip reference.
func ParseTripRef(raw string) (TripRef, error) {
	parts := strings.Split(raw, tripRefSep)
	if len(parts) != 6 {
		return TripRef{}, fmt.Errorf("trip ref: expected 6 fields, got %d", len(parts))
	}
	return TripRef{
		Line:         parts[0],
		LineCode:     parts[1],
		Direction:    parts[2],
		TripID:       parts[3],
		StopCode:     parts[4],
		ArrivalLabel: parts[5],
	}, nil
}
