package transit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StopCandidate is a search hit: a stop code plus its display name.
type StopCandidate struct {
	Code string `json:"id"`
	Name string `json:"text"`
}

// StopInfo is the canonical record for a single stop, as returned by the
// realtime service. It doubles as the oracle for "is this raw query a stop
// code": a non-null answer means yes.
type StopInfo struct {
	Address      string  `json:"Address"`
	StopCode     string  `json:"StopCode"`
	Latitude     float64 `json:"Latitude"`
	Longitude    float64 `json:"Longitude"`
	IsUrban      bool    `json:"IsUrban"`
	IsExtraUrban bool    `json:"IsExtraUrban"`
	IsMaritime   bool    `json:"IsMaritime"`
	IsStation    bool    `json:"IsStation"`
}

// ArrivalTime is either a point in time or an opaque upstream label such as
// "5 MIN". The upstream uses ISO-8601 timestamps for scheduled passes and
// free-text labels when live tracking data is available.
type ArrivalTime struct {
	at    time.Time
	label string
}

var arrivalLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
}

// NewArrivalLabel builds an ArrivalTime carrying an opaque label.
func NewArrivalLabel(label string) ArrivalTime {
	return ArrivalTime{label: label}
}

// NewArrivalInstant builds an ArrivalTime carrying a timestamp.
func NewArrivalInstant(t time.Time) ArrivalTime {
	return ArrivalTime{at: t}
}

// UnmarshalJSON attempts timestamp parsing first and falls back to keeping
// the raw value as a label. Callers must handle both representations.
func (a *ArrivalTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("arrival time: %w", err)
	}
	for _, layout := range arrivalLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			*a = ArrivalTime{at: t}
			return nil
		}
	}
	*a = ArrivalTime{label: raw}
	return nil
}

// MarshalJSON restores the upstream representation.
func (a ArrivalTime) MarshalJSON() ([]byte, error) {
	if a.IsInstant() {
		return json.Marshal(a.at.Format(arrivalLayouts[0]))
	}
	return json.Marshal(a.label)
}

// IsInstant reports whether the value carries a parsed timestamp.
func (a ArrivalTime) IsInstant() bool {
	return !a.at.IsZero()
}

// Instant returns the parsed timestamp; valid only when IsInstant is true.
func (a ArrivalTime) Instant() time.Time {
	return a.at
}

// Label returns the opaque label; empty when the value is a timestamp.
func (a ArrivalTime) Label() string {
	return a.label
}

// Display renders a timestamp as HH:MM and a label verbatim.
func (a ArrivalTime) Display() string {
	if a.IsInstant() {
		return a.at.Format("15:04")
	}
	return a.label
}

// IsZero reports whether the value carries neither a timestamp nor a label.
func (a ArrivalTime) IsZero() bool {
	return a.at.IsZero() && a.label == ""
}

// MonitorEntry is one pass shown on a stop's pole monitor.
//
// A pass carries live tracking data if and only if Vehicle is non-empty;
// that presence flag is the sole realtime/scheduled discriminator.
type MonitorEntry struct {
	Line          string      `json:"Line"`
	LineCode      string      `json:"LineCode"`
	LineType      string      `json:"LineType"`
	Destination   string      `json:"Destination"`
	Origin        string      `json:"Departure"`
	Direction     string      `json:"Direction"`
	TripID        string      `json:"Race"`
	ArrivalTime   ArrivalTime `json:"ArrivalTime"`
	DepartureTime ArrivalTime `json:"DepartureTime"`
	NextPasses    string      `json:"NextPasses"`
	Vehicle       string      `json:"Vehicle"`
	Latitude      float64     `json:"Latitude"`
	Longitude     float64     `json:"Longitude"`
	Notes         string      `json:"Note"`
	IsDestination bool        `json:"IsDestination"`
}

// Realtime reports whether the pass is backed by a tracked vehicle.
func (e MonitorEntry) Realtime() bool {
	return strings.TrimSpace(e.Vehicle) != ""
}

// RouteStop is one stop within a trip's full itinerary, in itinerary order.
// Time is an integer of the form HHMM (e.g. 905 for 09:05).
type RouteStop struct {
	Sequence        int    `json:"SequenceNumber"`
	LineSequence    int    `json:"LineSequenceNumber"`
	StopCode        string `json:"StopCode"`
	StopDescription string `json:"StopDescription"`
	StopType        string `json:"StopType"`
	Time            int    `json:"Time"`
}

// Clock renders the packed HHMM integer as a zero-padded HH:MM string.
func (s RouteStop) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.Time/100, s.Time%100)
}
