package bot

import (
	"fmt"
	"strings"
)

// Callback unique keys. Together with the payload's leading mode token they
// identify the action behind a button press.
const (
	cbKeyFavorite = "fav"
	cbKeyRoute    = "route"
	cbKeyZone     = "zone"
)

// Payload mode tokens for the route callback.
const (
	routeModeStop   = "stop"
	routeModeTrip   = "trip"
	routeModeCancel = "cancel"
)

// Action is a parsed button press. The concrete type says what the user
// asked for; handlers switch on it once, at the boundary, instead of
// re-splitting payload strings.
type Action interface {
	isAction()
}

// ToggleFavorite flips the favorite status of a stop.
type ToggleFavorite struct {
	Code string
}

// ShowRouteChoices expands the monitor keyboard into per-trip route buttons.
type ShowRouteChoices struct {
	Code string
}

// RevealRoute renders the full route of one trip.
type RevealRoute struct {
	Trip TripRef
}

// CancelRouteChoices collapses the per-trip buttons back to the default
// monitor keyboard.
type CancelRouteChoices struct {
	Code string
}

// ToggleZone flips a zone filter selection.
type ToggleZone struct {
	Code string
}

func (ToggleFavorite) isAction()     {}
func (ShowRouteChoices) isAction()   {}
func (RevealRoute) isAction()        {}
func (CancelRouteChoices) isAction() {}
func (ToggleZone) isAction()         {}

// ParseAction decodes a callback key and payload into an Action. The payload
// grammar is "<mode>+<argument>" for favorite and route keys and a bare zone
// code for the zone key.
func ParseAction(key, payload string) (Action, error) {
	switch key {
	case cbKeyFavorite:
		mode, arg := splitMode(payload)
		if mode != "stop" || arg == "" {
			return nil, fmt.Errorf("actions: bad favorite payload %q", payload)
		}
		return ToggleFavorite{Code: arg}, nil

	case cbKeyRoute:
		mode, arg := splitMode(payload)
		switch mode {
		case routeModeStop:
			if arg == "" {
				return nil, fmt.Errorf("actions: bad route payload %q", payload)
			}
			return ShowRouteChoices{Code: arg}, nil
		case routeModeTrip:
			trip, err := ParseTripRef(arg)
			if err != nil {
				return nil, err
			}
			return RevealRoute{Trip: trip}, nil
		case routeModeCancel:
			if arg == "" {
				return nil, fmt.Errorf("actions: bad route payload %q", payload)
			}
			return CancelRouteChoices{Code: arg}, nil
		default:
			return nil, fmt.Errorf("actions: unknown route mode %q", mode)
		}

	case cbKeyZone:
		if payload == "" {
			return nil, fmt.Errorf("actions: empty zone payload")
		}
		return ToggleZone{Code: payload}, nil
	}
	return nil, fmt.Errorf("actions: unknown key %q", key)
}

func splitMode(payload string) (string, string) {
	parts := strings.SplitN(payload, "+", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
