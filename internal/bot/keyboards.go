package bot

import (
	"sort"

	tele "gopkg.in/telebot.v4"

	"github.com/dododevs/tg-tplfvg/core/telegram/keyboard"
	"github.com/dododevs/tg-tplfvg/internal/session"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

const favoritesPerRow = 2

// favoritesKeyboard builds the persistent reply keyboard listing the user's
// favorite aliases, two per row. With no named favorites the keyboard is
// removed instead.
func favoritesKeyboard(sess *session.Session) *tele.ReplyMarkup {
	var names []string
	for _, name := range sess.FavStops {
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return keyboard.RemoveKeyboard()
	}
	sort.Strings(names)

	var rows [][]string
	for i := 0; i < len(names); i += favoritesPerRow {
		end := i + favoritesPerRow
		if end > len(names) {
			end = len(names)
		}
		rows = append(rows, names[i:end])
	}
	return keyboard.ReplyButtons(rows...)
}

// nameSuggestionKeyboard offers the stop's address as a one-tap alias while
// naming a favorite.
func nameSuggestionKeyboard(address string) *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{address})
}

func favoriteButton(code string, isFavorite bool) keyboard.InlineBtn {
	text := btnAddFavorite
	if isFavorite {
		text = btnRemoveFavorite
	}
	return keyboard.InlineBtn{
		Text:   text,
		Unique: cbKeyFavorite,
		Data:   "stop+" + code,
	}
}

// monitorKeyboard is the default inline keyboard under a monitor message:
// favorite toggle plus route expansion.
func monitorKeyboard(code string, isFavorite bool) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{favoriteButton(code, isFavorite)},
		[]keyboard.InlineBtn{{
			Text:   btnShowRoute,
			Unique: cbKeyRoute,
			Data:   routeModeStop + "+" + code,
		}},
	)
}

// routeChoicesKeyboard replaces the monitor keyboard with one button per
// monitor pass, each revealing that trip's route, plus a cancel row.
func routeChoicesKeyboard(code string, isFavorite bool, entries []transit.MonitorEntry) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{favoriteButton(code, isFavorite)},
		{{
			Text:   btnRouteCancel,
			Unique: cbKeyRoute,
			Data:   routeModeCancel + "+" + code,
		}},
	}
	for _, e := range entries {
		ref := TripRef{
			Line:         e.Line,
			LineCode:     e.LineCode,
			Direction:    e.Direction,
			TripID:       e.TripID,
			StopCode:     code,
			ArrivalLabel: e.ArrivalTime.Display(),
		}
		label := "Linea " + e.LineCode + " ⇒ " + e.Destination
		if e.Notes != "" {
			label += " [" + e.Notes + "]"
		}
		label += " (" + e.ArrivalTime.Display() + ")"
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   label,
			Unique: cbKeyRoute,
			Data:   routeModeTrip + "+" + ref.Pack(),
		}})
	}
	return keyboard.InlineButtonsRows(rows...)
}

// zonesKeyboard lists every operating area as a toggle button.
func zonesKeyboard(zones []zoneOption) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(zones))
	for _, z := range zones {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   z.Name,
			Unique: cbKeyZone,
			Data:   z.Code,
		}})
	}
	return keyboard.InlineButtonsRows(rows...)
}

type zoneOption struct {
	Code string
	Name string
}
