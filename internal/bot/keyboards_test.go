package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dododevs/tg-tplfvg/internal/session"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

func TestFavoritesKeyboardTwoPerRow(t *testing.T) {
	sess := session.New(1)
	sess.FavStops = map[string]string{
		"02001": "casa",
		"03001": "lavoro",
		"04001": "palestra",
	}
	markup := favoritesKeyboard(sess)
	require.Len(t, markup.ReplyKeyboard, 2)
	assert.Len(t, markup.ReplyKeyboard[0], 2)
	assert.Len(t, markup.ReplyKeyboard[1], 1)
	assert.True(t, markup.ResizeKeyboard)
}

func TestFavoritesKeyboardSkipsPendingAndRemovesWhenEmpty(t *testing.T) {
	sess := session.New(1)
	sess.FavStops = map[string]string{"02001": ""}
	markup := favoritesKeyboard(sess)
	assert.True(t, markup.RemoveKeyboard)
}

func TestMonitorKeyboardToggleLabel(t *testing.T) {
	markup := monitorKeyboard("02001", false)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, btnAddFavorite, markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, btnShowRoute, markup.InlineKeyboard[1][0].Text)

	markup = monitorKeyboard("02001", true)
	assert.Equal(t, btnRemoveFavorite, markup.InlineKeyboard[0][0].Text)
}

func TestRouteChoicesKeyboardRows(t *testing.T) {
	entries := []transit.MonitorEntry{
		{Line: "G01", LineCode: "1", Destination: "ROIANO", TripID: "9",
			ArrivalTime: transit.NewArrivalLabel("5 MIN")},
		{Line: "G02", LineCode: "24", Destination: "VIA COMMERCIALE", TripID: "10",
			Notes: "FERIALE", ArrivalTime: transit.NewArrivalLabel("09:25")},
	}
	markup := routeChoicesKeyboard("02001", false, entries)

	// Favorite toggle, cancel row, one row per pass.
	require.Len(t, markup.InlineKeyboard, 4)
	assert.Equal(t, btnRouteCancel, markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, "Linea 1 ⇒ ROIANO (5 MIN)", markup.InlineKeyboard[2][0].Text)
	assert.Equal(t, "Linea 24 ⇒ VIA COMMERCIALE [FERIALE] (09:25)", markup.InlineKeyboard[3][0].Text)
	assert.Contains(t, markup.InlineKeyboard[2][0].Data, "trip+G01|1||9|02001|5 MIN")
}

func TestZonesKeyboardOnePerRow(t *testing.T) {
	markup := zonesKeyboard([]zoneOption{
		{Code: "T", Name: "Trieste"},
		{Code: "U", Name: "Udine"},
	})
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "Trieste", markup.InlineKeyboard[0][0].Text)
}
