package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/dododevs/tg-tplfvg/core/logger"
	"github.com/dododevs/tg-tplfvg/core/telegram/callbacks"
	"github.com/dododevs/tg-tplfvg/core/telegram/format"
	tghelpers "github.com/dododevs/tg-tplfvg/core/telegram/helpers"
	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/render"
	"github.com/dododevs/tg-tplfvg/internal/session"
)

// handleFavoriteCallback toggles a stop's favorite status. Adding starts the
// naming flow; removing takes effect immediately. The monitor keyboard under
// the originating message is refreshed either way.
func (a *App) handleFavoriteCallback(c tele.Context) error {
	action, err := a.parseCallbackAction(c, cbKeyFavorite)
	if err != nil {
		return nil
	}
	toggle, ok := action.(ToggleFavorite)
	if !ok {
		return nil
	}
	code := toggle.Code

	ctx := tghelpers.BuildContext(c)
	sess, err := a.session(c)
	if err != nil {
		return err
	}

	info, infoErr := a.api.StopInfo(ctx, code)
	if sess.NamingFavorite() || infoErr != nil || info == nil {
		return nil
	}

	if sess.IsFavorite(code) {
		var removed string
		updated, err := a.store.Update(ctx, sess.UserID, func(s *session.Session) error {
			removed, _ = s.RemoveFavorite(code)
			return nil
		})
		if err != nil {
			return err
		}
		if err := tghelpers.SendMDV2(c,
			"Fermata /"+code+" _"+format.EscapeMarkdownV2(removed)+"_ rimossa dai preferiti\\.",
			favoritesKeyboard(updated),
		); err != nil {
			return err
		}
		return c.Edit(monitorKeyboard(code, false))
	}

	if _, err := a.store.Update(ctx, sess.UserID, func(s *session.Session) error {
		s.BeginFavoriteNaming(code)
		return nil
	}); err != nil {
		return err
	}
	if err := tghelpers.SendMDV2(c,
		"Scrivi un nome per salvare la fermata /"+code+" _"+format.EscapeMarkdownV2(info.Address)+
			"_ nei preferiti o /cancel per annullare\\.",
		nameSuggestionKeyboard(info.Address),
	); err != nil {
		return err
	}
	return c.Edit(monitorKeyboard(code, true))
}

// handleRouteCallback drives the route-reveal flow: expand the monitor
// keyboard into per-trip choices, render a chosen trip's route, or collapse
// back.
func (a *App) handleRouteCallback(c tele.Context) error {
	action, err := a.parseCallbackAction(c, cbKeyRoute)
	if err != nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	sess, err := a.session(c)
	if err != nil {
		return err
	}

	switch act := action.(type) {
	case ShowRouteChoices:
		monitor, err := a.api.Monitor(ctx, act.Code)
		if err != nil || len(monitor) == 0 {
			return nil
		}
		return c.Edit(routeChoicesKeyboard(act.Code, sess.IsFavorite(act.Code), monitor))

	case CancelRouteChoices:
		return c.Edit(monitorKeyboard(act.Code, sess.IsFavorite(act.Code)))

	case RevealRoute:
		trip := act.Trip
		if err := c.Edit(monitorKeyboard(trip.StopCode, sess.IsFavorite(trip.StopCode))); err != nil {
			logger.TG.LogAttrs(ctx, slog.LevelDebug, "keyboard restore failed",
				slog.String("event", "route.keyboard"),
				slog.String("err", err.Error()),
			)
		}

		info, infoErr := a.api.StopInfo(ctx, trip.StopCode)
		route, routeErr := a.api.LineRoute(ctx, trip.Line, trip.Direction, trip.TripID)
		if infoErr != nil || info == nil || routeErr != nil || len(route) == 0 {
			return tghelpers.SendText(c, msgRouteUnavailable)
		}

		text, err := render.Route(trip.LineCode, trip.TripID, info.StopCode, route)
		if err != nil {
			return tghelpers.SendText(c, msgRouteUnavailable)
		}
		for _, chunk := range render.Chunk(text) {
			if err := tghelpers.SendMDV2(c, chunk); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// handleZoneCallback flips one zone filter selection and reports the new
// selection set.
func (a *App) handleZoneCallback(c tele.Context) error {
	action, err := a.parseCallbackAction(c, cbKeyZone)
	if err != nil {
		return nil
	}
	toggle, ok := action.(ToggleZone)
	if !ok || !reference.IsKnownZone(toggle.Code) {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	var added bool
	sess, err := a.store.Update(ctx, c.Sender().ID, func(s *session.Session) error {
		added = s.ToggleZone(toggle.Code)
		return nil
	})
	if err != nil {
		return err
	}

	head := msgZoneRemovedMD
	if added {
		head = msgZoneAddedMD
	}
	return tghelpers.SendMDV2(c, head+zoneSelectionLineMD(sess))
}

func (a *App) parseCallbackAction(c tele.Context, key string) (Action, error) {
	action, err := ParseAction(key, callbacks.CallbackPayload(c))
	if err != nil {
		logger.TG.LogAttrs(tghelpers.BuildContext(c), slog.LevelWarn, "callback payload rejected",
			slog.String("event", "callback.parse"),
			slog.String("cb_key", key),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	return action, nil
}
