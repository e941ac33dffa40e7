package bot

import (
	"sort"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/dododevs/tg-tplfvg/core/telegram/format"
	tghelpers "github.com/dododevs/tg-tplfvg/core/telegram/helpers"
	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/session"
)

func (a *App) handleStart(c tele.Context) error {
	sess, err := a.session(c)
	if err != nil {
		return err
	}
	return tghelpers.SendMDV2(c, msgWelcomeMD, favoritesKeyboard(sess))
}

func (a *App) handleFavorites(c tele.Context) error {
	sess, err := a.session(c)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(sess.FavStops))
	for code, name := range sess.FavStops {
		if name != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return tghelpers.SendText(c, msgNoFavorites)
	}
	sort.Strings(codes)

	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		lines = append(lines, "👉 /"+code+" *"+format.EscapeMarkdownV2(sess.FavStops[code])+"*")
	}
	return tghelpers.SendMDV2(c, "Fermate preferite:\n\n"+strings.Join(lines, "\n"))
}

func (a *App) handleRecents(c tele.Context) error {
	sess, err := a.session(c)
	if err != nil {
		return err
	}
	if len(sess.RecentStops) == 0 {
		return tghelpers.SendMDV2(c, msgNoRecentsMD)
	}

	lines := make([]string, 0, len(sess.RecentStops))
	for _, r := range sess.RecentStops {
		lines = append(lines, "👉 /"+r.Code+" "+format.EscapeMarkdownV2(r.Name))
	}
	return tghelpers.SendMDV2(c, "Fermate recenti:\n\n"+strings.Join(lines, "\n"))
}

func (a *App) handleZones(c tele.Context) error {
	sess, err := a.session(c)
	if err != nil {
		return err
	}
	options := make([]zoneOption, 0, len(reference.AllZones))
	for _, z := range reference.AllZones {
		options = append(options, zoneOption{Code: z.Code, Name: z.Name})
	}
	return tghelpers.SendMDV2(c,
		msgZonesIntroMD+zoneSelectionLineMD(sess),
		zonesKeyboard(options),
	)
}

func (a *App) handleCancel(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	var cancelled bool
	sess, err := a.store.Update(ctx, c.Sender().ID, func(s *session.Session) error {
		cancelled = s.CancelFavoriteNaming()
		return nil
	})
	if err != nil {
		return err
	}
	if !cancelled {
		return nil
	}
	return tghelpers.SendText(c, msgFavoriteNotSaved,
		&tele.SendOptions{ReplyMarkup: favoritesKeyboard(sess)})
}

func (a *App) session(c tele.Context) (*session.Session, error) {
	return a.store.Get(tghelpers.BuildContext(c), c.Sender().ID)
}

func zoneSelectionLineMD(sess *session.Session) string {
	summary := sess.ZoneSummary(reference.ZoneName)
	if summary == "" {
		return "_Zone attualmente selezionate:_ nessuna"
	}
	return "_Zone attualmente selezionate:_ " + format.EscapeMarkdownV2(summary)
}
