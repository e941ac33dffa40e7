package bot

import (
	"context"
	"errors"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/dododevs/tg-tplfvg/core/telegram/format"
	tghelpers "github.com/dododevs/tg-tplfvg/core/telegram/helpers"
	"github.com/dododevs/tg-tplfvg/core/telegram/keyboard"
	"github.com/dododevs/tg-tplfvg/internal/render"
	"github.com/dododevs/tg-tplfvg/internal/resolver"
	"github.com/dododevs/tg-tplfvg/internal/session"
)

// sessionFSM routes text updates into the favorite-naming flow while the
// persisted session says one is in progress.
type sessionFSM struct {
	app *App
}

func (f sessionFSM) InProgress(userID int64) bool {
	sess, err := f.app.store.Get(context.Background(), userID)
	return err == nil && sess.NamingFavorite()
}

func (f sessionFSM) ManagerHandler(c tele.Context) error {
	return f.app.handleFavoriteName(c)
}

// handleFavoriteName consumes the alias for pending favorites. A rejected
// alias re-prompts and leaves the naming state active.
func (a *App) handleFavoriteName(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	name := c.Text()

	sess, err := a.store.Update(ctx, c.Sender().ID, func(s *session.Session) error {
		return s.CommitFavoriteName(name)
	})
	if errors.Is(err, session.ErrNameRejected) {
		return tghelpers.SendText(c, msgFavoriteNameRules)
	}
	if err != nil {
		return err
	}
	return tghelpers.SendMDV2(c,
		"Salvata tra i preferiti con nome *"+format.EscapeMarkdownV2(name)+"*\\.",
		favoritesKeyboard(sess),
	)
}

// handleQuery is the text fallback: everything that is not a command or a
// naming reply is a stop query.
func (a *App) handleQuery(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sess, err := a.session(c)
	if err != nil {
		return err
	}
	res := a.resolver.ResolveText(ctx, sess, c.Text())
	return a.sendResolution(c, sess, res)
}

// handleLocation resolves stops around a static location. Live locations
// are refused with a clarifying message.
func (a *App) handleLocation(c tele.Context) error {
	loc := c.Message().Location
	if loc == nil {
		return nil
	}
	if loc.LivePeriod > 0 {
		return tghelpers.SendText(c, msgLiveLocation)
	}

	ctx := tghelpers.BuildContext(c)
	sess, err := a.session(c)
	if err != nil {
		return err
	}
	res := a.resolver.ResolveLocation(ctx, sess, float64(loc.Lat), float64(loc.Lng))
	return a.sendResolution(c, sess, res)
}

func (a *App) sendResolution(c tele.Context, sess *session.Session, res resolver.Resolution) error {
	switch res.Kind {
	case resolver.KindDirectHit:
		text := render.Monitor(res.StopName, res.StopCode, res.Monitor, time.Now())
		markup := monitorKeyboard(res.StopCode, sess.IsFavorite(res.StopCode))
		chunks := render.Chunk(text)
		for i, chunk := range chunks {
			// The keyboard goes on the final piece only.
			var rm *tele.ReplyMarkup
			if i == len(chunks)-1 {
				rm = markup
			}
			if err := tghelpers.SendMDV2(c, chunk, rm); err != nil {
				return err
			}
		}
		return nil

	case resolver.KindNoPassages:
		return tghelpers.SendText(c, msgNoPassages,
			&tele.SendOptions{ReplyMarkup: favoritesKeyboard(sess)})

	case resolver.KindCandidates:
		msgs, ok := render.CandidateMessages(res.Candidates, a.ref)
		if !ok {
			return tghelpers.SendText(c, msgTooManyResults)
		}
		for _, msg := range msgs {
			if err := tghelpers.SendMDV2(c, msg, keyboard.RemoveKeyboard()); err != nil {
				return err
			}
		}
		return nil

	case resolver.KindUnavailable:
		return tghelpers.SendText(c, msgSearchUnavailable)

	default:
		return tghelpers.SendText(c, msgNoStopFound,
			&tele.SendOptions{ReplyMarkup: favoritesKeyboard(sess)})
	}
}
