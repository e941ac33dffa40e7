// Package bot wires the transit bot: command handlers, the free-text query
// pipeline, inline keyboard callbacks and the favorite-naming conversation,
// all on top of the shared telegram runtime.
package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/dododevs/tg-tplfvg/core/config"
	coretelegram "github.com/dododevs/tg-tplfvg/core/telegram"
	"github.com/dododevs/tg-tplfvg/core/telegram/commands"
	"github.com/dododevs/tg-tplfvg/core/telegram/router"
	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/resolver"
	"github.com/dododevs/tg-tplfvg/internal/session"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

// TransitAPI is the full upstream surface the bot needs: the resolver's
// slice plus trip timetable retrieval for route rendering.
type TransitAPI interface {
	resolver.API
	LineRoute(ctx context.Context, line, direction, tripID string) ([]transit.RouteStop, error)
}

// App bundles the bot's dependencies and builds the telegram run options.
type App struct {
	cfg      *coreconfig.Config
	store    session.Store
	api      TransitAPI
	ref      *reference.Table
	resolver *resolver.Resolver
}

// New constructs the bot application. A nil reference table disables line
// annotations and zone filtering but nothing else.
func New(cfg *coreconfig.Config, store session.Store, api TransitAPI, ref *reference.Table) *App {
	if ref == nil {
		ref = reference.Empty()
	}
	return &App{
		cfg:      cfg,
		store:    store,
		api:      api,
		ref:      ref,
		resolver: resolver.New(api, store, ref),
	}
}

// TelegramRunOptions assembles registry, routes and middlewares for the
// shared bot runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	if a.cfg == nil {
		return coretelegram.RunOptions{}, fmt.Errorf("bot: nil config")
	}

	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Presentazione e istruzioni d'uso",
	})
	reg.RegisterCommand("/favorites", commands.Command{
		Handler:     a.handleFavorites,
		Description: "Elenca le fermate preferite",
	})
	reg.RegisterCommand("/recents", commands.Command{
		Handler:     a.handleRecents,
		Description: "Elenca le fermate cercate di recente",
	})
	reg.RegisterCommand("/zones", commands.Command{
		Handler:     a.handleZones,
		Description: "Filtra le ricerche per zona",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Annulla l'operazione in corso",
		Hidden:      true,
	})

	if err := reg.RegisterCallback(cbKeyFavorite, a.handleFavoriteCallback); err != nil {
		return coretelegram.RunOptions{}, err
	}
	if err := reg.RegisterCallback(cbKeyRoute, a.handleRouteCallback); err != nil {
		return coretelegram.RunOptions{}, err
	}
	if err := reg.RegisterCallback(cbKeyZone, a.handleZoneCallback); err != nil {
		return coretelegram.RunOptions{}, err
	}
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{})
	})
	reg.SetTextFallback(a.handleQuery)

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.TextRoutes(sessionFSM{app: a}, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, coretelegram.Route{
		Endpoint: tele.OnLocation,
		Handler:  a.handleLocation,
	})

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}
