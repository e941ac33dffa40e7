package main

import (
	"log"
	"log/slog"
	"time"

	"github.com/dododevs/tg-tplfvg/core/bootstrap"
	corecmd "github.com/dododevs/tg-tplfvg/core/cmd"
	coreconfig "github.com/dododevs/tg-tplfvg/core/config"
	"github.com/dododevs/tg-tplfvg/core/logger"
	"github.com/dododevs/tg-tplfvg/internal/bot"
	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/session"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

type appConfig struct {
	cfg *coreconfig.Config
}

func (a *appConfig) CoreConfig() *coreconfig.Config {
	return a.cfg
}

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",

		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return &appConfig{cfg: cfg}, nil
		},

		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()

			result, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}

			var store session.Store
			if result.DB != nil {
				store = session.NewPostgresStore(result.DB)
			} else {
				store = session.NewMemoryStore()
			}

			api := transit.NewClient(transit.Config{
				SearchBaseURL:    cfg.Transit.SearchBaseURL,
				RealtimeBaseURL:  cfg.Transit.RealtimeBaseURL,
				LocationRadiusKM: cfg.Transit.LocationRadiusKM,
				RequestTimeout:   time.Duration(cfg.Transit.RequestTimeoutSeconds) * time.Second,
			})

			ref := reference.Empty()
			if path := cfg.Reference.LinesByStopPath; path != "" {
				loaded, err := reference.Load(path)
				if err != nil {
					logger.REF.Warn("reference table unavailable",
						slog.String("event", "ref.load"),
						slog.String("err", err.Error()),
					)
				} else {
					ref = loaded
				}
			}

			return bot.New(cfg, store, api, ref), nil
		},
	})
	if err != nil {
		log.Fatalf("tg-tplfvg: %v", err)
	}
}
