package main

import (
	"context"
	"log/slog"
	"os"

	"pulse/config"
	"pulse/internal/delivery"
	"pulse/internal/delivery/http"
	"pulse/internal/delivery/http/router/handler"
	"pulse/internal/domain/provider"
	"pulse/internal/infra/lastfm"
	logs "pulse/internal/infra/log"
	"pulse/internal/infra/psn"
	"pulse/internal/infra/psnprofiles"
	"pulse/internal/infra/spotify"
	"pulse/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectProvider(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectProvider() fx.Option {
	return fx.Options(
		fx.Provide(
			newGameSource,
			newTrackSource,
		),
	)
}

// newGameSource picks the games strategy configured for this deployment.
func newGameSource(cfg *config.Config, logger *slog.Logger) provider.GameSource {
	switch cfg.PSN.Mode {
	case config.PSNModeAPI:
		return psn.NewClient(cfg, logger)
	case config.PSNModeScrape:
		return psnprofiles.NewScraper(cfg, logger)
	default:
		return psn.NewStaticSource()
	}
}

// newTrackSource picks the music provider configured for this deployment.
func newTrackSource(cfg *config.Config, logger *slog.Logger) provider.TrackSource {
	if cfg.Music.Provider == config.MusicProviderSpotify {
		return spotify.NewClient(cfg, logger)
	}

	return lastfm.NewClient(cfg, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewGameFeedService,
			impl.NewTrackFeedService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewGameHandler,
			handler.NewTrackHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
