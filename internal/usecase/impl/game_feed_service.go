// Package impl provides the use case service implementations. The feed
// services own the one deliberate policy of this service: a feed request
// never fails, it degrades to curated mock data instead.
package impl

import (
	"context"
	"log/slog"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/provider"
	"pulse/internal/usecase"
	"pulse/internal/util"
)

type gameFeedService struct {
	source provider.GameSource
	logger *slog.Logger
}

// NewGameFeedService creates the games feed service around the active
// game source.
func NewGameFeedService(source provider.GameSource, logger *slog.Logger) usecase.GameFeedUsecase {
	return &gameFeedService{
		source: source,
		logger: logger.With(slog.String("feed", "games")),
	}
}

// RecentGames fetches live records and falls back to the provider's mock
// dataset on missing credentials, fetch failure, or an empty result.
func (s *gameFeedService) RecentGames(ctx context.Context, limit int) usecase.GameFeed {
	if !s.source.HasCredentials() {
		return usecase.GameFeed{
			Records:    util.Truncate(s.source.MockRecords(), limit),
			Source:     entity.SourceMock,
			Diagnostic: provider.ErrNoCredentials,
		}
	}

	records, err := s.source.FetchRecent(ctx, limit)
	if err != nil {
		s.logger.Warn("live fetch failed, serving mock records",
			slog.String("provider", s.source.Name()),
			slog.Any("error", err),
		)

		return usecase.GameFeed{
			Records:    util.Truncate(s.source.MockRecords(), limit),
			Source:     entity.SourceMock,
			Diagnostic: err,
		}
	}

	if len(records) == 0 {
		s.logger.Warn("live fetch returned nothing, serving mock records",
			slog.String("provider", s.source.Name()),
		)

		return usecase.GameFeed{
			Records:    util.Truncate(s.source.MockRecords(), limit),
			Source:     entity.SourceMock,
			Diagnostic: provider.ErrEmptyResult,
		}
	}

	return usecase.GameFeed{
		Records: util.Truncate(records, limit),
		Source:  s.source.Source(),
	}
}
