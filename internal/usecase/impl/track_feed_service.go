package impl

import (
	"context"
	"log/slog"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/provider"
	"pulse/internal/usecase"
	"pulse/internal/util"
)

type trackFeedService struct {
	source provider.TrackSource
	logger *slog.Logger
}

// NewTrackFeedService creates the music feed service around the active
// track source.
func NewTrackFeedService(source provider.TrackSource, logger *slog.Logger) usecase.TrackFeedUsecase {
	return &trackFeedService{
		source: source,
		logger: logger.With(slog.String("feed", "music")),
	}
}

// RecentTracks fetches live scrobbles and degrades to the mock dataset
// on any provider trouble.
func (s *trackFeedService) RecentTracks(ctx context.Context, limit int) usecase.TrackFeed {
	if !s.source.HasCredentials() {
		return usecase.TrackFeed{
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

		return usecase.TrackFeed{
			Records:    util.Truncate(s.source.MockRecords(), limit),
			Source:     entity.SourceMock,
			Diagnostic: err,
		}
	}

	if len(records) == 0 {
		s.logger.Warn("live fetch returned nothing, serving mock records",
			slog.String("provider", s.source.Name()),
		)

		return usecase.TrackFeed{
			Records:    util.Truncate(s.source.MockRecords(), limit),
			Source:     entity.SourceMock,
			Diagnostic: provider.ErrEmptyResult,
		}
	}

	return usecase.TrackFeed{
		Records: util.Truncate(records, limit),
		Source:  s.source.Source(),
	}
}

// NowPlaying reports the active track. An idle player and a broken
// provider both come back as nil; only the latter carries an error, and
// neither is worth a mock substitute.
func (s *trackFeedService) NowPlaying(ctx context.Context) (*entity.TrackRecord, entity.Source, error) {
	if !s.source.HasCredentials() {
		return nil, entity.SourceMock, provider.ErrNoCredentials
	}

	track, err := s.source.NowPlaying(ctx)
	if err != nil {
		s.logger.Warn("now playing lookup failed",
			slog.String("provider", s.source.Name()),
			slog.Any("error", err),
		)

		return nil, entity.SourceMock, err
	}

	return track, s.source.Source(), nil
}
