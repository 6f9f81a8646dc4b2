package psn

import (
	"context"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/provider"
)

// StaticSource is the mock-mode game source. It never reaches the
// network; the fallback policy turns it into the curated dataset on
// every request.
type StaticSource struct{}

// NewStaticSource returns the mock-mode source.
func NewStaticSource() *StaticSource { return &StaticSource{} }

// Name implements provider.GameSource.
func (s *StaticSource) Name() string { return "psn-static" }

// Source implements provider.GameSource.
func (s *StaticSource) Source() entity.Source { return entity.SourceMock }

// HasCredentials always reports false so callers fall through to mocks.
func (s *StaticSource) HasCredentials() bool { return false }

// FetchRecent implements provider.GameSource.
func (s *StaticSource) FetchRecent(context.Context, int) ([]entity.GameRecord, error) {
	return nil, provider.ErrNoCredentials
}

// MockRecords implements provider.GameSource.
func (s *StaticSource) MockRecords() []entity.GameRecord { return MockGames() }
