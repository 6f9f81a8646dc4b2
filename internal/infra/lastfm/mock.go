package lastfm

import (
	"time"

	"pulse/internal/domain/entity"
)

// MockTracks returns the fallback listening history shown when no music
// provider is reachable. Timestamps are relative so the list always
// reads as fresh.
func MockTracks() []entity.TrackRecord {
	now := time.Now()

	return []entity.TrackRecord{
		{
			ID:          "mock-1",
			Name:        "Live Session",
			Artist:      "Sticks",
			Album:       "Acoustic Sessions",
			PlayedAt:    now,
			ExternalURL: "https://www.last.fm",
		},
		{
			ID:          "mock-2",
			Name:        "Nonstop",
			Artist:      "Borgore",
			Album:       "Electronic Madness",
			PlayedAt:    now.Add(-1 * time.Hour),
			ExternalURL: "https://www.last.fm",
		},
		{
			ID:          "mock-3",
			Name:        "Circles",
			Artist:      "Post Malone",
			Album:       "Hollywood's Bleeding",
			PlayedAt:    now.Add(-2 * time.Hour),
			ExternalURL: "https://www.last.fm",
		},
		{
			ID:          "mock-4",
			Name:        "EARFQUAKE",
			Artist:      "Tyler, The Creator",
			Album:       "IGOR",
			PlayedAt:    now.Add(-3 * time.Hour),
			ExternalURL: "https://www.last.fm",
		},
		{
			ID:          "mock-5",
			Name:        "Oude Maasweg",
			Artist:      "Fleddy Melculy",
			Album:       "Rebellious",
			PlayedAt:    now.Add(-4 * time.Hour),
			ExternalURL: "https://www.last.fm",
		},
	}
}
