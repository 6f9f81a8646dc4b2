package entity

import "time"

// TrackRecord represents one listened-to song.
// Live providers return tracks most-recent-first; mock data only follows
// construction order and callers must not rely on it.
type TrackRecord struct {
	ID                 string    `json:"id"`                 // Stable key, provider track ID or name-artist slug.
	Name               string    `json:"name"`               // Song title.
	Artist             string    `json:"artist"`             // Joined artist names.
	Album              string    `json:"album"`              // Album title, "Unknown Album" when absent.
	Image              string    `json:"image"`              // Album art URL, possibly a placeholder.
	PlayedAt           time.Time `json:"playedAt"`           // Scrobble timestamp.
	ExternalURL        string    `json:"external_url"`       // Link to the track's public page.
	IsCurrentlyPlaying bool      `json:"isCurrentlyPlaying"` // True while the track is playing.
}
