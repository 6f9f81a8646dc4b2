// Package entity contains the core business objects of the project.
package entity

import "time"

// Platform identifies the console family a title was played on.
type Platform string

const (
	PlatformPS5 Platform = "PS5"
	PlatformPS4 Platform = "PS4"
)

// TrophyProgress holds the earned trophy counters for one title.
// All counters are non-negative; absent data is reported as zero.
type TrophyProgress struct {
	Platinum int `json:"platinum"`
	Gold     int `json:"gold"`
	Silver   int `json:"silver"`
	Bronze   int `json:"bronze"`
}

// GameRecord represents one played title as exposed on the wire.
// Records are built fresh for every request and never persisted.
type GameRecord struct {
	ID                 string         `json:"id"`                 // Stable key, provider title ID or slug.
	Name               string         `json:"name"`               // Display name of the title.
	Platform           Platform       `json:"platform"`           // PS5 or PS4.
	Image              string         `json:"image"`              // Cover art URL, possibly empty.
	LastPlayedDate     time.Time      `json:"lastPlayedDate"`     // Timestamp of the most recent session.
	TotalPlayTime      string         `json:"totalPlayTime"`      // Human-readable duration, e.g. "47h" or "3h 12m".
	TrophyProgress     TrophyProgress `json:"trophyProgress"`     // Earned trophies, zero-valued when unknown.
	ExternalURL        string         `json:"external_url"`       // Link to the title's public page.
	IsCurrentlyPlaying bool           `json:"isCurrentlyPlaying"` // True for an active session.
}
