// Package lastfm consumes the Last.fm scrobble API. Scrobbles are public
// data behind a plain API key, which makes this the most reliable music
// source when both providers are configured.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pulse/config"
	"pulse/internal/domain/entity"
	"pulse/internal/domain/provider"
	"pulse/internal/errors"
)

const defaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// Client fetches recent scrobbles for one Last.fm user.
type Client struct {
	cfg        *config.LastFMConfig
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates a Last.fm client.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	baseURL := cfg.LastFM.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		cfg:        cfg.LastFM,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Providers.FetchTimeout},
		logger:     logger.With(slog.String("provider", "lastfm")),
		now:        time.Now,
	}
}

// Name implements provider.TrackSource.
func (c *Client) Name() string { return "lastfm" }

// Source implements provider.TrackSource.
func (c *Client) Source() entity.Source { return entity.SourceLive }

// HasCredentials reports whether both the API key and a username are set.
func (c *Client) HasCredentials() bool {
	return c.cfg.APIKey != "" && c.cfg.Username != ""
}

// MockRecords implements provider.TrackSource.
func (c *Client) MockRecords() []entity.TrackRecord { return MockTracks() }

// recentTracksResponse mirrors the user.getrecenttracks payload. Last.fm
// wraps everything in one envelope and marks the in-progress scrobble
// with a nowplaying attribute instead of a timestamp.
type recentTracksResponse struct {
	RecentTracks struct {
		Track []apiTrack `json:"track"`
	} `json:"recenttracks"`
}

type apiTrack struct {
	Name   string `json:"name"`
	Artist struct {
		Text string `json:"#text"`
	} `json:"artist"`
	Album struct {
		Text string `json:"#text"`
	} `json:"album"`
	Image []struct {
		Text string `json:"#text"`
		Size string `json:"size"`
	} `json:"image"`
	URL  string `json:"url"`
	Date *struct {
		UTS string `json:"uts"`
	} `json:"date"`
	Attr *struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
}

// FetchRecent returns up to limit recent scrobbles, most recent first.
func (c *Client) FetchRecent(ctx context.Context, limit int) ([]entity.TrackRecord, error) {
	if !c.HasCredentials() {
		return nil, provider.ErrNoCredentials
	}

	query := url.Values{
		"method":  {"user.getrecenttracks"},
		"user":    {c.cfg.Username},
		"api_key": {c.cfg.APIKey},
		"format":  {"json"},
		"limit":   {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create recent tracks request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(provider.ErrUpstream, "recent tracks request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(provider.ErrUpstream, "recent tracks returned status %d", resp.StatusCode)
	}

	var payload recentTracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(provider.ErrParse, "decode recent tracks: %v", err)
	}

	records := make([]entity.TrackRecord, 0, len(payload.RecentTracks.Track))
	for index, track := range payload.RecentTracks.Track {
		if len(records) == limit {
			// Last.fm prepends the nowplaying entry on top of the requested
			// page, so the payload can run one over.
			break
		}
		records = append(records, c.toRecord(track, index))
	}

	return records, nil
}

// NowPlaying reports the current scrobble. Last.fm has no dedicated
// endpoint; the head of the recent list carries the nowplaying flag.
func (c *Client) NowPlaying(ctx context.Context) (*entity.TrackRecord, error) {
	records, err := c.FetchRecent(ctx, 1)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 || !records[0].IsCurrentlyPlaying {
		return nil, nil
	}

	return &records[0], nil
}

func (c *Client) toRecord(track apiTrack, index int) entity.TrackRecord {
	album := track.Album.Text
	if album == "" {
		album = "Unknown Album"
	}

	playedAt := c.now()
	if track.Date != nil {
		uts, err := strconv.ParseInt(track.Date.UTS, 10, 64)
		if err != nil {
			c.logger.Warn("scrobble timestamp did not parse",
				slog.String("track", track.Name),
				slog.String("uts", track.Date.UTS),
			)
		} else {
			playedAt = time.Unix(uts, 0).UTC()
		}
	}

	return entity.TrackRecord{
		ID:                 fmt.Sprintf("%s-%s-%d", slugify(track.Name), slugify(track.Artist.Text), index),
		Name:               track.Name,
		Artist:             track.Artist.Text,
		Album:              album,
		Image:              pickImage(track),
		PlayedAt:           playedAt,
		ExternalURL:        track.URL,
		IsCurrentlyPlaying: track.Attr != nil && track.Attr.NowPlaying == "true",
	}
}

// pickImage prefers the large rendition and falls back through medium to
// whatever the payload offers.
func pickImage(track apiTrack) string {
	for _, size := range []string{"large", "medium"} {
		for _, image := range track.Image {
			if image.Size == size && image.Text != "" {
				return image.Text
			}
		}
	}

	for _, image := range track.Image {
		if image.Text != "" {
			return image.Text
		}
	}

	return ""
}

func slugify(value string) string {
	return strings.ReplaceAll(strings.ToLower(value), " ", "-")
}
