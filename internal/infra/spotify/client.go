// Package spotify consumes the Spotify Web API through an OAuth refresh
// token issued once out of band.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pulse/config"
	"pulse/internal/domain/entity"
	"pulse/internal/domain/provider"
	"pulse/internal/errors"
	"pulse/internal/infra/lastfm"
	"pulse/internal/infra/token"
)

const (
	defaultAuthBaseURL = "https://accounts.spotify.com"
	defaultAPIBaseURL  = "https://api.spotify.com"

	// Fallback window when the token response omits expires_in.
	defaultTokenTTL = 55 * time.Minute

	// Tokens are retired a minute before their reported expiry so a call
	// started near the boundary still completes on a valid token.
	expiryMargin = time.Minute
)

// Client fetches the player's listening history from Spotify.
type Client struct {
	cfg        *config.SpotifyConfig
	authBase   string
	apiBase    string
	httpClient *http.Client
	tokens     *token.Cache[string]
	logger     *slog.Logger
}

// NewClient creates a Spotify client.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	client := &Client{
		cfg:        cfg.Spotify,
		authBase:   strings.TrimRight(cfg.Spotify.AuthBaseURL, "/"),
		apiBase:    strings.TrimRight(cfg.Spotify.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Providers.FetchTimeout},
		logger:     logger.With(slog.String("provider", "spotify")),
	}
	if client.authBase == "" {
		client.authBase = defaultAuthBaseURL
	}
	if client.apiBase == "" {
		client.apiBase = defaultAPIBaseURL
	}

	client.tokens = token.NewCache(client.refreshAccessToken, defaultTokenTTL)

	return client
}

// Name implements provider.TrackSource.
func (c *Client) Name() string { return "spotify" }

// Source implements provider.TrackSource.
func (c *Client) Source() entity.Source { return entity.SourceLive }

// HasCredentials reports whether the full OAuth triple is configured.
func (c *Client) HasCredentials() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != "" && c.cfg.RefreshToken != ""
}

// MockRecords implements provider.TrackSource. Both music providers fall
// back to the same curated listening history.
func (c *Client) MockRecords() []entity.TrackRecord { return lastfm.MockTracks() }

// refreshAccessToken trades the refresh token for a short-lived access
// token. The ttl handed to the cache is Spotify's reported expiry minus
// the safety margin.
func (c *Client) refreshAccessToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.cfg.RefreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authBase+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, errors.Wrap(err, "create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, errors.Wrapf(provider.ErrAuth, "token request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, errors.Wrapf(provider.ErrAuth, "token refresh returned status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, errors.Wrapf(provider.ErrAuth, "decode token response: %v", err)
	}
	if payload.AccessToken == "" {
		return "", 0, errors.Wrap(provider.ErrAuth, "token response carried no access token")
	}

	var ttl time.Duration
	if payload.ExpiresIn > 0 {
		ttl = time.Duration(payload.ExpiresIn)*time.Second - expiryMargin
	}

	c.logger.Debug("refreshed spotify access token")

	return payload.AccessToken, ttl, nil
}

type apiTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// FetchRecent returns up to limit recently played tracks.
func (c *Client) FetchRecent(ctx context.Context, limit int) ([]entity.TrackRecord, error) {
	if !c.HasCredentials() {
		return nil, provider.ErrNoCredentials
	}

	accessToken, err := c.tokens.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/me/player/recently-played?limit=%d", c.apiBase, limit)

	resp, err := c.get(ctx, endpoint, accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(provider.ErrUpstream, "recently played returned status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			Track    apiTrack `json:"track"`
			PlayedAt string   `json:"played_at"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(provider.ErrParse, "decode recently played: %v", err)
	}

	records := make([]entity.TrackRecord, 0, len(payload.Items))
	for _, item := range payload.Items {
		record := c.toRecord(item.Track)

		playedAt, err := time.Parse(time.RFC3339, item.PlayedAt)
		if err != nil {
			c.logger.Warn("played_at timestamp did not parse",
				slog.String("track", item.Track.Name),
				slog.String("playedAt", item.PlayedAt),
			)
			playedAt = time.Now()
		}
		record.PlayedAt = playedAt

		records = append(records, record)
	}

	return records, nil
}

// NowPlaying returns the active track. Spotify answers 204 when the
// player is idle.
func (c *Client) NowPlaying(ctx context.Context) (*entity.TrackRecord, error) {
	if !c.HasCredentials() {
		return nil, provider.ErrNoCredentials
	}

	accessToken, err := c.tokens.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, c.apiBase+"/v1/me/player/currently-playing", accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(provider.ErrUpstream, "currently playing returned status %d", resp.StatusCode)
	}

	var payload struct {
		Item *apiTrack `json:"item"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(provider.ErrParse, "decode currently playing: %v", err)
	}
	if payload.Item == nil {
		return nil, nil
	}

	record := c.toRecord(*payload.Item)
	record.PlayedAt = time.Now()
	record.IsCurrentlyPlaying = true

	return &record, nil
}

func (c *Client) get(ctx context.Context, endpoint, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(provider.ErrUpstream, "request %s: %v", endpoint, err)
	}

	return resp, nil
}

func (c *Client) toRecord(track apiTrack) entity.TrackRecord {
	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}

	var image string
	if len(track.Album.Images) > 0 {
		// Spotify orders images largest first.
		image = track.Album.Images[0].URL
	}

	return entity.TrackRecord{
		ID:          track.ID,
		Name:        track.Name,
		Artist:      strings.Join(artists, ", "),
		Album:       track.Album.Name,
		Image:       image,
		ExternalURL: track.ExternalURLs.Spotify,
	}
}
