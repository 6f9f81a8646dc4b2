// Package feedclient is the Go consumer of the aggregation API. It pairs
// a typed HTTP client with a polling feed wrapper so a frontend process
// can keep game and music cards fresh without hand-rolling the loop.
package feedclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GameRecord mirrors one entry of the games feed.
type GameRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Platform       string `json:"platform"`
	Image          string `json:"image"`
	LastPlayedDate string `json:"lastPlayedDate"`
	TotalPlayTime  string `json:"totalPlayTime"`
	TrophyProgress struct {
		Platinum int `json:"platinum"`
		Gold     int `json:"gold"`
		Silver   int `json:"silver"`
		Bronze   int `json:"bronze"`
	} `json:"trophyProgress"`
	ExternalURL        string `json:"external_url"`
	IsCurrentlyPlaying bool   `json:"isCurrentlyPlaying"`
}

// TrackRecord mirrors one entry of the music feed.
type TrackRecord struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Artist             string `json:"artist"`
	Album              string `json:"album"`
	Image              string `json:"image"`
	PlayedAt           string `json:"playedAt"`
	ExternalURL        string `json:"external_url"`
	IsCurrentlyPlaying bool   `json:"isCurrentlyPlaying"`
}

// GamesResult is the decoded games feed envelope.
type GamesResult struct {
	Success bool         `json:"success"`
	Games   []GameRecord `json:"games"`
	Source  string       `json:"source"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
}

// TracksResult is the decoded music feed envelope.
type TracksResult struct {
	Success bool          `json:"success"`
	Tracks  []TrackRecord `json:"tracks"`
	Source  string        `json:"source"`
	Error   string        `json:"error"`
	Message string        `json:"message"`
}

// NowPlayingResult is the decoded now-playing envelope. Track is nil
// when the player is idle.
type NowPlayingResult struct {
	Success bool         `json:"success"`
	Track   *TrackRecord `json:"track"`
	Source  string       `json:"source"`
	Error   string       `json:"error"`
}

// Health is the decoded health envelope.
type Health struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// Client talks to one aggregation server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a feed client for the given server base URL.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

// RecentGames fetches the games feed. Pass limit 0 for the server
// default.
func (c *Client) RecentGames(ctx context.Context, limit int) (*GamesResult, error) {
	var result GamesResult
	if err := c.getJSON(ctx, c.endpoint("/api/ps5/recent-games", limit), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// RecentTracks fetches the music feed. Pass limit 0 for the server
// default.
func (c *Client) RecentTracks(ctx context.Context, limit int) (*TracksResult, error) {
	var result TracksResult
	if err := c.getJSON(ctx, c.endpoint("/api/music/recent-tracks", limit), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// NowPlaying fetches the currently playing track.
func (c *Client) NowPlaying(ctx context.Context) (*NowPlayingResult, error) {
	var result NowPlayingResult
	if err := c.getJSON(ctx, c.baseURL+"/api/music/now-playing", &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CheckHealth fetches the health endpoint.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	var result Health
	if err := c.getJSON(ctx, c.baseURL+"/api/health", &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) endpoint(path string, limit int) string {
	endpoint := c.baseURL + path
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}

	return endpoint
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}

	return nil
}
