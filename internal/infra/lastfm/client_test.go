package lastfm

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/config"
	"pulse/internal/domain/provider"
)

const recentTracksBody = `{"recenttracks":{"track":[
	{"name":"Oude Maasweg","artist":{"#text":"Fleddy Melculy"},"album":{"#text":""},
	 "image":[{"#text":"https://img.example/s.png","size":"small"},
	          {"#text":"https://img.example/m.png","size":"medium"}],
	 "url":"https://www.last.fm/music/track1",
	 "@attr":{"nowplaying":"true"}},
	{"name":"Circles","artist":{"#text":"Post Malone"},"album":{"#text":"Hollywood's Bleeding"},
	 "image":[{"#text":"https://img.example/circles-m.png","size":"medium"},
	          {"#text":"https://img.example/circles-l.png","size":"large"}],
	 "url":"https://www.last.fm/music/track2",
	 "date":{"uts":"1756615200"}}
]}}`

func newTestClient(t *testing.T, baseURL, apiKey, username string) *Client {
	t.Helper()

	cfg := &config.Config{
		LastFM: &config.LastFMConfig{
			APIKey:   apiKey,
			Username: username,
			BaseURL:  baseURL,
		},
	}
	cfg.Providers.FetchTimeout = 5 * time.Second

	return NewClient(cfg, slog.New(slog.DiscardHandler))
}

func newAPIServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user.getrecenttracks", r.URL.Query().Get("method"))
		assert.Equal(t, "test-user", r.URL.Query().Get("user"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestClientFetchRecent(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t, recentTracksBody, http.StatusOK)
	client := newTestClient(t, server.URL, "test-key", "test-user")

	records, err := client.FetchRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	playing := records[0]
	assert.Equal(t, "Oude Maasweg", playing.Name)
	assert.Equal(t, "Fleddy Melculy", playing.Artist)
	assert.Equal(t, "Unknown Album", playing.Album)
	// No large rendition in the payload, medium wins.
	assert.Equal(t, "https://img.example/m.png", playing.Image)
	assert.True(t, playing.IsCurrentlyPlaying)

	scrobble := records[1]
	assert.Equal(t, "Hollywood's Bleeding", scrobble.Album)
	assert.Equal(t, "https://img.example/circles-l.png", scrobble.Image)
	assert.Equal(t, time.Unix(1756615200, 0).UTC(), scrobble.PlayedAt)
	assert.False(t, scrobble.IsCurrentlyPlaying)
}

func TestClientNowPlaying(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t, recentTracksBody, http.StatusOK)
	client := newTestClient(t, server.URL, "test-key", "test-user")

	track, err := client.NowPlaying(context.Background())
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, "Oude Maasweg", track.Name)
}

func TestClientNowPlayingIdle(t *testing.T) {
	t.Parallel()

	const idleBody = `{"recenttracks":{"track":[
		{"name":"Circles","artist":{"#text":"Post Malone"},"album":{"#text":"Hollywood's Bleeding"},
		 "image":[],"url":"https://www.last.fm/music/track2","date":{"uts":"1756615200"}}
	]}}`

	server := newAPIServer(t, idleBody, http.StatusOK)
	client := newTestClient(t, server.URL, "test-key", "test-user")

	track, err := client.NowPlaying(context.Background())
	require.NoError(t, err)
	assert.Nil(t, track)
}

func TestClientUpstreamError(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t, "", http.StatusBadGateway)
	client := newTestClient(t, server.URL, "test-key", "test-user")

	_, err := client.FetchRecent(context.Background(), 2)
	assert.ErrorIs(t, err, provider.ErrUpstream)
}

func TestClientWithoutCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://unused.invalid", "", "test-user")

	_, err := client.FetchRecent(context.Background(), 2)
	assert.ErrorIs(t, err, provider.ErrNoCredentials)
}
