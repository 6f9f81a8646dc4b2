package psnprofiles

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
	"pulse/internal/domain/entity"
	"pulse/internal/domain/provider"
)

const profilePage = `<!DOCTYPE html>
<html><body>
<table>
<tr id="game-1" class="gamerow">
  <td><img src="/lib/img/games/ghost.png"></td>
  <td class="title"><a href="/trophies/ghost-of-tsushima">Ghost of Tsushima</a></td>
  <td class="platform">PS5</td>
  <td class="playtime">52h</td>
  <td class="trophy platinum">1</td>
  <td class="trophy gold">2</td>
  <td class="trophy silver">9</td>
  <td class="trophy bronze">30</td>
</tr>
<tr id="game-2" class="gamerow">
  <td><img data-src="https://cdn.example/bb.png"></td>
  <td class="title"><a href="/trophies/bloodborne">Bloodborne</a></td>
  <td class="platform">PS4</td>
  <td class="trophy bronze">14</td>
</tr>
<tr id="game-3" class="gamerow">
  <td></td>
</tr>
</table>
</body></html>`

func newTestScraper(t *testing.T, baseURL, username string) *Scraper {
	t.Helper()

	cfg := &config.Config{
		PSN: &config.PSNConfig{
			Mode:            config.PSNModeScrape,
			ProfileUsername: username,
			ProfileBaseURL:  baseURL,
		},
	}
	cfg.Providers.FetchTimeout = 5 * time.Second
	cfg.Providers.ScrapeRatePerMin = 600

	scraper := NewScraper(cfg, slog.New(slog.DiscardHandler))
	scraper.now = func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}

	return scraper
}

func newProfileServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Rooobiin89", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestScraperFetchRecent(t *testing.T) {
	t.Parallel()

	server := newProfileServer(t, profilePage, http.StatusOK)
	scraper := newTestScraper(t, server.URL, "Rooobiin89")

	records, err := scraper.FetchRecent(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, records, 3)

	ghost := records[0]
	assert.Equal(t, "Ghost of Tsushima", ghost.Name)
	assert.Equal(t, entity.PlatformPS5, ghost.Platform)
	assert.Equal(t, server.URL+"/lib/img/games/ghost.png", ghost.Image)
	assert.Equal(t, "52h", ghost.TotalPlayTime)
	assert.Equal(t, entity.TrophyProgress{Platinum: 1, Gold: 2, Silver: 9, Bronze: 30}, ghost.TrophyProgress)
	assert.Equal(t, server.URL+"/trophies/ghost-of-tsushima", ghost.ExternalURL)
	assert.True(t, ghost.IsCurrentlyPlaying)

	bloodborne := records[1]
	assert.Equal(t, entity.PlatformPS4, bloodborne.Platform)
	assert.Equal(t, "https://cdn.example/bb.png", bloodborne.Image)
	assert.Equal(t, entity.TrophyProgress{Bronze: 14}, bloodborne.TrophyProgress)
	assert.False(t, bloodborne.IsCurrentlyPlaying)
	// Rank order survives as synthesized day-apart dates.
	assert.True(t, records[0].LastPlayedDate.After(bloodborne.LastPlayedDate))

	// A row with nothing recognizable still yields a placeholder card.
	empty := records[2]
	assert.Equal(t, "Game 3", empty.Name)
	assert.Equal(t, entity.PlatformPS5, empty.Platform)
	assert.Equal(t, "0h", empty.TotalPlayTime)
	assert.Equal(t, entity.TrophyProgress{}, empty.TrophyProgress)
}

func TestScraperHonorsLimit(t *testing.T) {
	t.Parallel()

	server := newProfileServer(t, profilePage, http.StatusOK)
	scraper := newTestScraper(t, server.URL, "Rooobiin89")

	records, err := scraper.FetchRecent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestScraperEmptyPage(t *testing.T) {
	t.Parallel()

	server := newProfileServer(t, "<html><body><p>Profile is private</p></body></html>", http.StatusOK)
	scraper := newTestScraper(t, server.URL, "Rooobiin89")

	_, err := scraper.FetchRecent(context.Background(), 6)
	assert.ErrorIs(t, err, provider.ErrParse)
}

func TestScraperUpstreamError(t *testing.T) {
	t.Parallel()

	server := newProfileServer(t, "", http.StatusServiceUnavailable)
	scraper := newTestScraper(t, server.URL, "Rooobiin89")

	_, err := scraper.FetchRecent(context.Background(), 6)
	assert.ErrorIs(t, err, provider.ErrUpstream)
}

func TestScraperWithoutProfile(t *testing.T) {
	t.Parallel()

	scraper := newTestScraper(t, "http://unused.invalid", "")

	_, err := scraper.FetchRecent(context.Background(), 6)
	assert.ErrorIs(t, err, provider.ErrNoCredentials)
}
