// Package psn talks to the PlayStation Network mobile API: NPSSO cookie
// to access-code to bearer-token exchange, recently played titles, and
// per-title trophy enrichment.
package psn

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
	"pulse/internal/infra/token"
)

const (
	defaultAuthBaseURL = "https://ca.account.sony.com"
	defaultAPIBaseURL  = "https://m.np.playstation.com/api"

	// Credentials of Sony's own mobile app; the authorize/token exchange
	// requires them alongside the user's NPSSO cookie.
	mobileClientID     = "09515159-7237-4370-9b40-3806e67c0891"
	mobileClientSecret = "ucPjka5tntB2KqsP"
	mobileRedirectURI  = "com.scee.psxandroid.scecompcall://redirect"

	// Sony access tokens last an hour; refreshing at 55 minutes keeps a
	// margin so an in-flight request never carries a token that expires
	// mid-call.
	tokenTTL = 55 * time.Minute

	// Trophy titles are matched by name against played titles; the list
	// endpoint pages at 800 which covers any realistic profile.
	trophyTitlesPageSize = 800
)

// authTokens is the bearer pair the token exchange yields.
type authTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Client fetches recently played titles over the PSN REST API.
type Client struct {
	cfg        *config.PSNConfig
	authBase   string
	apiBase    string
	httpClient *http.Client
	tokens     *token.Cache[authTokens]
	logger     *slog.Logger
}

// NewClient creates a PSN REST client. The token cache is owned by the
// client instance; there is no package-level state.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	client := &Client{
		cfg:      cfg.PSN,
		authBase: strings.TrimRight(cfg.PSN.AuthBaseURL, "/"),
		apiBase:  strings.TrimRight(cfg.PSN.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Providers.FetchTimeout,
			// The authorize endpoint answers with a redirect carrying the
			// access code; following it would lose the code.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger.With(slog.String("provider", "psn")),
	}
	if client.authBase == "" {
		client.authBase = defaultAuthBaseURL
	}
	if client.apiBase == "" {
		client.apiBase = defaultAPIBaseURL
	}

	client.tokens = token.NewCache(client.exchangeTokens, tokenTTL)

	return client
}

// Name implements provider.GameSource.
func (c *Client) Name() string { return "psn" }

// Source implements provider.GameSource.
func (c *Client) Source() entity.Source { return entity.SourceLive }

// HasCredentials reports whether an NPSSO cookie is configured.
func (c *Client) HasCredentials() bool { return c.cfg.Npsso != "" }

// MockRecords implements provider.GameSource.
func (c *Client) MockRecords() []entity.GameRecord { return MockGames() }

// FetchRecent returns up to limit recently played titles with trophy
// enrichment. Trophy lookup failures degrade per record to zero counters.
func (c *Client) FetchRecent(ctx context.Context, limit int) ([]entity.GameRecord, error) {
	if !c.HasCredentials() {
		return nil, provider.ErrNoCredentials
	}

	tokens, err := c.tokens.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}

	// Over-fetch slightly so titles that fail mapping still leave enough
	// to fill the requested count.
	titles, err := c.fetchPlayedTitles(ctx, tokens, limit+2)
	if err != nil {
		return nil, err
	}

	trophies := c.fetchTrophyTitles(ctx, tokens)

	records := make([]entity.GameRecord, 0, limit)
	for _, title := range titles {
		if len(records) == limit {
			break
		}
		records = append(records, c.toRecord(title, trophies))
	}

	return records, nil
}

type playedTitle struct {
	TitleID            string `json:"titleId"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	ImageURL           string `json:"imageUrl"`
	PlayDuration       string `json:"playDuration"`
	LastPlayedDateTime string `json:"lastPlayedDateTime"`
}

type trophyTitle struct {
	TrophyTitleName string `json:"trophyTitleName"`
	EarnedTrophies  struct {
		Platinum int `json:"platinum"`
		Gold     int `json:"gold"`
		Silver   int `json:"silver"`
		Bronze   int `json:"bronze"`
	} `json:"earnedTrophies"`
}

// exchangeTokens runs the two-step credential exchange: NPSSO cookie to
// access code, access code to bearer pair.
func (c *Client) exchangeTokens(ctx context.Context) (authTokens, time.Duration, error) {
	code, err := c.exchangeNpssoForCode(ctx)
	if err != nil {
		return authTokens{}, 0, err
	}

	tokens, err := c.exchangeCodeForTokens(ctx, code)
	if err != nil {
		return authTokens{}, 0, err
	}

	c.logger.Debug("authenticated with PSN")

	return tokens, 0, nil
}

func (c *Client) exchangeNpssoForCode(ctx context.Context) (string, error) {
	query := url.Values{
		"access_type":   {"offline"},
		"client_id":     {mobileClientID},
		"redirect_uri":  {mobileRedirectURI},
		"response_type": {"code"},
		"scope":         {"psn:mobile.v2.core psn:clientapp"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.authBase+"/api/authz/v3/oauth/authorize?"+query.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "create authorize request")
	}
	req.Header.Set("Cookie", "npsso="+c.cfg.Npsso)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(provider.ErrAuth, "authorize request: %v", err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if resp.StatusCode < 300 || resp.StatusCode >= 400 || location == "" {
		return "", errors.Wrapf(provider.ErrAuth, "authorize returned status %d without redirect", resp.StatusCode)
	}

	redirect, err := url.Parse(location)
	if err != nil {
		return "", errors.Wrapf(provider.ErrAuth, "parse redirect location: %v", err)
	}

	code := redirect.Query().Get("code")
	if code == "" {
		// An expired NPSSO redirects to an error page with no code.
		return "", errors.Wrap(provider.ErrAuth, "redirect carried no access code, NPSSO likely expired")
	}

	return code, nil
}

func (c *Client) exchangeCodeForTokens(ctx context.Context, code string) (authTokens, error) {
	form := url.Values{
		"code":         {code},
		"redirect_uri": {mobileRedirectURI},
		"grant_type":   {"authorization_code"},
		"token_format": {"jwt"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authBase+"/api/authz/v3/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return authTokens{}, errors.Wrap(err, "create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(mobileClientID, mobileClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return authTokens{}, errors.Wrapf(provider.ErrAuth, "token request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return authTokens{}, errors.Wrapf(provider.ErrAuth, "token exchange returned status %d", resp.StatusCode)
	}

	var tokens authTokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return authTokens{}, errors.Wrapf(provider.ErrAuth, "decode token response: %v", err)
	}

	return tokens, nil
}

func (c *Client) fetchPlayedTitles(ctx context.Context, tokens authTokens, limit int) ([]playedTitle, error) {
	endpoint := fmt.Sprintf("%s/gamelist/v2/users/me/titles?categories=ps4_game,ps5_native_game&limit=%d&offset=0",
		c.apiBase, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create titles request")
	}
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(provider.ErrUpstream, "titles request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(provider.ErrUpstream, "titles endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Titles []playedTitle `json:"titles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(provider.ErrParse, "decode titles response: %v", err)
	}

	return payload.Titles, nil
}

// fetchTrophyTitles returns the profile's trophy list for enrichment, or
// nil when the lookup fails. Enrichment is best effort and never fails
// the batch.
func (c *Client) fetchTrophyTitles(ctx context.Context, tokens authTokens) []trophyTitle {
	endpoint := fmt.Sprintf("%s/trophy/v1/users/me/trophyTitles?limit=%d", c.apiBase, trophyTitlesPageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("trophy lookup failed", slog.Any("error", err))

		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("trophy lookup returned non-OK status", slog.Int("status", resp.StatusCode))

		return nil
	}

	var payload struct {
		TrophyTitles []trophyTitle `json:"trophyTitles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("trophy response did not parse", slog.Any("error", err))

		return nil
	}

	return payload.TrophyTitles
}

func (c *Client) toRecord(title playedTitle, trophies []trophyTitle) entity.GameRecord {
	playTime, parsed := ConvertPlayDuration(title.PlayDuration)
	if !parsed {
		c.logger.Warn("play duration did not parse",
			slog.String("title", title.Name),
			slog.String("duration", title.PlayDuration),
		)
	}

	platform := entity.PlatformPS4
	if title.Category == "ps5_native_game" {
		platform = entity.PlatformPS5
	}

	lastPlayed, err := time.Parse(time.RFC3339, title.LastPlayedDateTime)
	if err != nil {
		c.logger.Warn("last played timestamp did not parse",
			slog.String("title", title.Name),
			slog.String("timestamp", title.LastPlayedDateTime),
		)
		lastPlayed = time.Now()
	}

	record := entity.GameRecord{
		ID:             title.TitleID,
		Name:           title.Name,
		Platform:       platform,
		Image:          title.ImageURL,
		LastPlayedDate: lastPlayed,
		TotalPlayTime:  playTime,
		ExternalURL:    "https://www.playstation.com/games/" + title.TitleID + "/",
	}

	if match := matchTrophyTitle(trophies, title.Name); match != nil {
		record.TrophyProgress = entity.TrophyProgress{
			Platinum: match.EarnedTrophies.Platinum,
			Gold:     match.EarnedTrophies.Gold,
			Silver:   match.EarnedTrophies.Silver,
			Bronze:   match.EarnedTrophies.Bronze,
		}
	}

	return record
}

// matchTrophyTitle pairs a played title with its trophy set. Trophy set
// names sometimes differ from store names, so an exact match is tried
// first and then a first-word prefix match.
func matchTrophyTitle(trophies []trophyTitle, name string) *trophyTitle {
	for i := range trophies {
		if trophies[i].TrophyTitleName == name {
			return &trophies[i]
		}
	}

	firstWord, _, _ := strings.Cut(name, " ")
	if firstWord == "" {
		return nil
	}
	for i := range trophies {
		if strings.Contains(trophies[i].TrophyTitleName, firstWord) {
			return &trophies[i]
		}
	}

	return nil
}
