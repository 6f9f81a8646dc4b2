package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultFetchTimeout       = 10 * time.Second
)

// PSN fetch modes. The REST mode and the scrape mode are interchangeable
// strategies for the same endpoint, never active together.
const (
	PSNModeAPI    = "api"
	PSNModeScrape = "scrape"
	PSNModeMock   = "mock"
)

// Music provider selectors.
const (
	MusicProviderLastFM  = "lastfm"
	MusicProviderSpotify = "spotify"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port" validate:"gt=0"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		CORSOrigins        []string `json:"corsOrigins" yaml:"corsOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// PSN configures the PlayStation games feed.
	PSN *PSNConfig `json:"psn" yaml:"psn" validate:"required"`

	// LastFM configures the Last.fm scrobble provider.
	LastFM *LastFMConfig `json:"lastfm" yaml:"lastfm"`

	// Spotify configures the Spotify listening provider.
	Spotify *SpotifyConfig `json:"spotify" yaml:"spotify"`

	// Music selects which track provider backs the music feed.
	Music *MusicConfig `json:"music" yaml:"music" validate:"required"`

	// Providers holds settings shared by all outbound provider clients.
	Providers ProvidersConfig `json:"providers" yaml:"providers"`
}

// Log defines logger output settings.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PSNConfig defines the PlayStation provider configuration. Exactly one
// fetch mode is active per deployment.
type PSNConfig struct {
	Mode string `json:"mode" yaml:"mode" validate:"oneof=api scrape mock"`

	// Npsso is the long-lived session cookie exchanged for bearer tokens
	// in api mode. Comes from the environment in production.
	Npsso string `json:"npsso" yaml:"npsso"`

	// ProfileUsername is the public profile scraped in scrape mode.
	ProfileUsername string `json:"profileUsername" yaml:"profileUsername"`

	// DefaultLimit is the record count used when the request omits limit.
	DefaultLimit int `json:"defaultLimit" yaml:"defaultLimit"`

	// AuthBaseURL/APIBaseURL/ProfileBaseURL override the provider hosts,
	// used by tests. Empty means the real endpoints.
	AuthBaseURL    string `json:"authBaseUrl" yaml:"authBaseUrl"`
	APIBaseURL     string `json:"apiBaseUrl" yaml:"apiBaseUrl"`
	ProfileBaseURL string `json:"profileBaseUrl" yaml:"profileBaseUrl"`
}

// LastFMConfig defines Last.fm credentials.
type LastFMConfig struct {
	APIKey   string `json:"apiKey" yaml:"apiKey"`
	Username string `json:"username" yaml:"username"`
	BaseURL  string `json:"baseUrl" yaml:"baseUrl"`
}

// SpotifyConfig defines the Spotify OAuth refresh-token credentials.
type SpotifyConfig struct {
	ClientID     string `json:"clientId" yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
	RefreshToken string `json:"refreshToken" yaml:"refreshToken"`
	AuthBaseURL  string `json:"authBaseUrl" yaml:"authBaseUrl"`
	APIBaseURL   string `json:"apiBaseUrl" yaml:"apiBaseUrl"`
}

// MusicConfig selects the track provider for the music feed.
type MusicConfig struct {
	Provider     string `json:"provider" yaml:"provider" validate:"oneof=lastfm spotify"`
	DefaultLimit int    `json:"defaultLimit" yaml:"defaultLimit"`
}

// ProvidersConfig holds settings shared by every outbound client.
type ProvidersConfig struct {
	// FetchTimeout bounds each outbound provider call so a hung upstream
	// cannot hang the request indefinitely.
	FetchTimeout time.Duration `json:"fetchTimeout" yaml:"fetchTimeout"`

	// ScrapeRatePerMin throttles scraper page fetches.
	ScrapeRatePerMin int `json:"scrapeRatePerMin" yaml:"scrapeRatePerMin"`
}

// LoadWithEnv loads .yaml files through koanf with an env-var overlay.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SPOTIFY_CLIENTID -> spotify.clientId (not spotify.clientid)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Providers.FetchTimeout <= 0 {
		c.Providers.FetchTimeout = defaultFetchTimeout
	}
	if c.PSN != nil && c.PSN.DefaultLimit <= 0 {
		// The REST posture serves three cards; the scrape posture six.
		if c.PSN.Mode == PSNModeScrape {
			c.PSN.DefaultLimit = 6
		} else {
			c.PSN.DefaultLimit = 3
		}
	}
	if c.Music != nil && c.Music.DefaultLimit <= 0 {
		c.Music.DefaultLimit = 6
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
