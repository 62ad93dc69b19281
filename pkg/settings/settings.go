// Package settings loads the application settings record that drives the
// refresh engine: active provider, credential, pacing and retry behavior.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Default configuration values
const (
	// DefaultSettingsPath is where the settings record is persisted
	DefaultSettingsPath = "data/settings.json"

	// DefaultConcurrency bounds the parallel dispatch worker pool
	DefaultConcurrency = 10

	// MaxScrapeDelayMs caps the sequential-mode inter-keyword delay so a
	// misconfigured value cannot stall a batch indefinitely
	MaxScrapeDelayMs = 30000
)

// Settings holds the scraper settings consumed by the refresh engine.
// File keys can be overridden with RANKWATCH_* environment variables
// (e.g. RANKWATCH_SCRAPING_API).
type Settings struct {
	// ScraperType is the id of the active provider adapter
	ScraperType string `mapstructure:"scraper_type"`
	// ScrapingAPI is the provider credential
	ScrapingAPI string `mapstructure:"scraping_api"`
	// ScrapeDelayMs is the sequential-mode delay between keywords, in ms
	ScrapeDelayMs int `mapstructure:"scrape_delay"`
	// ScrapeRetry enqueues failed keywords for a later batch when true
	ScrapeRetry bool `mapstructure:"scrape_retry"`
	// Concurrency is the parallel dispatch worker count
	Concurrency int `mapstructure:"scrape_concurrency"`
}

// Validate checks that the settings can drive a refresh batch.
func (s *Settings) Validate() error {
	if s.ScraperType == "" {
		return fmt.Errorf("settings: scraper_type is required")
	}
	if s.ScrapeDelayMs < 0 {
		return fmt.Errorf("settings: scrape_delay must not be negative, got %d", s.ScrapeDelayMs)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("settings: scrape_concurrency must be positive, got %d", s.Concurrency)
	}
	return nil
}

// Manager loads and caches the settings record.
type Manager struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	settings *Settings
	logger   *logrus.Logger
}

// NewManager creates a settings Manager backed by its own viper instance.
func NewManager(logger *logrus.Logger) *Manager {
	return &Manager{
		viper:  viper.New(),
		logger: logger,
	}
}

// Load reads the settings file at path, applies RANKWATCH_* environment
// overrides and defaults, validates the result and caches it. A missing
// settings file is not an error: environment variables and defaults apply.
func (m *Manager) Load(path string) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path == "" {
		path = DefaultSettingsPath
	}

	m.viper.SetConfigFile(path)
	m.viper.SetConfigType("json")
	m.viper.SetEnvPrefix("RANKWATCH")
	m.viper.AutomaticEnv()

	m.viper.SetDefault("scraper_type", "")
	m.viper.SetDefault("scraping_api", "")
	m.viper.SetDefault("scrape_delay", 0)
	m.viper.SetDefault("scrape_retry", false)
	m.viper.SetDefault("scrape_concurrency", DefaultConcurrency)

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			m.logger.WithField("path", path).Debug("Settings file not found, using environment and defaults")
		} else {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var settings Settings
	if err := m.viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"scraper":      settings.ScraperType,
		"scrape_delay": settings.ScrapeDelayMs,
		"scrape_retry": settings.ScrapeRetry,
		"concurrency":  settings.Concurrency,
	}).Debug("Loaded scraper settings")

	m.settings = &settings
	return &settings, nil
}

// Active returns the cached settings record.
func (m *Manager) Active() (*Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return nil, fmt.Errorf("settings not loaded")
	}
	return m.settings, nil
}
