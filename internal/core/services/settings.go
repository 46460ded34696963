package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/core/ports/driven"
	"github.com/custodia-labs/shiori/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns settings from the config store, with defaults for
// anything missing or of the wrong type.
func (s *SettingsService) Get() domain.Settings {
	defaults := domain.DefaultSettings()

	return domain.Settings{
		Corpus: domain.CorpusSettings{
			Dir:     s.getString(domain.KeyCorpusDir, defaults.Corpus.Dir),
			Workers: s.getInt(domain.KeyCorpusWorkers, defaults.Corpus.Workers),
			Watch:   s.getBool(domain.KeyCorpusWatch, defaults.Corpus.Watch),
		},
		MCP: domain.MCPSettings{
			PasswordEnv: s.getString(domain.KeyMCPPasswordEnv, defaults.MCP.PasswordEnv),
			RateLimit:   s.getInt(domain.KeyMCPRateLimit, defaults.MCP.RateLimit),
			Burst:       s.getInt(domain.KeyMCPBurst, defaults.MCP.Burst),
		},
		Verbose: s.getBool(domain.KeyVerbose, defaults.Verbose),
	}
}

// SetCorpusDir persists the knowledge directory.
func (s *SettingsService) SetCorpusDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("%w: corpus directory is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(domain.KeyCorpusDir, dir); err != nil {
		return fmt.Errorf("save corpus dir: %w", err)
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	v, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v.(type) {
	case int, int64, float64:
		return s.configStore.GetInt(key)
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	v, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	return defaultVal
}
