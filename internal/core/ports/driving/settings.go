package driving

import "github.com/custodia-labs/shiori/internal/core/domain"

// SettingsService resolves typed settings from configuration.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() domain.Settings

	// SetCorpusDir persists a new corpus directory.
	SetCorpusDir(dir string) error
}
