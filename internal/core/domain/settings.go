package domain

import (
	"fmt"
	"strings"
)

// Configuration keys, in the dot notation used by ConfigStore.
const (
	KeyCorpusDir      = "corpus.dir"
	KeyCorpusWorkers  = "corpus.workers"
	KeyCorpusWatch    = "corpus.watch"
	KeyMCPPasswordEnv = "mcp.password_env"
	KeyMCPRateLimit   = "mcp.rate_limit"
	KeyMCPBurst       = "mcp.burst"
	KeyVerbose        = "log.verbose"
)

const (
	defaultCorpusDir   = "knowledge"
	defaultWorkers     = 4
	defaultPasswordEnv = "SITE_PASSWORD"
	defaultRateLimit   = 5
	defaultBurst       = 10
)

// EligibleExtensions lists the file extensions loaded from the corpus directory.
var EligibleExtensions = []string{".txt", ".md"}

// IsEligibleFile reports whether a file name has a corpus extension.
func IsEligibleFile(name string) bool {
	for _, ext := range EligibleExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// CorpusSettings configures the corpus loader.
type CorpusSettings struct {
	// Dir is the knowledge directory. Not recursed into.
	Dir string

	// Workers is the size of the file-reading pool used during reloads.
	Workers int

	// Watch enables filesystem notifications that invalidate the cache.
	Watch bool
}

// MCPSettings configures the MCP server adapter.
type MCPSettings struct {
	// PasswordEnv names the environment variable holding the shared
	// password required by HTTP clients.
	PasswordEnv string

	// RateLimit is the sustained requests per second allowed over HTTP.
	RateLimit int

	// Burst is the maximum burst size over HTTP.
	Burst int
}

// Settings holds all typed application settings.
type Settings struct {
	Corpus  CorpusSettings
	MCP     MCPSettings
	Verbose bool
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		Corpus: CorpusSettings{
			Dir:     defaultCorpusDir,
			Workers: defaultWorkers,
			Watch:   true,
		},
		MCP: MCPSettings{
			PasswordEnv: defaultPasswordEnv,
			RateLimit:   defaultRateLimit,
			Burst:       defaultBurst,
		},
	}
}

// Validate checks settings for values that cannot work.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Corpus.Dir) == "" {
		return fmt.Errorf("%w: corpus directory is empty", ErrInvalidInput)
	}
	if s.Corpus.Workers < 1 {
		return fmt.Errorf("%w: corpus workers must be at least 1, got %d", ErrInvalidInput, s.Corpus.Workers)
	}
	if s.MCP.RateLimit < 0 || s.MCP.Burst < 0 {
		return fmt.Errorf("%w: rate limit and burst must not be negative", ErrInvalidInput)
	}
	return nil
}
