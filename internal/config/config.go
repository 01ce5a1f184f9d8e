package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's settings, loaded from environment variables.
type Config struct {
	// Addr is the listen address for the page server.
	Addr string `env:"ADDR" envDefault:":8080"`
	// ImageURL is the random image endpoint queried on each fetch.
	ImageURL string `env:"IMAGE_URL" envDefault:"https://picsum.photos/640/480?random"`
	// ImageTimeout bounds a single upstream fetch. Zero means no deadline.
	ImageTimeout time.Duration `env:"IMAGE_TIMEOUT" envDefault:"0"`
	// BlobTTL is how long an undisplayed fetched image stays retrievable.
	BlobTTL time.Duration `env:"BLOB_TTL" envDefault:"10m"`
	// SourcesFile optionally lists alternative image endpoints.
	SourcesFile string `env:"SOURCES_FILE"`
	// ArchiveDir optionally persists every fetched image to disk.
	ArchiveDir string `env:"ARCHIVE_DIR"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
