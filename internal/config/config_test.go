package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ADDR", "IMAGE_URL", "IMAGE_TIMEOUT", "BLOB_TTL", "SOURCES_FILE", "ARCHIVE_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ImageURL != "https://picsum.photos/640/480?random" {
		t.Errorf("ImageURL = %q", cfg.ImageURL)
	}
	if cfg.ImageTimeout != 0 {
		t.Errorf("ImageTimeout = %v, want 0", cfg.ImageTimeout)
	}
	if cfg.BlobTTL != 10*time.Minute {
		t.Errorf("BlobTTL = %v, want 10m", cfg.BlobTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9090")
	t.Setenv("IMAGE_URL", "https://example.com/800/600?random")
	t.Setenv("IMAGE_TIMEOUT", "30s")
	t.Setenv("ARCHIVE_DIR", "/tmp/archive")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ImageURL != "https://example.com/800/600?random" {
		t.Errorf("ImageURL = %q", cfg.ImageURL)
	}
	if cfg.ImageTimeout != 30*time.Second {
		t.Errorf("ImageTimeout = %v", cfg.ImageTimeout)
	}
	if cfg.ArchiveDir != "/tmp/archive" {
		t.Errorf("ArchiveDir = %q", cfg.ArchiveDir)
	}
}

func TestLoadBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Error("expected error for unparsable duration")
	}
}
