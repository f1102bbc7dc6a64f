package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxPDFSize != 200<<20 {
		t.Fatalf("max size = %d, want 200 MiB", cfg.MaxPDFSize)
	}
	if cfg.DownloadTimeout != 30*time.Second {
		t.Fatalf("timeout = %v, want 30s", cfg.DownloadTimeout)
	}
	if cfg.MaxRetries != 3 || cfg.MaxPages != 1000 {
		t.Fatalf("unexpected retry/page defaults: %+v", cfg)
	}
	if cfg.MinTextLength != 100 || cfg.MinWords != 20 || cfg.MinRecognizableWords != 5 {
		t.Fatalf("unexpected quality defaults: %+v", cfg)
	}
	if cfg.MinLetterRatio != 0.30 || cfg.MaxSingleCharRatio != 0.40 {
		t.Fatalf("unexpected ratio defaults: %+v", cfg)
	}
	if cfg.CacheDir != "" {
		t.Fatal("cache must be disabled by default")
	}
}

func TestLoadConfigFile_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docpipe.yaml")
	body := `
download:
  timeout: 10s
  retries: 5
  cacheDir: /tmp/docpipe-cache
extract:
  maxPages: 50
quality:
  minWords: 30
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)

	if cfg.DownloadTimeout != 10*time.Second {
		t.Fatalf("timeout = %v, want 10s", cfg.DownloadTimeout)
	}
	if cfg.MaxRetries != 5 || cfg.MaxPages != 50 || cfg.MinWords != 30 {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.CacheDir != "/tmp/docpipe-cache" {
		t.Fatalf("cache dir = %q", cfg.CacheDir)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxPDFSize != 200<<20 || cfg.MinTextLength != 100 {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docpipe.json")
	if err := os.WriteFile(path, []byte(`{"extract":{"maxPages":7}}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Extract.MaxPages != 7 {
		t.Fatalf("max pages = %d, want 7", fc.Extract.MaxPages)
	}
}
