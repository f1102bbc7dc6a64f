package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the Config groups and to CLI flags.
type FileConfig struct {
	Download struct {
		MaxSize int64 `yaml:"maxSize" json:"maxSize"`
		// Timeout is a duration string such as "30s" or "2m".
		Timeout   string `yaml:"timeout" json:"timeout"`
		Retries   int    `yaml:"retries" json:"retries"`
		UserAgent string `yaml:"userAgent" json:"userAgent"`
		CacheDir  string `yaml:"cacheDir" json:"cacheDir"`
	} `yaml:"download" json:"download"`

	Extract struct {
		MaxPages int `yaml:"maxPages" json:"maxPages"`
	} `yaml:"extract" json:"extract"`

	Quality struct {
		MinTextLength        int     `yaml:"minTextLength" json:"minTextLength"`
		MinLetterRatio       float64 `yaml:"minLetterRatio" json:"minLetterRatio"`
		MinWords             int     `yaml:"minWords" json:"minWords"`
		MinRecognizableWords int     `yaml:"minRecognizableWords" json:"minRecognizableWords"`
		MaxSingleCharRatio   float64 `yaml:"maxSingleCharRatio" json:"maxSingleCharRatio"`
	} `yaml:"quality" json:"quality"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays any value set in fc onto cfg. Callers that also
// parse flags should re-apply explicitly set flags afterwards so the
// precedence stays flags > file > defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if fc.Download.MaxSize > 0 {
		cfg.MaxPDFSize = fc.Download.MaxSize
	}
	if fc.Download.Timeout != "" {
		if d, err := time.ParseDuration(fc.Download.Timeout); err == nil && d > 0 {
			cfg.DownloadTimeout = d
		}
	}
	if fc.Download.Retries > 0 {
		cfg.MaxRetries = fc.Download.Retries
	}
	if fc.Download.UserAgent != "" {
		cfg.UserAgent = fc.Download.UserAgent
	}
	if fc.Download.CacheDir != "" {
		cfg.CacheDir = fc.Download.CacheDir
	}
	if fc.Extract.MaxPages > 0 {
		cfg.MaxPages = fc.Extract.MaxPages
	}
	if fc.Quality.MinTextLength > 0 {
		cfg.MinTextLength = fc.Quality.MinTextLength
	}
	if fc.Quality.MinLetterRatio > 0 {
		cfg.MinLetterRatio = fc.Quality.MinLetterRatio
	}
	if fc.Quality.MinWords > 0 {
		cfg.MinWords = fc.Quality.MinWords
	}
	if fc.Quality.MinRecognizableWords > 0 {
		cfg.MinRecognizableWords = fc.Quality.MinRecognizableWords
	}
	if fc.Quality.MaxSingleCharRatio > 0 {
		cfg.MaxSingleCharRatio = fc.Quality.MaxSingleCharRatio
	}
}
