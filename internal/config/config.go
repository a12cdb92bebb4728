package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"prosefmt/internal/prose"
)

type Config struct {
	Format struct {
		// MaxSentences bounds description paragraphs; dialogue is exempt.
		MaxSentences int `yaml:"max_sentences"`
	} `yaml:"format"`
	Crawler struct {
		// Extensions selects which files a directory scan treats as scenes.
		Extensions []string `yaml:"extensions"`
	} `yaml:"crawler"`
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Format.MaxSentences = prose.DefaultMaxSentences
	cfg.Crawler.Extensions = []string{".txt", ".md"}
	cfg.Storage.DBPath = "scenes.db"
	return cfg
}

// Load reads configuration from a YAML file, layered over defaults.
// A .env file is loaded first if present, and PROSEFMT_* environment
// variables override both file and defaults.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Layer the YAML config over defaults
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with environment variables if present
	if db := os.Getenv("PROSEFMT_DB"); db != "" {
		cfg.Storage.DBPath = db
	}
	if raw := os.Getenv("PROSEFMT_MAX_SENTENCES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Format.MaxSentences = n
		}
	}

	if cfg.Format.MaxSentences < 1 {
		cfg.Format.MaxSentences = prose.DefaultMaxSentences
	}
	if len(cfg.Crawler.Extensions) == 0 {
		cfg.Crawler.Extensions = []string{".txt", ".md"}
	}

	return cfg, nil
}
