// Package models defines data structures for configuration and the Mastodon API.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted after the config file and before CLI values.
const (
	EnvServerURL   = "MASTODON_SERVER_URL"
	EnvAccountName = "MASTODON_ACCOUNT"
	EnvAccessToken = "MASTODON_ACCESS_TOKEN"
)

// CloudConfig holds every parameter of a word cloud run.
// Values come from (lowest to highest precedence) defaults, an optional YAML
// file, the environment and CLI flags.
type CloudConfig struct {
	ServerURL   string `yaml:"server_url"`
	AccountName string `yaml:"account_name"`
	AccessToken string `yaml:"access_token"`

	Stopwords       string `yaml:"stopwords"`
	MaskImg         string `yaml:"mask_img"`
	Output          string `yaml:"output"`
	HTMLOutput      string `yaml:"html_output"`
	ContourColor    string `yaml:"contour_color"`
	ContourWidth    int    `yaml:"contour_width"`
	BackgroundColor string `yaml:"background_color"`
	Font            string `yaml:"font"`
	MaxWords        int    `yaml:"max_words"`
	Seed            int64  `yaml:"seed"`

	// MaxPages caps pagination. Zero keeps the unbounded loop.
	MaxPages          int     `yaml:"max_pages"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	History   bool   `yaml:"history"`
	HistoryDB string `yaml:"history_db"`
}

// DefaultCloudConfig returns the defaults of the cloud command.
func DefaultCloudConfig() CloudConfig {
	return CloudConfig{
		Stopwords:       "stopwords.txt",
		MaskImg:         "pngwing.com.png",
		Output:          "wc.png",
		ContourColor:    "gold",
		ContourWidth:    2,
		BackgroundColor: "black",
		MaxWords:        100,
		Seed:            1,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*CloudConfig, error) {
	cfg := DefaultCloudConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides connection settings with any non-empty environment values.
func (c *CloudConfig) ApplyEnv(lookup func(string) string) {
	if lookup == nil {
		lookup = os.Getenv
	}
	if v := lookup(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := lookup(EnvAccountName); v != "" {
		c.AccountName = v
	}
	if v := lookup(EnvAccessToken); v != "" {
		c.AccessToken = v
	}
}

// Validate checks that the connection settings are present.
func (c *CloudConfig) Validate() error {
	checks := []struct {
		name  string
		value string
	}{
		{"server_url", c.ServerURL},
		{"account_name", c.AccountName},
		{"access_token", c.AccessToken},
	}
	for _, check := range checks {
		if check.value == "" {
			return fmt.Errorf("%s is required", check.name)
		}
	}
	if c.MaxWords < 1 {
		return fmt.Errorf("max_words must be at least 1, got %d", c.MaxWords)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must not be negative, got %d", c.MaxPages)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative, got %v", c.RequestsPerSecond)
	}
	return nil
}
