package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
	"github.com/varoOP/animedexdb/internal/domain"
)

const (
	DefaultAniListURL = "https://graphql.anilist.co"
	DefaultJikanURL   = "https://api.jikan.moe/v4"
)

// SetDefaults registers the default value of every config key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root_path", ".")
	v.SetDefault("document_file", string(domain.DocumentFile))
	v.SetDefault("episodes_file", string(domain.EpisodesFile))
	v.SetDefault("anilist_url", DefaultAniListURL)
	v.SetDefault("jikan_url", DefaultJikanURL)
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("requests_per_second", 2)
	v.SetDefault("max_pages", 200)
	v.SetDefault("cache_ttl", 24*time.Hour)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
}

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml, optional)
// 2. Environment variables (ANIMEDEXDB_*)
// 3. Flags bound by the command line
func Load() (*domain.Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v
func LoadFrom(v *viper.Viper) (*domain.Config, error) {
	SetDefaults(v)

	cfg := &domain.Config{
		RootPath:          v.GetString("root_path"),
		DocumentFile:      v.GetString("document_file"),
		EpisodesFile:      v.GetString("episodes_file"),
		AniListURL:        v.GetString("anilist_url"),
		JikanURL:          v.GetString("jikan_url"),
		HTTPTimeout:       v.GetDuration("http_timeout"),
		RequestsPerSecond: v.GetInt("requests_per_second"),
		MaxPages:          v.GetInt("max_pages"),
		CacheTTL:          v.GetDuration("cache_ttl"),
		DiscordWebhookURL: v.GetString("discord_webhook_url"),
		ListenAddr:        v.GetString("listen_addr"),
		LogLevel:          v.GetString("log_level"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *domain.Config) error {
	for key, raw := range map[string]string{"anilist_url": cfg.AniListURL, "jikan_url": cfg.JikanURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q (must be an absolute http(s) URL)", key, raw)
		}
	}

	if cfg.DiscordWebhookURL != "" {
		if _, err := url.ParseRequestURI(cfg.DiscordWebhookURL); err != nil {
			return fmt.Errorf("invalid discord_webhook_url: %w", err)
		}
	}

	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %d", cfg.RequestsPerSecond)
	}
	if cfg.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", cfg.MaxPages)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", cfg.HTTPTimeout)
	}
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", cfg.CacheTTL)
	}
	if cfg.RootPath == "" {
		cfg.RootPath = "."
	}

	return nil
}
