package domain

import "time"

type Config struct {
	RootPath          string        `mapstructure:"root_path"`
	DocumentFile      string        `mapstructure:"document_file"`
	EpisodesFile      string        `mapstructure:"episodes_file"`
	AniListURL        string        `mapstructure:"anilist_url"`
	JikanURL          string        `mapstructure:"jikan_url"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	MaxPages          int           `mapstructure:"max_pages"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	DiscordWebhookURL string        `mapstructure:"discord_webhook_url"`
	ListenAddr        string        `mapstructure:"listen_addr"`
	LogLevel          string        `mapstructure:"log_level"`
}

// CacheEnabled reports whether external payloads are cached at all.
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}
