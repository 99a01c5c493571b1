package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	require.Equal(t, ".", cfg.RootPath)
	require.Equal(t, "anime_data.json", cfg.DocumentFile)
	require.Equal(t, DefaultAniListURL, cfg.AniListURL)
	require.Equal(t, DefaultJikanURL, cfg.JikanURL)
	require.Equal(t, 24*time.Hour, cfg.CacheTTL)
	require.True(t, cfg.CacheEnabled())
	require.Equal(t, 2, cfg.RequestsPerSecond)
}

func TestLoadFromOverrides(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("cache_ttl", "0s")
	v.Set("requests_per_second", 5)
	v.Set("document_file", "catalog.json")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	require.False(t, cfg.CacheEnabled())
	require.Equal(t, 5, cfg.RequestsPerSecond)
	require.Equal(t, "catalog.json", cfg.DocumentFile)
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cases := map[string]func(v *viper.Viper){
		"relative anilist url": func(v *viper.Viper) { v.Set("anilist_url", "graphql.anilist.co") },
		"zero rate":            func(v *viper.Viper) { v.Set("requests_per_second", 0) },
		"negative ttl":         func(v *viper.Viper) { v.Set("cache_ttl", "-1h") },
		"zero pages":           func(v *viper.Viper) { v.Set("max_pages", 0) },
	}

	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v := viper.New()
			mutate(v)
			_, err := LoadFrom(v)
			require.Error(t, err)
		})
	}
}
