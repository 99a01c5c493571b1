package database

const cacheSchema = `
-- Raw external API payloads keyed by source and request key
CREATE TABLE payload_cache (
	source TEXT NOT NULL,
	cache_key TEXT NOT NULL,
	body BLOB NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (source, cache_key)
);

CREATE INDEX idx_payload_fetched_at ON payload_cache(fetched_at);
`

// cacheMigrations contains incremental schema changes
// Each migration is applied in order based on the current user_version
// cacheMigrations[0] is empty because version 0 uses the base schema
var cacheMigrations = []string{
	"",
}
