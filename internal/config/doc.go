// Package config handles loading and validation of dracula configuration.
//
// Configuration is read from ~/.config/dracula/config.toml with environment
// variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - DRACULA_CONFIG_DIR env var: directory holding config.toml
//   - DRACULA_CACHE_DIR env var: metadata cache directory
//   - GITHUB_TOKEN env var: API token, when token is not set in the file
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - cache_ttl: how long fetched metadata is served without revalidation (default "6h")
//   - timeout: per-request GitHub API timeout (default "10s")
//   - concurrency: parallel requests for "dracula all" (default 8)
//   - [resolve] threshold/margin/max_candidates: fuzzy name matching
//   - [list] default_sort: default sort key for "dracula all"
//
// An invalid file never stops dracula: [Load] returns the defaults together
// with the error so the caller can warn and continue.
package config
