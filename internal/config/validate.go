package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// ValidSortKeys mirrors listing's sort keys for config validation.
var ValidSortKeys = []string{
	"name", "stars", "forks", "size", "watchers", "language",
	"issues", "created_at", "updated_at", "pushed_at",
}

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	if err := ValidatePath(c.CacheDir, "cache_dir"); err != nil {
		return err
	}
	if err := validateURL(c.APIURL, "api_url"); err != nil {
		return err
	}
	if c.CacheTTL.Duration <= 0 {
		return fmt.Errorf("invalid cache_ttl %q: must be positive", c.CacheTTL.String())
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("invalid timeout %q: must be positive", c.Timeout.String())
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be at least 1", c.Concurrency)
	}
	if c.Resolve.Threshold < 0 || c.Resolve.Threshold > 100 {
		return fmt.Errorf("invalid resolve.threshold %d: must be between 0 and 100", c.Resolve.Threshold)
	}
	if c.Resolve.Margin < 0 || c.Resolve.Margin > 100 {
		return fmt.Errorf("invalid resolve.margin %d: must be between 0 and 100", c.Resolve.Margin)
	}
	if c.Resolve.MaxCandidates < 1 {
		return fmt.Errorf("invalid resolve.max_candidates %d: must be at least 1", c.Resolve.MaxCandidates)
	}
	return validateEnum(c.List.DefaultSort, "list.default_sort", ValidSortKeys)
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "~") {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// validateURL checks that value is an absolute http(s) URL.
func validateURL(value, field string) error {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an http(s) URL", field, value)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
