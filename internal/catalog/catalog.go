// Package catalog holds the static table of Dracula theme ports.
//
// The catalog is loaded once from the embedded ports.yaml and is read-only
// afterwards, so a *Catalog is safe to share between goroutines.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedSchema is the range of ports.yaml schema versions this build reads.
const SupportedSchema = "^1"

//go:embed ports.yaml
var bundled []byte

// ErrIncompatibleSchema is returned for a ports file this build cannot read.
var ErrIncompatibleSchema = errors.New("incompatible catalog schema")

// DownloadFile describes a file in the port's repository that users
// typically copy into place.
type DownloadFile struct {
	Path        string `yaml:"path" json:"path"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Entry is one port: an application that supports the theme.
type Entry struct {
	Name            string         `yaml:"name" json:"name"`
	Repository      string         `yaml:"repository" json:"repository"` // owner/name
	// Aliases are other names users know the app by, e.g. vscode.
	Aliases         []string       `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	InstallTemplate string         `yaml:"install" json:"install"`
	DownloadFiles   []DownloadFile `yaml:"files,omitempty" json:"files,omitempty"`
}

// SearchNames returns the name followed by the aliases.
func (e Entry) SearchNames() []string {
	return append([]string{e.Name}, e.Aliases...)
}

// Owner returns the owner half of the repository id.
func (e Entry) Owner() string {
	owner, _, _ := strings.Cut(e.Repository, "/")
	return owner
}

// URL returns the repository's web URL.
func (e Entry) URL() string {
	return "https://github.com/" + e.Repository
}

// SiteURL returns the port's page on draculatheme.com.
func (e Entry) SiteURL() string {
	return "https://draculatheme.com/" + e.Name
}

// Catalog is an ordered, immutable set of entries with unique names.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

type portsFile struct {
	Schema string  `yaml:"schema"`
	Ports  []Entry `yaml:"ports"`
}

var repoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// New builds a catalog. Names and aliases must be unique ignoring case, repositories
// must be owner/name and install templates may only use known placeholders.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: empty name", i)
		}
		key := strings.ToLower(e.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate entry %q", e.Name)
		}
		if !repoPattern.MatchString(e.Repository) {
			return nil, fmt.Errorf("entry %q: invalid repository %q (expected owner/name)", e.Name, e.Repository)
		}
		if err := ValidateTemplate(e.InstallTemplate); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		e.DownloadFiles = append([]DownloadFile(nil), e.DownloadFiles...)

		c.byName[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	// aliases after all names, so an alias can never shadow a later name
	for i := range c.entries {
		e := &c.entries[i]
		aliases := make([]string, 0, len(e.Aliases))
		for _, a := range e.Aliases {
			a = strings.TrimSpace(a)
			if a == "" {
				return nil, fmt.Errorf("entry %q: empty alias", e.Name)
			}
			key := strings.ToLower(a)
			if j, dup := c.byName[key]; dup {
				return nil, fmt.Errorf("entry %q: alias %q already names %q", e.Name, a, c.entries[j].Name)
			}
			c.byName[key] = i
			aliases = append(aliases, a)
		}
		e.Aliases = aliases
	}

	return c, nil
}

// Load returns the catalog bundled with the binary.
func Load() (*Catalog, error) {
	return Parse(bundled)
}

// Parse decodes a ports YAML document.
func Parse(data []byte) (*Catalog, error) {
	var f portsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := checkSchema(f.Schema); err != nil {
		return nil, err
	}

	return New(f.Ports)
}

func checkSchema(schema string) error {
	v, err := semver.NewVersion(schema)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrIncompatibleSchema, schema, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrIncompatibleSchema, v, SupportedSchema)
	}
	return nil
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup finds an entry by exact name or alias, ignoring case.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Names returns entry names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}
