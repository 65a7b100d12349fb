package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidPlaceholders lists the placeholders an install template may use.
var ValidPlaceholders = []string{"{name}", "{repo}", "{owner}", "{url}"}

// placeholderRegex matches {placeholder} patterns. Braces with spaces or
// quotes (vim-plug options, JSON) are not placeholders.
var placeholderRegex = regexp.MustCompile(`\{[a-z-]+\}`)

// ValidateTemplate returns an error if template uses an unknown placeholder.
func ValidateTemplate(template string) error {
	for _, match := range placeholderRegex.FindAllString(template, -1) {
		if !isValidPlaceholder(match) {
			return fmt.Errorf("unknown placeholder %q in install template (valid: %s)",
				match, strings.Join(ValidPlaceholders, ", "))
		}
	}
	return nil
}

func isValidPlaceholder(placeholder string) bool {
	for _, valid := range ValidPlaceholders {
		if placeholder == valid {
			return true
		}
	}
	return false
}

// InstallCommand renders the entry's install template.
func (e Entry) InstallCommand() string {
	return strings.NewReplacer(
		"{name}", e.Name,
		"{repo}", e.Repository,
		"{owner}", e.Owner(),
		"{url}", e.URL(),
	).Replace(e.InstallTemplate)
}
