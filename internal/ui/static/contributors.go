package static

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/dracula/internal/github"
	"github.com/raphi011/dracula/internal/ui/styles"
)

// MaxContributors caps the logins listed in the detail view.
const MaxContributors = 10

// RenderContributors renders a "Contributors" line of linked logins, in the
// order given, eliding past limit. Empty when there are none.
func RenderContributors(people []github.Contributor, limit int) string {
	if len(people) == 0 {
		return ""
	}

	shown := people
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	logins := make([]string, len(shown))
	for i, p := range shown {
		login := styles.WarningStyle.Render(p.Login)
		if p.HTMLURL != "" {
			login = ansi.SetHyperlink(p.HTMLURL) + login + ansi.ResetHyperlink()
		}
		logins[i] = login
	}

	line := strings.Join(logins, styles.ErrorStyle.Render(", "))
	if rest := len(people) - len(shown); rest > 0 {
		line += styles.MutedStyle.Render(fmt.Sprintf(" and %d more", rest))
	}
	return styles.LabelStyle.Render("Contributors") + "  " + line
}
