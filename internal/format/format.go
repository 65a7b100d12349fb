package format

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unknown is shown in place of a missing value.
const Unknown = "unknown"

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators: 12,345.
func Count(n *int) string {
	if n == nil {
		return Unknown
	}
	return printer.Sprintf("%d", *n)
}

// Size formats a size given in kilobytes.
func Size(kb *int) string {
	if kb == nil {
		return Unknown
	}
	const unit = 1024
	v := float64(*kb)
	switch {
	case v < unit:
		return fmt.Sprintf("%d KB", *kb)
	case v < unit*unit:
		return fmt.Sprintf("%.1f MB", v/unit)
	default:
		return fmt.Sprintf("%.1f GB", v/(unit*unit))
	}
}

// Text returns *s, or Unknown.
func Text(s *string) string {
	if s == nil || *s == "" {
		return Unknown
	}
	return *s
}

// Date formats t as YYYY-MM-DD in local time.
func Date(t *time.Time) string {
	if t == nil {
		return Unknown
	}
	return t.Local().Format(time.DateOnly)
}

// Age formats how long before now t was: "3 hours ago".
func Age(t *time.Time, now time.Time) string {
	if t == nil {
		return Unknown
	}
	d := now.Sub(*t)
	if d < time.Minute {
		return "just now"
	}

	switch {
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month")
	default:
		return plural(int(d/(365*24*time.Hour)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Truncate shortens s to at most width terminal cells, ending in an ellipsis
// when cut. Wide runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
