package format

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/raphi011/dracula/internal/repo"
)

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, Count(nil))
	assert.Equal(t, "0", Count(repo.Int(0)))
	assert.Equal(t, "999", Count(repo.Int(999)))
	assert.Equal(t, "1,300", Count(repo.Int(1300)))
	assert.Equal(t, "12,345,678", Count(repo.Int(12345678)))
}

func TestSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kb   *int
		want string
	}{
		{nil, Unknown},
		{repo.Int(0), "0 KB"},
		{repo.Int(512), "512 KB"},
		{repo.Int(1024), "1.0 MB"},
		{repo.Int(1536), "1.5 MB"},
		{repo.Int(3 * 1024 * 1024), "3.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Size(tt.kb))
		})
	}
}

func TestAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time { return repo.Time(now.Add(-d)) }

	tests := []struct {
		name string
		t    *time.Time
		want string
	}{
		{"nil", nil, Unknown},
		{"seconds", ago(10 * time.Second), "just now"},
		{"future", ago(-time.Hour), "just now"},
		{"one minute", ago(time.Minute), "1 minute ago"},
		{"minutes", ago(45 * time.Minute), "45 minutes ago"},
		{"hours", ago(3 * time.Hour), "3 hours ago"},
		{"one day", ago(25 * time.Hour), "1 day ago"},
		{"days", ago(10 * 24 * time.Hour), "10 days ago"},
		{"months", ago(90 * 24 * time.Hour), "3 months ago"},
		{"years", ago(800 * 24 * time.Hour), "2 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Age(tt.t, now))
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, Text(nil))
	assert.Equal(t, Unknown, Text(repo.String("")))
	assert.Equal(t, "Lua", Text(repo.String("Lua")))
}

func TestDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, Date(nil))
	d := time.Date(2020, 5, 17, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2020-05-17", Date(&d))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vim", Truncate("vim", 10))
	assert.Equal(t, "visual-s…", Truncate("visual-studio-code", 9))
	assert.Equal(t, "", Truncate("vim", 0))

	got := Truncate("ドラキュラのテーマ", 7)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 7)
}
