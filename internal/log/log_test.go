package log

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintf(t *testing.T) {
	t.Parallel()

	t.Run("writes formatted output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)
		l.Printf("hello %s %d", "world", 42)
		assert.Equal(t, "hello world 42", buf.String())
	})

	t.Run("suppressed when quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, true)
		l.Printf("should not appear")
		assert.Zero(t, buf.Len())
	})
}

func TestPrintln(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.Println("hello", "world")
	assert.Equal(t, "hello world\n", buf.String())
}

func TestDebug(t *testing.T) {
	t.Parallel()

	t.Run("verbose key-val format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Debug("fetching metadata", "repo", "dracula/vim", "stale", true)
		got := buf.String()
		assert.Contains(t, got, "fetching metadata")
		assert.Contains(t, got, "repo=dracula/vim")
		assert.Contains(t, got, "stale=true")
	})

	t.Run("odd keyvals drops last", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Debug("msg", "key1", "val1", "orphan")
		assert.Contains(t, buf.String(), "key1=val1")
		assert.NotContains(t, buf.String(), "orphan")
	})

	t.Run("not verbose is silent", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, false, false).Debug("should not appear", "key", "val")
		assert.Zero(t, buf.Len())
	})

	t.Run("quiet overrides verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, true, true).Debug("should not appear")
		assert.Zero(t, buf.Len())
	})
}

func TestRequest(t *testing.T) {
	t.Parallel()

	t.Run("verbose logs status and duration", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		done := l.Request("GET", "https://api.github.com/repos/dracula/vim")
		done(304, 120*time.Millisecond)
		assert.Equal(t, "> GET https://api.github.com/repos/dracula/vim (304, 120ms)\n", buf.String())
	})

	t.Run("failed request", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Request("GET", "https://example.test")(0, time.Second)
		assert.Contains(t, buf.String(), "(failed, 1s)")
	})

	t.Run("not verbose is no-op", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, false, false).Request("GET", "https://example.test")(200, time.Second)
		assert.Zero(t, buf.Len())
	})
}

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    bool
	}{
		{"verbose only", true, false, true},
		{"quiet only", false, true, false},
		{"both", true, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New(io.Discard, tt.verbose, tt.quiet)
			assert.Equal(t, tt.want, l.IsVerbose())
		})
	}
}

func TestWithLogger_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		l := New(io.Discard, true, false)
		ctx := WithLogger(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))
	})

	t.Run("fallback discard logger", func(t *testing.T) {
		t.Parallel()
		l := FromContext(context.Background())
		require.NotNil(t, l)
		l.Printf("should not appear anywhere")
		l.Debug("should not appear anywhere")
		assert.Equal(t, io.Discard, l.Writer())
	})
}
