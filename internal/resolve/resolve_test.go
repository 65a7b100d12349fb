package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/dracula/internal/catalog"
)

func newCatalog(t *testing.T, names ...string) *catalog.Catalog {
	t.Helper()
	entries := make([]catalog.Entry, len(names))
	for i, n := range names {
		entries[i] = catalog.Entry{Name: n, Repository: "dracula/" + strings.ReplaceAll(n, " ", "-")}
	}
	c, err := catalog.New(entries)
	require.NoError(t, err)
	return c
}

func candidateNames(cs []Candidate) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Entry.Name
	}
	return names
}

func TestResolve_Scenario(t *testing.T) {
	t.Parallel()

	r := New(newCatalog(t, "vscode", "vim"))

	res, err := r.Resolve("vscod")
	require.NoError(t, err)
	assert.Equal(t, Matched, res.Kind)
	assert.Equal(t, "vscode", res.Entry.Name)
	assert.Equal(t, 83, res.Score)

	res, err = r.Resolve("vs")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, res.Kind)
	assert.Equal(t, []string{"vscode", "vim"}, candidateNames(res.Candidates))
	assert.Equal(t, res.Candidates[0].Score, res.Candidates[1].Score)
}

func TestResolve_Exact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  string
	}{
		{"vim", "vim"},
		{"VIM", "vim"},
		{"  vim!  ", "vim"},
		{"Visual Studio Code", "visual-studio-code"},
		{"visual_studio_code", "visual-studio-code"},
		{"VisualStudio-Code", "visual-studio-code"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			// strictest settings: exactness must not depend on them
			r := New(newCatalog(t, "visual-studio-code", "vim", "vimium"),
				WithThreshold(100), WithMargin(100))
			res, err := r.Resolve(tt.query)
			require.NoError(t, err)
			assert.Equal(t, Matched, res.Kind)
			assert.Equal(t, tt.want, res.Entry.Name)
			assert.Equal(t, 100, res.Score)
		})
	}
}

func TestResolve_EveryBundledNameResolvesToItself(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load()
	require.NoError(t, err)
	r := New(c)

	for _, e := range c.Entries() {
		for _, name := range e.SearchNames() {
			for _, query := range []string{name, strings.ToUpper(name), strings.ReplaceAll(name, "-", " ")} {
				res, err := r.Resolve(query)
				require.NoError(t, err, query)
				require.Equal(t, Matched, res.Kind, query)
				assert.Equal(t, e.Name, res.Entry.Name, query)
			}
		}
	}
}

func TestResolve_BundledCommonQueries(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load()
	require.NoError(t, err)
	r := New(c)

	tests := []struct {
		query string
		want  string
		score int
	}{
		{"vscod", "visual-studio-code", 83},
		{"vscode", "visual-studio-code", 100},
		{"nvim", "vim", 100},
		{"Neovim", "vim", 100},
		{"iterm2", "iterm", 100},
		{"intelij", "jetbrains", 88},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			res, err := r.Resolve(tt.query)
			require.NoError(t, err)
			require.Equal(t, Matched, res.Kind, "candidates: %v", candidateNames(res.Candidates))
			assert.Equal(t, tt.want, res.Entry.Name)
			assert.Equal(t, tt.score, res.Score)
		})
	}
}

func TestResolve_Aliases(t *testing.T) {
	t.Parallel()

	c, err := catalog.New([]catalog.Entry{
		{Name: "visual-studio-code", Aliases: []string{"vscode"}, Repository: "dracula/visual-studio-code"},
		{Name: "vim", Aliases: []string{"nvim"}, Repository: "dracula/vim"},
	})
	require.NoError(t, err)
	r := New(c)

	res, err := r.Resolve("vscod")
	require.NoError(t, err)
	assert.Equal(t, Matched, res.Kind)
	assert.Equal(t, "visual-studio-code", res.Entry.Name)
	assert.Equal(t, 83, res.Score)

	res, err = r.Resolve("NVIM")
	require.NoError(t, err)
	assert.Equal(t, Matched, res.Kind)
	assert.Equal(t, "vim", res.Entry.Name)
	assert.Equal(t, 100, res.Score)

	// an entry with several close names is still one candidate
	res, err = New(c, WithThreshold(100)).Resolve("v")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, res.Kind)
	assert.Equal(t, []string{"vim", "visual-studio-code"}, candidateNames(res.Candidates))
}

func TestResolve_TokenOrderInsensitive(t *testing.T) {
	t.Parallel()

	r := New(newCatalog(t, "visual studio code", "vim"))
	res, err := r.Resolve("code studio visual")
	require.NoError(t, err)
	assert.Equal(t, Matched, res.Kind)
	assert.Equal(t, "visual studio code", res.Entry.Name)
	assert.Equal(t, 100, res.Score)
}

func TestResolve_NearTieIsAmbiguous(t *testing.T) {
	t.Parallel()

	// "kity" scores 80 against kitty and 75 against kitt
	r := New(newCatalog(t, "kitty", "kitt"))
	res, err := r.Resolve("kity")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, res.Kind)
	assert.Equal(t, []Candidate{
		{Entry: res.Candidates[0].Entry, Score: 80},
		{Entry: res.Candidates[1].Entry, Score: 75},
	}, res.Candidates)
	assert.Equal(t, []string{"kitty", "kitt"}, candidateNames(res.Candidates))

	// a smaller margin lets the leader through
	res, err = New(newCatalog(t, "kitty", "kitt"), WithMargin(5)).Resolve("kity")
	require.NoError(t, err)
	assert.Equal(t, Matched, res.Kind)
	assert.Equal(t, "kitty", res.Entry.Name)
}

func TestResolve_ZeroMarginStillNeedsStrictLead(t *testing.T) {
	t.Parallel()

	r := New(newCatalog(t, "aa", "ab"), WithThreshold(0), WithMargin(0))
	res, err := r.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, res.Kind)
}

func TestResolve_Threshold(t *testing.T) {
	t.Parallel()

	c := newCatalog(t, "vscode", "vim")

	res, err := New(c).Resolve("vsc")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, res.Kind, "50 is below the default threshold")

	res, err = New(c, WithThreshold(50)).Resolve("vsc")
	require.NoError(t, err)
	assert.Equal(t, Matched, res.Kind)
	assert.Equal(t, "vscode", res.Entry.Name)
}

func TestResolve_TiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	res, err := New(newCatalog(t, "aa", "ab")).Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "ab"}, candidateNames(res.Candidates))

	res, err = New(newCatalog(t, "ab", "aa")).Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "aa"}, candidateNames(res.Candidates))
}

func TestResolve_MaxCandidates(t *testing.T) {
	t.Parallel()

	c := newCatalog(t, "alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf")

	res, err := New(c).Resolve("zzz")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, res.Kind)
	assert.Len(t, res.Candidates, DefaultMaxCandidates)
	for i := 1; i < len(res.Candidates); i++ {
		assert.GreaterOrEqual(t, res.Candidates[i-1].Score, res.Candidates[i].Score)
	}

	res, err = New(c, WithMaxCandidates(2)).Resolve("zzz")
	require.NoError(t, err)
	assert.Len(t, res.Candidates, 2)
}

func TestResolve_DuplicateNormalizedNames(t *testing.T) {
	t.Parallel()

	res, err := New(newCatalog(t, "vs-code", "vscode")).Resolve("VSCode")
	require.NoError(t, err)
	assert.Equal(t, Ambiguous, res.Kind)
	assert.Equal(t, []string{"vs-code", "vscode"}, candidateNames(res.Candidates))
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	r := New(newCatalog(t, "vim"))
	for _, q := range []string{"", "   ", "\t\n", "---", "!!"} {
		_, err := r.Resolve(q)
		assert.ErrorIs(t, err, ErrInvalidQuery, "query %q", q)
	}

	_, err := New(newCatalog(t)).Resolve("vim")
	assert.ErrorIs(t, err, ErrCatalogEmpty)
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"vim", "vim", 100},
		{"vim", "VIM", 100},
		{"vscod", "vscode", 83},
		{"vs", "vim", 33},
		{"abc", "xyz", 0},
		{"tmux", "tmux dracula", 33},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			t.Parallel()
			got := score(normalize(tt.a), normalize(tt.b))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, score(normalize(tt.b), normalize(tt.a)), "symmetric")
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "matched", Matched.String())
	assert.Equal(t, "ambiguous", Ambiguous.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
