package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/resolve"
	"github.com/raphi011/dracula/internal/ui/prompt"
)

var errNoSelection = errors.New("no app selected")

// ambiguousError lists the candidates when no prompt can be shown.
type ambiguousError struct {
	query      string
	candidates []resolve.Candidate
}

func (e *ambiguousError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q matches more than one app:", e.query)
	for _, c := range e.candidates {
		fmt.Fprintf(&b, "\n  %-24s %3d%%", c.Entry.Name, c.Score)
	}
	b.WriteString("\nrun again with one of the names above")
	return b.String()
}

// chooser asks the user to pick a candidate. Replaced in tests.
var chooser = prompt.Choose

// interactive reports whether a prompt can be shown.
func interactive() bool {
	in, errOut := os.Stdin.Fd(), os.Stderr.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(errOut) || isatty.IsCygwinTerminal(errOut))
}

// resolveApp maps user input to a catalog entry, prompting on ambiguity
// when attached to a terminal.
func resolveApp(ctx context.Context, a *app, query string, canPrompt bool) (catalog.Entry, error) {
	res, err := a.resolver().Resolve(query)
	if err != nil {
		if errors.Is(err, resolve.ErrInvalidQuery) {
			return catalog.Entry{}, fmt.Errorf("invalid app name %q", query)
		}
		return catalog.Entry{}, err
	}

	if res.Kind == resolve.Matched {
		log.FromContext(ctx).Debug("resolved", "query", query, "app", res.Entry.Name, "score", res.Score)
		return res.Entry, nil
	}

	if !canPrompt {
		return catalog.Entry{}, &ambiguousError{query: query, candidates: res.Candidates}
	}

	entry, ok, err := chooser(fmt.Sprintf("Which app did you mean by %q?", query), res.Candidates)
	if err != nil {
		return catalog.Entry{}, err
	}
	if !ok {
		return catalog.Entry{}, errNoSelection
	}
	return entry, nil
}
