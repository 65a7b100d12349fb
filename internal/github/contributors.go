package github

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ignoredContributors are bot accounts that do not report as type Bot.
var ignoredContributors = []string{"ImgBotApp"}

// Contributor is a person who committed to a repository.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	HTMLURL       string `json:"html_url"`
	Type          string `json:"type"`
}

func (c Contributor) isBot() bool {
	return c.Type == "Bot" || strings.HasSuffix(c.Login, "[bot]") ||
		slices.Contains(ignoredContributors, c.Login)
}

// Contributors returns the human contributors of a repository, most
// contributions first. Only the first page (100) is requested.
func (c *Client) Contributors(ctx context.Context, repository string) ([]Contributor, error) {
	resp, err := c.get(ctx, "/repos/"+repository+"/contributors?per_page=100", acceptJSON, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var all []Contributor
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&all); err != nil {
		return nil, fmt.Errorf("decode contributors of %s: %w", repository, err)
	}

	people := slices.DeleteFunc(all, Contributor.isBot)
	slices.SortStableFunc(people, func(a, b Contributor) int {
		if n := cmp.Compare(b.Contributions, a.Contributions); n != 0 {
			return n
		}
		return cmp.Compare(strings.ToLower(a.Login), strings.ToLower(b.Login))
	})
	return people, nil
}
