package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
)

// SearchMovie finds the TMDB id for a film title. The year narrows the
// search when non-empty. Returns found=false when no result matches.
func (c *Client) SearchMovie(ctx context.Context, title, year string) (int64, bool, error) {
	query := url.Values{}
	query.Set("query", title)
	if year != "" {
		query.Set("year", year)
	}

	body, err := c.doRequest(ctx, "/search/movie", query)
	if err != nil {
		return 0, false, wrapSearchError(title, err)
	}

	var resp rawSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, false, wrapSearchError(title, fmt.Errorf("parse response: %w", err))
	}

	if len(resp.Results) == 0 {
		return 0, false, nil
	}
	// TMDB orders results by relevance; take the first.
	return resp.Results[0].ID, true, nil
}
